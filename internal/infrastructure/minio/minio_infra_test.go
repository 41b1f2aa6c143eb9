package minio

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DRSN-tech/bikeshop-backend/internal/cfg"
	"github.com/DRSN-tech/bikeshop-backend/internal/domain"
	"github.com/DRSN-tech/bikeshop-backend/internal/usecase"
	"github.com/DRSN-tech/bikeshop-backend/pkg/e"
	"github.com/DRSN-tech/bikeshop-backend/pkg/jitter"
	"github.com/DRSN-tech/bikeshop-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeImageRepo struct {
	mu         sync.Mutex
	uploaded   []string
	deleted    []string
	failOn     string
	deleteErrs int
}

func (f *fakeImageRepo) Upload(_ context.Context, image *domain.Image) (string, error) {
	if f.failOn != "" && strings.Contains(image.ObjectKey, f.failOn) {
		return "", errors.New("s3 unavailable")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploaded = append(f.uploaded, image.ObjectKey)
	return image.ObjectKey, nil
}

func (f *fakeImageRepo) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErrs > 0 {
		f.deleteErrs--
		return errors.New("temporary")
	}
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeImageRepo) deletedKeys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

func newInfra(repo usecase.ImageRepository) *MinioInfrastructure {
	m := NewMinioInfrastructure(repo, &cfg.MinIOCfg{BucketName: "product-images", UploadImagesLimit: 2},
		logger.NewNop(), context.Background())
	m.backoff = jitter.Backoff{Base: time.Millisecond, Max: 2 * time.Millisecond}
	return m
}

func images(names ...string) []usecase.ProductImage {
	out := make([]usecase.ProductImage, 0, len(names))
	for _, n := range names {
		out = append(out, *usecase.NewProductImage([]byte(n), "image/png", int64(len(n)), n+".png"))
	}
	return out
}

func TestUploadImages_PreservesOrder(t *testing.T) {
	repo := &fakeImageRepo{}
	m := newInfra(repo)

	res, err := m.UploadImages(context.Background(), usecase.NewUploadImagesReq("p1", images("front", "side", "back", "top")))
	require.NoError(t, err)
	require.Len(t, res.ImagesKeys, 4)

	for i, name := range []string{"front", "side", "back", "top"} {
		assert.True(t, strings.HasPrefix(res.ImagesKeys[i], "p1/"+name+"-"), res.ImagesKeys[i])
		assert.True(t, strings.HasSuffix(res.ImagesKeys[i], ".png"))
	}
}

func TestUploadImages_FailureCleansUp(t *testing.T) {
	repo := &fakeImageRepo{failOn: "broken"}
	m := newInfra(repo)

	_, err := m.UploadImages(context.Background(), usecase.NewUploadImagesReq("p1", images("front", "broken")))
	require.Error(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, m.WaitForCleanup(ctx))

	repo.mu.Lock()
	uploaded := append([]string(nil), repo.uploaded...)
	repo.mu.Unlock()
	assert.ElementsMatch(t, uploaded, repo.deletedKeys())
}

func TestUploadImages_UnsupportedType(t *testing.T) {
	m := newInfra(&fakeImageRepo{})
	img := *usecase.NewProductImage([]byte("gif"), "image/gif", 3, "anim.gif")

	_, err := m.UploadImages(context.Background(), usecase.NewUploadImagesReq("p1", []usecase.ProductImage{img}))
	assert.ErrorIs(t, err, e.ErrUnsupportedMediaType)
}

func TestCleanupImages_Retries(t *testing.T) {
	repo := &fakeImageRepo{deleteErrs: 2}
	m := newInfra(repo)

	m.CleanupImages([]string{"p1/a.png"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, m.WaitForCleanup(ctx))
	assert.Equal(t, []string{"p1/a.png"}, repo.deletedKeys())
}
