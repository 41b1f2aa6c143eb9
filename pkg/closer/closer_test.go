package closer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloser_LIFO(t *testing.T) {
	c := NewCloser(0)

	var (
		mu    sync.Mutex
		order []string
	)
	record := func(name string) Func {
		return func(context.Context) error {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, name)
			return nil
		}
	}

	c.Add("db", record("db"))
	c.Add("cache", record("cache"))
	c.Add("http", record("http"))

	require.NoError(t, c.Close(context.Background()))
	assert.Equal(t, []string{"http", "cache", "db"}, order)
}

func TestCloser_CollectsErrors(t *testing.T) {
	c := NewCloser(time.Second)
	c.AddFunc("redis", func() error { return errors.New("boom") })
	c.AddFunc("kafka", func() error { return nil })

	err := c.Close(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis: boom")
	assert.NotContains(t, err.Error(), "kafka")
}

func TestCloser_OnlyOnce(t *testing.T) {
	c := NewCloser(0)
	calls := 0
	c.AddFunc("x", func() error { calls++; return nil })

	require.NoError(t, c.Close(context.Background()))
	require.NoError(t, c.Close(context.Background()))
	assert.Equal(t, 1, calls)
}

func TestCloser_ForcedAfterTimeout(t *testing.T) {
	c := NewCloser(500 * time.Millisecond)

	forced := make(chan struct{})
	c.Add("slow-first", func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-forced:
			return nil
		}
	})
	c.Add("hang", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := c.Close(ctx)
	close(forced)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "shutdown interrupted after 0/2 resources")
	assert.Contains(t, err.Error(), "[FORCED]")
}
