package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DRSN-tech/bikeshop-backend/internal/cfg"
	"github.com/DRSN-tech/bikeshop-backend/internal/usecase"
	"github.com/DRSN-tech/bikeshop-backend/pkg/e"
	"github.com/DRSN-tech/bikeshop-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOutboxStore struct {
	mu        sync.Mutex
	pending   []*usecase.OutboxEvent
	processed []int64
	failed    map[int64]string
	released  int
	fetchErr  error
}

func (f *fakeOutboxStore) Create(_ context.Context, event *usecase.OutboxEvent) (*usecase.OutboxEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	event.ID = int64(len(f.pending) + 1)
	f.pending = append(f.pending, event)
	return event, nil
}

func (f *fakeOutboxStore) GetAndMarkAsProcessing(_ context.Context, limit int) ([]*usecase.OutboxEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	n := min(limit, len(f.pending))
	batch := f.pending[:n]
	f.pending = f.pending[n:]
	return batch, nil
}

func (f *fakeOutboxStore) MarkAsProcessed(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.processed = append(f.processed, id)
	return nil
}

func (f *fakeOutboxStore) MarkAsFailed(_ context.Context, id int64, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failed == nil {
		f.failed = make(map[int64]string)
	}
	f.failed[id] = reason
	return nil
}

func (f *fakeOutboxStore) ReleaseStale(_ context.Context, _ time.Duration) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.released++
	return 0, nil
}

type fakeProducer struct {
	mu   sync.Mutex
	sent []*usecase.WriteRawMessageReq
	err  error
}

func (f *fakeProducer) WriteRawMessage(_ context.Context, req *usecase.WriteRawMessageReq) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, req)
	return nil
}

func newWorker(store OutboxStore, producer usecase.MessageProducer, dsn string, batchSize int) *OutboxWorker {
	return NewOutboxWorker(store, logger.NewNop(), producer, dsn, &cfg.KafkaCfg{
		BatchSize:           batchSize,
		ReconnectBackoff:    time.Millisecond,
		ReconnectMaxBackoff: 5 * time.Millisecond,
	})
}

func seedEvents(t *testing.T, store *fakeOutboxStore, n int) []uuid.UUID {
	t.Helper()
	ids := make([]uuid.UUID, 0, n)
	for i := 0; i < n; i++ {
		id := uuid.New()
		_, err := store.Create(context.Background(), &usecase.OutboxEvent{
			EventID:     uuid.New(),
			EventType:   usecase.CartCreated,
			AggregateID: id,
			Payload:     []byte(`{"cart_id":"` + id.String() + `"}`),
			Status:      usecase.Pending,
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

func TestOutboxWorker_Drain(t *testing.T) {
	store := &fakeOutboxStore{}
	producer := &fakeProducer{}
	ids := seedEvents(t, store, 5)

	w := newWorker(store, producer, "", 2)
	w.drain(context.Background())

	require.Len(t, producer.sent, 5)
	for i, req := range producer.sent {
		assert.Equal(t, ids[i].String(), req.Key)
		assert.Equal(t, usecase.CartCreated, req.EventType)
	}
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, store.processed)
	assert.Empty(t, store.pending)
}

func TestOutboxWorker_ProcessBatch(t *testing.T) {
	t.Run("full batch reports more", func(t *testing.T) {
		store := &fakeOutboxStore{}
		seedEvents(t, store, 3)
		w := newWorker(store, &fakeProducer{}, "", 3)

		more, err := w.processBatch(context.Background())
		require.NoError(t, err)
		assert.True(t, more)

		more, err = w.processBatch(context.Background())
		require.NoError(t, err)
		assert.False(t, more)
	})

	t.Run("producer failure leaves events unprocessed", func(t *testing.T) {
		store := &fakeOutboxStore{}
		seedEvents(t, store, 2)
		w := newWorker(store, &fakeProducer{err: errors.New("dial tcp: connection refused")}, "", 2)

		more, err := w.processBatch(context.Background())
		require.NoError(t, err)
		assert.False(t, more)
		assert.Empty(t, store.processed)
		assert.Empty(t, store.failed)
	})

	t.Run("rejected message is marked failed", func(t *testing.T) {
		store := &fakeOutboxStore{}
		seedEvents(t, store, 2)
		rejected := e.Wrap("Producer.WriteRawMessage", kafka.WriteErrors{kafka.MessageSizeTooLarge})
		w := newWorker(store, &fakeProducer{err: rejected}, "", 2)

		more, err := w.processBatch(context.Background())
		require.NoError(t, err)
		assert.True(t, more)
		assert.Empty(t, store.processed)
		require.Len(t, store.failed, 2)
		assert.NotEmpty(t, store.failed[1])
	})

	t.Run("temporary broker error is retried later", func(t *testing.T) {
		store := &fakeOutboxStore{}
		seedEvents(t, store, 1)
		w := newWorker(store, &fakeProducer{err: kafka.LeaderNotAvailable}, "", 2)

		more, err := w.processBatch(context.Background())
		require.NoError(t, err)
		assert.False(t, more)
		assert.Empty(t, store.failed)
	})

	t.Run("fetch error", func(t *testing.T) {
		store := &fakeOutboxStore{fetchErr: errors.New("db down")}
		w := newWorker(store, &fakeProducer{}, "", 2)

		_, err := w.processBatch(context.Background())
		require.Error(t, err)
	})
}

func TestOutboxWorker_StopBeforeListen(t *testing.T) {
	store := &fakeOutboxStore{}
	seedEvents(t, store, 1)
	producer := &fakeProducer{}
	w := newWorker(store, producer, "postgres://invalid:1/none", 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.Start(ctx)
	w.Stop()

	assert.Equal(t, 1, store.released)
}

func TestIsPermanentError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"network", errors.New("dial tcp: connection refused"), false},
		{"temporary code", kafka.LeaderNotAvailable, false},
		{"permanent code", kafka.MessageSizeTooLarge, true},
		{"wrapped permanent", e.Wrap("publish", kafka.InvalidTopic), true},
		{"write errors permanent", kafka.WriteErrors{kafka.MessageSizeTooLarge}, true},
		{"write errors mixed", kafka.WriteErrors{kafka.MessageSizeTooLarge, kafka.RequestTimedOut}, false},
		{"write errors empty", kafka.WriteErrors{nil}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isPermanentError(tt.err))
		})
	}
}
