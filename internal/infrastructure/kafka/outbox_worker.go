package kafka

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/DRSN-tech/bikeshop-backend/internal/cfg"
	"github.com/DRSN-tech/bikeshop-backend/internal/infrastructure/metrics"
	"github.com/DRSN-tech/bikeshop-backend/internal/usecase"
	"github.com/DRSN-tech/bikeshop-backend/pkg/e"
	"github.com/DRSN-tech/bikeshop-backend/pkg/jitter"
	"github.com/DRSN-tech/bikeshop-backend/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/segmentio/kafka-go"
)

const (
	outboxChannel   = "outbox_pending"
	listenTimeout   = 30 * time.Second
	staleProcessing = time.Minute
)

// OutboxStore — хранилище outbox с возвратом зависших событий в очередь
// и пометкой событий, которые брокер не примет никогда.
type OutboxStore interface {
	usecase.OutboxRepository
	ReleaseStale(ctx context.Context, olderThan time.Duration) (int64, error)
	MarkAsFailed(ctx context.Context, id int64, reason string) error
}

// OutboxWorker публикует события outbox в Kafka. Будится через LISTEN outbox_pending,
// а при тишине в канале раз в listenTimeout проверяет очередь сам.
type OutboxWorker struct {
	repo      OutboxStore
	logger    logger.Logger
	producer  usecase.MessageProducer
	stop      chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
	dbConnStr string
	batchSize int
	reconnect jitter.Backoff
}

func NewOutboxWorker(
	repo OutboxStore,
	logger logger.Logger,
	producer usecase.MessageProducer,
	dbConnStr string,
	cfg *cfg.KafkaCfg,
) *OutboxWorker {
	return &OutboxWorker{
		repo:      repo,
		logger:    logger,
		producer:  producer,
		stop:      make(chan struct{}),
		dbConnStr: dbConnStr,
		batchSize: cfg.BatchSize,
		reconnect: jitter.Backoff{Base: cfg.ReconnectBackoff, Max: cfg.ReconnectMaxBackoff},
	}
}

// Start вычищает накопившиеся события и запускает слушатель уведомлений.
func (w *OutboxWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		w.logger.Infof("Draining pending outbox events on startup...")
		w.releaseStale(ctx)
		w.drain(ctx)

		w.listenOutboxNotifications(ctx)
	}()
}

func (w *OutboxWorker) Stop() {
	w.stopOnce.Do(func() { close(w.stop) })
	w.wg.Wait()
}

func (w *OutboxWorker) Close() error {
	w.Stop()
	return nil
}

func (w *OutboxWorker) stopped(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	case <-w.stop:
		return true
	default:
		return false
	}
}

func (w *OutboxWorker) listenOutboxNotifications(ctx context.Context) {
	// Отмена ожидания уведомления при Stop
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-w.stop:
			cancel()
		case <-ctx.Done():
		}
	}()

	var conn *pgx.Conn
	connect := func() error {
		c, err := pgx.Connect(ctx, w.dbConnStr)
		if err != nil {
			return e.Wrap("failed to connect for LISTEN", err)
		}

		if _, err = c.Exec(ctx, "LISTEN "+outboxChannel); err != nil {
			_ = c.Close(ctx)
			return e.Wrap("failed to LISTEN", err)
		}

		conn = c
		w.logger.Infof("Subscribed to '%s' channel", outboxChannel)
		return nil
	}
	defer func() {
		if conn != nil {
			_ = conn.Close(context.Background())
		}
	}()

	for attempt := 0; !w.stopped(ctx); {
		if conn == nil {
			if err := connect(); err != nil {
				w.logger.Warnf("Outbox listener connect failed: %v", err)
				w.sleep(ctx, w.reconnect.Delay(attempt))
				attempt++
				continue
			}
			attempt = 0
		}

		waitCtx, waitCancel := context.WithTimeout(ctx, listenTimeout)
		notif, err := conn.WaitForNotification(waitCtx)
		waitCancel()

		switch {
		case err == nil:
			if notif.Channel == outboxChannel {
				w.logger.Debugf("Received outbox notification, draining outbox events")
				w.drain(ctx)
			}
		case errors.Is(err, context.DeadlineExceeded):
			// тишина в канале: подбираем потерянные и зависшие события
			w.releaseStale(ctx)
			w.drain(ctx)
		case w.stopped(ctx):
			return
		default:
			w.logger.Warnf("Connection lost: %v. Reconnecting...", err)
			_ = conn.Close(context.Background())
			conn = nil
		}
	}
}

func (w *OutboxWorker) sleep(ctx context.Context, d time.Duration) {
	select {
	case <-time.After(d):
	case <-ctx.Done():
	case <-w.stop:
	}
}

func (w *OutboxWorker) releaseStale(ctx context.Context) {
	n, err := w.repo.ReleaseStale(ctx, staleProcessing)
	if err != nil {
		w.logger.Warnf("release stale outbox events failed: %v", err)
		return
	}
	if n > 0 {
		w.logger.Infof("Released %d stale outbox events", n)
	}
}

// drain обрабатывает пачки, пока очередь не опустеет.
func (w *OutboxWorker) drain(ctx context.Context) {
	for !w.stopped(ctx) {
		hasMore, err := w.processBatch(ctx)
		if err != nil {
			w.logger.Warnf("Batch processing failed: %v", err)
			return
		}
		if !hasMore {
			return
		}
	}
}

// processBatch публикует одну пачку. События с временной ошибкой остаются в processing
// и возвращаются в очередь releaseStale, отвергнутые брокером помечаются failed.
func (w *OutboxWorker) processBatch(ctx context.Context) (bool, error) {
	events, err := w.repo.GetAndMarkAsProcessing(ctx, w.batchSize)
	if err != nil {
		return false, err
	}

	if len(events) == 0 {
		return false, nil
	}

	handled := 0
	for _, event := range events {
		err := w.processEvent(ctx, event)
		switch {
		case err == nil:
			metrics.OutboxPublishedTotal.WithLabelValues(string(event.EventType), "ok").Inc()
			handled++
			if err := w.repo.MarkAsProcessed(ctx, event.ID); err != nil {
				w.logger.Warnf("mark processed failed: %v", err)
			}
		case isPermanentError(err):
			metrics.OutboxPublishedTotal.WithLabelValues(string(event.EventType), "failed").Inc()
			handled++
			w.logger.Errorf(err, "outbox event %s rejected by broker, marking failed", event.EventID)
			if err := w.repo.MarkAsFailed(ctx, event.ID, err.Error()); err != nil {
				w.logger.Warnf("mark failed failed: %v", err)
			}
		default:
			metrics.OutboxPublishedTotal.WithLabelValues(string(event.EventType), "error").Inc()
			w.logger.Warnf("publish outbox event %s failed, will retry: %v", event.EventID, err)
		}
	}

	// Брокер недоступен: не крутимся впустую до следующего пробуждения
	if handled == 0 {
		return false, nil
	}

	return len(events) == w.batchSize, nil
}

func (w *OutboxWorker) processEvent(ctx context.Context, event *usecase.OutboxEvent) error {
	req := usecase.NewWriteRawMessageReq(event.AggregateID.String(), event.EventType, event.Payload)
	if err := w.producer.WriteRawMessage(ctx, req); err != nil {
		return e.Wrap("publish "+string(event.EventType), err)
	}
	return nil
}

// isPermanentError сообщает, что брокер отверг сообщение и повтор ничего не даст.
// Сетевые ошибки и временные коды Kafka считаются временными.
func isPermanentError(err error) bool {
	var writeErrs kafka.WriteErrors
	if errors.As(err, &writeErrs) {
		permanent := false
		for _, werr := range writeErrs {
			if werr == nil {
				continue
			}
			if !isPermanentError(werr) {
				return false
			}
			permanent = true
		}
		return permanent
	}

	var kerr kafka.Error
	if errors.As(err, &kerr) {
		return !kerr.Temporary()
	}

	return false
}
