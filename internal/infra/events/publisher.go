package events

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

const (
	defaultPollInterval = time.Second
	defaultBatchSize    = 100
)

var (
	// ErrFetch возвращается при ошибке чтения outbox
	ErrFetch = errors.New("events.publisher: failed to fetch outbox events")

	// ErrWrite возвращается при ошибке записи в Kafka
	ErrWrite = errors.New("events.publisher: failed to write messages")

	// ErrMark возвращается при ошибке отметки опубликованных событий
	ErrMark = errors.New("events.publisher: failed to mark events published")
)

// OutboxStore интерфейс outbox репозитория
type OutboxStore interface {
	FetchUnpublished(ctx context.Context, limit int) ([]domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, ids []int64, at time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// MessageWriter интерфейс писателя Kafka (*kafka.Writer)
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// PublisherConfig параметры публикации
type PublisherConfig struct {
	PollInterval time.Duration
	BatchSize    int
}

// Publisher переносит события из outbox_events в Kafka.
// Топик равен типу события, ключ - ID агрегата, чтобы события одного бронирования шли в одну партицию.
type Publisher struct {
	txManager TransactionManager
	store     OutboxStore
	writer    MessageWriter
	logger    Logger
	interval  time.Duration
	batchSize int
	now       func() time.Time
}

// NewWriter создает писателя Kafka. Топик задается в каждом сообщении.
func NewWriter(brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

// NewPublisher создает новый экземпляр publisher
func NewPublisher(txManager TransactionManager, store OutboxStore, writer MessageWriter, logger Logger, cfg PublisherConfig) *Publisher {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	return &Publisher{
		txManager: txManager,
		store:     store,
		writer:    writer,
		logger:    logger,
		interval:  cfg.PollInterval,
		batchSize: cfg.BatchSize,
		now:       time.Now,
	}
}

// Run публикует события, пока не отменен контекст
func (p *Publisher) Run(ctx context.Context) {
	defer func() {
		if err := p.writer.Close(); err != nil {
			p.logger.Warn("Publisher: failed to close writer: %v", err)
		}
	}()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Info("Publisher: started, interval=%s batch=%d", p.interval, p.batchSize)

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Publisher: stopped")
			return
		case <-ticker.C:
			n, err := p.PublishBatch(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				p.logger.Error("Publisher: %v", err)
				continue
			}
			if n > 0 {
				p.logger.Info("Publisher: published %d events", n)
			}
		}
	}
}

// PublishBatch публикует одну пачку событий в транзакции.
// События отмечаются опубликованными только после успешной записи в Kafka:
// доставка at-least-once, получатели дедуплицируют по event_id.
func (p *Publisher) PublishBatch(ctx context.Context) (int, error) {
	published := 0

	err := p.txManager.Do(ctx, func(txCtx context.Context) error {
		records, err := p.store.FetchUnpublished(txCtx, p.batchSize)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFetch, err)
		}
		if len(records) == 0 {
			return nil
		}

		msgs := make([]kafka.Message, 0, len(records))
		ids := make([]int64, 0, len(records))
		for _, r := range records {
			msgs = append(msgs, toMessage(txCtx, r))
			ids = append(ids, r.ID)
		}

		if err := p.writer.WriteMessages(txCtx, msgs...); err != nil {
			return fmt.Errorf("%w: %v", ErrWrite, err)
		}

		if err := p.store.MarkPublished(txCtx, ids, p.now()); err != nil {
			return fmt.Errorf("%w: %v", ErrMark, err)
		}

		published = len(records)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return published, nil
}

func toMessage(ctx context.Context, e domain.OutboxEvent) kafka.Message {
	headers := []kafka.Header{
		{Key: HeaderEventID, Value: []byte(e.EventID)},
		{Key: HeaderEventType, Value: []byte(e.EventType)},
	}

	return kafka.Message{
		Topic:   e.EventType,
		Key:     []byte(strconv.FormatInt(e.AggregateID, 10)),
		Value:   e.Payload,
		Headers: InjectTraceHeaders(ctx, headers),
	}
}
