package bookingevents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/events"
)

const readBackoff = time.Second

var tracer = otel.Tracer("github.com/m04kA/SMC-SchedulingService/internal/worker/bookingevents")

// ErrDecode возвращается, когда сообщение не удалось разобрать
var ErrDecode = errors.New("bookingevents: failed to decode event")

// MessageReader интерфейс читателя Kafka (*kafka.Reader)
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ReminderScheduler интерфейс планировщика напоминаний
type ReminderScheduler interface {
	ScheduleForBooking(ctx context.Context, event domain.BookingCreatedEvent) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Consumer читает события о созданных бронированиях и планирует напоминания.
// Ошибки обработки логируются, на само бронирование они не влияют.
type Consumer struct {
	reader    MessageReader
	reminders ReminderScheduler
	logger    Logger
}

// NewReader создает читателя топика событий бронирований
func NewReader(brokers []string, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		GroupID:  groupID,
		Topic:    domain.EventTypeBookingCreated,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}

// NewConsumer создает новый экземпляр consumer
func NewConsumer(reader MessageReader, reminders ReminderScheduler, logger Logger) *Consumer {
	return &Consumer{
		reader:    reader,
		reminders: reminders,
		logger:    logger,
	}
}

// Run обрабатывает сообщения, пока не отменен контекст
func (c *Consumer) Run(ctx context.Context) {
	defer func() {
		if err := c.reader.Close(); err != nil {
			c.logger.Warn("BookingEvents: failed to close reader: %v", err)
		}
	}()

	c.logger.Info("BookingEvents: consumer started")

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info("BookingEvents: consumer stopped")
				return
			}
			c.logger.Error("BookingEvents: read error: %v", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(readBackoff):
			}
			continue
		}

		if err := c.Handle(ctx, msg); err != nil {
			c.logger.Error("BookingEvents: event_id=%s: %v", events.HeaderValue(msg.Headers, events.HeaderEventID), err)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			c.logger.Error("BookingEvents: failed to commit offset %d: %v", msg.Offset, err)
		}
	}
}

// Handle обрабатывает одно сообщение
func (c *Consumer) Handle(ctx context.Context, msg kafka.Message) error {
	ctx = events.ExtractTraceContext(ctx, msg)
	ctx, span := tracer.Start(ctx, "bookingevents.consume",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", msg.Topic),
		),
	)
	defer span.End()

	eventType := events.HeaderValue(msg.Headers, events.HeaderEventType)
	if eventType == "" {
		eventType = msg.Topic
	}
	if eventType != domain.EventTypeBookingCreated {
		c.logger.Warn("BookingEvents: unexpected event type %q, skipping", eventType)
		return nil
	}

	var event domain.BookingCreatedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode")
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	span.SetAttributes(attribute.Int64("booking.id", event.BookingID))

	n, err := c.reminders.ScheduleForBooking(ctx, event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	c.logger.Info("BookingEvents: booking=%d scheduled %d reminders", event.BookingID, n)
	return nil
}
