package reminders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

const defaultMaxRetry = 5

// TaskEnqueuer интерфейс клиента asynq (*asynq.Client)
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Config параметры планировщика напоминаний
type Config struct {
	Queue          string
	OffsetsMinutes []int // за сколько минут до начала напомнить
}

// Client планирует напоминания о бронированиях через asynq
type Client struct {
	enqueuer TaskEnqueuer
	logger   Logger
	queue    string
	offsets  []int
	now      func() time.Time
}

// NewClient создает новый клиент напоминаний
func NewClient(enqueuer TaskEnqueuer, logger Logger, cfg Config) *Client {
	return &Client{
		enqueuer: enqueuer,
		logger:   logger,
		queue:    cfg.Queue,
		offsets:  cfg.OffsetsMinutes,
		now:      time.Now,
	}
}

// ScheduleForBooking ставит по одной задаче на каждый интервал напоминания.
// Моменты, которые уже прошли, пропускаются. ID задачи строится из бронирования и интервала,
// повторная обработка того же события не создает дубликатов.
func (c *Client) ScheduleForBooking(ctx context.Context, event domain.BookingCreatedEvent) (int, error) {
	now := c.now()
	scheduled := 0

	for _, offset := range c.offsets {
		processAt := event.StartTime.Add(-time.Duration(offset) * time.Minute)
		if !processAt.After(now) {
			c.logger.Info("Reminders: booking=%d offset=%dm already passed, skipping", event.BookingID, offset)
			continue
		}

		payload, err := json.Marshal(Payload{
			BookingID:     event.BookingID,
			CompanyID:     event.CompanyID,
			Title:         event.Title,
			StartTime:     event.StartTime,
			Timezone:      event.Timezone,
			ClientContact: event.ClientContact,
			OffsetMinutes: offset,
		})
		if err != nil {
			return scheduled, fmt.Errorf("%w: %v", ErrEncodePayload, err)
		}

		opts := []asynq.Option{
			asynq.ProcessAt(processAt),
			asynq.TaskID(TaskID(event.BookingID, offset)),
			asynq.MaxRetry(defaultMaxRetry),
		}
		if c.queue != "" {
			opts = append(opts, asynq.Queue(c.queue))
		}

		if _, err := c.enqueuer.EnqueueContext(ctx, asynq.NewTask(TypeReminderSend, payload), opts...); err != nil {
			if errors.Is(err, asynq.ErrTaskIDConflict) || errors.Is(err, asynq.ErrDuplicateTask) {
				c.logger.Warn("Reminders: booking=%d offset=%dm already scheduled", event.BookingID, offset)
				continue
			}
			return scheduled, fmt.Errorf("%w: booking=%d offset=%dm: %v", ErrEnqueue, event.BookingID, offset, err)
		}
		scheduled++
	}

	return scheduled, nil
}

// TaskID идентификатор задачи напоминания
func TaskID(bookingID int64, offsetMinutes int) string {
	return fmt.Sprintf("reminder:%d:%d", bookingID, offsetMinutes)
}
