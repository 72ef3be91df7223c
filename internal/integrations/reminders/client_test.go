package reminders

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

var now = time.Date(2026, 6, 15, 8, 0, 0, 0, time.UTC)

type fakeEnqueuer struct {
	tasks []*asynq.Task
	ids   map[string]bool
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.ids == nil {
		f.ids = map[string]bool{}
	}
	for _, o := range opts {
		if o.Type() == asynq.TaskIDOpt {
			id := o.Value().(string)
			if f.ids[id] {
				return nil, asynq.ErrTaskIDConflict
			}
			f.ids[id] = true
		}
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{}, nil
}

func newClient(enq *fakeEnqueuer) *Client {
	c := NewClient(enq, logger.NewNop(), Config{Queue: "reminders", OffsetsMinutes: []int{24 * 60, 60}})
	c.now = func() time.Time { return now }
	return c
}

func event(start time.Time) domain.BookingCreatedEvent {
	return domain.BookingCreatedEvent{
		EventID:       "evt-1",
		BookingID:     7,
		CompanyID:     1,
		Title:         "Massage",
		StartTime:     start,
		ClientContact: "client@example.com",
		Timezone:      "Europe/Berlin",
	}
}

func TestScheduleForBooking_AllOffsets(t *testing.T) {
	enq := &fakeEnqueuer{}
	c := newClient(enq)

	n, err := c.ScheduleForBooking(context.Background(), event(now.Add(72*time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, enq.tasks, 2)

	assert.Equal(t, TypeReminderSend, enq.tasks[0].Type())

	var p Payload
	require.NoError(t, json.Unmarshal(enq.tasks[0].Payload(), &p))
	assert.Equal(t, int64(7), p.BookingID)
	assert.Equal(t, 24*60, p.OffsetMinutes)
	assert.Equal(t, "client@example.com", p.ClientContact)

	assert.True(t, enq.ids[TaskID(7, 1440)])
	assert.True(t, enq.ids[TaskID(7, 60)])
}

func TestScheduleForBooking_SkipsPassedOffsets(t *testing.T) {
	enq := &fakeEnqueuer{}
	c := newClient(enq)

	// до начала 3 часа: напоминание за сутки уже не нужно
	n, err := c.ScheduleForBooking(context.Background(), event(now.Add(3*time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, enq.ids[TaskID(7, 60)])
	assert.False(t, enq.ids[TaskID(7, 1440)])
}

func TestScheduleForBooking_Idempotent(t *testing.T) {
	enq := &fakeEnqueuer{}
	c := newClient(enq)
	e := event(now.Add(72 * time.Hour))

	_, err := c.ScheduleForBooking(context.Background(), e)
	require.NoError(t, err)

	n, err := c.ScheduleForBooking(context.Background(), e)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Len(t, enq.tasks, 2)
}

func TestScheduleForBooking_EnqueueError(t *testing.T) {
	c := newClient(&fakeEnqueuer{err: errors.New("redis down")})

	_, err := c.ScheduleForBooking(context.Background(), event(now.Add(72*time.Hour)))
	assert.ErrorIs(t, err, ErrEnqueue)
}
