package bookingevents

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/events"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type fakeScheduler struct {
	mu     sync.Mutex
	events []domain.BookingCreatedEvent
	err    error
}

func (f *fakeScheduler) ScheduleForBooking(_ context.Context, e domain.BookingCreatedEvent) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.events = append(f.events, e)
	return 2, nil
}

func (f *fakeScheduler) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

// fakeReader отдает сообщения из очереди, затем блокируется до отмены контекста
type fakeReader struct {
	mu        sync.Mutex
	queue     []kafka.Message
	committed []int64
	closed    bool
}

func (f *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	f.mu.Lock()
	if len(f.queue) > 0 {
		msg := f.queue[0]
		f.queue = f.queue[1:]
		f.mu.Unlock()
		return msg, nil
	}
	f.mu.Unlock()

	<-ctx.Done()
	return kafka.Message{}, io.EOF
}

func (f *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range msgs {
		f.committed = append(f.committed, m.Offset)
	}
	return nil
}

func (f *fakeReader) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func message(t *testing.T, offset int64, e domain.BookingCreatedEvent) kafka.Message {
	t.Helper()
	value, err := json.Marshal(e)
	require.NoError(t, err)
	return kafka.Message{
		Topic:  domain.EventTypeBookingCreated,
		Offset: offset,
		Value:  value,
		Headers: []kafka.Header{
			{Key: events.HeaderEventID, Value: []byte(e.EventID)},
			{Key: events.HeaderEventType, Value: []byte(domain.EventTypeBookingCreated)},
		},
	}
}

func TestHandle_SchedulesReminders(t *testing.T) {
	sched := &fakeScheduler{}
	c := NewConsumer(&fakeReader{}, sched, logger.NewNop())

	start := time.Date(2026, 6, 20, 10, 0, 0, 0, time.UTC)
	err := c.Handle(context.Background(), message(t, 1, domain.BookingCreatedEvent{EventID: "e1", BookingID: 5, StartTime: start}))
	require.NoError(t, err)

	require.Len(t, sched.events, 1)
	assert.Equal(t, int64(5), sched.events[0].BookingID)
	assert.True(t, sched.events[0].StartTime.Equal(start))
}

func TestHandle_BadPayload(t *testing.T) {
	sched := &fakeScheduler{}
	c := NewConsumer(&fakeReader{}, sched, logger.NewNop())

	msg := kafka.Message{Topic: domain.EventTypeBookingCreated, Value: []byte("{not json")}
	err := c.Handle(context.Background(), msg)
	assert.ErrorIs(t, err, ErrDecode)
	assert.Empty(t, sched.events)
}

func TestHandle_UnexpectedTypeIgnored(t *testing.T) {
	sched := &fakeScheduler{}
	c := NewConsumer(&fakeReader{}, sched, logger.NewNop())

	msg := kafka.Message{
		Topic:   domain.EventTypeBookingCreated,
		Value:   []byte(`{}`),
		Headers: []kafka.Header{{Key: events.HeaderEventType, Value: []byte("scheduling.booking.cancelled.v1")}},
	}
	require.NoError(t, c.Handle(context.Background(), msg))
	assert.Empty(t, sched.events)
}

func TestHandle_SchedulerError(t *testing.T) {
	boom := errors.New("asynq unavailable")
	c := NewConsumer(&fakeReader{}, &fakeScheduler{err: boom}, logger.NewNop())

	err := c.Handle(context.Background(), message(t, 1, domain.BookingCreatedEvent{EventID: "e1", BookingID: 5}))
	assert.ErrorIs(t, err, boom)
}

func TestRun_CommitsAndStops(t *testing.T) {
	reader := &fakeReader{queue: []kafka.Message{
		message(t, 10, domain.BookingCreatedEvent{EventID: "e1", BookingID: 1}),
		{Topic: domain.EventTypeBookingCreated, Offset: 11, Value: []byte("broken")},
		message(t, 12, domain.BookingCreatedEvent{EventID: "e3", BookingID: 3}),
	}}
	sched := &fakeScheduler{}
	c := NewConsumer(reader, sched, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		reader.mu.Lock()
		defer reader.mu.Unlock()
		return len(reader.committed) == 3
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("consumer did not stop")
	}

	assert.Equal(t, 2, sched.count())
	assert.Equal(t, []int64{10, 11, 12}, reader.committed)
	assert.True(t, reader.closed)
}
