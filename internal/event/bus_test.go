package event

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testBus() *Bus {
	return NewBus(3, time.Millisecond, time.Second)
}

func TestPublishDeliversToAllSubscribers(t *testing.T) {
	bus := testBus()

	var first, second int32
	bus.Subscribe(TypeCoursePublished, "first", func(ctx context.Context, e Event) error {
		atomic.AddInt32(&first, 1)
		return nil
	})
	bus.Subscribe(TypeCoursePublished, "second", func(ctx context.Context, e Event) error {
		atomic.AddInt32(&second, 1)
		return nil
	})

	bus.Publish(NewCoursePublishedEvent(11, 3))
	bus.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&first))
	assert.EqualValues(t, 1, atomic.LoadInt32(&second))
}

func TestPublishIgnoresUnsubscribedTypes(t *testing.T) {
	bus := testBus()

	var calls int32
	bus.Subscribe(TypeOrderPaid, "orders", func(ctx context.Context, e Event) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})

	bus.Publish(NewCourseReviewedEvent(11, 7))
	bus.Wait()

	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestDeliveryRetriesUntilSuccess(t *testing.T) {
	bus := testBus()

	var attempts int32
	bus.Subscribe(TypeEnrollmentCompleted, "flaky", func(ctx context.Context, e Event) error {
		if atomic.AddInt32(&attempts, 1) < 3 {
			return errors.New("transient")
		}
		return nil
	})

	bus.Publish(NewEnrollmentCompletedEvent(1, 11, 7))
	bus.Wait()

	assert.EqualValues(t, 3, atomic.LoadInt32(&attempts))
}

func TestDeliveryStopsAfterRetryBudget(t *testing.T) {
	bus := testBus()

	var attempts int32
	bus.Subscribe(TypeEnrollmentCompleted, "broken", func(ctx context.Context, e Event) error {
		atomic.AddInt32(&attempts, 1)
		return errors.New("permanent")
	})

	bus.Publish(NewEnrollmentCompletedEvent(1, 11, 7))
	bus.Wait()

	assert.EqualValues(t, 3, atomic.LoadInt32(&attempts))
}

func TestHandlerPanicDoesNotKillTheBus(t *testing.T) {
	bus := testBus()

	var healthy int32
	bus.Subscribe(TypeEnrollmentCreated, "panics", func(ctx context.Context, e Event) error {
		panic("boom")
	})
	bus.Subscribe(TypeEnrollmentCreated, "healthy", func(ctx context.Context, e Event) error {
		atomic.AddInt32(&healthy, 1)
		return nil
	})

	bus.Publish(NewEnrollmentCreatedEvent(1, 11, 7, 3))
	bus.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&healthy))
}

func TestHandlerSeesDeadlineFromTimeout(t *testing.T) {
	bus := NewBus(1, 0, 50*time.Millisecond)

	var hadDeadline int32
	bus.Subscribe(TypeOrderPaid, "checks-deadline", func(ctx context.Context, e Event) error {
		if _, ok := ctx.Deadline(); ok {
			atomic.StoreInt32(&hadDeadline, 1)
		}
		return nil
	})

	bus.Publish(NewOrderPaidEvent(1, []OrderLine{{CourseID: 11}}, 7))
	bus.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&hadDeadline))
}
