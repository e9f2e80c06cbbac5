package listener

import (
	"context"
	"errors"
	"testing"

	"learnhub_backend/internal/event"
	"learnhub_backend/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

type fakeEnrollmentOps struct {
	enrolled     []uint
	reviewed     [][2]uint
	err          error
	failuresLeft int
}

func (f *fakeEnrollmentOps) EnrollStudent(studentID, courseID uint) (*model.Enrollment, error) {
	if f.failuresLeft > 0 {
		f.failuresLeft--
		return nil, errors.New("transient failure")
	}
	if f.err != nil {
		return nil, f.err
	}
	f.enrolled = append(f.enrolled, courseID)
	e := &model.Enrollment{StudentID: studentID, CourseID: courseID}
	e.ID = uint(len(f.enrolled))
	return e, nil
}

func (f *fakeEnrollmentOps) MarkReviewed(courseID, studentID uint) error {
	f.reviewed = append(f.reviewed, [2]uint{courseID, studentID})
	return f.err
}

func TestHandleOrderPaidEnrollsEveryItem(t *testing.T) {
	ops := &fakeEnrollmentOps{}
	l := NewEnrollmentListener(ops, nil)

	ev := event.NewOrderPaidEvent(1, []event.OrderLine{{CourseID: 11}, {CourseID: 12}}, 7)
	require.NoError(t, l.HandleOrderPaid(context.Background(), ev))

	assert.Equal(t, []uint{11, 12}, ops.enrolled)
}

func TestHandleOrderPaidPropagatesFailure(t *testing.T) {
	ops := &fakeEnrollmentOps{err: errors.New("db down")}
	l := NewEnrollmentListener(ops, nil)

	ev := event.NewOrderPaidEvent(1, []event.OrderLine{{CourseID: 11}}, 7)
	assert.Error(t, l.HandleOrderPaid(context.Background(), ev))
}

func TestHandleOrderPaidRejectsWrongEventType(t *testing.T) {
	l := NewEnrollmentListener(&fakeEnrollmentOps{}, nil)
	err := l.HandleOrderPaid(context.Background(), event.NewCoursePublishedEvent(11, 3))
	assert.Error(t, err)
}

func TestHandleOrderPaidRetrySucceedsAfterTransientFailure(t *testing.T) {
	ops := &fakeEnrollmentOps{failuresLeft: 1}
	l := NewEnrollmentListener(ops, testRedis(t))

	ev := event.NewOrderPaidEvent(1, []event.OrderLine{{CourseID: 11}}, 7)

	// First delivery fails midway; the dedup marker must not be set yet.
	require.Error(t, l.HandleOrderPaid(context.Background(), ev))
	assert.Empty(t, ops.enrolled)

	// The redelivery must still do the work.
	require.NoError(t, l.HandleOrderPaid(context.Background(), ev))
	assert.Equal(t, []uint{11}, ops.enrolled)
}

func TestHandleOrderPaidSkipsDuplicateDelivery(t *testing.T) {
	ops := &fakeEnrollmentOps{}
	l := NewEnrollmentListener(ops, testRedis(t))

	ev := event.NewOrderPaidEvent(1, []event.OrderLine{{CourseID: 11}}, 7)
	require.NoError(t, l.HandleOrderPaid(context.Background(), ev))
	require.NoError(t, l.HandleOrderPaid(context.Background(), ev))

	assert.Equal(t, []uint{11}, ops.enrolled, "second delivery must not enroll twice")
}

func TestHandleCourseReviewed(t *testing.T) {
	ops := &fakeEnrollmentOps{}
	l := NewEnrollmentListener(ops, nil)

	require.NoError(t, l.HandleCourseReviewed(context.Background(), event.NewCourseReviewedEvent(11, 7)))
	assert.Equal(t, [][2]uint{{11, 7}}, ops.reviewed)
}
