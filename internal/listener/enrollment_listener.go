package listener

import (
	"context"
	"fmt"
	"time"

	"learnhub_backend/internal/event"
	"learnhub_backend/internal/model"
	"learnhub_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// orderPaidGuardTTL bounds how long a processed order-paid marker lives in
// redis. Long enough to swallow bus redeliveries, short enough that the keys
// do not pile up.
const orderPaidGuardTTL = 24 * time.Hour

// EnrollmentOps is the slice of EnrollmentService this listener needs.
type EnrollmentOps interface {
	EnrollStudent(studentID, courseID uint) (*model.Enrollment, error)
	MarkReviewed(courseID, studentID uint) error
}

// EnrollmentListener reacts to paid orders by enrolling the buyer into every
// purchased course, and to course reviews by flagging the enrollment.
type EnrollmentListener struct {
	Enrollments EnrollmentOps
	Redis       *redis.Client
}

func NewEnrollmentListener(enrollments EnrollmentOps, rdb *redis.Client) *EnrollmentListener {
	return &EnrollmentListener{Enrollments: enrollments, Redis: rdb}
}

func (l *EnrollmentListener) Register(bus *event.Bus) {
	bus.Subscribe(event.TypeOrderPaid, "enrollment.order-paid", l.HandleOrderPaid)
	bus.Subscribe(event.TypeCourseReviewed, "enrollment.course-reviewed", l.HandleCourseReviewed)
}

// HandleOrderPaid enrolls the order's creator into each purchased course.
// The unique (student, course) index already makes duplicate enrollments a
// no-op, so the redis guard is only a fast path that skips the roster loads
// on redelivery. A missing or unreachable redis never blocks enrollment.
func (l *EnrollmentListener) HandleOrderPaid(ctx context.Context, e event.Event) error {
	paid, ok := e.(event.OrderPaidEvent)
	if !ok {
		return fmt.Errorf("unexpected event %T for %s", e, event.TypeOrderPaid)
	}

	if l.alreadyProcessed(ctx, paid.OrderID) {
		logger.Log.Debug("order already processed, skipping",
			zap.Uint("orderId", paid.OrderID))
		return nil
	}

	for _, item := range paid.Items {
		enrollment, err := l.Enrollments.EnrollStudent(paid.CreatedBy, item.CourseID)
		if err != nil {
			return fmt.Errorf("enroll student %d into course %d: %w", paid.CreatedBy, item.CourseID, err)
		}
		logger.Log.Info("student enrolled from paid order",
			zap.Uint("orderId", paid.OrderID),
			zap.Uint("enrollmentId", enrollment.ID),
			zap.Uint("courseId", item.CourseID),
			zap.Uint("studentId", paid.CreatedBy))
	}

	// Mark only after every item succeeded; a failed delivery must stay
	// eligible for the bus's retries.
	l.markProcessed(ctx, paid.OrderID)
	return nil
}

func (l *EnrollmentListener) HandleCourseReviewed(ctx context.Context, e event.Event) error {
	reviewed, ok := e.(event.CourseReviewedEvent)
	if !ok {
		return fmt.Errorf("unexpected event %T for %s", e, event.TypeCourseReviewed)
	}
	return l.Enrollments.MarkReviewed(reviewed.CourseID, reviewed.StudentID)
}

func orderPaidKey(orderID uint) string {
	return fmt.Sprintf("learnhub:events:order-paid:%d", orderID)
}

// alreadyProcessed reports whether a previous delivery of this order already
// ran to completion. Read-only: the marker is written by markProcessed once
// the enrollments exist, so a delivery that fails midway stays retryable.
func (l *EnrollmentListener) alreadyProcessed(ctx context.Context, orderID uint) bool {
	if l.Redis == nil {
		return false
	}
	n, err := l.Redis.Exists(ctx, orderPaidKey(orderID)).Result()
	if err != nil {
		logger.Log.Warn("order-paid dedup check failed, processing anyway",
			zap.Uint("orderId", orderID), zap.Error(err))
		return false
	}
	return n > 0
}

func (l *EnrollmentListener) markProcessed(ctx context.Context, orderID uint) {
	if l.Redis == nil {
		return
	}
	if err := l.Redis.Set(ctx, orderPaidKey(orderID), 1, orderPaidGuardTTL).Err(); err != nil {
		logger.Log.Warn("order-paid dedup marker write failed",
			zap.Uint("orderId", orderID), zap.Error(err))
	}
}
