package event

import "time"

// Type identifies a kind of domain event on the bus.
type Type string

const (
	TypeOrderPaid            Type = "order.paid"
	TypeEnrollmentCreated    Type = "enrollment.created"
	TypeEnrollmentCompleted  Type = "enrollment.completed"
	TypeEnrollmentIncomplete Type = "enrollment.incomplete"
	TypeCourseReviewed       Type = "course.reviewed"
	TypeCoursePublished      Type = "course.published"
)

// Event is what aggregates emit and listeners consume. Delivery is
// at-least-once per subscribed handler; payloads must be self-contained.
type Event interface {
	EventType() Type
	OccurredAt() time.Time
}

type base struct {
	At time.Time `json:"occurredAt"`
}

func (b base) OccurredAt() time.Time { return b.At }

func newBase() base { return base{At: time.Now()} }

// OrderLine is one purchased course inside an order.
type OrderLine struct {
	CourseID uint `json:"courseId"`
}

// OrderPaidEvent fires once an order's payment is confirmed.
type OrderPaidEvent struct {
	base
	OrderID   uint        `json:"orderId"`
	Items     []OrderLine `json:"items"`
	CreatedBy uint        `json:"createdBy"`
}

func (OrderPaidEvent) EventType() Type { return TypeOrderPaid }

func NewOrderPaidEvent(orderID uint, items []OrderLine, createdBy uint) OrderPaidEvent {
	return OrderPaidEvent{base: newBase(), OrderID: orderID, Items: items, CreatedBy: createdBy}
}

// EnrollmentCreatedEvent fires when a student gets enrolled into a course.
type EnrollmentCreatedEvent struct {
	base
	EnrollmentID uint `json:"enrollmentId"`
	CourseID     uint `json:"courseId"`
	StudentID    uint `json:"studentId"`
	TeacherID    uint `json:"teacherId"`
}

func (EnrollmentCreatedEvent) EventType() Type { return TypeEnrollmentCreated }

func NewEnrollmentCreatedEvent(enrollmentID, courseID, studentID, teacherID uint) EnrollmentCreatedEvent {
	return EnrollmentCreatedEvent{base: newBase(), EnrollmentID: enrollmentID, CourseID: courseID, StudentID: studentID, TeacherID: teacherID}
}

// EnrollmentCompletedEvent fires exactly once per completion cycle, when all
// mandatory lessons are completed and all mandatory quizzes passed.
type EnrollmentCompletedEvent struct {
	base
	EnrollmentID uint `json:"enrollmentId"`
	CourseID     uint `json:"courseId"`
	StudentID    uint `json:"studentId"`
}

func (EnrollmentCompletedEvent) EventType() Type { return TypeEnrollmentCompleted }

func NewEnrollmentCompletedEvent(enrollmentID, courseID, studentID uint) EnrollmentCompletedEvent {
	return EnrollmentCompletedEvent{base: newBase(), EnrollmentID: enrollmentID, CourseID: courseID, StudentID: studentID}
}

// EnrollmentIncompleteEvent fires when a completed enrollment is revoked.
// CertificateURL carries the stored artifact location so listeners can delete
// it; empty when no certificate had been generated yet.
type EnrollmentIncompleteEvent struct {
	base
	EnrollmentID   uint   `json:"enrollmentId"`
	CourseID       uint   `json:"courseId"`
	StudentID      uint   `json:"studentId"`
	CertificateURL string `json:"certificateUrl,omitempty"`
}

func (EnrollmentIncompleteEvent) EventType() Type { return TypeEnrollmentIncomplete }

func NewEnrollmentIncompleteEvent(enrollmentID, courseID, studentID uint, certificateURL string) EnrollmentIncompleteEvent {
	return EnrollmentIncompleteEvent{base: newBase(), EnrollmentID: enrollmentID, CourseID: courseID, StudentID: studentID, CertificateURL: certificateURL}
}

// CourseReviewedEvent fires when a student publishes a course review.
type CourseReviewedEvent struct {
	base
	CourseID  uint `json:"courseId"`
	StudentID uint `json:"studentId"`
}

func (CourseReviewedEvent) EventType() Type { return TypeCourseReviewed }

func NewCourseReviewedEvent(courseID, studentID uint) CourseReviewedEvent {
	return CourseReviewedEvent{base: newBase(), CourseID: courseID, StudentID: studentID}
}

// CoursePublishedEvent fires when a teacher's course goes live.
type CoursePublishedEvent struct {
	base
	CourseID  uint `json:"courseId"`
	TeacherID uint `json:"teacherId"`
}

func (CoursePublishedEvent) EventType() Type { return TypeCoursePublished }

func NewCoursePublishedEvent(courseID, teacherID uint) CoursePublishedEvent {
	return CoursePublishedEvent{base: newBase(), CourseID: courseID, TeacherID: teacherID}
}
