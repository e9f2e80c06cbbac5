package listener

import (
	"context"
	"fmt"

	"learnhub_backend/internal/event"
	"learnhub_backend/pkg/logger"

	"go.uber.org/zap"
)

// CertificateOps is the slice of CertificateService this listener needs.
type CertificateOps interface {
	GenerateForEnrollment(ctx context.Context, enrollmentID uint) error
	DeleteDocument(ctx context.Context, certificateURL string) error
}

// ReviewRemover deletes the review invalidated by a completion revocation.
type ReviewRemover interface {
	DeleteByCourseAndStudent(courseID, studentID uint) error
}

// CertificateListener issues certificates on completion and tears them down
// on revocation. Both handlers are idempotent; the bus may deliver the same
// event more than once.
type CertificateListener struct {
	Certificates CertificateOps
	Reviews      ReviewRemover
}

func NewCertificateListener(certificates CertificateOps, reviews ReviewRemover) *CertificateListener {
	return &CertificateListener{Certificates: certificates, Reviews: reviews}
}

func (l *CertificateListener) Register(bus *event.Bus) {
	bus.Subscribe(event.TypeEnrollmentCompleted, "certificate.enrollment-completed", l.HandleEnrollmentCompleted)
	bus.Subscribe(event.TypeEnrollmentIncomplete, "certificate.enrollment-incomplete", l.HandleEnrollmentIncomplete)
}

func (l *CertificateListener) HandleEnrollmentCompleted(ctx context.Context, e event.Event) error {
	completed, ok := e.(event.EnrollmentCompletedEvent)
	if !ok {
		return fmt.Errorf("unexpected event %T for %s", e, event.TypeEnrollmentCompleted)
	}

	if err := l.Certificates.GenerateForEnrollment(ctx, completed.EnrollmentID); err != nil {
		return fmt.Errorf("generate certificate for enrollment %d: %w", completed.EnrollmentID, err)
	}
	logger.Log.Info("certificate generated",
		zap.Uint("enrollmentId", completed.EnrollmentID),
		zap.Uint("courseId", completed.CourseID))
	return nil
}

// HandleEnrollmentIncomplete cleans up after a completion revocation: the
// stored certificate artifact is removed and the student's review, written
// while the course counted as completed, no longer stands.
func (l *CertificateListener) HandleEnrollmentIncomplete(ctx context.Context, e event.Event) error {
	incomplete, ok := e.(event.EnrollmentIncompleteEvent)
	if !ok {
		return fmt.Errorf("unexpected event %T for %s", e, event.TypeEnrollmentIncomplete)
	}

	if err := l.Certificates.DeleteDocument(ctx, incomplete.CertificateURL); err != nil {
		return fmt.Errorf("delete certificate document for enrollment %d: %w", incomplete.EnrollmentID, err)
	}
	if err := l.Reviews.DeleteByCourseAndStudent(incomplete.CourseID, incomplete.StudentID); err != nil {
		return fmt.Errorf("delete review for revoked enrollment %d: %w", incomplete.EnrollmentID, err)
	}

	logger.Log.Info("completion revoked, certificate and review cleaned up",
		zap.Uint("enrollmentId", incomplete.EnrollmentID),
		zap.Uint("courseId", incomplete.CourseID),
		zap.Uint("studentId", incomplete.StudentID))
	return nil
}
