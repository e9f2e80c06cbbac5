package service

import (
	"context"
	"fmt"

	"learnhub_backend/internal/repository"
	"learnhub_backend/pkg/monitoring"
)

// CertificateService turns a completed enrollment into a stored, certified
// document. All external work (rendering, upload) happens before the
// aggregate is saved: a failed upload leaves the enrollment completed with no
// certificate attached, which is exactly the retryable state the listener
// needs for the next delivery attempt.
type CertificateService struct {
	EnrollmentRepo *repository.EnrollmentRepository
	UserRepo       *repository.UserRepository
	CourseRepo     *repository.CourseRepository
	Renderer       DocumentProducer
	Storage        *StorageService
}

func NewCertificateService(
	enrollmentRepo *repository.EnrollmentRepository,
	userRepo *repository.UserRepository,
	courseRepo *repository.CourseRepository,
	renderer DocumentProducer,
	storage *StorageService,
) *CertificateService {
	return &CertificateService{
		EnrollmentRepo: enrollmentRepo,
		UserRepo:       userRepo,
		CourseRepo:     courseRepo,
		Renderer:       renderer,
		Storage:        storage,
	}
}

// GenerateForEnrollment issues and stores the certificate for a completed
// enrollment. Safe to run more than once: a second delivery of the same
// completed event finds the certificate already attached and does nothing.
func (s *CertificateService) GenerateForEnrollment(ctx context.Context, enrollmentID uint) error {
	enrollment, err := s.EnrollmentRepo.FindByID(enrollmentID)
	if err != nil {
		return err
	}
	if enrollment.Certificate != nil {
		return nil
	}

	student, err := s.UserRepo.FindByID(enrollment.StudentID)
	if err != nil {
		return err
	}
	teacher, err := s.UserRepo.FindByID(enrollment.TeacherID)
	if err != nil {
		return err
	}
	course, err := s.CourseRepo.FindByID(enrollment.CourseID)
	if err != nil {
		return err
	}

	if err := enrollment.CreateCertificate(student.Name, student.Email, course.Title); err != nil {
		return err
	}

	data, contentType, err := s.Renderer.Produce(enrollment.Certificate, teacher.Name)
	if err != nil {
		return err
	}

	filename := fmt.Sprintf("certificates/enrollment-%d.png", enrollment.ID)
	url, err := s.Storage.Store(ctx, data, filename, contentType)
	if err != nil {
		return err
	}

	if err := enrollment.Certificate.MarkAsCertified(url); err != nil {
		return err
	}

	if err := s.EnrollmentRepo.Save(enrollment); err != nil {
		// The aggregate changed under us; the bus will redeliver and the
		// next attempt starts from fresh state. The uploaded artifact would
		// be orphaned, so clean it up best-effort.
		_ = s.Storage.DeleteByURL(ctx, url)
		return err
	}

	monitoring.CertificatesIssued.Inc()
	return nil
}

// DeleteDocument removes the stored certificate artifact after a revocation.
// An empty URL means no certificate was ever generated; nothing to do.
func (s *CertificateService) DeleteDocument(ctx context.Context, certificateURL string) error {
	if certificateURL == "" {
		return nil
	}
	return s.Storage.DeleteByURL(ctx, certificateURL)
}
