package service

import (
	"learnhub_backend/internal/event"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
)

// ReviewService gates reviews on course completion and broadcasts the
// reviewed event that flips the enrollment's reviewed flag.
type ReviewService struct {
	ReviewRepo     *repository.ReviewRepository
	EnrollmentRepo *repository.EnrollmentRepository
	Bus            *event.Bus
}

func NewReviewService(
	reviewRepo *repository.ReviewRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	bus *event.Bus,
) *ReviewService {
	return &ReviewService{
		ReviewRepo:     reviewRepo,
		EnrollmentRepo: enrollmentRepo,
		Bus:            bus,
	}
}

func (s *ReviewService) Create(studentID, courseID uint, rating int, comment string) (*model.Review, error) {
	enrollment, err := s.EnrollmentRepo.FindByStudentAndCourse(studentID, courseID)
	if err != nil {
		return nil, err
	}
	if !enrollment.Completed {
		return nil, util.InvalidInputf("only completed enrollments can be reviewed")
	}

	review, err := model.NewReview(courseID, studentID, rating, comment)
	if err != nil {
		return nil, err
	}
	if err := s.ReviewRepo.Create(review); err != nil {
		return nil, err
	}

	s.Bus.Publish(event.NewCourseReviewedEvent(courseID, studentID))
	return review, nil
}

func (s *ReviewService) ListByCourse(courseID uint) ([]model.Review, error) {
	return s.ReviewRepo.ListByCourse(courseID)
}
