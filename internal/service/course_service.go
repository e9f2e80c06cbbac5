package service

import (
	"time"

	"learnhub_backend/internal/event"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
)

// CourseService exposes the read-side of the catalog plus the publish
// transition. Catalog authoring happens in the catalog service; this backend
// only needs rosters, display data, and the published event for salaries.
type CourseService struct {
	CourseRepo *repository.CourseRepository
	Bus        *event.Bus
}

func NewCourseService(courseRepo *repository.CourseRepository, bus *event.Bus) *CourseService {
	return &CourseService{CourseRepo: courseRepo, Bus: bus}
}

func (s *CourseService) GetByID(courseID uint) (*model.Course, error) {
	return s.CourseRepo.FindByID(courseID)
}

// Publish flips the teacher's course live and announces it. Idempotent:
// publishing an already published course fails with InvalidInput.
func (s *CourseService) Publish(teacherID, courseID uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if course.TeacherID != teacherID {
		return nil, util.NotFoundf("course %d", courseID)
	}
	if course.Published {
		return nil, util.InvalidInputf("course is already published")
	}

	now := time.Now()
	course.Published = true
	course.PublishedAt = &now
	if err := s.CourseRepo.Save(course); err != nil {
		return nil, err
	}

	s.Bus.Publish(event.NewCoursePublishedEvent(course.ID, course.TeacherID))
	return course, nil
}
