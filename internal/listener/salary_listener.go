package listener

import (
	"context"
	"fmt"

	"learnhub_backend/internal/event"
	"learnhub_backend/internal/model"
	"learnhub_backend/pkg/logger"

	"go.uber.org/zap"
)

// SalaryStore is the slice of SalaryRepository this listener needs.
type SalaryStore interface {
	FindOrCreateByTeacher(teacherID uint) (*model.Salary, error)
	Save(salary *model.Salary) error
}

// SalaryListener keeps teacher salary counters in sync with publishes and
// enrollments, recomputing the rank on each change.
type SalaryListener struct {
	Salaries SalaryStore
}

func NewSalaryListener(salaries SalaryStore) *SalaryListener {
	return &SalaryListener{Salaries: salaries}
}

func (l *SalaryListener) Register(bus *event.Bus) {
	bus.Subscribe(event.TypeCoursePublished, "salary.course-published", l.HandleCoursePublished)
	bus.Subscribe(event.TypeEnrollmentCreated, "salary.enrollment-created", l.HandleEnrollmentCreated)
}

func (l *SalaryListener) HandleCoursePublished(ctx context.Context, e event.Event) error {
	published, ok := e.(event.CoursePublishedEvent)
	if !ok {
		return fmt.Errorf("unexpected event %T for %s", e, event.TypeCoursePublished)
	}

	salary, err := l.Salaries.FindOrCreateByTeacher(published.TeacherID)
	if err != nil {
		return err
	}
	previousRank := salary.Rank
	salary.AddPublishedCourse()
	if err := l.Salaries.Save(salary); err != nil {
		return err
	}

	if salary.Rank != previousRank {
		logger.Log.Info("teacher rank changed",
			zap.Uint("teacherId", published.TeacherID),
			zap.String("from", string(previousRank)),
			zap.String("to", string(salary.Rank)))
	}
	return nil
}

func (l *SalaryListener) HandleEnrollmentCreated(ctx context.Context, e event.Event) error {
	created, ok := e.(event.EnrollmentCreatedEvent)
	if !ok {
		return fmt.Errorf("unexpected event %T for %s", e, event.TypeEnrollmentCreated)
	}

	salary, err := l.Salaries.FindOrCreateByTeacher(created.TeacherID)
	if err != nil {
		return err
	}
	previousRank := salary.Rank
	salary.AddEnrollment()
	if err := l.Salaries.Save(salary); err != nil {
		return err
	}

	if salary.Rank != previousRank {
		logger.Log.Info("teacher rank changed",
			zap.Uint("teacherId", created.TeacherID),
			zap.String("from", string(previousRank)),
			zap.String("to", string(salary.Rank)))
	}
	return nil
}
