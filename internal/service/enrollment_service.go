package service

import (
	"errors"

	"learnhub_backend/internal/event"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/monitoring"
)

// EnrollmentService runs the enrollment use cases: one aggregate is loaded,
// mutated in memory, saved with the version compare-and-swap, and only then
// are its drained events handed to the bus. A stale save surfaces as
// util.ErrConflict for the client to retry; no events leak from an
// uncommitted mutation.
type EnrollmentService struct {
	EnrollmentRepo *repository.EnrollmentRepository
	CourseRepo     *repository.CourseRepository
	Bus            *event.Bus
}

func NewEnrollmentService(
	enrollmentRepo *repository.EnrollmentRepository,
	courseRepo *repository.CourseRepository,
	bus *event.Bus,
) *EnrollmentService {
	return &EnrollmentService{
		EnrollmentRepo: enrollmentRepo,
		CourseRepo:     courseRepo,
		Bus:            bus,
	}
}

// QuizAnswerInput is one graded answer as received from the quiz-grading
// service; score and passed arrive alongside, already computed.
type QuizAnswerInput struct {
	QuestionID      uint               `json:"questionId"`
	AnswerOptionIDs []uint             `json:"answerOptionIds"`
	Type            model.QuestionType `json:"type"`
}

func buildAnswers(inputs []QuizAnswerInput) ([]model.QuizAnswer, error) {
	answers := make([]model.QuizAnswer, 0, len(inputs))
	for _, in := range inputs {
		a, err := model.NewQuizAnswer(in.QuestionID, in.AnswerOptionIDs, in.Type)
		if err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, nil
}

// EnrollStudent creates an enrollment seeded from the course's current
// roster. A duplicate (student, course) pair is treated as a harmless no-op
// so replays of the same order-paid event cannot create twins.
func (s *EnrollmentService) EnrollStudent(studentID, courseID uint) (*model.Enrollment, error) {
	course, err := s.CourseRepo.FindPublishedWithRoster(courseID)
	if err != nil {
		return nil, err
	}

	lessonProgresses := make([]model.LessonProgress, 0, len(course.Lessons))
	for _, lesson := range course.Lessons {
		lp, err := model.NewLessonProgress(lesson.ID, lesson.Title)
		if err != nil {
			return nil, err
		}
		lessonProgresses = append(lessonProgresses, *lp)
	}

	quizIDs := make([]uint, 0, len(course.Quizzes))
	for _, quiz := range course.Quizzes {
		quizIDs = append(quizIDs, quiz.ID)
	}

	enrollment, err := model.NewEnrollment(studentID, courseID, course.TeacherID, lessonProgresses, quizIDs)
	if err != nil {
		return nil, err
	}

	if err := s.EnrollmentRepo.Create(enrollment); err != nil {
		if errors.Is(err, util.ErrConflict) {
			// Already enrolled; at-least-once delivery makes this normal.
			return s.EnrollmentRepo.FindByStudentAndCourse(studentID, courseID)
		}
		return nil, err
	}

	monitoring.EnrollmentsCreated.Inc()
	s.Bus.Publish(event.NewEnrollmentCreatedEvent(enrollment.ID, courseID, studentID, course.TeacherID))

	return enrollment, nil
}

func (s *EnrollmentService) MarkLessonCompleted(studentID, enrollmentID, lessonID uint, lessonTitle string) error {
	enrollment, err := s.loadOwned(studentID, enrollmentID)
	if err != nil {
		return err
	}

	wasCompleted := enrollment.Completed
	if err := enrollment.MarkLessonAsCompleted(lessonID, lessonTitle); err != nil {
		return err
	}

	if err := s.saveAndPublish(enrollment); err != nil {
		return err
	}
	if !wasCompleted && enrollment.Completed {
		monitoring.EnrollmentsCompleted.Inc()
	}
	return nil
}

func (s *EnrollmentService) MarkLessonIncomplete(studentID, enrollmentID, lessonID uint) error {
	enrollment, err := s.loadOwned(studentID, enrollmentID)
	if err != nil {
		return err
	}
	if err := enrollment.MarkLessonAsIncomplete(lessonID); err != nil {
		return err
	}
	return s.saveAndPublish(enrollment)
}

func (s *EnrollmentService) SubmitQuiz(studentID, enrollmentID, quizID uint, answerInputs []QuizAnswerInput, score float64, passed bool) error {
	enrollment, err := s.loadOwned(studentID, enrollmentID)
	if err != nil {
		return err
	}

	answers, err := buildAnswers(answerInputs)
	if err != nil {
		return err
	}
	submission, err := model.NewQuizSubmission(quizID, answers, score, passed)
	if err != nil {
		return err
	}

	wasCompleted := enrollment.Completed
	if err := enrollment.AddQuizSubmission(submission); err != nil {
		return err
	}

	if err := s.saveAndPublish(enrollment); err != nil {
		return err
	}
	if !wasCompleted && enrollment.Completed {
		monitoring.EnrollmentsCompleted.Inc()
	}
	return nil
}

func (s *EnrollmentService) ResubmitQuiz(studentID, enrollmentID, quizID uint, answerInputs []QuizAnswerInput, score float64, passed bool) error {
	enrollment, err := s.loadOwned(studentID, enrollmentID)
	if err != nil {
		return err
	}

	answers, err := buildAnswers(answerInputs)
	if err != nil {
		return err
	}

	wasCompleted := enrollment.Completed
	if err := enrollment.ReSubmitQuiz(quizID, answers, score, passed); err != nil {
		return err
	}

	if err := s.saveAndPublish(enrollment); err != nil {
		return err
	}
	if !wasCompleted && enrollment.Completed {
		monitoring.EnrollmentsCompleted.Inc()
	}
	return nil
}

func (s *EnrollmentService) DeleteQuizSubmission(studentID, enrollmentID, quizID uint) error {
	enrollment, err := s.loadOwned(studentID, enrollmentID)
	if err != nil {
		return err
	}

	wasCompleted := enrollment.Completed
	if err := enrollment.DeleteQuizSubmission(quizID); err != nil {
		return err
	}

	if err := s.saveAndPublish(enrollment); err != nil {
		return err
	}
	if wasCompleted && !enrollment.Completed {
		monitoring.EnrollmentsRevoked.Inc()
	}
	return nil
}

func (s *EnrollmentService) GetProgress(studentID, enrollmentID uint) (model.Progress, error) {
	enrollment, err := s.loadOwned(studentID, enrollmentID)
	if err != nil {
		return model.Progress{}, err
	}
	return enrollment.Progress(), nil
}

func (s *EnrollmentService) ListByStudent(studentID uint) ([]model.Enrollment, error) {
	return s.EnrollmentRepo.ListByStudent(studentID)
}

// MarkReviewed flags the (student, course) enrollment as reviewed. Called by
// the listener reacting to course-reviewed events; an already-reviewed
// enrollment is left alone so replays stay harmless.
func (s *EnrollmentService) MarkReviewed(courseID, studentID uint) error {
	enrollment, err := s.EnrollmentRepo.FindByStudentAndCourse(studentID, courseID)
	if err != nil {
		return err
	}
	if enrollment.Reviewed {
		return nil
	}
	if err := enrollment.MarkAsReviewed(); err != nil {
		return err
	}
	return s.saveAndPublish(enrollment)
}

func (s *EnrollmentService) loadOwned(studentID, enrollmentID uint) (*model.Enrollment, error) {
	enrollment, err := s.EnrollmentRepo.FindByID(enrollmentID)
	if err != nil {
		return nil, err
	}
	if enrollment.StudentID != studentID {
		return nil, util.NotFoundf("enrollment %d", enrollmentID)
	}
	return enrollment, nil
}

func (s *EnrollmentService) saveAndPublish(enrollment *model.Enrollment) error {
	if err := s.EnrollmentRepo.Save(enrollment); err != nil {
		return err
	}
	for _, ev := range enrollment.DrainEvents() {
		s.Bus.Publish(ev)
	}
	return nil
}
