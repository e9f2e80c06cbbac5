package model

import (
	"time"

	"learnhub_backend/internal/event"
	"learnhub_backend/internal/util"
)

// Enrollment is the aggregate root for one student's run through one course.
// It owns the lesson progress rows, the quiz submissions (with their answers)
// and the certificate; nothing outside the aggregate mutates them.
//
// QuizIDs is the mandatory-quiz snapshot taken at enrollment time and never
// changes afterwards; TotalLessons likewise counts only the roster lessons
// present at enrollment. Lessons and quizzes the course gains later are
// tracked as bonus and excluded from the completion predicate.
//
// Domain events accumulate on the aggregate and are drained by the caller
// after a successful save, so listeners only ever see committed state.
type Enrollment struct {
	BaseModel
	StudentID      uint       `gorm:"index:idx_student_course,unique;not null" json:"studentId"`
	CourseID       uint       `gorm:"index:idx_student_course,unique;not null" json:"courseId"`
	TeacherID      uint       `gorm:"index;not null" json:"teacherId"`
	QuizIDs        []uint     `gorm:"serializer:json" json:"quizIds"`
	TotalLessons   int        `gorm:"default:0" json:"totalLessons"`
	EnrollmentDate time.Time  `json:"enrollmentDate"`
	Completed      bool       `gorm:"default:false" json:"completed"`
	Reviewed       bool       `gorm:"default:false" json:"reviewed"`
	CompletedDate  *time.Time `json:"completedDate,omitempty"`

	// Version backs the optimistic compare-and-swap in the repository; two
	// concurrent mutations of the same enrollment cannot both commit.
	Version uint `gorm:"default:0" json:"-"`

	LessonProgresses []LessonProgress `gorm:"foreignKey:EnrollmentID;constraint:OnDelete:CASCADE" json:"lessonProgresses,omitempty"`
	QuizSubmissions  []QuizSubmission `gorm:"foreignKey:EnrollmentID;constraint:OnDelete:CASCADE" json:"quizSubmissions,omitempty"`
	Certificate      *Certificate     `gorm:"foreignKey:EnrollmentID;constraint:OnDelete:CASCADE" json:"certificate,omitempty"`

	events []event.Event `gorm:"-"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

// NewEnrollment seeds the aggregate from the course roster captured at
// enrollment time. TotalLessons is derived by replaying AddLessonProgress for
// each roster row, so it reflects the mandatory roster only.
func NewEnrollment(studentID, courseID, teacherID uint, lessonProgresses []LessonProgress, quizIDs []uint) (*Enrollment, error) {
	if studentID == 0 {
		return nil, util.InvalidInputf("student is required")
	}
	if courseID == 0 {
		return nil, util.InvalidInputf("courseId is required")
	}
	if teacherID == 0 {
		return nil, util.InvalidInputf("teacher is required")
	}
	if len(lessonProgresses) == 0 {
		return nil, util.InvalidInputf("lessonProgresses must not be empty")
	}
	if len(quizIDs) == 0 {
		return nil, util.InvalidInputf("quizIds must not be empty")
	}

	ids := make([]uint, len(quizIDs))
	copy(ids, quizIDs)

	e := &Enrollment{
		StudentID:      studentID,
		CourseID:       courseID,
		TeacherID:      teacherID,
		QuizIDs:        ids,
		EnrollmentDate: time.Now(),
	}

	for i := range lessonProgresses {
		if err := e.addLessonProgress(&lessonProgresses[i]); err != nil {
			return nil, err
		}
	}

	return e, nil
}

func (e *Enrollment) addLessonProgress(lp *LessonProgress) error {
	if lp == nil {
		return util.InvalidInputf("lessonProgress is required")
	}
	if e.findLessonProgress(lp.LessonID) != nil {
		return util.InvalidInputf("LessonProgress for lesson %d already exists", lp.LessonID)
	}
	e.LessonProgresses = append(e.LessonProgresses, *lp)
	if !lp.Bonus {
		e.TotalLessons++
	}
	return nil
}

// MarkLessonAsCompleted completes the lesson's progress row, creating a bonus
// row on the fly when the lesson was not part of the enrollment roster. May
// flip the whole enrollment to completed.
func (e *Enrollment) MarkLessonAsCompleted(lessonID uint, lessonTitle string) error {
	lp := e.findLessonProgress(lessonID)
	if lp == nil {
		bonus, err := NewLessonProgress(lessonID, lessonTitle)
		if err != nil {
			return err
		}
		bonus.markAsBonus()
		e.LessonProgresses = append(e.LessonProgresses, *bonus)
		lp = &e.LessonProgresses[len(e.LessonProgresses)-1]
	}

	if err := lp.MarkAsCompleted(); err != nil {
		return err
	}

	e.checkCompletion()
	return nil
}

// MarkLessonAsIncomplete undoes a single lesson completion. A completed
// enrollment cannot be decremented lesson by lesson; that path goes through
// revocation only.
func (e *Enrollment) MarkLessonAsIncomplete(lessonID uint) error {
	if e.Completed {
		return util.InvalidInputf("cannot mark a lesson incomplete on a completed enrollment")
	}
	lp := e.findLessonProgress(lessonID)
	if lp == nil {
		return util.NotFoundf("LessonProgress for lesson %d", lessonID)
	}
	return lp.MarkAsIncomplete()
}

// AddQuizSubmission attaches a first submission for a quiz. Resubmissions go
// through ReSubmitQuiz; a second AddQuizSubmission for the same quiz is
// rejected.
func (e *Enrollment) AddQuizSubmission(submission *QuizSubmission) error {
	if submission == nil {
		return util.InvalidInputf("submission is required")
	}
	if e.findQuizSubmission(submission.QuizID) != nil {
		return util.InvalidInputf("QuizSubmission for this quiz already exists")
	}
	if !e.isMandatoryQuiz(submission.QuizID) {
		submission.markAsBonus()
	}
	e.QuizSubmissions = append(e.QuizSubmissions, *submission)

	e.checkCompletion()
	return nil
}

// ReSubmitQuiz replaces the answers and grading outcome on the existing
// submission row for the quiz.
func (e *Enrollment) ReSubmitQuiz(quizID uint, answers []QuizAnswer, score float64, passed bool) error {
	sub := e.findQuizSubmission(quizID)
	if sub == nil {
		return util.NotFoundf("QuizSubmission for quiz %d", quizID)
	}
	if err := sub.ReSubmit(answers, score, passed); err != nil {
		return err
	}

	e.checkCompletion()
	return nil
}

// DeleteQuizSubmission removes the submission for quizID. Removing a
// mandatory submission from a completed enrollment revokes the completion
// first, which cascades to the certificate and the review flag.
func (e *Enrollment) DeleteQuizSubmission(quizID uint) error {
	idx := -1
	for i := range e.QuizSubmissions {
		if e.QuizSubmissions[i].QuizID == quizID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return util.NotFoundf("QuizSubmission for quiz %d", quizID)
	}

	if !e.QuizSubmissions[idx].Bonus && e.Completed {
		if err := e.revokeCompletion(); err != nil {
			return err
		}
	}

	e.QuizSubmissions = append(e.QuizSubmissions[:idx], e.QuizSubmissions[idx+1:]...)
	return nil
}

// CreateCertificate attaches a new certificate to a completed enrollment.
// Only one certificate exists per completion cycle; revocation must happen
// before another can be issued.
func (e *Enrollment) CreateCertificate(fullName, email, courseTitle string) error {
	if !e.Completed {
		return util.InvalidInputf("cannot create a certificate for an enrollment that is not completed")
	}
	if e.Certificate != nil {
		return util.InvalidInputf("certificate already exists for this enrollment")
	}
	cert, err := NewCertificate(fullName, email, e.StudentID, e.TeacherID, e.CourseID, courseTitle)
	if err != nil {
		return err
	}
	cert.EnrollmentID = e.ID
	e.Certificate = cert
	return nil
}

// MarkAsReviewed records that the student reviewed the course. The reviewed
// flag only ever goes back to false through completion revocation.
func (e *Enrollment) MarkAsReviewed() error {
	if e.Reviewed {
		return util.InvalidInputf("enrollment is already reviewed")
	}
	e.Reviewed = true
	return nil
}

// Progress returns the computed snapshot for the current state.
func (e *Enrollment) Progress() Progress {
	return computeProgress(e)
}

// checkCompletion runs after every mutation that could affect the predicate:
// completed iff every mandatory lesson is completed and every mandatory quiz
// passed. A no-op once completed, so the completed event fires once per cycle.
func (e *Enrollment) checkCompletion() {
	if e.Completed {
		return
	}

	completedLessons := 0
	for _, lp := range e.LessonProgresses {
		if !lp.Bonus && lp.Completed {
			completedLessons++
		}
	}
	if completedLessons != e.TotalLessons {
		return
	}

	passedQuizzes := 0
	for _, s := range e.QuizSubmissions {
		if !s.Bonus && s.Passed {
			passedQuizzes++
		}
	}
	if passedQuizzes != len(e.QuizIDs) {
		return
	}

	now := time.Now()
	e.Completed = true
	e.CompletedDate = &now
	e.record(event.NewEnrollmentCompletedEvent(e.ID, e.CourseID, e.StudentID))
}

// revokeCompletion reverses COMPLETED back to ACTIVE: completion date and
// certificate are dropped, the review flag is cleared, and the incomplete
// event carries the old certificate URL so listeners can delete the artifact.
func (e *Enrollment) revokeCompletion() error {
	if !e.Completed {
		return util.InvalidInputf("cannot revoke completion of an enrollment that is not completed")
	}

	certificateURL := ""
	if e.Certificate != nil {
		certificateURL = e.Certificate.URL
	}

	e.Completed = false
	e.CompletedDate = nil
	e.Certificate = nil
	e.Reviewed = false

	e.record(event.NewEnrollmentIncompleteEvent(e.ID, e.CourseID, e.StudentID, certificateURL))
	return nil
}

func (e *Enrollment) findLessonProgress(lessonID uint) *LessonProgress {
	for i := range e.LessonProgresses {
		if e.LessonProgresses[i].LessonID == lessonID {
			return &e.LessonProgresses[i]
		}
	}
	return nil
}

func (e *Enrollment) findQuizSubmission(quizID uint) *QuizSubmission {
	for i := range e.QuizSubmissions {
		if e.QuizSubmissions[i].QuizID == quizID {
			return &e.QuizSubmissions[i]
		}
	}
	return nil
}

func (e *Enrollment) isMandatoryQuiz(quizID uint) bool {
	for _, id := range e.QuizIDs {
		if id == quizID {
			return true
		}
	}
	return false
}

func (e *Enrollment) record(ev event.Event) {
	e.events = append(e.events, ev)
}

// DrainEvents returns and clears the pending domain events. The service layer
// calls it after the aggregate has been saved and hands the result to the bus.
func (e *Enrollment) DrainEvents() []event.Event {
	evs := e.events
	e.events = nil
	return evs
}
