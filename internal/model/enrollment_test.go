package model

import (
	"testing"

	"learnhub_backend/internal/event"
	"learnhub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rosterLessons(t *testing.T, ids ...uint) []LessonProgress {
	t.Helper()
	lps := make([]LessonProgress, 0, len(ids))
	for _, id := range ids {
		lp, err := NewLessonProgress(id, "lesson")
		require.NoError(t, err)
		lps = append(lps, *lp)
	}
	return lps
}

func answersFor(t *testing.T, questionIDs ...uint) []QuizAnswer {
	t.Helper()
	answers := make([]QuizAnswer, 0, len(questionIDs))
	for _, id := range questionIDs {
		a, err := NewQuizAnswer(id, []uint{1}, SingleChoice)
		require.NoError(t, err)
		answers = append(answers, a)
	}
	return answers
}

func submission(t *testing.T, quizID uint, passed bool) *QuizSubmission {
	t.Helper()
	score := 40.0
	if passed {
		score = 90.0
	}
	sub, err := NewQuizSubmission(quizID, answersFor(t, 1, 2), score, passed)
	require.NoError(t, err)
	return sub
}

// twoByTwo is the canonical fixture: two roster lessons, two mandatory quizzes.
func twoByTwo(t *testing.T) *Enrollment {
	t.Helper()
	e, err := NewEnrollment(7, 11, 3, rosterLessons(t, 1, 2), []uint{100, 200})
	require.NoError(t, err)
	return e
}

func complete(t *testing.T, e *Enrollment) {
	t.Helper()
	require.NoError(t, e.MarkLessonAsCompleted(1, "lesson"))
	require.NoError(t, e.MarkLessonAsCompleted(2, "lesson"))
	require.NoError(t, e.AddQuizSubmission(submission(t, 100, true)))
	require.NoError(t, e.AddQuizSubmission(submission(t, 200, true)))
	require.True(t, e.Completed)
}

func eventTypes(evs []event.Event) []event.Type {
	types := make([]event.Type, 0, len(evs))
	for _, ev := range evs {
		types = append(types, ev.EventType())
	}
	return types
}

func TestNewEnrollmentValidation(t *testing.T) {
	lessons := rosterLessons(t, 1)
	quizzes := []uint{100}

	cases := []struct {
		name      string
		studentID uint
		courseID  uint
		teacherID uint
		lessons   []LessonProgress
		quizzes   []uint
	}{
		{"missing student", 0, 11, 3, lessons, quizzes},
		{"missing course", 7, 0, 3, lessons, quizzes},
		{"missing teacher", 7, 11, 0, lessons, quizzes},
		{"no lessons", 7, 11, 3, nil, quizzes},
		{"no quizzes", 7, 11, 3, lessons, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewEnrollment(tc.studentID, tc.courseID, tc.teacherID, tc.lessons, tc.quizzes)
			assert.ErrorIs(t, err, util.ErrInvalidInput)
		})
	}
}

func TestNewEnrollmentRejectsDuplicateLessons(t *testing.T) {
	_, err := NewEnrollment(7, 11, 3, rosterLessons(t, 1, 1), []uint{100})
	assert.ErrorIs(t, err, util.ErrInvalidInput)
}

func TestNewEnrollmentSnapshotsQuizIDs(t *testing.T) {
	ids := []uint{100, 200}
	e, err := NewEnrollment(7, 11, 3, rosterLessons(t, 1), ids)
	require.NoError(t, err)

	ids[0] = 999
	assert.Equal(t, []uint{100, 200}, e.QuizIDs)
}

func TestCompletionRequiresAllMandatoryWork(t *testing.T) {
	e := twoByTwo(t)

	require.NoError(t, e.MarkLessonAsCompleted(1, "lesson"))
	require.NoError(t, e.MarkLessonAsCompleted(2, "lesson"))
	assert.False(t, e.Completed, "quizzes still outstanding")

	require.NoError(t, e.AddQuizSubmission(submission(t, 100, true)))
	assert.False(t, e.Completed, "one quiz still outstanding")

	require.NoError(t, e.AddQuizSubmission(submission(t, 200, true)))
	assert.True(t, e.Completed)
	require.NotNil(t, e.CompletedDate)

	assert.Equal(t, []event.Type{event.TypeEnrollmentCompleted}, eventTypes(e.DrainEvents()))
}

func TestFailedMandatoryQuizBlocksCompletion(t *testing.T) {
	e := twoByTwo(t)
	require.NoError(t, e.MarkLessonAsCompleted(1, "lesson"))
	require.NoError(t, e.MarkLessonAsCompleted(2, "lesson"))
	require.NoError(t, e.AddQuizSubmission(submission(t, 100, true)))
	require.NoError(t, e.AddQuizSubmission(submission(t, 200, false)))
	assert.False(t, e.Completed)

	// Passing on resubmission closes the gap.
	require.NoError(t, e.ReSubmitQuiz(200, answersFor(t, 1, 2), 85, true))
	assert.True(t, e.Completed)
}

func TestBonusLessonDoesNotAffectCompletion(t *testing.T) {
	e := twoByTwo(t)

	// Lesson 99 is not on the roster; completing it creates a bonus row.
	require.NoError(t, e.MarkLessonAsCompleted(99, "extra"))
	require.Len(t, e.LessonProgresses, 3)
	assert.True(t, e.LessonProgresses[2].Bonus)
	assert.Equal(t, 2, e.TotalLessons)

	complete(t, e)
}

func TestBonusQuizDoesNotAffectCompletion(t *testing.T) {
	e := twoByTwo(t)
	complete(t, e)
	e.DrainEvents()

	// Quiz 999 is outside the snapshot; even a failed bonus attempt leaves
	// the completed state alone.
	require.NoError(t, e.DeleteQuizSubmission(200))
	assert.False(t, e.Completed)

	require.NoError(t, e.AddQuizSubmission(submission(t, 999, true)))
	assert.False(t, e.Completed, "bonus pass must not substitute for a mandatory quiz")
	assert.True(t, e.QuizSubmissions[len(e.QuizSubmissions)-1].Bonus)
}

func TestMarkLessonCompletedTwiceFails(t *testing.T) {
	e := twoByTwo(t)
	require.NoError(t, e.MarkLessonAsCompleted(1, "lesson"))
	err := e.MarkLessonAsCompleted(1, "lesson")
	assert.ErrorIs(t, err, util.ErrInvalidInput)
}

func TestMarkLessonIncomplete(t *testing.T) {
	e := twoByTwo(t)
	require.NoError(t, e.MarkLessonAsCompleted(1, "lesson"))
	require.NoError(t, e.MarkLessonAsIncomplete(1))
	assert.False(t, e.LessonProgresses[0].Completed)
	assert.Nil(t, e.LessonProgresses[0].CompletedDate)

	assert.ErrorIs(t, e.MarkLessonAsIncomplete(1), util.ErrInvalidInput)
	assert.ErrorIs(t, e.MarkLessonAsIncomplete(42), util.ErrNotFound)
}

func TestMarkLessonIncompleteRejectedOnCompletedEnrollment(t *testing.T) {
	e := twoByTwo(t)
	complete(t, e)

	err := e.MarkLessonAsIncomplete(1)
	assert.ErrorIs(t, err, util.ErrInvalidInput)
	assert.True(t, e.Completed)
}

func TestDuplicateQuizSubmissionRejected(t *testing.T) {
	e := twoByTwo(t)
	require.NoError(t, e.AddQuizSubmission(submission(t, 100, false)))
	err := e.AddQuizSubmission(submission(t, 100, true))
	assert.ErrorIs(t, err, util.ErrInvalidInput)
	assert.Len(t, e.QuizSubmissions, 1)
}

func TestReSubmitUnknownQuiz(t *testing.T) {
	e := twoByTwo(t)
	err := e.ReSubmitQuiz(100, answersFor(t, 1), 50, false)
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestDeleteMandatorySubmissionRevokesCompletion(t *testing.T) {
	e := twoByTwo(t)
	complete(t, e)
	require.NoError(t, e.MarkAsReviewed())
	require.NoError(t, e.CreateCertificate("Ada Lovelace", "ada@example.com", "Go Basics"))
	require.NoError(t, e.Certificate.MarkAsCertified("/uploads/certificates/enrollment-0.png"))
	e.DrainEvents()

	require.NoError(t, e.DeleteQuizSubmission(100))

	assert.False(t, e.Completed)
	assert.Nil(t, e.CompletedDate)
	assert.Nil(t, e.Certificate)
	assert.False(t, e.Reviewed)
	assert.Len(t, e.QuizSubmissions, 1)

	evs := e.DrainEvents()
	require.Equal(t, []event.Type{event.TypeEnrollmentIncomplete}, eventTypes(evs))
	incomplete := evs[0].(event.EnrollmentIncompleteEvent)
	assert.Equal(t, "/uploads/certificates/enrollment-0.png", incomplete.CertificateURL)
}

func TestDeleteBonusSubmissionKeepsCompletion(t *testing.T) {
	e := twoByTwo(t)
	complete(t, e)
	require.NoError(t, e.AddQuizSubmission(submission(t, 999, true)))
	e.DrainEvents()

	require.NoError(t, e.DeleteQuizSubmission(999))
	assert.True(t, e.Completed)
	assert.Empty(t, e.DrainEvents())
}

func TestDeleteUnknownSubmission(t *testing.T) {
	e := twoByTwo(t)
	assert.ErrorIs(t, e.DeleteQuizSubmission(100), util.ErrNotFound)
}

func TestCompletedEventFiresOncePerCycle(t *testing.T) {
	e := twoByTwo(t)
	complete(t, e)
	require.Equal(t, []event.Type{event.TypeEnrollmentCompleted}, eventTypes(e.DrainEvents()))

	// Extra work after completion must not fire a second completed event.
	require.NoError(t, e.MarkLessonAsCompleted(99, "extra"))
	assert.Empty(t, e.DrainEvents())

	// Revoking and re-earning the completion starts a new cycle.
	require.NoError(t, e.DeleteQuizSubmission(100))
	require.Equal(t, []event.Type{event.TypeEnrollmentIncomplete}, eventTypes(e.DrainEvents()))

	require.NoError(t, e.AddQuizSubmission(submission(t, 100, true)))
	assert.True(t, e.Completed)
	require.Equal(t, []event.Type{event.TypeEnrollmentCompleted}, eventTypes(e.DrainEvents()))
}

func TestCreateCertificateRules(t *testing.T) {
	e := twoByTwo(t)

	err := e.CreateCertificate("Ada Lovelace", "ada@example.com", "Go Basics")
	assert.ErrorIs(t, err, util.ErrInvalidInput, "not completed yet")

	complete(t, e)
	require.NoError(t, e.CreateCertificate("Ada Lovelace", "ada@example.com", "Go Basics"))
	require.NotNil(t, e.Certificate)
	assert.Equal(t, e.StudentID, e.Certificate.StudentID)
	assert.Equal(t, e.TeacherID, e.Certificate.TeacherID)
	assert.Equal(t, e.CourseID, e.Certificate.CourseID)
	assert.False(t, e.Certificate.Certified)

	err = e.CreateCertificate("Ada Lovelace", "ada@example.com", "Go Basics")
	assert.ErrorIs(t, err, util.ErrInvalidInput, "one certificate per completion cycle")
}

func TestMarkAsReviewed(t *testing.T) {
	e := twoByTwo(t)
	require.NoError(t, e.MarkAsReviewed())
	assert.ErrorIs(t, e.MarkAsReviewed(), util.ErrInvalidInput)
}

func TestProgressSnapshot(t *testing.T) {
	e := twoByTwo(t)

	p := e.Progress()
	assert.Equal(t, 2, p.TotalLessons)
	assert.Equal(t, 2, p.TotalQuizzes)
	assert.Zero(t, p.ProgressPercentage)

	require.NoError(t, e.MarkLessonAsCompleted(1, "lesson"))
	require.NoError(t, e.AddQuizSubmission(submission(t, 100, true)))
	require.NoError(t, e.AddQuizSubmission(submission(t, 200, false)))
	require.NoError(t, e.MarkLessonAsCompleted(99, "extra"))
	require.NoError(t, e.AddQuizSubmission(submission(t, 999, false)))

	p = e.Progress()
	assert.Equal(t, 1, p.CompletedLessons)
	assert.Equal(t, 1, p.PassedQuizzes)
	assert.Equal(t, 1, p.TotalLessonBonus)
	assert.Equal(t, 1, p.TotalQuizBonus)
	assert.InDelta(t, 50.0, p.ProgressPercentage, 0.001)

	require.NoError(t, e.MarkLessonAsCompleted(2, "lesson"))
	require.NoError(t, e.ReSubmitQuiz(200, answersFor(t, 1, 2), 80, true))
	p = e.Progress()
	assert.InDelta(t, 100.0, p.ProgressPercentage, 0.001)
	assert.True(t, e.Completed)
}
