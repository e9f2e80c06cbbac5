package model

import (
	"time"

	"learnhub_backend/internal/util"
)

type QuestionType string

const (
	TrueFalse      QuestionType = "TRUE_FALSE"
	SingleChoice   QuestionType = "SINGLE_CHOICE"
	MultipleChoice QuestionType = "MULTIPLE_CHOICE"
)

// QuizAnswer records a student's answer to one question. The option set is
// fixed once constructed; resubmission replaces whole answers, never parts.
type QuizAnswer struct {
	BaseModel
	SubmissionID    uint         `gorm:"index;not null" json:"-"`
	QuestionID      uint         `gorm:"not null" json:"questionId"`
	AnswerOptionIDs []uint       `gorm:"serializer:json" json:"answerOptionIds"`
	Type            QuestionType `gorm:"size:20" json:"type"`
}

func (QuizAnswer) TableName() string {
	return "quiz_answers"
}

func NewQuizAnswer(questionID uint, answerOptionIDs []uint, questionType QuestionType) (QuizAnswer, error) {
	if questionID == 0 {
		return QuizAnswer{}, util.InvalidInputf("questionId is required")
	}
	if len(answerOptionIDs) == 0 {
		return QuizAnswer{}, util.InvalidInputf("answerOptionIds must not be empty")
	}
	switch questionType {
	case TrueFalse, SingleChoice:
		if len(answerOptionIDs) != 1 {
			return QuizAnswer{}, util.InvalidInputf("%s answer must have exactly one option", questionType)
		}
	case MultipleChoice:
	default:
		return QuizAnswer{}, util.InvalidInputf("unknown question type %q", questionType)
	}
	ids := make([]uint, len(answerOptionIDs))
	copy(ids, answerOptionIDs)
	return QuizAnswer{
		QuestionID:      questionID,
		AnswerOptionIDs: ids,
		Type:            questionType,
	}, nil
}

// QuizSubmission is a student's answer set for one quiz attempt, with the
// graded outcome supplied by the grading service. One row per quiz per
// enrollment; ReSubmit replaces the row's answers in place.
type QuizSubmission struct {
	BaseModel
	EnrollmentID     uint         `gorm:"index:idx_enrollment_quiz,unique;not null" json:"-"`
	QuizID           uint         `gorm:"index:idx_enrollment_quiz,unique;not null" json:"quizId"`
	Answers          []QuizAnswer `gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE" json:"answers"`
	Score            float64      `json:"score"`
	SubmittedDate    time.Time    `json:"submittedDate"`
	LastModifiedDate time.Time    `json:"lastModifiedDate"`
	Passed           bool         `json:"passed"`
	Bonus            bool         `gorm:"default:false" json:"bonus"`
}

func (QuizSubmission) TableName() string {
	return "quiz_submissions"
}

func NewQuizSubmission(quizID uint, answers []QuizAnswer, score float64, passed bool) (*QuizSubmission, error) {
	if quizID == 0 {
		return nil, util.InvalidInputf("quizId is required")
	}
	if err := validateAnswers(answers); err != nil {
		return nil, err
	}
	now := time.Now()
	return &QuizSubmission{
		QuizID:           quizID,
		Answers:          answers,
		Score:            score,
		SubmittedDate:    now,
		LastModifiedDate: now,
		Passed:           passed,
	}, nil
}

// ReSubmit swaps in a fresh answer set and grading outcome. The row identity
// stays; only LastModifiedDate advances.
func (s *QuizSubmission) ReSubmit(answers []QuizAnswer, score float64, passed bool) error {
	if err := validateAnswers(answers); err != nil {
		return err
	}
	s.Answers = answers
	s.Score = score
	s.Passed = passed
	s.LastModifiedDate = time.Now()
	return nil
}

func (s *QuizSubmission) markAsBonus() {
	s.Bonus = true
}

func validateAnswers(answers []QuizAnswer) error {
	if len(answers) == 0 {
		return util.InvalidInputf("answers must not be empty")
	}
	seen := make(map[uint]bool, len(answers))
	for _, a := range answers {
		if seen[a.QuestionID] {
			return util.InvalidInputf("duplicate answer for question %d", a.QuestionID)
		}
		seen[a.QuestionID] = true
	}
	return nil
}
