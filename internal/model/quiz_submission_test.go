package model

import (
	"testing"

	"learnhub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuizAnswerValidation(t *testing.T) {
	_, err := NewQuizAnswer(0, []uint{1}, TrueFalse)
	assert.ErrorIs(t, err, util.ErrInvalidInput)

	_, err = NewQuizAnswer(1, nil, TrueFalse)
	assert.ErrorIs(t, err, util.ErrInvalidInput)

	_, err = NewQuizAnswer(1, []uint{1, 2}, TrueFalse)
	assert.ErrorIs(t, err, util.ErrInvalidInput, "true/false takes exactly one option")

	_, err = NewQuizAnswer(1, []uint{1, 2}, SingleChoice)
	assert.ErrorIs(t, err, util.ErrInvalidInput, "single choice takes exactly one option")

	_, err = NewQuizAnswer(1, []uint{1, 2, 3}, MultipleChoice)
	assert.NoError(t, err)

	_, err = NewQuizAnswer(1, []uint{1}, QuestionType("ESSAY"))
	assert.ErrorIs(t, err, util.ErrInvalidInput)
}

func TestNewQuizAnswerCopiesOptions(t *testing.T) {
	opts := []uint{1, 2}
	a, err := NewQuizAnswer(1, opts, MultipleChoice)
	require.NoError(t, err)

	opts[0] = 42
	assert.Equal(t, []uint{1, 2}, a.AnswerOptionIDs)
}

func TestNewQuizSubmissionValidation(t *testing.T) {
	answer, err := NewQuizAnswer(1, []uint{1}, SingleChoice)
	require.NoError(t, err)

	_, err = NewQuizSubmission(0, []QuizAnswer{answer}, 50, false)
	assert.ErrorIs(t, err, util.ErrInvalidInput)

	_, err = NewQuizSubmission(100, nil, 50, false)
	assert.ErrorIs(t, err, util.ErrInvalidInput)

	dup, err := NewQuizAnswer(1, []uint{2}, SingleChoice)
	require.NoError(t, err)
	_, err = NewQuizSubmission(100, []QuizAnswer{answer, dup}, 50, false)
	assert.ErrorIs(t, err, util.ErrInvalidInput, "two answers for the same question")
}

func TestReSubmitReplacesAnswersKeepsIdentity(t *testing.T) {
	first, err := NewQuizAnswer(1, []uint{1}, SingleChoice)
	require.NoError(t, err)
	sub, err := NewQuizSubmission(100, []QuizAnswer{first}, 40, false)
	require.NoError(t, err)

	submitted := sub.SubmittedDate

	second, err := NewQuizAnswer(2, []uint{3, 4}, MultipleChoice)
	require.NoError(t, err)
	require.NoError(t, sub.ReSubmit([]QuizAnswer{second}, 90, true))

	assert.Equal(t, uint(100), sub.QuizID)
	assert.Equal(t, submitted, sub.SubmittedDate, "original submission date survives")
	assert.False(t, sub.LastModifiedDate.Before(submitted))
	assert.True(t, sub.Passed)
	assert.InDelta(t, 90.0, sub.Score, 0.001)
	require.Len(t, sub.Answers, 1)
	assert.Equal(t, uint(2), sub.Answers[0].QuestionID)
}

func TestReSubmitValidatesAnswers(t *testing.T) {
	answer, err := NewQuizAnswer(1, []uint{1}, SingleChoice)
	require.NoError(t, err)
	sub, err := NewQuizSubmission(100, []QuizAnswer{answer}, 40, false)
	require.NoError(t, err)

	err = sub.ReSubmit(nil, 90, true)
	assert.ErrorIs(t, err, util.ErrInvalidInput)
	assert.False(t, sub.Passed, "failed resubmit leaves the row untouched")
}
