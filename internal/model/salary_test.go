package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSalaryRankProgression(t *testing.T) {
	s := NewSalary(3)
	assert.Equal(t, RankJunior, s.Rank)

	s.AddPublishedCourse()
	s.AddPublishedCourse()
	assert.Equal(t, RankJunior, s.Rank)

	s.AddPublishedCourse()
	assert.Equal(t, RankMid, s.Rank)

	for i := 0; i < 7; i++ {
		s.AddPublishedCourse()
	}
	assert.Equal(t, RankSenior, s.Rank)
}

func TestSalaryRankByEnrollments(t *testing.T) {
	s := NewSalary(3)
	for i := 0; i < 49; i++ {
		s.AddEnrollment()
	}
	assert.Equal(t, RankJunior, s.Rank)

	s.AddEnrollment()
	assert.Equal(t, RankMid, s.Rank)

	for i := 0; i < 450; i++ {
		s.AddEnrollment()
	}
	assert.Equal(t, RankSenior, s.Rank)
}
