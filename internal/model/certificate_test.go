package model

import (
	"testing"

	"learnhub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCertificateValidation(t *testing.T) {
	cases := []struct {
		name        string
		fullName    string
		email       string
		studentID   uint
		teacherID   uint
		courseID    uint
		courseTitle string
	}{
		{"blank name", "  ", "ada@example.com", 7, 3, 11, "Go Basics"},
		{"blank email", "Ada Lovelace", "", 7, 3, 11, "Go Basics"},
		{"missing student", "Ada Lovelace", "ada@example.com", 0, 3, 11, "Go Basics"},
		{"missing teacher", "Ada Lovelace", "ada@example.com", 7, 0, 11, "Go Basics"},
		{"missing course", "Ada Lovelace", "ada@example.com", 7, 3, 0, "Go Basics"},
		{"blank title", "Ada Lovelace", "ada@example.com", 7, 3, 11, " "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCertificate(tc.fullName, tc.email, tc.studentID, tc.teacherID, tc.courseID, tc.courseTitle)
			assert.ErrorIs(t, err, util.ErrInvalidInput)
		})
	}
}

func TestMarkAsCertifiedOneShot(t *testing.T) {
	cert, err := NewCertificate("Ada Lovelace", "ada@example.com", 7, 3, 11, "Go Basics")
	require.NoError(t, err)
	assert.False(t, cert.Certified)

	assert.ErrorIs(t, cert.MarkAsCertified("  "), util.ErrInvalidInput)

	require.NoError(t, cert.MarkAsCertified("/uploads/certificates/enrollment-1.png"))
	assert.True(t, cert.Certified)
	assert.Equal(t, "/uploads/certificates/enrollment-1.png", cert.URL)

	err = cert.MarkAsCertified("/uploads/other.png")
	assert.ErrorIs(t, err, util.ErrInvalidInput)
	assert.Equal(t, "/uploads/certificates/enrollment-1.png", cert.URL)
}
