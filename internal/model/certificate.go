package model

import (
	"strings"
	"time"

	"learnhub_backend/internal/util"
)

// Certificate is the credential issued for one completed enrollment. It is
// created uncertified, then flipped exactly once to certified when the signed
// document has been stored. A revoked enrollment discards the instance
// entirely; it never transitions back.
type Certificate struct {
	BaseModel
	EnrollmentID uint      `gorm:"uniqueIndex;not null" json:"-"`
	FullName     string    `gorm:"size:200;not null" json:"fullName"`
	Email        string    `gorm:"size:100;not null" json:"email"`
	StudentID    uint      `gorm:"index;not null" json:"studentId"`
	TeacherID    uint      `gorm:"not null" json:"teacherId"`
	CourseID     uint      `gorm:"index;not null" json:"courseId"`
	CourseTitle  string    `gorm:"size:255;not null" json:"courseTitle"`
	URL          string    `gorm:"size:512" json:"url,omitempty"`
	IssuedDate   time.Time `json:"issuedDate"`
	Certified    bool      `gorm:"default:false" json:"certified"`
}

func (Certificate) TableName() string {
	return "certificates"
}

func NewCertificate(fullName, email string, studentID, teacherID, courseID uint, courseTitle string) (*Certificate, error) {
	if strings.TrimSpace(fullName) == "" {
		return nil, util.InvalidInputf("fullName is required")
	}
	if strings.TrimSpace(email) == "" {
		return nil, util.InvalidInputf("email is required")
	}
	if studentID == 0 {
		return nil, util.InvalidInputf("student is required")
	}
	if teacherID == 0 {
		return nil, util.InvalidInputf("teacher is required")
	}
	if courseID == 0 {
		return nil, util.InvalidInputf("courseId is required")
	}
	if strings.TrimSpace(courseTitle) == "" {
		return nil, util.InvalidInputf("courseTitle is required")
	}
	return &Certificate{
		FullName:    fullName,
		Email:       email,
		StudentID:   studentID,
		TeacherID:   teacherID,
		CourseID:    courseID,
		CourseTitle: courseTitle,
		IssuedDate:  time.Now(),
	}, nil
}

// MarkAsCertified records the stored document URL. One-shot.
func (c *Certificate) MarkAsCertified(url string) error {
	if strings.TrimSpace(url) == "" {
		return util.InvalidInputf("certificate url must not be blank")
	}
	if c.Certified {
		return util.InvalidInputf("certificate is already certified")
	}
	c.URL = url
	c.Certified = true
	return nil
}
