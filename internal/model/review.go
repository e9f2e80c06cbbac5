package model

import (
	"strings"

	"learnhub_backend/internal/util"
)

// Review is a student's course review. One per (course, student); deleted
// wholesale when the enrollment's completion is revoked.
type Review struct {
	BaseModel
	CourseID  uint   `gorm:"index:idx_course_student,unique;not null" json:"courseId"`
	StudentID uint   `gorm:"index:idx_course_student,unique;not null" json:"studentId"`
	Rating    int    `gorm:"not null" json:"rating"`
	Comment   string `gorm:"type:text" json:"comment"`
}

func (Review) TableName() string {
	return "reviews"
}

func NewReview(courseID, studentID uint, rating int, comment string) (*Review, error) {
	if courseID == 0 {
		return nil, util.InvalidInputf("courseId is required")
	}
	if studentID == 0 {
		return nil, util.InvalidInputf("student is required")
	}
	if rating < 1 || rating > 5 {
		return nil, util.InvalidInputf("rating must be between 1 and 5")
	}
	return &Review{
		CourseID:  courseID,
		StudentID: studentID,
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
	}, nil
}
