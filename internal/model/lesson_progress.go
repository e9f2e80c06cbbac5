package model

import (
	"time"

	"learnhub_backend/internal/util"
)

// LessonProgress is one lesson's completion record inside an enrollment.
// Rows for the course roster are created upfront at enrollment time; a lesson
// outside that roster gets a row lazily, flagged as bonus. Bonus rows never
// count toward completion.
type LessonProgress struct {
	BaseModel
	EnrollmentID  uint       `gorm:"index:idx_enrollment_lesson,unique;not null" json:"-"`
	LessonID      uint       `gorm:"index:idx_enrollment_lesson,unique;not null" json:"lessonId"`
	LessonTitle   string     `gorm:"size:255" json:"lessonTitle"`
	Completed     bool       `gorm:"default:false" json:"completed"`
	CompletedDate *time.Time `json:"completedDate,omitempty"`
	Bonus         bool       `gorm:"default:false" json:"bonus"`
}

func (LessonProgress) TableName() string {
	return "lesson_progresses"
}

func NewLessonProgress(lessonID uint, lessonTitle string) (*LessonProgress, error) {
	if lessonID == 0 {
		return nil, util.InvalidInputf("lessonId is required")
	}
	return &LessonProgress{
		LessonID:    lessonID,
		LessonTitle: lessonTitle,
	}, nil
}

// MarkAsCompleted keeps the Completed flag and CompletedDate in lockstep.
func (p *LessonProgress) MarkAsCompleted() error {
	if p.Completed {
		return util.InvalidInputf("LessonProgress is already completed")
	}
	now := time.Now()
	p.Completed = true
	p.CompletedDate = &now
	return nil
}

func (p *LessonProgress) MarkAsIncomplete() error {
	if !p.Completed {
		return util.InvalidInputf("LessonProgress is already incomplete")
	}
	p.Completed = false
	p.CompletedDate = nil
	return nil
}

func (p *LessonProgress) markAsBonus() {
	p.Bonus = true
}
