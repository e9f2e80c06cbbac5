package model

import "time"

// Course is the read-side of the catalog this service needs: the roster that
// seeds enrollments and the display data that goes on certificates. Catalog
// authoring lives in another service.
type Course struct {
	BaseModel
	Title       string     `gorm:"size:255;not null" json:"title"`
	TeacherID   uint       `gorm:"index;not null" json:"teacherId"`
	Published   bool       `gorm:"default:false" json:"published"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	Lessons     []Lesson   `gorm:"foreignKey:CourseID" json:"lessons,omitempty"`
	Quizzes     []Quiz     `gorm:"foreignKey:CourseID" json:"quizzes,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

type Lesson struct {
	BaseModel
	CourseID uint   `gorm:"index;not null" json:"courseId"`
	Title    string `gorm:"size:255;not null" json:"title"`
	Order    int    `gorm:"default:0" json:"order"`
}

func (Lesson) TableName() string {
	return "lessons"
}

type Quiz struct {
	BaseModel
	CourseID uint   `gorm:"index;not null" json:"courseId"`
	Title    string `gorm:"size:255;not null" json:"title"`
}

func (Quiz) TableName() string {
	return "quizzes"
}
