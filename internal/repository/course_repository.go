package repository

import (
	"errors"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.NotFoundf("course %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// FindPublishedWithRoster loads a published course with the lesson and quiz
// roster used to seed new enrollments.
func (r *CourseRepository) FindPublishedWithRoster(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.
		Preload("Lessons").
		Preload("Quizzes").
		Where("published = ?", true).
		First(&course, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.NotFoundf("published course %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) Save(course *model.Course) error {
	return r.DB.Save(course).Error
}
