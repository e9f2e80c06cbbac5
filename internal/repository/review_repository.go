package repository

import (
	"errors"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

func (r *ReviewRepository) Create(review *model.Review) error {
	err := r.DB.Create(review).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return util.InvalidInputf("review for this course already exists")
	}
	return err
}

func (r *ReviewRepository) FindByCourseAndStudent(courseID, studentID uint) (*model.Review, error) {
	var review model.Review
	err := r.DB.Where("course_id = ? AND student_id = ?", courseID, studentID).First(&review).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.NotFoundf("review for course %d by student %d", courseID, studentID)
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// DeleteByCourseAndStudent removes the review invalidated by a completion
// revocation. Deleting a review that never existed is fine; the listener may
// run more than once for the same event.
func (r *ReviewRepository) DeleteByCourseAndStudent(courseID, studentID uint) error {
	return r.DB.Where("course_id = ? AND student_id = ?", courseID, studentID).
		Delete(&model.Review{}).Error
}

func (r *ReviewRepository) ListByCourse(courseID uint) ([]model.Review, error) {
	var reviews []model.Review
	err := r.DB.Where("course_id = ?", courseID).Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}
