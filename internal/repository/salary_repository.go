package repository

import (
	"errors"

	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type SalaryRepository struct {
	DB *gorm.DB
}

func NewSalaryRepository(db *gorm.DB) *SalaryRepository {
	return &SalaryRepository{DB: db}
}

// FindOrCreateByTeacher returns the teacher's salary row, creating the
// initial junior-rank row on first use.
func (r *SalaryRepository) FindOrCreateByTeacher(teacherID uint) (*model.Salary, error) {
	var salary model.Salary
	err := r.DB.Where("teacher_id = ?", teacherID).First(&salary).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s := model.NewSalary(teacherID)
		if err := r.DB.Create(s).Error; err != nil {
			return nil, err
		}
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	return &salary, nil
}

func (r *SalaryRepository) Save(salary *model.Salary) error {
	return r.DB.Save(salary).Error
}
