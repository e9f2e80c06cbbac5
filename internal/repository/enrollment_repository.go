package repository

import (
	"errors"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) preloaded() *gorm.DB {
	return r.DB.
		Preload("LessonProgresses").
		Preload("QuizSubmissions").
		Preload("QuizSubmissions.Answers").
		Preload("Certificate")
}

func (r *EnrollmentRepository) FindByID(id uint) (*model.Enrollment, error) {
	var e model.Enrollment
	err := r.preloaded().First(&e, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.NotFoundf("enrollment %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EnrollmentRepository) FindByStudentAndCourse(studentID, courseID uint) (*model.Enrollment, error) {
	var e model.Enrollment
	err := r.preloaded().
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.NotFoundf("enrollment for student %d in course %d", studentID, courseID)
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EnrollmentRepository) ExistsByStudentAndCourse(studentID, courseID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Count(&count).Error
	return count > 0, err
}

func (r *EnrollmentRepository) ListByStudent(studentID uint) ([]model.Enrollment, error) {
	var list []model.Enrollment
	err := r.preloaded().
		Where("student_id = ?", studentID).
		Order("enrollment_date DESC").
		Find(&list).Error
	return list, err
}

// Create inserts a brand-new enrollment with its roster rows. The unique
// (student_id, course_id) index turns a duplicate replay into ErrConflict so
// the caller can treat it as a no-op.
func (r *EnrollmentRepository) Create(e *model.Enrollment) error {
	err := r.DB.Create(e).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return util.ErrConflict
	}
	return err
}

// Save persists the aggregate's current state in one transaction. The root
// row is updated with a version compare-and-swap; a concurrent writer that
// got there first makes this save fail with ErrConflict instead of silently
// overwriting, so no two writers can both observe "not yet complete" and both
// emit a completion event. Child rows are synced to the in-memory state:
// rows the aggregate dropped are deleted, the rest upserted.
func (r *EnrollmentRepository) Save(e *model.Enrollment) error {
	currentVersion := e.Version

	return r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Enrollment{}).
			Where("id = ? AND version = ?", e.ID, currentVersion).
			Updates(map[string]interface{}{
				"total_lessons":  e.TotalLessons,
				"completed":      e.Completed,
				"reviewed":       e.Reviewed,
				"completed_date": e.CompletedDate,
				"version":        currentVersion + 1,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrConflict
		}
		e.Version = currentVersion + 1

		for i := range e.LessonProgresses {
			e.LessonProgresses[i].EnrollmentID = e.ID
			if err := tx.Save(&e.LessonProgresses[i]).Error; err != nil {
				return err
			}
		}

		if err := r.syncSubmissions(tx, e); err != nil {
			return err
		}

		return r.syncCertificate(tx, e)
	})
}

func (r *EnrollmentRepository) syncSubmissions(tx *gorm.DB, e *model.Enrollment) error {
	keptQuizIDs := make([]uint, 0, len(e.QuizSubmissions))
	for i := range e.QuizSubmissions {
		keptQuizIDs = append(keptQuizIDs, e.QuizSubmissions[i].QuizID)
	}

	// Drop rows the aggregate deleted; answers cascade.
	del := tx.Where("enrollment_id = ?", e.ID)
	if len(keptQuizIDs) > 0 {
		del = del.Where("quiz_id NOT IN ?", keptQuizIDs)
	}
	if err := del.Delete(&model.QuizSubmission{}).Error; err != nil {
		return err
	}

	for i := range e.QuizSubmissions {
		sub := &e.QuizSubmissions[i]
		sub.EnrollmentID = e.ID

		// Resubmission replaced the whole answer set; clear the old rows so
		// the replaced set is the only one persisted.
		if sub.ID != 0 {
			if err := tx.Where("submission_id = ?", sub.ID).Delete(&model.QuizAnswer{}).Error; err != nil {
				return err
			}
			for j := range sub.Answers {
				sub.Answers[j].ID = 0
				sub.Answers[j].SubmissionID = sub.ID
			}
		}

		if err := tx.Save(sub).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *EnrollmentRepository) syncCertificate(tx *gorm.DB, e *model.Enrollment) error {
	if e.Certificate == nil {
		return tx.Where("enrollment_id = ?", e.ID).Delete(&model.Certificate{}).Error
	}
	e.Certificate.EnrollmentID = e.ID
	return tx.Save(e.Certificate).Error
}
