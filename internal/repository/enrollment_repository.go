package repository

import (
	"course_gen_backend/internal/model"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) Create(tx *gorm.DB, enrollment *model.Enrollment) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Create(enrollment).Error
}

func (r *EnrollmentRepository) Exists(userID, courseID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, err
}

// FindCoursesByUser 查询用户已选的全部课程（含周列表）
func (r *EnrollmentRepository) FindCoursesByUser(userID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.
		Joins("JOIN enrollments ON enrollments.course_id = courses.id").
		Where("enrollments.user_id = ? AND enrollments.deleted_at IS NULL", userID).
		Preload("Weeks", func(db *gorm.DB) *gorm.DB {
			return db.Order("week_order ASC")
		}).
		Order("enrollments.created_at DESC").
		Find(&courses).Error
	return courses, err
}
