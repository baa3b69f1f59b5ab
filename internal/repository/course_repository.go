package repository

import (
	"course_gen_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

// Create 级联写入课程及其周、主题
func (r *CourseRepository) Create(tx *gorm.DB, course *model.Course) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Create(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.
		Preload("Weeks", func(db *gorm.DB) *gorm.DB {
			return db.Order("week_order ASC")
		}).
		Preload("Weeks.Topics").
		First(&course, id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) FindAll() ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.
		Preload("Weeks", func(db *gorm.DB) *gorm.DB {
			return db.Order("week_order ASC")
		}).
		Order("created_at DESC").
		Find(&courses).Error
	return courses, err
}

// Exists 只查主键，避免 Preload 开销
func (r *CourseRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Course{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
