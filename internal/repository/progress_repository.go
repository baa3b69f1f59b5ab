package repository

import (
	"course_gen_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// Create 直接插入，依赖 (user_id, course_id) 唯一索引兜底并发，
// 重复插入由调用方按 gorm.ErrDuplicatedKey 处理
func (r *ProgressRepository) Create(tx *gorm.DB, progress *model.Progress) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Create(progress).Error
}

func (r *ProgressRepository) FindByUserAndCourse(userID, courseID uint) (*model.Progress, error) {
	var progress model.Progress
	err := r.DB.
		Preload("WeekProgress", func(db *gorm.DB) *gorm.DB {
			return db.Order("week_id ASC")
		}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *ProgressRepository) Exists(userID, courseID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Progress{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, err
}

// UpdateWeek 只更新单周那一行，同一进度下不同周的并发更新互不影响。
// 返回受影响行数，0 表示该周不存在。
func (r *ProgressRepository) UpdateWeek(progressID, weekID uint, completed bool) (int64, error) {
	res := r.DB.Model(&model.WeekProgress{}).
		Where("progress_id = ? AND week_id = ?", progressID, weekID).
		Updates(map[string]interface{}{
			"completed":     completed,
			"last_accessed": time.Now(),
		})
	return res.RowsAffected, res.Error
}
