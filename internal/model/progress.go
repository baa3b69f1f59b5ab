package model

import (
	"time"
)

// Progress 某用户对某课程的学习进度，(user_id, course_id) 全局唯一。
// 唯一性由数据库联合唯一索引保证，并发初始化只会成功一次。
type Progress struct {
	BaseModel
	UserID       uint           `gorm:"not null;uniqueIndex:idx_progress_user_course" json:"userId"`
	CourseID     uint           `gorm:"not null;uniqueIndex:idx_progress_user_course" json:"courseId"`
	WeekProgress []WeekProgress `gorm:"foreignKey:ProgressID" json:"weekProgress"`
}

func (Progress) TableName() string {
	return "progresses"
}

// WeekProgress 单周完成状态，按行更新，互不覆盖
type WeekProgress struct {
	BaseModel
	ProgressID   uint      `gorm:"not null;uniqueIndex:idx_week_progress" json:"-"`
	WeekID       uint      `gorm:"not null;uniqueIndex:idx_week_progress" json:"weekId"`
	Completed    bool      `gorm:"not null;default:false" json:"completed"`
	LastAccessed time.Time `json:"lastAccessed"`
}

func (WeekProgress) TableName() string {
	return "week_progresses"
}
