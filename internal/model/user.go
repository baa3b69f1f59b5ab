package model

import (
	"time"
)

type User struct {
	BaseModel
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100;unique;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Avatar    string    `gorm:"size:255" json:"avatar"`
	LastLogin time.Time `json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}

// Enrollment 用户选课记录，(user_id, course_id) 全局唯一，重复选课是幂等操作
type Enrollment struct {
	BaseModel
	UserID   uint `gorm:"not null;uniqueIndex:idx_enrollment_user_course" json:"userId"`
	CourseID uint `gorm:"not null;uniqueIndex:idx_enrollment_user_course" json:"courseId"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
