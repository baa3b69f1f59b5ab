package model

import (
	"time"
)

// Course AI生成的课程，创建后除 LastUpdated 外不再修改
type Course struct {
	BaseModel
	OwnerUserID uint      `gorm:"index;not null" json:"ownerUserId"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Weeks       []Week    `gorm:"foreignKey:CourseID" json:"weeks"`
	LastUpdated time.Time `json:"lastUpdated"`
}

func (Course) TableName() string {
	return "courses"
}

// Week 课程周，Order 从 1 开始、与生成顺序一致
type Week struct {
	BaseModel
	CourseID    uint    `gorm:"index;not null" json:"courseId"`
	Title       string  `gorm:"size:255;not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	Order       int     `gorm:"column:week_order;not null" json:"order"`
	Topics      []Topic `gorm:"foreignKey:WeekID" json:"topics"`
}

func (Week) TableName() string {
	return "course_weeks"
}

type Topic struct {
	BaseModel
	WeekID             uint     `gorm:"index;not null" json:"weekId"`
	Title              string   `gorm:"size:255;not null" json:"title"`
	Description        string   `gorm:"type:text" json:"description"`
	Content            string   `gorm:"type:text" json:"content"`
	LearningObjectives []string `gorm:"serializer:json" json:"learningObjectives"`
}

func (Topic) TableName() string {
	return "course_topics"
}
