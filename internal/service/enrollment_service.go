package service

import (
	"course_gen_backend/internal/model"
	"course_gen_backend/internal/repository"
	"course_gen_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

type EnrollmentService struct {
	EnrollmentRepo *repository.EnrollmentRepository
	UserRepo       *repository.UserRepository
	CourseRepo     *repository.CourseRepository
	ProgressRepo   *repository.ProgressRepository
}

func NewEnrollmentService(
	enrollmentRepo *repository.EnrollmentRepository,
	userRepo *repository.UserRepository,
	courseRepo *repository.CourseRepository,
	progressRepo *repository.ProgressRepository,
) *EnrollmentService {
	return &EnrollmentService{
		EnrollmentRepo: enrollmentRepo,
		UserRepo:       userRepo,
		CourseRepo:     courseRepo,
		ProgressRepo:   progressRepo,
	}
}

// Enroll 把课程加入用户的选课集合。与进度初始化不同，
// 选课是集合成员关系，重复选课按幂等成功处理。
func (s *EnrollmentService) Enroll(userID, courseID uint) error {
	if _, err := s.UserRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return err
	}

	exists, err := s.CourseRepo.Exists(courseID)
	if err != nil {
		return err
	}
	if !exists {
		return util.ErrCourseNotFound
	}

	enrolled, err := s.EnrollmentRepo.Exists(userID, courseID)
	if err != nil {
		return err
	}
	if enrolled {
		return nil
	}

	err = s.EnrollmentRepo.Create(nil, &model.Enrollment{
		UserID:   userID,
		CourseID: courseID,
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// 并发重复选课，结果一样，按成功处理
		return nil
	}
	return err
}

// UserCourseView 用户已选课程及对应进度（进度未初始化时为 nil）
type UserCourseView struct {
	Course   model.Course    `json:"course"`
	Progress *model.Progress `json:"progress,omitempty"`
}

func (s *EnrollmentService) ListUserCourses(userID uint) ([]UserCourseView, error) {
	courses, err := s.EnrollmentRepo.FindCoursesByUser(userID)
	if err != nil {
		return nil, err
	}

	views := make([]UserCourseView, 0, len(courses))
	for _, course := range courses {
		view := UserCourseView{Course: course}
		progress, err := s.ProgressRepo.FindByUserAndCourse(userID, course.ID)
		if err == nil {
			view.Progress = progress
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		views = append(views, view)
	}

	return views, nil
}
