package service

import (
	"course_gen_backend/internal/model"
	"course_gen_backend/internal/repository"
	"course_gen_backend/internal/util"
	"course_gen_backend/pkg/logger"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	CourseRepo   *repository.CourseRepository
}

func NewProgressService(progressRepo *repository.ProgressRepository, courseRepo *repository.CourseRepository) *ProgressService {
	return &ProgressService{
		ProgressRepo: progressRepo,
		CourseRepo:   courseRepo,
	}
}

// Initialize 为 (用户, 课程) 建立进度记录，每周一条、初始未完成。
// 重复初始化明确返回 ErrProgressExists 而不是静默成功，
// 调用方能区分"已初始化过"和"这次初始化成功"。
func (s *ProgressService) Initialize(userID, courseID uint) (*model.Progress, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	exists, err := s.ProgressRepo.Exists(userID, courseID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrProgressExists
	}

	now := time.Now()
	progress := &model.Progress{
		UserID:   userID,
		CourseID: courseID,
	}
	for _, week := range course.Weeks {
		progress.WeekProgress = append(progress.WeekProgress, model.WeekProgress{
			WeekID:       week.ID,
			Completed:    false,
			LastAccessed: now,
		})
	}

	if err := s.ProgressRepo.Create(nil, progress); err != nil {
		// 并发初始化时先查后插有窗口，唯一索引兜底，
		// 输掉竞争的一方同样拿到 ErrProgressExists
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrProgressExists
		}
		return nil, err
	}

	logger.Log.Info("progress initialized",
		zap.Uint("user_id", userID),
		zap.Uint("course_id", courseID),
		zap.Int("weeks", len(progress.WeekProgress)),
	)

	return progress, nil
}

func (s *ProgressService) GetProgress(userID, courseID uint) (*model.Progress, error) {
	progress, err := s.ProgressRepo.FindByUserAndCourse(userID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProgressNotFound
		}
		return nil, err
	}
	return progress, nil
}

// SetWeekCompletion 设置单周完成状态（set 语义，不是 toggle），
// 同值重复调用除 lastAccessed 外无可见变化
func (s *ProgressService) SetWeekCompletion(userID, courseID, weekID uint, completed bool) (*model.Progress, error) {
	progress, err := s.GetProgress(userID, courseID)
	if err != nil {
		return nil, err
	}

	affected, err := s.ProgressRepo.UpdateWeek(progress.ID, weekID, completed)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, util.ErrWeekNotFound
	}

	return s.GetProgress(userID, courseID)
}
