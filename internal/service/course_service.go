package service

import (
	"context"
	"course_gen_backend/internal/config"
	"course_gen_backend/internal/model"
	"course_gen_backend/internal/repository"
	"course_gen_backend/internal/util"
	"course_gen_backend/pkg/logger"
	"course_gen_backend/pkg/monitoring"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	courseCatalogCacheKey = "courses:catalog"
	courseCatalogCacheTTL = 5 * time.Minute
)

// CourseGenerator 内容生成客户端的抽象，测试用桩替换真实AI调用
type CourseGenerator interface {
	GenerateCourseContent(ctx context.Context, prompt string) (string, error)
}

type CourseService struct {
	CourseRepo     *repository.CourseRepository
	ProgressRepo   *repository.ProgressRepository
	EnrollmentRepo *repository.EnrollmentRepository
	Generator      CourseGenerator
	Cfg            *config.Config
	Redis          *redis.Client
	DB             *gorm.DB
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	progressRepo *repository.ProgressRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	generator CourseGenerator,
	cfg *config.Config,
	rdb *redis.Client,
	db *gorm.DB,
) *CourseService {
	return &CourseService{
		CourseRepo:     courseRepo,
		ProgressRepo:   progressRepo,
		EnrollmentRepo: enrollmentRepo,
		Generator:      generator,
		Cfg:            cfg,
		Redis:          rdb,
		DB:             db,
	}
}

// GenerateCourse 完整生成链路：提示词 → 外部生成 → 规范化 → 物化。
// 物化在一个事务里依次写课程、进度、选课，三者要么都可见要么都不可见。
func (s *CourseService) GenerateCourse(ctx context.Context, userID uint, name, description string) (*model.Course, error) {
	prompt := BuildCoursePrompt(name, description)

	start := time.Now()
	raw, err := s.Generator.GenerateCourseContent(ctx, prompt)
	monitoring.GenerationDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, util.ErrGenerationEmpty) {
			monitoring.GenerationFailures.WithLabelValues("empty").Inc()
		} else {
			monitoring.GenerationFailures.WithLabelValues("unavailable").Inc()
		}
		return nil, err
	}

	curriculum, err := NormalizeCurriculum(raw)
	if err != nil {
		monitoring.GenerationFailures.WithLabelValues("invalid_structure").Inc()
		logger.Log.Warn("generated content failed normalization",
			zap.Uint("user_id", userID),
			zap.String("course_name", name),
			zap.Error(err),
		)
		return nil, err
	}

	// 请求取消后生成结果可能照常返回，但绝不落库
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	course, err := s.materialize(curriculum, userID, name, description)
	if err != nil {
		return nil, err
	}

	s.invalidateCatalogCache(ctx)

	logger.Log.Info("course generated",
		zap.Uint("user_id", userID),
		zap.Uint("course_id", course.ID),
		zap.Int("weeks", len(course.Weeks)),
	)

	return course, nil
}

// materialize 把校验过的大纲转成持久化记录：
// 周按输入顺序编号 1..N，进度覆盖每一周，选课随事务一并写入
func (s *CourseService) materialize(curriculum *model.Curriculum, userID uint, name, description string) (*model.Course, error) {
	now := time.Now()

	course := &model.Course{
		OwnerUserID: userID,
		Name:        name,
		Description: description,
		LastUpdated: now,
		Weeks:       make([]model.Week, 0, len(curriculum.Weeks)),
	}

	for i, week := range curriculum.Weeks {
		w := model.Week{
			Title:       week.Title,
			Description: week.Description,
			Order:       i + 1,
			Topics:      make([]model.Topic, 0, len(week.Topics)),
		}
		for _, topic := range week.Topics {
			w.Topics = append(w.Topics, model.Topic{
				Title:              topic.Title,
				Description:        topic.Description,
				Content:            topic.Content,
				LearningObjectives: topic.LearningObjectives,
			})
		}
		course.Weeks = append(course.Weeks, w)
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.CourseRepo.Create(tx, course); err != nil {
			return err
		}

		progress := &model.Progress{
			UserID:   userID,
			CourseID: course.ID,
		}
		for _, week := range course.Weeks {
			progress.WeekProgress = append(progress.WeekProgress, model.WeekProgress{
				WeekID:       week.ID,
				Completed:    false,
				LastAccessed: now,
			})
		}
		if err := s.ProgressRepo.Create(tx, progress); err != nil {
			return err
		}

		return s.EnrollmentRepo.Create(tx, &model.Enrollment{
			UserID:   userID,
			CourseID: course.ID,
		})
	})
	if err != nil {
		return nil, err
	}

	return course, nil
}

// ListCourses 课程目录，读多写少，用Redis缓存整个列表
func (s *CourseService) ListCourses(ctx context.Context) ([]model.Course, error) {
	if s.Redis != nil {
		val, err := s.Redis.Get(ctx, courseCatalogCacheKey).Result()
		if err == nil {
			var cached []model.Course
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached, nil
			}
		} else if err != redis.Nil {
			logger.Log.Warn("course catalog cache read failed", zap.Error(err))
		}
	}

	courses, err := s.CourseRepo.FindAll()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(courses); err == nil {
			if err := s.Redis.Set(ctx, courseCatalogCacheKey, data, courseCatalogCacheTTL).Err(); err != nil {
				logger.Log.Warn("course catalog cache write failed", zap.Error(err))
			}
		}
	}

	return courses, nil
}

func (s *CourseService) GetCourse(id uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

func (s *CourseService) invalidateCatalogCache(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, courseCatalogCacheKey).Err(); err != nil {
		logger.Log.Warn("course catalog cache invalidation failed", zap.Error(err))
	}
}
