package service

import (
	"course_gen_backend/internal/model"
	"course_gen_backend/internal/repository"
	"course_gen_backend/pkg/logger"
	"fmt"
	"os"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

// newTestDB 每个测试独立的内存库，错误翻译开启以便
// 唯一索引冲突映射为 gorm.ErrDuplicatedKey
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Week{},
		&model.Topic{},
		&model.Progress{},
		&model.WeekProgress{},
		&model.Enrollment{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	user := &model.User{Name: "tester", Email: email, Password: "hash"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedCourse(t *testing.T, db *gorm.DB, ownerID uint, weekCount int) *model.Course {
	t.Helper()
	course := &model.Course{
		OwnerUserID: ownerID,
		Name:        "Test Course",
		Description: "seeded",
	}
	for i := 0; i < weekCount; i++ {
		course.Weeks = append(course.Weeks, model.Week{
			Title: fmt.Sprintf("Week %d", i+1),
			Order: i + 1,
		})
	}
	if err := db.Create(course).Error; err != nil {
		t.Fatalf("seed course: %v", err)
	}
	return course
}

func newRepos(db *gorm.DB) (*repository.UserRepository, *repository.CourseRepository, *repository.ProgressRepository, *repository.EnrollmentRepository) {
	return repository.NewUserRepository(db),
		repository.NewCourseRepository(db),
		repository.NewProgressRepository(db),
		repository.NewEnrollmentRepository(db)
}
