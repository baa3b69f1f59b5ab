package service

import (
	"context"
	"course_gen_backend/internal/config"
	"course_gen_backend/internal/model"
	"course_gen_backend/internal/util"
	"errors"
	"testing"

	"gorm.io/gorm"
)

// stubGenerator 测试用生成器桩，替代真实AI调用
type stubGenerator struct {
	generate func(ctx context.Context, prompt string) (string, error)
}

func (s *stubGenerator) GenerateCourseContent(ctx context.Context, prompt string) (string, error) {
	return s.generate(ctx, prompt)
}

const threeWeekFencedPayload = "```json\n" + `{
  "weeks": [
    {"title": "Week One", "description": "intro", "topics": [{"title": "T1", "learningObjectives": ["a"]}]},
    {"title": "Week Two", "topics": ["T2a", "T2b"]},
    {"title": "Week Three", "topics": [{"title": "T3"}]}
  ]
}` + "\n```"

func newTestCourseService(t *testing.T, db *gorm.DB, generate func(ctx context.Context, prompt string) (string, error)) *CourseService {
	t.Helper()
	_, courseRepo, progressRepo, enrollmentRepo := newRepos(db)
	return NewCourseService(
		courseRepo,
		progressRepo,
		enrollmentRepo,
		&stubGenerator{generate: generate},
		&config.Config{},
		nil,
		db,
	)
}

func TestGenerateCourse_MaterializesOrderedWeeks(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "gen@example.com")

	svc := newTestCourseService(t, db, func(ctx context.Context, prompt string) (string, error) {
		return threeWeekFencedPayload, nil
	})

	course, err := svc.GenerateCourse(context.Background(), user.ID, "Intro to Graphs", "basics")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if course.Name != "Intro to Graphs" || course.OwnerUserID != user.ID {
		t.Fatalf("unexpected course: %+v", course)
	}
	if len(course.Weeks) != 3 {
		t.Fatalf("expected 3 weeks, got %d", len(course.Weeks))
	}
	for i, week := range course.Weeks {
		if week.Order != i+1 {
			t.Fatalf("week %d has order %d", i, week.Order)
		}
		if week.ID == 0 {
			t.Fatalf("week %d has no id", i)
		}
	}
	if len(course.Weeks[1].Topics) != 2 {
		t.Fatalf("bare-string topics not materialized: %+v", course.Weeks[1].Topics)
	}
}

func TestGenerateCourse_ProgressCoversEveryWeek(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "cover@example.com")

	svc := newTestCourseService(t, db, func(ctx context.Context, prompt string) (string, error) {
		return threeWeekFencedPayload, nil
	})

	course, err := svc.GenerateCourse(context.Background(), user.ID, "C", "D")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	progress, err := svc.ProgressRepo.FindByUserAndCourse(user.ID, course.ID)
	if err != nil {
		t.Fatalf("progress not created: %v", err)
	}

	// 进度周ID集合与课程周ID集合必须完全一致
	want := map[uint]bool{}
	for _, week := range course.Weeks {
		want[week.ID] = true
	}
	if len(progress.WeekProgress) != len(want) {
		t.Fatalf("expected %d week states, got %d", len(want), len(progress.WeekProgress))
	}
	for _, ws := range progress.WeekProgress {
		if !want[ws.WeekID] {
			t.Fatalf("week state references unknown week %d", ws.WeekID)
		}
		if ws.Completed {
			t.Fatalf("week %d should start incomplete", ws.WeekID)
		}
	}

	enrolled, err := svc.EnrollmentRepo.Exists(user.ID, course.ID)
	if err != nil {
		t.Fatalf("enrollment lookup: %v", err)
	}
	if !enrolled {
		t.Fatal("materialization did not enroll the user")
	}
}

func TestGenerateCourse_GenerationFailurePropagates(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "fail@example.com")

	svc := newTestCourseService(t, db, func(ctx context.Context, prompt string) (string, error) {
		return "", util.ErrGenerationUnavailable
	})

	if _, err := svc.GenerateCourse(context.Background(), user.ID, "C", "D"); !errors.Is(err, util.ErrGenerationUnavailable) {
		t.Fatalf("expected ErrGenerationUnavailable, got %v", err)
	}

	var count int64
	db.Model(&model.Course{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no courses, got %d", count)
	}
}

func TestGenerateCourse_InvalidContentLeavesNothingBehind(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "invalid@example.com")

	svc := newTestCourseService(t, db, func(ctx context.Context, prompt string) (string, error) {
		return "I could not produce a course this time, sorry!", nil
	})

	if _, err := svc.GenerateCourse(context.Background(), user.ID, "C", "D"); !errors.Is(err, util.ErrInvalidStructure) {
		t.Fatalf("expected ErrInvalidStructure, got %v", err)
	}

	var courses, progresses, enrollments int64
	db.Model(&model.Course{}).Count(&courses)
	db.Model(&model.Progress{}).Count(&progresses)
	db.Model(&model.Enrollment{}).Count(&enrollments)
	if courses != 0 || progresses != 0 || enrollments != 0 {
		t.Fatalf("partial materialization: courses=%d progresses=%d enrollments=%d", courses, progresses, enrollments)
	}
}

func TestGenerateCourse_CancelledRequestIsNotMaterialized(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "cancel@example.com")

	ctx, cancel := context.WithCancel(context.Background())

	// 生成调用在请求断开后才返回结果
	svc := newTestCourseService(t, db, func(ctx context.Context, prompt string) (string, error) {
		cancel()
		return threeWeekFencedPayload, nil
	})

	if _, err := svc.GenerateCourse(ctx, user.ID, "C", "D"); err == nil {
		t.Fatal("expected error for cancelled request")
	}

	var count int64
	db.Model(&model.Course{}).Count(&count)
	if count != 0 {
		t.Fatalf("cancelled request was materialized, %d courses", count)
	}
}

func TestGenerateCourse_EndToEndWithProgressRead(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "e2e@example.com")

	svc := newTestCourseService(t, db, func(ctx context.Context, prompt string) (string, error) {
		return threeWeekFencedPayload, nil
	})

	course, err := svc.GenerateCourse(context.Background(), user.ID, "Intro to Graphs", "basics")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	progressSvc := NewProgressService(svc.ProgressRepo, svc.CourseRepo)
	progress, err := progressSvc.GetProgress(user.ID, course.ID)
	if err != nil {
		t.Fatalf("get progress: %v", err)
	}

	if len(progress.WeekProgress) != 3 {
		t.Fatalf("expected 3 week states, got %d", len(progress.WeekProgress))
	}
	for _, ws := range progress.WeekProgress {
		if ws.Completed {
			t.Fatalf("week %d should be incomplete", ws.WeekID)
		}
	}
}

func TestGetCourse_NotFound(t *testing.T) {
	db := newTestDB(t)

	svc := newTestCourseService(t, db, func(ctx context.Context, prompt string) (string, error) {
		return "", nil
	})

	if _, err := svc.GetCourse(12345); !errors.Is(err, util.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestListCourses_WithoutCache(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "list@example.com")
	seedCourse(t, db, user.ID, 2)
	seedCourse(t, db, user.ID, 4)

	svc := newTestCourseService(t, db, func(ctx context.Context, prompt string) (string, error) {
		return "", nil
	})

	courses, err := svc.ListCourses(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(courses) != 2 {
		t.Fatalf("expected 2 courses, got %d", len(courses))
	}
}
