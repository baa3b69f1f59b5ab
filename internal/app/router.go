package app

import (
	"course_gen_backend/internal/config"
	"course_gen_backend/internal/middleware"
	"course_gen_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		// 课程
		authGroup.POST("/courses/generate", c.course.GenerateCourse)
		authGroup.GET("/courses", c.course.ListCourses)
		authGroup.GET("/courses/:id", c.course.GetCourse)
		authGroup.POST("/courses/select", c.course.SelectCourse)

		// 用户
		authGroup.GET("/user/courses", c.user.ListUserCourses)
		authGroup.POST("/user/avatar/upload", c.user.UploadAvatar)

		// 进度
		authGroup.POST("/progress/initialize", c.progress.InitializeProgress)
		authGroup.PUT("/progress/update", c.progress.UpdateWeekProgress)
		authGroup.GET("/progress/:courseId", c.progress.GetProgress)
	}
}
