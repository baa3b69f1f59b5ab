package controller

import (
	"course_gen_backend/internal/service"
	"course_gen_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

type InitializeProgressRequest struct {
	CourseID uint `json:"courseId" binding:"required"`
}

// InitializeProgress godoc
// @Summary 初始化课程进度
// @Description 为当前用户和指定课程建立进度记录，每个课程周一条
// @Tags 进度
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body InitializeProgressRequest true "课程ID"
// @Success 201 {object} util.Response{data=model.Progress} "创建成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Failure 409 {object} util.Response "进度已初始化"
// @Router /api/progress/initialize [post]
func (c *ProgressController) InitializeProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req InitializeProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.ProgressService.Initialize(claims.UserID, req.CourseID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx, "course not found")
		case errors.Is(err, util.ErrProgressExists):
			util.Conflict(ctx, "progress already initialized for this course")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, progress)
}

// GetProgress godoc
// @Summary 查询课程进度
// @Description 获取当前用户在指定课程下的每周完成状态
// @Tags 进度
// @Produce  json
// @Security ApiKeyAuth
// @Param   courseId path int true "课程ID"
// @Success 200 {object} util.Response{data=model.Progress} "成功"
// @Failure 404 {object} util.Response "进度不存在"
// @Router /api/progress/{courseId} [get]
func (c *ProgressController) GetProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID, err := strconv.ParseUint(ctx.Param("courseId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	progress, err := c.ProgressService.GetProgress(claims.UserID, uint(courseID))
	if err != nil {
		if errors.Is(err, util.ErrProgressNotFound) {
			util.NotFound(ctx, "progress not found")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, progress)
}

type UpdateWeekProgressRequest struct {
	CourseID  uint  `json:"courseId" binding:"required"`
	WeekID    uint  `json:"weekId" binding:"required"`
	Completed *bool `json:"completed" binding:"required"`
}

// UpdateWeekProgress godoc
// @Summary 更新单周完成状态
// @Description 设置指定课程周的完成状态，重复同值调用幂等
// @Tags 进度
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body UpdateWeekProgressRequest true "课程ID、周ID与完成状态"
// @Success 200 {object} util.Response{data=model.Progress} "成功"
// @Failure 404 {object} util.Response "进度或周不存在"
// @Router /api/progress/update [put]
func (c *ProgressController) UpdateWeekProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdateWeekProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.ProgressService.SetWeekCompletion(claims.UserID, req.CourseID, req.WeekID, *req.Completed)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrProgressNotFound):
			util.NotFound(ctx, "progress not found")
		case errors.Is(err, util.ErrWeekNotFound):
			util.NotFound(ctx, "week not found")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, progress)
}
