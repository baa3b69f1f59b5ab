package controller

import (
	"course_gen_backend/internal/model"
	"course_gen_backend/internal/service"
	"course_gen_backend/internal/util"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService       *service.UserService
	EnrollmentService *service.EnrollmentService
	StorageService    *service.StorageService
}

func NewUserController(userService *service.UserService, enrollmentService *service.EnrollmentService, storageService *service.StorageService) *UserController {
	return &UserController{
		UserService:       userService,
		EnrollmentService: enrollmentService,
		StorageService:    storageService,
	}
}

// ListUserCourses godoc
// @Summary 我的课程
// @Description 获取当前用户已选的课程及各自进度
// @Tags 用户
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.UserCourseView} "成功"
// @Router /api/user/courses [get]
func (c *UserController) ListUserCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	views, err := c.EnrollmentService.ListUserCourses(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, views)
}

// UploadAvatar godoc
// @Summary 上传头像
// @Description 上传当前用户头像文件
// @Tags 用户
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   file formData file true "头像文件"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/user/avatar/upload [post]
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	filename := "avatars/" + model.GenerateUUID() + filepath.Ext(file.Filename)
	contentType := file.Header.Get("Content-Type")

	url, err := c.StorageService.Upload(ctx.Request.Context(), filename, src, file.Size, contentType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if err := c.UserService.UpdateAvatar(claims.UserID, url); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"avatar": url})
}
