package util

import "errors"

var (
	ErrUserNotFound    = errors.New("用户不存在")
	ErrEmailRegistered = errors.New("该邮箱已被注册")
	ErrUnauthorized    = errors.New("unauthorized")

	ErrCourseNotFound   = errors.New("course not found")
	ErrProgressExists   = errors.New("progress already initialized")
	ErrProgressNotFound = errors.New("progress not found")
	ErrWeekNotFound     = errors.New("week not found")

	// 课程生成相关错误：对外只返回统一提示，原始错误仅写日志
	ErrGenerationUnavailable = errors.New("course generation service unavailable")
	ErrGenerationEmpty       = errors.New("course generation returned empty response")
	ErrInvalidStructure      = errors.New("generated course content has invalid structure")
)
