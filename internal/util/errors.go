package util

import "errors"

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrPlanNotLoaded      = errors.New("plan not loaded")
	ErrTaskNotFound       = errors.New("task not found")
	ErrInvalidStudyHours  = errors.New("daily study hours must be between 1 and 12")
	ErrNoAttempts         = errors.New("no attempts submitted")
	ErrInsufficientData   = errors.New("not enough practice data to build a plan")
)
