package controller

import (
	"errors"
	"time"

	"examprep_backend/internal/service"
	"examprep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PlannerController struct {
	PlannerService *service.PlannerService
	ExportService  *service.ExportService
}

func NewPlannerController(plannerService *service.PlannerService, exportService *service.ExportService) *PlannerController {
	return &PlannerController{
		PlannerService: plannerService,
		ExportService:  exportService,
	}
}

// State godoc
// @Summary 当前学习计划
// @Description 返回今日计划、周计划、复习队列和统计的完整视图，数据不足时返回 needsDiagnostic
// @Tags 计划
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.PlannerState}
// @Failure 401 {object} util.Response "未登录"
// @Failure 500 {object} util.Response "服务器内部错误"
// @Router /api/planner [get]
func (c *PlannerController) State(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	state, err := c.PlannerService.State(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, state)
}

// Week godoc
// @Summary 本周计划
// @Tags 计划
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=object}
// @Router /api/planner/week [get]
func (c *PlannerController) Week(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	state, err := c.PlannerService.State(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"week": state.Week, "needsDiagnostic": state.NeedsDiagnostic})
}

// RevisionQueue godoc
// @Summary 复习队列
// @Description 按遗忘风险排序的待复习知识点
// @Tags 计划
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=object}
// @Router /api/planner/revision-queue [get]
func (c *PlannerController) RevisionQueue(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	state, err := c.PlannerService.State(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"revisionQueue": state.RevisionQueue})
}

// ToggleTask godoc
// @Summary 勾选/取消任务
// @Description 乐观更新，落库异步完成
// @Tags 计划
// @Produce json
// @Security BearerAuth
// @Param taskId path string true "任务 ID"
// @Success 200 {object} util.Response{data=service.PlannerState}
// @Failure 404 {object} util.Response "任务不存在"
// @Router /api/planner/tasks/{taskId}/toggle [post]
func (c *PlannerController) ToggleTask(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	state, err := c.PlannerService.ToggleTask(ctx.Request.Context(), claims.UserID, ctx.Param("taskId"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrTaskNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPlanNotLoaded):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, state)
}

// ReplanRequest 重排今天的请求，availableMinutes 不传沿用档案预算
// swagger:model ReplanRequest
type ReplanRequest struct {
	AvailableMinutes int `json:"availableMinutes" binding:"omitempty,min=15,max=720"`
}

// Replan godoc
// @Summary 重排今天的计划
// @Description 按剩余可用时长重建今天的任务，并重置当天的完成状态
// @Tags 计划
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ReplanRequest false "剩余可用时长（分钟）"
// @Success 200 {object} util.Response{data=service.PlannerState}
// @Failure 400 {object} util.Response "参数非法"
// @Router /api/planner/replan [post]
func (c *PlannerController) Replan(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ReplanRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}

	state, err := c.PlannerService.Replan(ctx.Request.Context(), claims.UserID, req.AvailableMinutes)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, state)
}

// SettingsRequest 学习设置
// swagger:model SettingsRequest
type SettingsRequest struct {
	DailyStudyHours float64 `json:"dailyStudyHours" binding:"required"`
	TargetExamDate  string  `json:"targetExamDate" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateSettings godoc
// @Summary 调整学习设置
// @Description 修改每日学习时长或考试日期，保存后立即重建计划
// @Tags 计划
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SettingsRequest true "设置"
// @Success 200 {object} util.Response{data=service.PlannerState}
// @Failure 400 {object} util.Response "参数非法"
// @Router /api/planner/settings [put]
func (c *PlannerController) UpdateSettings(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var examDate *time.Time
	if req.TargetExamDate != "" {
		d, err := time.Parse(util.DateFormat, req.TargetExamDate)
		if err != nil {
			util.BadRequest(ctx, "invalid targetExamDate")
			return
		}
		examDate = &d
	}

	state, err := c.PlannerService.UpdateSettings(ctx.Request.Context(), claims.UserID, req.DailyStudyHours, examDate)
	if err != nil {
		if errors.Is(err, util.ErrInvalidStudyHours) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, state)
}

// Export godoc
// @Summary 导出周计划
// @Description 把当前周计划归档成 JSON 文件并返回下载地址
// @Tags 计划
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.ExportResult}
// @Failure 409 {object} util.Response "练习数据不足"
// @Router /api/planner/export [post]
func (c *PlannerController) Export(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.ExportService.ExportWeek(ctx.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrInsufficientData) {
			util.Conflict(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
