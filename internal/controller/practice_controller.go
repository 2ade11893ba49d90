package controller

import (
	"errors"

	"examprep_backend/internal/service"
	"examprep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PracticeController struct {
	PracticeService *service.PracticeService
}

func NewPracticeController(practiceService *service.PracticeService) *PracticeController {
	return &PracticeController{PracticeService: practiceService}
}

// AttemptsRequest 一次练习提交
// swagger:model AttemptsRequest
type AttemptsRequest struct {
	Subject  string                 `json:"subject" binding:"required"`
	Chapter  string                 `json:"chapter"`
	Topic    string                 `json:"topic" binding:"required"`
	Source   string                 `json:"source" binding:"omitempty,oneof=practice mock_test revision"`
	Attempts []service.AttemptInput `json:"attempts" binding:"required,dive"`
}

// RecordAttempts godoc
// @Summary 提交练习作答
// @Description 记录一个知识点下的若干道题，滚动更新掌握度和连续打卡
// @Tags 练习
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AttemptsRequest true "作答数据"
// @Success 201 {object} util.Response{data=service.PracticeResult}
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/practice/attempts [post]
func (c *PracticeController) RecordAttempts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AttemptsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.PracticeService.RecordAttempts(claims.UserID, req.Subject, req.Chapter, req.Topic, req.Source, req.Attempts)
	if err != nil {
		if errors.Is(err, util.ErrNoAttempts) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, result)
}
