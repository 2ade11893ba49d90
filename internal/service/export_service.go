package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"examprep_backend/internal/util"

	"github.com/google/uuid"
)

// ExportResult 归档回执
type ExportResult struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// ExportService 把当前的周计划整份归档成 JSON 文件，
// 学生和家长可以留档或打印。
type ExportService struct {
	Planner *PlannerService
	Storage *StorageService
}

func NewExportService(plannerService *PlannerService, storageService *StorageService) *ExportService {
	return &ExportService{Planner: plannerService, Storage: storageService}
}

type weekArchive struct {
	UserID     uint        `json:"userId"`
	ExportedAt time.Time   `json:"exportedAt"`
	DaysToExam int         `json:"daysToExam"`
	Narrative  string      `json:"narrative"`
	Week       interface{} `json:"week"`
	Revision   interface{} `json:"revisionQueue"`
	Stats      interface{} `json:"stats"`
}

// ExportWeek 导出当前周计划，数据不足出不了计划时直接报错，不写空档案
func (s *ExportService) ExportWeek(ctx context.Context, userID uint) (*ExportResult, error) {
	state, err := s.Planner.State(ctx, userID)
	if err != nil {
		return nil, err
	}
	if state.NeedsDiagnostic {
		return nil, util.ErrInsufficientData
	}

	archive := weekArchive{
		UserID:     userID,
		ExportedAt: time.Now(),
		DaysToExam: state.DaysToExam,
		Narrative:  state.Narrative,
		Week:       state.Week,
		Revision:   state.RevisionQueue,
		Stats:      state.Stats,
	}
	data, err := json.MarshalIndent(archive, "", "  ")
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("plans/%d/week-%s-%s.json",
		userID, state.Today.Date, uuid.New().String()[:8])
	url, err := s.Storage.Upload(ctx, filename, bytes.NewReader(data), int64(len(data)), "application/json")
	if err != nil {
		return nil, err
	}
	return &ExportResult{Filename: filename, URL: url}, nil
}
