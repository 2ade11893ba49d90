package repository

import (
	"context"

	"examprep_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PlannerTaskRepository struct {
	DB *gorm.DB
}

func NewPlannerTaskRepository(db *gorm.DB) *PlannerTaskRepository {
	return &PlannerTaskRepository{DB: db}
}

// UpsertTaskState 勾选落库，同一个 (用户, 日期, 科目, 知识点) 只保留最新状态
func (r *PlannerTaskRepository) UpsertTaskState(ctx context.Context, record *model.PlannerTaskRecord) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"}, {Name: "date"}, {Name: "subject"}, {Name: "topic"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"task_id", "task_type", "completed", "minutes"}),
	}).Create(record).Error
}

// ListCompletedInRange 查某段日期内已完成的记录，周完成率用
func (r *PlannerTaskRepository) ListCompletedInRange(userID uint, from, to string) ([]model.PlannerTaskRecord, error) {
	var rows []model.PlannerTaskRecord
	err := r.DB.Where("user_id = ? AND date >= ? AND date <= ? AND completed = ?",
		userID, from, to, true).Find(&rows).Error
	return rows, err
}
