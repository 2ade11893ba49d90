package repository

import (
	"context"

	"examprep_backend/internal/model"

	"gorm.io/gorm"
)

// SnapshotRepository 规划会话一次加载需要的三类读，
// 拆成独立方法方便上层并行调用。
type SnapshotRepository struct {
	DB *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{DB: db}
}

func (r *SnapshotRepository) Profile(ctx context.Context, userID uint) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).First(&user, userID).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *SnapshotRepository) TopicMastery(ctx context.Context, userID uint) ([]model.TopicMastery, error) {
	var rows []model.TopicMastery
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).
		Order("subject, chapter, topic").
		Find(&rows).Error
	return rows, err
}

func (r *SnapshotRepository) QuestionCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.QuestionAttempt{}).
		Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
