package repository

import (
	"examprep_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TopicMasteryRepository struct {
	DB *gorm.DB
}

func NewTopicMasteryRepository(db *gorm.DB) *TopicMasteryRepository {
	return &TopicMasteryRepository{DB: db}
}

// ListByUser 按科目、章节、知识点排序返回，保证引擎输入顺序稳定
func (r *TopicMasteryRepository) ListByUser(userID uint) ([]model.TopicMastery, error) {
	var rows []model.TopicMastery
	err := r.DB.Where("user_id = ?", userID).
		Order("subject, chapter, topic").
		Find(&rows).Error
	return rows, err
}

func (r *TopicMasteryRepository) Find(userID uint, subject, chapter, topic string) (*model.TopicMastery, error) {
	var row model.TopicMastery
	err := r.DB.Where("user_id = ? AND subject = ? AND chapter = ? AND topic = ?",
		userID, subject, chapter, topic).First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Upsert 按 (用户, 科目, 章节, 知识点) 唯一键写入或更新滚动统计
func (r *TopicMasteryRepository) Upsert(row *model.TopicMastery) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"}, {Name: "subject"}, {Name: "chapter"}, {Name: "topic"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"accuracy", "questions_attempted", "correct_count", "last_practiced", "stuck_days",
		}),
	}).Create(row).Error
}

func (r *TopicMasteryRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.TopicMastery{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
