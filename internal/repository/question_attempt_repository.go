package repository

import (
	"examprep_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionAttemptRepository struct {
	DB *gorm.DB
}

func NewQuestionAttemptRepository(db *gorm.DB) *QuestionAttemptRepository {
	return &QuestionAttemptRepository{DB: db}
}

func (r *QuestionAttemptRepository) Create(attempt *model.QuestionAttempt) error {
	return r.DB.Create(attempt).Error
}

func (r *QuestionAttemptRepository) CreateBatch(attempts []model.QuestionAttempt) error {
	if len(attempts) == 0 {
		return nil
	}
	return r.DB.Create(&attempts).Error
}

func (r *QuestionAttemptRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuestionAttempt{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *QuestionAttemptRepository) CountCorrectByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuestionAttempt{}).
		Where("user_id = ? AND correct = ?", userID, true).Count(&count).Error
	return count, err
}
