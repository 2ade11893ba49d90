package repository

import (
	"examprep_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) UpdateLastLogin(id uint) error {
	return r.DB.Model(&model.User{}).Where("id = ?", id).
		Update("last_login", time.Now()).Error
}

// UpdateStreak 更新连续打卡天数和最近活跃日期
func (r *UserRepository) UpdateStreak(id uint, streak int, activeDate time.Time) error {
	return r.DB.Model(&model.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"current_streak":   streak,
		"last_active_date": activeDate,
	}).Error
}

// UpdateOverallAccuracy 练习服务重算全局准确率后回写
func (r *UserRepository) UpdateOverallAccuracy(id uint, accuracy int) error {
	return r.DB.Model(&model.User{}).Where("id = ?", id).
		Update("overall_accuracy", accuracy).Error
}

// UpdateSettings 调整学习设置，只允许改这两个字段
func (r *UserRepository) UpdateSettings(id uint, dailyStudyHours float64, examDate *time.Time) error {
	updates := map[string]interface{}{
		"daily_study_hours": dailyStudyHours,
	}
	if examDate != nil {
		updates["target_exam_date"] = examDate
	}
	return r.DB.Model(&model.User{}).Where("id = ?", id).Updates(updates).Error
}
