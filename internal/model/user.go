package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Mentor  UserRole = "mentor"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name            string     `gorm:"size:100;not null" json:"name"`
	Email           string     `gorm:"size:100;unique;not null" json:"email"`
	Password        string     `gorm:"size:100;not null" json:"-"`
	Role            UserRole   `gorm:"type:enum('student','mentor','admin');default:'student'" json:"role"`
	TargetExam      string     `gorm:"size:50;default:'NEET'" json:"targetExam"` // NEET / JEE 等
	TargetExamDate  *time.Time `json:"targetExamDate"`
	DailyStudyHours float64    `gorm:"default:4" json:"dailyStudyHours"`
	CurrentStreak   int        `gorm:"default:0" json:"currentStreak"`
	LastActiveDate  *time.Time `json:"lastActiveDate"`
	OverallAccuracy int        `gorm:"default:0" json:"overallAccuracy"`
	LastLogin       time.Time  `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}

// FirstName 取名字的第一段，用在问候语里
func (u *User) FirstName() string {
	for i, r := range u.Name {
		if r == ' ' {
			return u.Name[:i]
		}
	}
	return u.Name
}
