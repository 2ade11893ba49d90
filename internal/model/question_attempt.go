package model

// QuestionAttempt 逐题作答流水，只追加不修改
type QuestionAttempt struct {
	BaseModel
	UserID       uint   `gorm:"not null;index" json:"userId"`
	Subject      string `gorm:"size:50;not null" json:"subject"`
	Chapter      string `gorm:"size:100" json:"chapter"`
	Topic        string `gorm:"size:100;not null" json:"topic"`
	Correct      bool   `gorm:"not null" json:"correct"`
	TimeTakenSec int    `gorm:"default:0" json:"timeTakenSec"`
	Source       string `gorm:"size:30;default:'practice'" json:"source"` // practice / mock_test / revision
}

func (QuestionAttempt) TableName() string {
	return "question_attempts"
}
