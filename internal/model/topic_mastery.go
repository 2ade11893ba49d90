package model

import "time"

// TopicMastery 每个用户每个知识点一行，练习服务滚动更新，
// 是规划引擎唯一的事实来源。
// swagger:model TopicMastery
type TopicMastery struct {
	BaseModel
	UserID             uint       `gorm:"not null;uniqueIndex:idx_user_topic,priority:1" json:"userId"`
	Subject            string     `gorm:"size:50;not null;uniqueIndex:idx_user_topic,priority:2" json:"subject"`
	Chapter            string     `gorm:"size:100;uniqueIndex:idx_user_topic,priority:3" json:"chapter"`
	Topic              string     `gorm:"size:100;not null;uniqueIndex:idx_user_topic,priority:4" json:"topic"`
	Accuracy           int        `gorm:"default:0" json:"accuracy"` // 百分比 0-100
	QuestionsAttempted int        `gorm:"default:0" json:"questionsAttempted"`
	CorrectCount       int        `gorm:"default:0" json:"correctCount"`
	LastPracticed      *time.Time `json:"lastPracticed"`
	StuckDays          int        `gorm:"default:0" json:"stuckDays"` // 准确率停滞不前的天数
}

func (TopicMastery) TableName() string {
	return "topic_masteries"
}
