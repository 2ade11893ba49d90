package model

// PlannerTaskRecord 任务勾选的落库记录。计划本身每次重算不落库，
// 这里只记每个 (用户, 日期, 科目, 知识点) 最近一次的完成状态，
// 由后台异步写入。
type PlannerTaskRecord struct {
	BaseModel
	UserID    uint   `gorm:"not null;uniqueIndex:idx_user_task,priority:1" json:"userId"`
	Date      string `gorm:"size:10;not null;uniqueIndex:idx_user_task,priority:2" json:"date"`
	Subject   string `gorm:"size:50;not null;uniqueIndex:idx_user_task,priority:3" json:"subject"`
	Topic     string `gorm:"size:100;not null;uniqueIndex:idx_user_task,priority:4" json:"topic"`
	TaskID    string `gorm:"size:255;not null" json:"taskId"`
	TaskType  string `gorm:"size:20" json:"taskType"`
	Completed bool   `gorm:"default:false" json:"completed"`
	Minutes   int    `gorm:"default:0" json:"minutes"`
}

func (PlannerTaskRecord) TableName() string {
	return "planner_task_records"
}
