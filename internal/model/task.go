package model

import (
	"time"

	"gorm.io/datatypes"
)

const TaskTableName = "tasks"

// Task 任务模型
// completed_at 仅在状态变为 completed 时写入, 离开 completed 时清空
type Task struct {
	BaseModel
	ProjectID   int64           `gorm:"not null;index" json:"project_id"`
	Title       string          `gorm:"size:200;not null" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	AssignedTo  *int64          `gorm:"index" json:"assigned_to"`
	Status      string          `gorm:"size:20;not null;default:todo;index" json:"status"`
	Priority    string          `gorm:"size:10;not null;default:medium" json:"priority"`
	DueDate     *datatypes.Date `json:"due_date"`
	CompletedAt *time.Time      `json:"completed_at"`

	Project  *Project `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"project,omitempty"`
	Assignee *User    `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
}

func (Task) TableName() string {
	return TaskTableName
}
