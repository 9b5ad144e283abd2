package model

import (
	"gorm.io/datatypes"
)

const ProjectTableName = "projects"
const ProjectMemberTableName = "project_members"

// Project 项目模型
// progress_percentage 是派生缓存, 只能由任务行重算得出, 不允许单独修改
type Project struct {
	BaseModel
	Title              string          `gorm:"size:200;not null" json:"title"`
	Description        string          `gorm:"type:text;not null" json:"description"`
	Domain             string          `gorm:"size:100" json:"domain"`
	StartDate          datatypes.Date  `gorm:"not null" json:"start_date"`
	EndDate            *datatypes.Date `json:"end_date"`
	Status             string          `gorm:"size:20;not null;default:planning;index" json:"status"`
	ProgressPercentage int             `gorm:"not null;default:0" json:"progress_percentage"`
	SupervisorID       *int64          `gorm:"index" json:"supervisor_id"`
	CreatedBy          int64           `gorm:"not null;index" json:"created_by"`

	Supervisor *User `gorm:"foreignKey:SupervisorID" json:"supervisor,omitempty"`
	Creator    *User `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`

	Members []ProjectMember `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
}

func (Project) TableName() string {
	return ProjectTableName
}

// ProjectMember 项目成员
// (project_id, user_id) 唯一; 创建者自动成为 leader
type ProjectMember struct {
	BaseModel
	ProjectID int64  `gorm:"not null;uniqueIndex:idx_project_user" json:"project_id"`
	UserID    int64  `gorm:"not null;uniqueIndex:idx_project_user;index" json:"user_id"`
	Role      string `gorm:"size:20;not null;default:member" json:"role"` // leader/member

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (ProjectMember) TableName() string {
	return ProjectMemberTableName
}
