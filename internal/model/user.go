package model

import "student-projects/pkg/constants"

const UserTableName = "users"

// User 用户模型
// 角色注册时确定, 创建后不可变更（无晋升流程）
type User struct {
	BaseModel
	Username  string `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email     string `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Password  string `gorm:"size:255;not null" json:"-"` // 不返回到前端
	FirstName string `gorm:"size:50;not null" json:"first_name"`
	LastName  string `gorm:"size:50;not null" json:"last_name"`
	Role      string `gorm:"size:20;not null;default:student;index" json:"role"` // student/supervisor
}

// TableName 指定表名
func (User) TableName() string {
	return UserTableName
}

// FullName 用户全名, 用于通知文案
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsSupervisor 是否为导师
func (u *User) IsSupervisor() bool {
	return u.Role == constants.RoleSupervisor
}
