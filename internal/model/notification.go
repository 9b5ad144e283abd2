package model

const NotificationTableName = "notifications"

// Notification 站内通知
// 创建后只有 is_read 可变
type Notification struct {
	BaseModel
	UserID    int64  `gorm:"not null;index" json:"user_id"`
	ProjectID int64  `gorm:"not null;index" json:"project_id"`
	Title     string `gorm:"size:200;not null" json:"title"`
	Message   string `gorm:"type:text" json:"message"`
	Severity  string `gorm:"size:20;not null;default:info" json:"severity"` // info/warning/success/danger
	IsRead    bool   `gorm:"not null;default:false;index" json:"is_read"`

	Project *Project `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"project,omitempty"`
}

func (Notification) TableName() string {
	return NotificationTableName
}
