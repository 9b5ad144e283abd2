package model

const CommentTableName = "comments"

// Comment 评论模型
// type=recommendation 仅导师可创建
type Comment struct {
	BaseModel
	ProjectID int64  `gorm:"not null;index" json:"project_id"`
	UserID    int64  `gorm:"not null;index" json:"user_id"`
	Comment   string `gorm:"type:text;not null" json:"comment"`
	Type      string `gorm:"size:20;not null;default:comment" json:"type"` // comment/recommendation

	Project *Project `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"project,omitempty"`
	Author  *User    `gorm:"foreignKey:UserID" json:"author,omitempty"`
}

func (Comment) TableName() string {
	return CommentTableName
}
