package model

const DocumentTableName = "documents"

// Document 项目文档元数据
// filename 是服务端生成的存储文件名, original_name 才是用户上传时的原始文件名
type Document struct {
	BaseModel
	ProjectID    int64  `gorm:"not null;index" json:"project_id"`
	UploadedBy   int64  `gorm:"not null;index" json:"uploaded_by"`
	Filename     string `gorm:"size:255;not null" json:"filename"`
	OriginalName string `gorm:"size:255;not null" json:"original_name"`
	FileSize     int64  `gorm:"not null" json:"file_size"`
	MimeType     string `gorm:"size:100;not null" json:"mime_type"`
	UploadPath   string `gorm:"size:500;not null" json:"-"` // 服务器本地路径, 不暴露给前端

	Project  *Project `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"project,omitempty"`
	Uploader *User    `gorm:"foreignKey:UploadedBy" json:"uploader,omitempty"`
}

func (Document) TableName() string {
	return DocumentTableName
}
