package dto

import (
	"time"

	"student-projects/internal/model"
)

// DocumentResponse 文档响应
type DocumentResponse struct {
	ID           int64         `json:"id"`
	ProjectID    int64         `json:"project_id"`
	Filename     string        `json:"filename"`
	OriginalName string        `json:"original_name"`
	FileSize     int64         `json:"file_size"`
	MimeType     string        `json:"mime_type"`
	Uploader     *UserResponse `json:"uploader,omitempty"`
	CreatedAt    string        `json:"created_at"`
}

func ToDocumentResponse(d *model.Document) *DocumentResponse {
	return &DocumentResponse{
		ID:           d.ID,
		ProjectID:    d.ProjectID,
		Filename:     d.Filename,
		OriginalName: d.OriginalName,
		FileSize:     d.FileSize,
		MimeType:     d.MimeType,
		Uploader:     ToUserResponse(d.Uploader),
		CreatedAt:    d.CreatedAt.Format(time.RFC3339),
	}
}

func ToDocumentResponses(docs []*model.Document) []*DocumentResponse {
	resp := make([]*DocumentResponse, 0, len(docs))
	for _, d := range docs {
		resp = append(resp, ToDocumentResponse(d))
	}
	return resp
}
