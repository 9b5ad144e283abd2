package dto

import (
	"time"

	"student-projects/internal/model"
)

// AddCommentRequest 添加评论请求
type AddCommentRequest struct {
	ProjectID int64  `json:"project_id" binding:"required"`
	Comment   string `json:"comment" binding:"required"`
	Type      string `json:"type"`
}

// CommentResponse 评论响应
type CommentResponse struct {
	ID        int64         `json:"id"`
	ProjectID int64         `json:"project_id"`
	Comment   string        `json:"comment"`
	Type      string        `json:"type"`
	Author    *UserResponse `json:"author,omitempty"`
	CreatedAt string        `json:"created_at"`
}

func ToCommentResponse(c *model.Comment) *CommentResponse {
	return &CommentResponse{
		ID:        c.ID,
		ProjectID: c.ProjectID,
		Comment:   c.Comment,
		Type:      c.Type,
		Author:    ToUserResponse(c.Author),
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}

func ToCommentResponses(comments []*model.Comment) []*CommentResponse {
	resp := make([]*CommentResponse, 0, len(comments))
	for _, c := range comments {
		resp = append(resp, ToCommentResponse(c))
	}
	return resp
}
