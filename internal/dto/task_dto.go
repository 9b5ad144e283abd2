package dto

import (
	"time"

	"student-projects/internal/model"
)

// CreateTaskRequest 创建任务请求
type CreateTaskRequest struct {
	ProjectID   int64   `json:"project_id" binding:"required"`
	Title       string  `json:"title" binding:"required,max=200"`
	Description string  `json:"description"`
	AssignedTo  *int64  `json:"assigned_to"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"due_date"`
}

// UpdateTaskStatusRequest 更新任务状态请求
type UpdateTaskStatusRequest struct {
	TaskID int64  `json:"task_id" binding:"required"`
	Status string `json:"status" binding:"required"`
}

// TaskResponse 任务响应
type TaskResponse struct {
	ID          int64         `json:"id"`
	ProjectID   int64         `json:"project_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Assignee    *UserResponse `json:"assignee,omitempty"`
	Status      string        `json:"status"`
	Priority    string        `json:"priority"`
	DueDate     *string       `json:"due_date"`
	CompletedAt *string       `json:"completed_at"`
	CreatedAt   string        `json:"created_at"`
}

// UpdateTaskStatusResponse 更新任务状态响应, 带回项目最新进度
type UpdateTaskStatusResponse struct {
	Task               *TaskResponse `json:"task"`
	ProgressPercentage int           `json:"progress_percentage"`
}

func ToTaskResponse(t *model.Task) *TaskResponse {
	resp := &TaskResponse{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		Title:       t.Title,
		Description: t.Description,
		Assignee:    ToUserResponse(t.Assignee),
		Status:      t.Status,
		Priority:    t.Priority,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	}
	if t.DueDate != nil {
		due := time.Time(*t.DueDate).Format("2006-01-02")
		resp.DueDate = &due
	}
	if t.CompletedAt != nil {
		done := t.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &done
	}
	return resp
}

func ToTaskResponses(tasks []*model.Task) []*TaskResponse {
	resp := make([]*TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		resp = append(resp, ToTaskResponse(t))
	}
	return resp
}
