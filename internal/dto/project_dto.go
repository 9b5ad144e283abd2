package dto

import (
	"time"

	"student-projects/internal/model"
)

// CreateProjectRequest 创建项目请求, 日期格式 2006-01-02
type CreateProjectRequest struct {
	Title        string  `json:"title" binding:"required,max=200"`
	Description  string  `json:"description" binding:"required"`
	Domain       string  `json:"domain" binding:"omitempty,max=100"`
	StartDate    string  `json:"start_date" binding:"required"`
	EndDate      *string `json:"end_date"`
	SupervisorID *int64  `json:"supervisor_id"`
	MemberIDs    []int64 `json:"member_ids"`
}

// UpdateProjectRequest 更新项目请求
type UpdateProjectRequest struct {
	Title        string  `json:"title" binding:"required,max=200"`
	Description  string  `json:"description" binding:"required"`
	Domain       string  `json:"domain" binding:"omitempty,max=100"`
	StartDate    string  `json:"start_date" binding:"required"`
	EndDate      *string `json:"end_date"`
	SupervisorID *int64  `json:"supervisor_id"`
	MemberIDs    []int64 `json:"member_ids"`
}

// UpdateProjectStatusRequest 更新项目状态请求
type UpdateProjectStatusRequest struct {
	ProjectID int64  `json:"project_id" binding:"required"`
	Status    string `json:"status" binding:"required"`
}

// DeleteProjectRequest 删除项目请求
type DeleteProjectRequest struct {
	ProjectID int64 `json:"project_id" binding:"required"`
}

// ProjectMemberResponse 项目成员响应
type ProjectMemberResponse struct {
	UserID   int64  `json:"user_id"`
	FullName string `json:"full_name"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// ProjectResponse 项目响应
type ProjectResponse struct {
	ID                 int64                    `json:"id"`
	Title              string                   `json:"title"`
	Description        string                   `json:"description"`
	Domain             string                   `json:"domain"`
	StartDate          string                   `json:"start_date"`
	EndDate            *string                  `json:"end_date"`
	Status             string                   `json:"status"`
	ProgressPercentage int                      `json:"progress_percentage"`
	Supervisor         *UserResponse            `json:"supervisor,omitempty"`
	Creator            *UserResponse            `json:"creator,omitempty"`
	Members            []*ProjectMemberResponse `json:"members,omitempty"`
	CreatedAt          string                   `json:"created_at"`
}

func ToProjectResponse(p *model.Project) *ProjectResponse {
	resp := &ProjectResponse{
		ID:                 p.ID,
		Title:              p.Title,
		Description:        p.Description,
		Domain:             p.Domain,
		StartDate:          time.Time(p.StartDate).Format("2006-01-02"),
		Status:             p.Status,
		ProgressPercentage: p.ProgressPercentage,
		Supervisor:         ToUserResponse(p.Supervisor),
		Creator:            ToUserResponse(p.Creator),
		CreatedAt:          p.CreatedAt.Format(time.RFC3339),
	}
	if p.EndDate != nil {
		end := time.Time(*p.EndDate).Format("2006-01-02")
		resp.EndDate = &end
	}
	for _, m := range p.Members {
		member := &ProjectMemberResponse{
			UserID: m.UserID,
			Role:   m.Role,
		}
		if m.User != nil {
			member.FullName = m.User.FullName()
			member.Username = m.User.Username
		}
		resp.Members = append(resp.Members, member)
	}
	return resp
}

// ProjectDetailResponse 项目详情响应, 聚合任务/评论/文档
type ProjectDetailResponse struct {
	*ProjectResponse
	Tasks     []*TaskResponse     `json:"tasks"`
	Comments  []*CommentResponse  `json:"comments"`
	Documents []*DocumentResponse `json:"documents"`
}

func ToProjectResponses(projects []*model.Project) []*ProjectResponse {
	resp := make([]*ProjectResponse, 0, len(projects))
	for _, p := range projects {
		resp = append(resp, ToProjectResponse(p))
	}
	return resp
}
