package dto

import (
	"time"

	"student-projects/internal/model"
)

// MarkNotificationReadRequest 标记通知已读请求
type MarkNotificationReadRequest struct {
	NotificationID int64 `json:"notification_id" binding:"required"`
}

// ListNotificationsQuery 查询通知列表
type ListNotificationsQuery struct {
	UnreadOnly bool `form:"unread_only"`
}

// NotificationResponse 通知响应
type NotificationResponse struct {
	ID        int64  `json:"id"`
	ProjectID int64  `json:"project_id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Severity  string `json:"severity"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}

// NotificationListResponse 通知列表响应
type NotificationListResponse struct {
	Notifications []*NotificationResponse `json:"notifications"`
	UnreadCount   int64                   `json:"unread_count"`
}

// MarkAllReadResponse 全部标记已读响应
type MarkAllReadResponse struct {
	MarkedCount int64 `json:"marked_count"`
}

func ToNotificationResponse(n *model.Notification) *NotificationResponse {
	return &NotificationResponse{
		ID:        n.ID,
		ProjectID: n.ProjectID,
		Title:     n.Title,
		Message:   n.Message,
		Severity:  n.Severity,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
}

func ToNotificationResponses(notifications []*model.Notification) []*NotificationResponse {
	resp := make([]*NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		resp = append(resp, ToNotificationResponse(n))
	}
	return resp
}
