package service

import (
	"github.com/samber/lo"
	"go.uber.org/zap"

	"student-projects/internal/dto"
	"student-projects/internal/model"
	"student-projects/internal/pkg/logger"
	"student-projects/internal/repository"
)

// NotificationService 站内通知. 通知写入失败不阻断主流程, 只记录日志.
type NotificationService interface {
	Notify(userID, projectID int64, title, message, severity string) error
	FanOut(project *model.Project, actorID int64, title, message, severity string, excludeIDs ...int64)
	ListByUser(userID int64, unreadOnly bool) (*dto.NotificationListResponse, error)
	MarkRead(id, userID int64) error
	MarkAllRead(userID int64) (int64, error)
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
	memberRepo       repository.ProjectMemberRepository
}

func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	memberRepo repository.ProjectMemberRepository,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		memberRepo:       memberRepo,
	}
}

func (s *notificationService) Notify(userID, projectID int64, title, message, severity string) error {
	return s.notificationRepo.Create(&model.Notification{
		UserID:    userID,
		ProjectID: projectID,
		Title:     title,
		Message:   message,
		Severity:  severity,
	})
}

// FanOut 向项目相关人员(创建者, 导师, 成员)发送通知, 不含触发操作的用户本人与 excludeIDs
func (s *notificationService) FanOut(project *model.Project, actorID int64, title, message, severity string, excludeIDs ...int64) {
	recipients, err := s.recipients(project)
	if err != nil {
		logger.Error("查询通知接收人失败", zap.Int64("project_id", project.ID), zap.Error(err))
		return
	}

	notifications := make([]*model.Notification, 0, len(recipients))
	for _, userID := range recipients {
		if userID == actorID || lo.Contains(excludeIDs, userID) {
			continue
		}
		notifications = append(notifications, &model.Notification{
			UserID:    userID,
			ProjectID: project.ID,
			Title:     title,
			Message:   message,
			Severity:  severity,
		})
	}
	if err := s.notificationRepo.CreateBatch(notifications); err != nil {
		logger.Error("批量发送通知失败", zap.Int64("project_id", project.ID), zap.Error(err))
	}
}

func (s *notificationService) recipients(project *model.Project) ([]int64, error) {
	memberIDs, err := s.memberRepo.ListUserIDs(project.ID)
	if err != nil {
		return nil, err
	}

	ids := append([]int64{project.CreatedBy}, memberIDs...)
	if project.SupervisorID != nil {
		ids = append(ids, *project.SupervisorID)
	}
	return lo.Uniq(ids), nil
}

func (s *notificationService) ListByUser(userID int64, unreadOnly bool) (*dto.NotificationListResponse, error) {
	notifications, err := s.notificationRepo.ListByUser(userID, unreadOnly)
	if err != nil {
		return nil, err
	}
	unread, err := s.notificationRepo.CountUnread(userID)
	if err != nil {
		return nil, err
	}
	return &dto.NotificationListResponse{
		Notifications: dto.ToNotificationResponses(notifications),
		UnreadCount:   unread,
	}, nil
}

func (s *notificationService) MarkRead(id, userID int64) error {
	return s.notificationRepo.MarkRead(id, userID)
}

func (s *notificationService) MarkAllRead(userID int64) (int64, error) {
	return s.notificationRepo.MarkAllRead(userID)
}
