package repository

import (
	"gorm.io/gorm"

	"student-projects/internal/model"
	pkgErrors "student-projects/pkg/responses"
)

type NotificationRepository interface {
	Create(notification *model.Notification) error
	CreateBatch(notifications []*model.Notification) error
	ListByUser(userID int64, unreadOnly bool) ([]*model.Notification, error)
	CountUnread(userID int64) (int64, error)
	MarkRead(id, userID int64) error
	MarkAllRead(userID int64) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(notification *model.Notification) error {
	if err := r.db.Create(notification).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建通知失败", err)
	}
	return nil
}

func (r *notificationRepository) CreateBatch(notifications []*model.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	if err := r.db.Create(&notifications).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "批量创建通知失败", err)
	}
	return nil
}

func (r *notificationRepository) ListByUser(userID int64, unreadOnly bool) ([]*model.Notification, error) {
	query := r.db.Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var notifications []*model.Notification
	err := query.Order("created_at DESC").Find(&notifications).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询通知列表失败", err)
	}
	return notifications, nil
}

func (r *notificationRepository) CountUnread(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询未读通知数量失败", err)
	}
	return count, nil
}

// MarkRead 将指定通知标记为已读, 仅当通知属于该用户时生效
func (r *notificationRepository) MarkRead(id, userID int64) error {
	result := r.db.Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if result.Error != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "标记通知已读失败", result.Error)
	}
	if result.RowsAffected == 0 {
		return pkgErrors.ErrNotificationNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(userID int64) (int64, error) {
	result := r.db.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "标记全部通知已读失败", result.Error)
	}
	return result.RowsAffected, nil
}
