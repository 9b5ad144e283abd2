package handler

import (
	"github.com/gin-gonic/gin"

	"student-projects/internal/api/middleware"
	"student-projects/internal/dto"
	"student-projects/internal/service"
	"student-projects/pkg/responses"
	"student-projects/pkg/utils"
)

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// List 通知列表
// @Summary 查询当前用户通知
// @Description 附带未读数量, 可只看未读
// @Tags 通知
// @Produce json
// @Security ApiKeyAuth
// @Param unread_only query bool false "只看未读"
// @Success 200 {object} dto.NotificationListResponse
// @Router /api/v1/notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	var query dto.ListNotificationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		responses.ErrorWithDetail(c, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.notificationService.ListByUser(middleware.GetUserID(c), query.UnreadOnly)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, resp)
}

// MarkRead 标记通知已读
// @Summary 标记单条通知已读
// @Description 只能标记属于自己的通知
// @Tags 通知
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.MarkNotificationReadRequest true "标记已读请求"
// @Success 200 {object} responses.Response
// @Router /api/v1/mark_notification_read [post]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	var req dto.MarkNotificationReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	if err := h.notificationService.MarkRead(req.NotificationID, middleware.GetUserID(c)); err != nil {
		responses.Error(c, err)
		return
	}

	responses.SuccessWithMessage(c, "已标记为已读", nil)
}

// MarkAllRead 全部标记已读
// @Summary 标记当前用户全部通知已读
// @Tags 通知
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.MarkAllReadResponse
// @Router /api/v1/mark_all_notifications_read [post]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	count, err := h.notificationService.MarkAllRead(middleware.GetUserID(c))
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, &dto.MarkAllReadResponse{MarkedCount: count})
}
