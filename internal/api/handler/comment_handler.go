package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"student-projects/internal/api/middleware"
	"student-projects/internal/dto"
	"student-projects/internal/service"
	"student-projects/pkg/responses"
	"student-projects/pkg/utils"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// Add 添加评论
// @Summary 添加评论
// @Description type为recommendation时仅导师可发
// @Tags 评论
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.AddCommentRequest true "添加评论请求"
// @Success 200 {object} dto.CommentResponse
// @Router /api/v1/add_comment [post]
func (h *CommentHandler) Add(c *gin.Context) {
	var req dto.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.commentService.AddComment(middleware.GetUserID(c), &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.SuccessWithMessage(c, "评论发布成功", resp)
}

// ListByProject 项目评论列表
// @Summary 查询项目评论列表
// @Tags 评论
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "项目ID"
// @Success 200 {array} dto.CommentResponse
// @Router /api/v1/projects/{id}/comments [get]
func (h *CommentHandler) ListByProject(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		responses.ErrorWithDetail(c, "请求参数错误", "无效的项目ID")
		return
	}

	resp, err := h.commentService.ListComments(middleware.GetUserID(c), projectID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, resp)
}
