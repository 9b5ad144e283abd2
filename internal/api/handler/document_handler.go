package handler

import (
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"student-projects/internal/api/middleware"
	"student-projects/internal/pkg/logger"
	"student-projects/internal/service"
	"student-projects/pkg/responses"
)

type DocumentHandler struct {
	documentService service.DocumentService
}

func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
	}
}

// Upload 上传文档
// @Summary 上传项目文档
// @Description multipart表单上传, 按文件内容校验类型, 大小上限10MB
// @Tags 文档
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param project_id formData int true "项目ID"
// @Param document formData file true "文件"
// @Success 200 {object} dto.DocumentResponse
// @Router /api/v1/upload_document [post]
func (h *DocumentHandler) Upload(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.PostForm("project_id"), 10, 64)
	if err != nil {
		responses.ErrorWithDetail(c, "请求参数错误", "无效的项目ID")
		return
	}

	fileHeader, err := c.FormFile("document")
	if err != nil {
		// 兼容以file为字段名的旧客户端
		fileHeader, err = c.FormFile("file")
	}
	if err != nil {
		responses.ErrorWithDetail(c, "请求参数错误", "缺少上传文件")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		responses.Error(c, err)
		return
	}
	defer file.Close()

	resp, err := h.documentService.Upload(middleware.GetUserID(c), projectID, fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.SuccessWithMessage(c, "文档上传成功", resp)
}

// ListByProject 项目文档列表
// @Summary 查询项目文档列表
// @Tags 文档
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "项目ID"
// @Success 200 {array} dto.DocumentResponse
// @Router /api/v1/projects/{id}/documents [get]
func (h *DocumentHandler) ListByProject(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		responses.ErrorWithDetail(c, "请求参数错误", "无效的项目ID")
		return
	}

	resp, err := h.documentService.ListDocuments(middleware.GetUserID(c), projectID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, resp)
}

// Download 下载文档
// @Summary 下载文档
// @Description 以附件形式返回原始文件名
// @Tags 文档
// @Produce octet-stream
// @Security ApiKeyAuth
// @Param id path int true "文档ID"
// @Router /api/v1/documents/{id}/download [get]
func (h *DocumentHandler) Download(c *gin.Context) {
	documentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		responses.ErrorWithDetail(c, "请求参数错误", "无效的文档ID")
		return
	}

	doc, rc, err := h.documentService.Download(middleware.GetUserID(c), documentID)
	if err != nil {
		responses.Error(c, err)
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(doc.OriginalName)))
	c.Header("Content-Type", doc.MimeType)
	c.Header("Content-Length", strconv.FormatInt(doc.FileSize, 10))
	if _, err := io.Copy(c.Writer, rc); err != nil {
		logger.Warn("文档下载中断", zap.Int64("document_id", doc.ID), zap.Error(err))
	}
}
