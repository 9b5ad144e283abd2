package handler

import (
	"github.com/gin-gonic/gin"

	"student-projects/internal/api/middleware"
	"student-projects/internal/service"
	"student-projects/pkg/responses"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// Summary 平台汇总报表
// @Summary 平台汇总报表
// @Description 项目/任务/用户统计, 仅导师可访问
// @Tags 报表
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.SummaryReportResponse
// @Router /api/v1/reports/summary [get]
func (h *ReportHandler) Summary(c *gin.Context) {
	resp, err := h.reportService.Summary(middleware.GetUserID(c))
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, resp)
}
