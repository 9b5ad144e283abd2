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

type ProjectHandler struct {
	projectService service.ProjectService
}

func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// Create 创建项目
// @Summary 创建项目
// @Description 创建者自动成为leader成员, 成员与导师收到通知
// @Tags 项目
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateProjectRequest true "创建项目请求"
// @Success 200 {object} dto.ProjectResponse
// @Router /api/v1/projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.projectService.CreateProject(middleware.GetUserID(c), &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.SuccessWithMessage(c, "项目创建成功", resp)
}

// List 项目列表
// @Summary 查询项目列表
// @Description 学生只能看到自己参与的项目, 导师可以看到全部项目
// @Tags 项目
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} dto.ProjectResponse
// @Router /api/v1/projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	resp, err := h.projectService.ListProjects(middleware.GetUserID(c))
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, resp)
}

// Detail 项目详情
// @Summary 查询项目详情
// @Description 聚合任务/评论/文档, 并顺带重算项目进度
// @Tags 项目
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "项目ID"
// @Success 200 {object} dto.ProjectDetailResponse
// @Router /api/v1/projects/{id} [get]
func (h *ProjectHandler) Detail(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		responses.ErrorWithDetail(c, "请求参数错误", "无效的项目ID")
		return
	}

	resp, err := h.projectService.GetProjectDetail(middleware.GetUserID(c), projectID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, resp)
}

// Update 更新项目
// @Summary 更新项目
// @Description 重建成员集合, 仅通知新加入的成员
// @Tags 项目
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "项目ID"
// @Param request body dto.UpdateProjectRequest true "更新项目请求"
// @Success 200 {object} dto.ProjectResponse
// @Router /api/v1/projects/{id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		responses.ErrorWithDetail(c, "请求参数错误", "无效的项目ID")
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.projectService.UpdateProject(middleware.GetUserID(c), projectID, &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.SuccessWithMessage(c, "项目更新成功", resp)
}

// UpdateStatus 更新项目状态
// @Summary 更新项目状态
// @Tags 项目
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.UpdateProjectStatusRequest true "更新状态请求"
// @Success 200 {object} responses.Response
// @Router /api/v1/update_project_status [post]
func (h *ProjectHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateProjectStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	if err := h.projectService.UpdateStatus(middleware.GetUserID(c), &req); err != nil {
		responses.Error(c, err)
		return
	}

	responses.SuccessWithMessage(c, "状态更新成功", nil)
}

// Delete 删除项目
// @Summary 删除项目
// @Description 级联删除任务/评论/文档/通知, 并清理磁盘文件
// @Tags 项目
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.DeleteProjectRequest true "删除项目请求"
// @Success 200 {object} responses.Response
// @Router /api/v1/delete_project [post]
func (h *ProjectHandler) Delete(c *gin.Context) {
	var req dto.DeleteProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	if err := h.projectService.DeleteProject(middleware.GetUserID(c), req.ProjectID); err != nil {
		responses.Error(c, err)
		return
	}

	responses.SuccessWithMessage(c, "项目已删除", nil)
}
