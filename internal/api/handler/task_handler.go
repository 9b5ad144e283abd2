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

type TaskHandler struct {
	taskService service.TaskService
}

func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// Add 创建任务
// @Summary 创建任务
// @Description 被指派人必须属于项目, 未知优先级落回medium
// @Tags 任务
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateTaskRequest true "创建任务请求"
// @Success 200 {object} dto.TaskResponse
// @Router /api/v1/add_task [post]
func (h *TaskHandler) Add(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.taskService.CreateTask(middleware.GetUserID(c), &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.SuccessWithMessage(c, "任务创建成功", resp)
}

// UpdateStatus 更新任务状态
// @Summary 更新任务状态
// @Description 状态为completed时记录完成时间并重算项目进度
// @Tags 任务
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.UpdateTaskStatusRequest true "更新状态请求"
// @Success 200 {object} dto.UpdateTaskStatusResponse
// @Router /api/v1/update_task [post]
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.taskService.UpdateTaskStatus(middleware.GetUserID(c), &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, resp)
}

// ListByProject 项目任务列表
// @Summary 查询项目任务列表
// @Tags 任务
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "项目ID"
// @Success 200 {array} dto.TaskResponse
// @Router /api/v1/projects/{id}/tasks [get]
func (h *TaskHandler) ListByProject(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		responses.ErrorWithDetail(c, "请求参数错误", "无效的项目ID")
		return
	}

	resp, err := h.taskService.ListTasks(middleware.GetUserID(c), projectID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, resp)
}
