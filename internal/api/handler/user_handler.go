package handler

import (
	"github.com/gin-gonic/gin"

	"student-projects/internal/dto"
	"student-projects/internal/service"
	"student-projects/pkg/responses"
	"student-projects/pkg/utils"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// List 用户列表
// @Summary 查询用户列表
// @Description 可按角色过滤, 用于选择项目成员和导师
// @Tags 用户
// @Produce json
// @Security ApiKeyAuth
// @Param role query string false "角色过滤" Enums(student, supervisor)
// @Success 200 {array} dto.UserResponse
// @Router /api/v1/users [get]
func (h *UserHandler) List(c *gin.Context) {
	var query dto.ListUsersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		responses.ErrorWithDetail(c, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.userService.ListUsers(&query)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, resp)
}
