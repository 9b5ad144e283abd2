package responses

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
// 业务失败（校验/权限/不存在）统一返回HTTP 200, success=false
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Detail  string      `json:"detail,omitempty"` // 详细错误信息（可选）
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Success: true,
		Data:    data,
	})
}

// SuccessWithMessage 带消息的成功响应
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(200, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error 错误响应
// 内部错误细节不回传给客户端, 只保留在服务端日志
func Error(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		c.JSON(200, Response{
			Success: false,
			Message: appErr.Message,
		})
		return
	}

	c.JSON(200, Response{
		Success: false,
		Message: "服务器错误",
	})
}

// ErrorWithCode 自定义错误响应
func ErrorWithCode(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, Response{
		Success: false,
		Message: message,
	})
}

// ErrorWithDetail 带详细信息的错误响应
func ErrorWithDetail(c *gin.Context, message, detail string) {
	c.JSON(200, Response{
		Success: false,
		Message: message,
		Detail:  detail,
	})
}
