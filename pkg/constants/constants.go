package constants

// 用户角色
const (
	RoleStudent    = "student"
	RoleSupervisor = "supervisor"
)

// UserRoles 所有合法的用户角色
var UserRoles = []string{RoleStudent, RoleSupervisor}

// 项目成员角色
const (
	MemberRoleLeader = "leader"
	MemberRoleMember = "member"
)

// 项目状态
const (
	ProjectStatusPlanning   = "planning"
	ProjectStatusInProgress = "in_progress"
	ProjectStatusCompleted  = "completed"
	ProjectStatusPaused     = "paused"
)

// ProjectStatuses 所有合法的项目状态
var ProjectStatuses = []string{
	ProjectStatusPlanning,
	ProjectStatusInProgress,
	ProjectStatusCompleted,
	ProjectStatusPaused,
}

// 任务状态
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
)

// TaskStatuses 所有合法的任务状态
var TaskStatuses = []string{TaskStatusTodo, TaskStatusInProgress, TaskStatusCompleted}

// 任务优先级
const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

// TaskPriorities 所有合法的任务优先级
var TaskPriorities = []string{TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh}

// 评论类型
const (
	CommentTypeComment        = "comment"
	CommentTypeRecommendation = "recommendation"
)

// 通知级别
const (
	NotifySeverityInfo    = "info"
	NotifySeverityWarning = "warning"
	NotifySeveritySuccess = "success"
	NotifySeverityDanger  = "danger"
)

// JWT 相关
const (
	JWTTypeAccess  = "access"
	JWTTypeRefresh = "refresh"
)

// HTTP Header
const (
	HeaderAuthorization = "Authorization"
	HeaderBearerPrefix  = "Bearer "
)

// 文档上传大小上限 10MiB
const MaxDocumentSize = 10 * 1024 * 1024

// AllowedDocumentTypes 文档上传允许的MIME类型白名单
var AllowedDocumentTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.ms-excel",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"application/vnd.ms-powerpoint",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"text/plain",
	"image/jpeg",
	"image/png",
	"image/gif",
}
