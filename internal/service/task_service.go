package service

import (
	"fmt"
	"time"

	"github.com/samber/lo"
	"gorm.io/datatypes"

	"student-projects/internal/dto"
	"student-projects/internal/model"
	"student-projects/internal/repository"
	"student-projects/pkg/constants"
	pkgErrors "student-projects/pkg/responses"
)

type TaskService interface {
	CreateTask(userID int64, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	// UpdateTaskStatus 更新任务状态并重算项目进度, 返回最新任务与进度
	UpdateTaskStatus(userID int64, req *dto.UpdateTaskStatusRequest) (*dto.UpdateTaskStatusResponse, error)
	ListTasks(userID, projectID int64) ([]*dto.TaskResponse, error)
}

type taskService struct {
	taskRepo   repository.TaskRepository
	memberRepo repository.ProjectMemberRepository
	authz      AuthorizationService
	notifier   NotificationService
	projects   ProjectService
}

func NewTaskService(
	taskRepo repository.TaskRepository,
	memberRepo repository.ProjectMemberRepository,
	authz AuthorizationService,
	notifier NotificationService,
	projects ProjectService,
) TaskService {
	return &taskService{
		taskRepo:   taskRepo,
		memberRepo: memberRepo,
		authz:      authz,
		notifier:   notifier,
		projects:   projects,
	}
}

func (s *taskService) CreateTask(userID int64, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	project, err := s.authz.RequireProjectAccess(userID, req.ProjectID)
	if err != nil {
		return nil, err
	}

	if req.AssignedTo != nil {
		if err := s.checkAssignee(project, *req.AssignedTo); err != nil {
			return nil, err
		}
	}

	// 未知优先级静默落回 medium
	priority := req.Priority
	if !lo.Contains(constants.TaskPriorities, priority) {
		priority = constants.TaskPriorityMedium
	}

	var dueDate *datatypes.Date
	if req.DueDate != nil && *req.DueDate != "" {
		due, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			return nil, pkgErrors.New(pkgErrors.CodeBadRequest, "截止日期格式无效, 应为 YYYY-MM-DD")
		}
		d := datatypes.Date(due)
		dueDate = &d
	}

	task := &model.Task{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		Status:      constants.TaskStatusTodo,
		Priority:    priority,
		DueDate:     dueDate,
	}
	if err := s.taskRepo.Create(task); err != nil {
		return nil, err
	}

	s.notifyTaskCreated(project, userID, task)

	created, err := s.taskRepo.FindByID(task.ID)
	if err != nil {
		return nil, err
	}
	return dto.ToTaskResponse(created), nil
}

// notifyTaskCreated 被指派人收到指派通知, 其余项目相关人员收到创建通知
func (s *taskService) notifyTaskCreated(project *model.Project, actorID int64, task *model.Task) {
	var exclude []int64
	if task.AssignedTo != nil {
		exclude = append(exclude, *task.AssignedTo)
		if *task.AssignedTo != actorID {
			_ = s.notifier.Notify(*task.AssignedTo, project.ID,
				"新任务指派",
				fmt.Sprintf("项目 %s 中的任务 %s 已指派给您", project.Title, task.Title),
				constants.NotifySeverityInfo,
			)
		}
	}
	s.notifier.FanOut(project, actorID,
		"新任务创建",
		fmt.Sprintf("项目 %s 新增任务: %s", project.Title, task.Title),
		constants.NotifySeverityInfo,
		exclude...,
	)
}

func (s *taskService) UpdateTaskStatus(userID int64, req *dto.UpdateTaskStatusRequest) (*dto.UpdateTaskStatusResponse, error) {
	task, err := s.taskRepo.FindByID(req.TaskID)
	if err != nil {
		return nil, err
	}

	project, err := s.authz.RequireProjectAccess(userID, task.ProjectID)
	if err != nil {
		return nil, err
	}

	if !lo.Contains(constants.TaskStatuses, req.Status) {
		return nil, pkgErrors.New(pkgErrors.CodeBadRequest, "无效的任务状态")
	}

	// completed_at 仅在状态为 completed 时有值, 回退状态时清空
	var completedAt *time.Time
	if req.Status == constants.TaskStatusCompleted {
		now := time.Now()
		completedAt = &now
	}
	if err := s.taskRepo.UpdateStatus(task.ID, req.Status, completedAt); err != nil {
		return nil, err
	}

	progress, err := s.projects.RecomputeProgress(task.ProjectID)
	if err != nil {
		return nil, err
	}

	if req.Status == constants.TaskStatusCompleted {
		s.notifier.FanOut(project, userID,
			"任务完成",
			fmt.Sprintf("项目 %s 中的任务 %s 已完成", project.Title, task.Title),
			constants.NotifySeveritySuccess,
		)
	}

	updated, err := s.taskRepo.FindByID(task.ID)
	if err != nil {
		return nil, err
	}
	return &dto.UpdateTaskStatusResponse{
		Task:               dto.ToTaskResponse(updated),
		ProgressPercentage: progress,
	}, nil
}

func (s *taskService) ListTasks(userID, projectID int64) ([]*dto.TaskResponse, error) {
	if _, err := s.authz.RequireProjectAccess(userID, projectID); err != nil {
		return nil, err
	}
	tasks, err := s.taskRepo.ListByProject(projectID)
	if err != nil {
		return nil, err
	}
	return dto.ToTaskResponses(tasks), nil
}

// checkAssignee 被指派人必须是项目成员, 创建者或项目导师
func (s *taskService) checkAssignee(project *model.Project, assigneeID int64) error {
	if project.CreatedBy == assigneeID {
		return nil
	}
	if project.SupervisorID != nil && *project.SupervisorID == assigneeID {
		return nil
	}
	isMember, err := s.memberRepo.IsMember(project.ID, assigneeID)
	if err != nil {
		return err
	}
	if !isMember {
		return pkgErrors.New(pkgErrors.CodeBadRequest, "被指派人不是项目成员")
	}
	return nil
}
