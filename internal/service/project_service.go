package service

import (
	"fmt"
	"math"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"student-projects/internal/dto"
	"student-projects/internal/model"
	"student-projects/internal/pkg/logger"
	"student-projects/internal/pkg/storage"
	"student-projects/internal/repository"
	"student-projects/pkg/constants"
	pkgErrors "student-projects/pkg/responses"
)

type ProjectService interface {
	CreateProject(userID int64, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error)
	UpdateProject(userID, projectID int64, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error)
	GetProjectDetail(userID, projectID int64) (*dto.ProjectDetailResponse, error)
	ListProjects(userID int64) ([]*dto.ProjectResponse, error)
	UpdateStatus(userID int64, req *dto.UpdateProjectStatusRequest) error
	DeleteProject(userID int64, projectID int64) error
	// RecomputeProgress 按已完成任务占比重算并落库项目进度, 返回最新百分比
	RecomputeProgress(projectID int64) (int, error)
}

type projectService struct {
	userRepo     repository.UserRepository
	projectRepo  repository.ProjectRepository
	memberRepo   repository.ProjectMemberRepository
	taskRepo     repository.TaskRepository
	commentRepo  repository.CommentRepository
	documentRepo repository.DocumentRepository
	authz        AuthorizationService
	notifier     NotificationService
	store        storage.Store
}

func NewProjectService(
	userRepo repository.UserRepository,
	projectRepo repository.ProjectRepository,
	memberRepo repository.ProjectMemberRepository,
	taskRepo repository.TaskRepository,
	commentRepo repository.CommentRepository,
	documentRepo repository.DocumentRepository,
	authz AuthorizationService,
	notifier NotificationService,
	store storage.Store,
) ProjectService {
	return &projectService{
		userRepo:     userRepo,
		projectRepo:  projectRepo,
		memberRepo:   memberRepo,
		taskRepo:     taskRepo,
		commentRepo:  commentRepo,
		documentRepo: documentRepo,
		authz:        authz,
		notifier:     notifier,
		store:        store,
	}
}

func (s *projectService) CreateProject(userID int64, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	startDate, endDate, err := parseProjectDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	if req.SupervisorID != nil {
		if err := s.checkSupervisor(*req.SupervisorID); err != nil {
			return nil, err
		}
	}

	memberIDs, err := s.checkMembers(userID, req.MemberIDs)
	if err != nil {
		return nil, err
	}

	project := &model.Project{
		Title:        req.Title,
		Description:  req.Description,
		Domain:       req.Domain,
		StartDate:    startDate,
		EndDate:      endDate,
		Status:       constants.ProjectStatusPlanning,
		SupervisorID: req.SupervisorID,
		CreatedBy:    userID,
	}

	// 创建者固定为 leader
	members := []*model.ProjectMember{{UserID: userID, Role: constants.MemberRoleLeader}}
	for _, id := range memberIDs {
		members = append(members, &model.ProjectMember{UserID: id, Role: constants.MemberRoleMember})
	}

	notifications := buildProjectNotifications(
		memberIDs, req.SupervisorID,
		"项目邀请",
		fmt.Sprintf("您已加入项目: %s", req.Title),
		constants.NotifySeverityInfo,
	)

	if err := s.projectRepo.CreateWithMembers(project, members, notifications); err != nil {
		return nil, err
	}

	created, err := s.projectRepo.FindByIDWithRelations(project.ID)
	if err != nil {
		return nil, err
	}
	return dto.ToProjectResponse(created), nil
}

func (s *projectService) UpdateProject(userID, projectID int64, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	// 编辑是管理操作, 普通成员无权修改项目
	project, err := s.authz.RequireProjectManage(userID, projectID)
	if err != nil {
		return nil, err
	}

	startDate, endDate, err := parseProjectDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	if req.SupervisorID != nil {
		if err := s.checkSupervisor(*req.SupervisorID); err != nil {
			return nil, err
		}
	}

	memberIDs, err := s.checkMembers(project.CreatedBy, req.MemberIDs)
	if err != nil {
		return nil, err
	}

	// 仅通知新加入的成员
	oldMemberIDs, err := s.memberRepo.ListUserIDs(projectID)
	if err != nil {
		return nil, err
	}
	addedIDs, _ := lo.Difference(memberIDs, oldMemberIDs)

	// 导师变更时通知新导师
	var newSupervisorID *int64
	if req.SupervisorID != nil {
		if project.SupervisorID == nil || *project.SupervisorID != *req.SupervisorID {
			newSupervisorID = req.SupervisorID
		}
	}

	project.Title = req.Title
	project.Description = req.Description
	project.Domain = req.Domain
	project.StartDate = startDate
	project.EndDate = endDate
	project.SupervisorID = req.SupervisorID

	newMembers := make([]*model.ProjectMember, 0, len(memberIDs))
	for _, id := range memberIDs {
		newMembers = append(newMembers, &model.ProjectMember{ProjectID: projectID, UserID: id, Role: constants.MemberRoleMember})
	}

	notifications := buildProjectNotifications(
		addedIDs, newSupervisorID,
		"项目邀请",
		fmt.Sprintf("您已加入项目: %s", req.Title),
		constants.NotifySeverityInfo,
	)
	for _, n := range notifications {
		n.ProjectID = projectID
	}

	if err := s.projectRepo.UpdateWithMembers(project, newMembers, notifications); err != nil {
		return nil, err
	}

	updated, err := s.projectRepo.FindByIDWithRelations(projectID)
	if err != nil {
		return nil, err
	}
	return dto.ToProjectResponse(updated), nil
}

func (s *projectService) GetProjectDetail(userID, projectID int64) (*dto.ProjectDetailResponse, error) {
	if _, err := s.authz.RequireProjectAccess(userID, projectID); err != nil {
		return nil, err
	}

	// 详情页顺带重算进度, 修正可能漂移的缓存值
	if _, err := s.RecomputeProgress(projectID); err != nil {
		logger.Warn("重算项目进度失败", zap.Int64("project_id", projectID), zap.Error(err))
	}

	project, err := s.projectRepo.FindByIDWithRelations(projectID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.taskRepo.ListByProject(projectID)
	if err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByProject(projectID)
	if err != nil {
		return nil, err
	}
	documents, err := s.documentRepo.ListByProject(projectID)
	if err != nil {
		return nil, err
	}

	return &dto.ProjectDetailResponse{
		ProjectResponse: dto.ToProjectResponse(project),
		Tasks:           dto.ToTaskResponses(tasks),
		Comments:        dto.ToCommentResponses(comments),
		Documents:       dto.ToDocumentResponses(documents),
	}, nil
}

func (s *projectService) ListProjects(userID int64) ([]*dto.ProjectResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	var projects []*model.Project
	if user.IsSupervisor() {
		projects, err = s.projectRepo.ListAll()
	} else {
		projects, err = s.projectRepo.ListByUser(userID)
	}
	if err != nil {
		return nil, err
	}
	return dto.ToProjectResponses(projects), nil
}

func (s *projectService) UpdateStatus(userID int64, req *dto.UpdateProjectStatusRequest) error {
	project, err := s.authz.RequireProjectAccess(userID, req.ProjectID)
	if err != nil {
		return err
	}

	if !lo.Contains(constants.ProjectStatuses, req.Status) {
		return pkgErrors.New(pkgErrors.CodeBadRequest, "无效的项目状态")
	}

	if err := s.projectRepo.UpdateStatus(req.ProjectID, req.Status); err != nil {
		return err
	}

	severity := constants.NotifySeverityInfo
	if req.Status == constants.ProjectStatusCompleted {
		severity = constants.NotifySeveritySuccess
	}
	s.notifier.FanOut(project, userID,
		"项目状态变更",
		fmt.Sprintf("项目 %s 状态更新为 %s", project.Title, req.Status),
		severity,
	)
	return nil
}

// DeleteProject 删除项目及其全部关联数据.
// 文档磁盘文件在事务提交后再清理, 删除失败只记日志, 不回滚业务数据.
func (s *projectService) DeleteProject(userID int64, projectID int64) error {
	if _, err := s.authz.RequireProjectManage(userID, projectID); err != nil {
		return err
	}

	paths, err := s.documentRepo.ListPathsByProject(projectID)
	if err != nil {
		return err
	}

	if err := s.projectRepo.Delete(projectID); err != nil {
		return err
	}

	for _, path := range paths {
		if err := s.store.Remove(path); err != nil {
			logger.Warn("删除项目文档文件失败", zap.String("path", path), zap.Error(err))
		}
	}
	return nil
}

func (s *projectService) RecomputeProgress(projectID int64) (int, error) {
	total, completed, err := s.taskRepo.CountByProject(projectID)
	if err != nil {
		return 0, err
	}

	progress := 0
	if total > 0 {
		progress = int(math.Round(float64(completed) * 100 / float64(total)))
	}
	if err := s.projectRepo.UpdateProgress(projectID, progress); err != nil {
		return 0, err
	}
	return progress, nil
}

// checkSupervisor 校验导师存在且角色为 supervisor
func (s *projectService) checkSupervisor(supervisorID int64) error {
	supervisor, err := s.userRepo.FindByID(supervisorID)
	if err != nil {
		return pkgErrors.New(pkgErrors.CodeBadRequest, "指定的导师不存在")
	}
	if !supervisor.IsSupervisor() {
		return pkgErrors.New(pkgErrors.CodeBadRequest, "指定的用户不是导师")
	}
	return nil
}

// checkMembers 去重并剔除创建者本人, 校验成员都是已注册用户
func (s *projectService) checkMembers(creatorID int64, memberIDs []int64) ([]int64, error) {
	ids := lo.Uniq(memberIDs)
	ids = lo.Without(ids, creatorID)
	if len(ids) == 0 {
		return nil, nil
	}

	users, err := s.userRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(users) != len(ids) {
		return nil, pkgErrors.New(pkgErrors.CodeBadRequest, "存在无效的项目成员")
	}
	return ids, nil
}

func buildProjectNotifications(memberIDs []int64, supervisorID *int64, title, message, severity string) []*model.Notification {
	recipients := memberIDs
	if supervisorID != nil {
		recipients = append(recipients, *supervisorID)
	}

	notifications := make([]*model.Notification, 0, len(recipients))
	for _, id := range lo.Uniq(recipients) {
		notifications = append(notifications, &model.Notification{
			UserID:   id,
			Title:    title,
			Message:  message,
			Severity: severity,
		})
	}
	return notifications
}

func parseProjectDates(start string, end *string) (datatypes.Date, *datatypes.Date, error) {
	startTime, err := time.Parse("2006-01-02", start)
	if err != nil {
		return datatypes.Date{}, nil, pkgErrors.New(pkgErrors.CodeBadRequest, "开始日期格式无效, 应为 YYYY-MM-DD")
	}
	startDate := datatypes.Date(startTime)

	if end == nil || *end == "" {
		return startDate, nil, nil
	}
	endTime, err := time.Parse("2006-01-02", *end)
	if err != nil {
		return datatypes.Date{}, nil, pkgErrors.New(pkgErrors.CodeBadRequest, "结束日期格式无效, 应为 YYYY-MM-DD")
	}
	if !endTime.After(startTime) {
		return datatypes.Date{}, nil, pkgErrors.New(pkgErrors.CodeBadRequest, "结束日期必须晚于开始日期")
	}
	endDate := datatypes.Date(endTime)
	return startDate, &endDate, nil
}
