package service

import (
	"errors"

	"student-projects/internal/model"
	"student-projects/internal/repository"
	"student-projects/pkg/constants"
	pkgErrors "student-projects/pkg/responses"
)

// AuthorizationService 项目访问控制.
// 可访问项目的用户: 创建者, 指定导师, 项目成员, 以及平台内所有导师角色用户.
type AuthorizationService interface {
	CanAccessProject(userID int64, projectID int64) (bool, error)
	RequireProjectAccess(userID int64, projectID int64) (*model.Project, error)
	// CanManageProject 管理权限比访问权限更严: 普通成员可访问但不可管理
	CanManageProject(userID int64, projectID int64) (bool, error)
	RequireProjectManage(userID int64, projectID int64) (*model.Project, error)
}

type authorizationService struct {
	userRepo    repository.UserRepository
	projectRepo repository.ProjectRepository
	memberRepo  repository.ProjectMemberRepository
}

func NewAuthorizationService(
	userRepo repository.UserRepository,
	projectRepo repository.ProjectRepository,
	memberRepo repository.ProjectMemberRepository,
) AuthorizationService {
	return &authorizationService{
		userRepo:    userRepo,
		projectRepo: projectRepo,
		memberRepo:  memberRepo,
	}
}

// CanAccessProject 项目不存在时返回 false 而非错误
func (s *authorizationService) CanAccessProject(userID int64, projectID int64) (bool, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, pkgErrors.ErrProjectNotFound) {
			return false, nil
		}
		return false, err
	}

	if project.CreatedBy == userID {
		return true, nil
	}
	if project.SupervisorID != nil && *project.SupervisorID == userID {
		return true, nil
	}

	isMember, err := s.memberRepo.IsMember(projectID, userID)
	if err != nil {
		return false, err
	}
	if isMember {
		return true, nil
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, pkgErrors.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.Role == constants.RoleSupervisor, nil
}

// CanManageProject 可管理项目的用户: 创建者, 指定导师, 以及任意导师角色用户.
// 项目不存在时返回 false 而非错误
func (s *authorizationService) CanManageProject(userID int64, projectID int64) (bool, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, pkgErrors.ErrProjectNotFound) {
			return false, nil
		}
		return false, err
	}

	if project.CreatedBy == userID {
		return true, nil
	}
	if project.SupervisorID != nil && *project.SupervisorID == userID {
		return true, nil
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, pkgErrors.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.Role == constants.RoleSupervisor, nil
}

// RequireProjectManage 校验管理权限并返回项目, 项目不存在或无权限时返回对应错误
func (s *authorizationService) RequireProjectManage(userID int64, projectID int64) (*model.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		return nil, err
	}

	ok, err := s.CanManageProject(userID, projectID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, pkgErrors.ErrProjectAccessDenied
	}
	return project, nil
}

// RequireProjectAccess 校验访问权限并返回项目, 项目不存在或无权限时返回对应错误
func (s *authorizationService) RequireProjectAccess(userID int64, projectID int64) (*model.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		return nil, err
	}

	ok, err := s.CanAccessProject(userID, projectID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, pkgErrors.ErrProjectAccessDenied
	}
	return project, nil
}
