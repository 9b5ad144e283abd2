package service

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"student-projects/internal/dto"
	"student-projects/internal/model"
	"student-projects/internal/pkg/logger"
	"student-projects/internal/repository"
	"student-projects/pkg/constants"
	pkgErrors "student-projects/pkg/responses"
)

type CommentService interface {
	AddComment(userID int64, req *dto.AddCommentRequest) (*dto.CommentResponse, error)
	ListComments(userID, projectID int64) ([]*dto.CommentResponse, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
	authz       AuthorizationService
	notifier    NotificationService
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	authz AuthorizationService,
	notifier NotificationService,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		userRepo:    userRepo,
		authz:       authz,
		notifier:    notifier,
	}
}

func (s *commentService) AddComment(userID int64, req *dto.AddCommentRequest) (*dto.CommentResponse, error) {
	project, err := s.authz.RequireProjectAccess(userID, req.ProjectID)
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(req.Comment)
	if content == "" {
		return nil, pkgErrors.New(pkgErrors.CodeBadRequest, "评论内容不能为空")
	}

	// 未知类型落回普通评论
	commentType := req.Type
	if commentType != constants.CommentTypeComment && commentType != constants.CommentTypeRecommendation {
		commentType = constants.CommentTypeComment
	}

	// recommendation 仅导师可发
	if commentType == constants.CommentTypeRecommendation {
		user, err := s.userRepo.FindByID(userID)
		if err != nil {
			return nil, err
		}
		if !user.IsSupervisor() {
			return nil, pkgErrors.New(pkgErrors.CodeForbidden, "只有导师可以发布建议")
		}
	}

	comment := &model.Comment{
		ProjectID: req.ProjectID,
		UserID:    userID,
		Comment:   content,
		Type:      commentType,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	title := "新评论"
	severity := constants.NotifySeverityInfo
	if commentType == constants.CommentTypeRecommendation {
		title = "新导师建议"
		severity = constants.NotifySeverityWarning
	}
	s.notifier.FanOut(project, userID, title,
		fmt.Sprintf("项目 %s 有新的%s", project.Title, title),
		severity,
	)

	author, err := s.userRepo.FindByID(userID)
	if err != nil {
		logger.Warn("查询评论作者失败", zap.Int64("user_id", userID), zap.Error(err))
	} else {
		comment.Author = author
	}
	return dto.ToCommentResponse(comment), nil
}

func (s *commentService) ListComments(userID, projectID int64) ([]*dto.CommentResponse, error) {
	if _, err := s.authz.RequireProjectAccess(userID, projectID); err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByProject(projectID)
	if err != nil {
		return nil, err
	}
	return dto.ToCommentResponses(comments), nil
}
