package service

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"student-projects/internal/dto"
	"student-projects/internal/model"
	"student-projects/internal/pkg/logger"
	"student-projects/internal/pkg/storage"
	"student-projects/internal/repository"
	"student-projects/pkg/constants"
	pkgErrors "student-projects/pkg/responses"
)

type DocumentService interface {
	// Upload 文件先落盘再写库, 写库失败时回收磁盘文件
	Upload(userID, projectID int64, originalName string, size int64, r io.Reader) (*dto.DocumentResponse, error)
	ListDocuments(userID, projectID int64) ([]*dto.DocumentResponse, error)
	// Download 返回文档元数据与文件内容, 调用方负责关闭 ReadCloser
	Download(userID, documentID int64) (*model.Document, io.ReadCloser, error)
}

type documentService struct {
	documentRepo repository.DocumentRepository
	authz        AuthorizationService
	notifier     NotificationService
	store        storage.Store
}

func NewDocumentService(
	documentRepo repository.DocumentRepository,
	authz AuthorizationService,
	notifier NotificationService,
	store storage.Store,
) DocumentService {
	return &documentService{
		documentRepo: documentRepo,
		authz:        authz,
		notifier:     notifier,
		store:        store,
	}
}

func (s *documentService) Upload(userID, projectID int64, originalName string, size int64, r io.Reader) (*dto.DocumentResponse, error) {
	project, err := s.authz.RequireProjectAccess(userID, projectID)
	if err != nil {
		return nil, err
	}

	if size > constants.MaxDocumentSize {
		return nil, pkgErrors.New(pkgErrors.CodeBadRequest, "文件大小超过10MB限制")
	}

	data, err := io.ReadAll(io.LimitReader(r, constants.MaxDocumentSize+1))
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "读取上传文件失败", err)
	}
	if int64(len(data)) > constants.MaxDocumentSize {
		return nil, pkgErrors.New(pkgErrors.CodeBadRequest, "文件大小超过10MB限制")
	}

	// 按文件内容识别类型, 不信任客户端声明的 Content-Type
	mime := mimetype.Detect(data)
	allowed := lo.SomeBy(constants.AllowedDocumentTypes, func(t string) bool {
		return mime.Is(t)
	})
	if !allowed {
		return nil, pkgErrors.New(pkgErrors.CodeBadRequest, "不支持的文件类型: "+mime.String())
	}

	ext := filepath.Ext(originalName)
	if ext == "" {
		ext = mime.Extension()
	}
	storedName := uuid.NewString() + ext

	path, err := s.store.Save(storedName, bytes.NewReader(data))
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "保存文件失败", err)
	}

	doc := &model.Document{
		ProjectID:    projectID,
		UploadedBy:   userID,
		Filename:     storedName,
		OriginalName: filepath.Base(originalName),
		FileSize:     int64(len(data)),
		MimeType:     mime.String(),
		UploadPath:   path,
	}
	if err := s.documentRepo.Create(doc); err != nil {
		if rmErr := s.store.Remove(path); rmErr != nil {
			logger.Warn("回收上传文件失败", zap.String("path", path), zap.Error(rmErr))
		}
		return nil, err
	}

	s.notifier.FanOut(project, userID,
		"新文档上传",
		fmt.Sprintf("项目 %s 上传了新文档: %s", project.Title, doc.OriginalName),
		constants.NotifySeverityInfo,
	)

	created, err := s.documentRepo.FindByID(doc.ID)
	if err != nil {
		return dto.ToDocumentResponse(doc), nil
	}
	return dto.ToDocumentResponse(created), nil
}

func (s *documentService) ListDocuments(userID, projectID int64) ([]*dto.DocumentResponse, error) {
	if _, err := s.authz.RequireProjectAccess(userID, projectID); err != nil {
		return nil, err
	}
	docs, err := s.documentRepo.ListByProject(projectID)
	if err != nil {
		return nil, err
	}
	return dto.ToDocumentResponses(docs), nil
}

func (s *documentService) Download(userID, documentID int64) (*model.Document, io.ReadCloser, error) {
	doc, err := s.documentRepo.FindByID(documentID)
	if err != nil {
		return nil, nil, err
	}
	if _, err := s.authz.RequireProjectAccess(userID, doc.ProjectID); err != nil {
		return nil, nil, err
	}

	rc, err := s.store.Open(doc.UploadPath)
	if err != nil {
		return nil, nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "打开文件失败", err)
	}
	return doc, rc, nil
}
