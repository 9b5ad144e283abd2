package repository

import (
	"errors"

	"gorm.io/gorm"

	"student-projects/internal/model"
	pkgErrors "student-projects/pkg/responses"
)

type DocumentRepository interface {
	Create(doc *model.Document) error
	FindByID(id int64) (*model.Document, error)
	ListByProject(projectID int64) ([]*model.Document, error)
	ListPathsByProject(projectID int64) ([]string, error)
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(doc *model.Document) error {
	if err := r.db.Create(doc).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建文档记录失败", err)
	}
	return nil
}

func (r *documentRepository) FindByID(id int64) (*model.Document, error) {
	var doc model.Document
	err := r.db.Preload("Uploader").First(&doc, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询文档失败", err)
	}
	return &doc, nil
}

func (r *documentRepository) ListByProject(projectID int64) ([]*model.Document, error) {
	var docs []*model.Document
	err := r.db.Where("project_id = ?", projectID).
		Preload("Uploader").
		Order("created_at DESC").
		Find(&docs).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询文档列表失败", err)
	}
	return docs, nil
}

// ListPathsByProject 查询项目下所有文档的存储路径, 用于删除项目后清理磁盘文件
func (r *documentRepository) ListPathsByProject(projectID int64) ([]string, error) {
	var paths []string
	err := r.db.Model(&model.Document{}).
		Where("project_id = ?", projectID).
		Pluck("upload_path", &paths).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询文档路径失败", err)
	}
	return paths, nil
}
