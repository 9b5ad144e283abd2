package repository

import (
	"gorm.io/gorm"

	"student-projects/internal/model"
	pkgErrors "student-projects/pkg/responses"
)

type CommentRepository interface {
	Create(comment *model.Comment) error
	ListByProject(projectID int64) ([]*model.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *model.Comment) error {
	if err := r.db.Create(comment).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建评论失败", err)
	}
	return nil
}

func (r *commentRepository) ListByProject(projectID int64) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := r.db.Where("project_id = ?", projectID).
		Preload("Author").
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询评论列表失败", err)
	}
	return comments, nil
}
