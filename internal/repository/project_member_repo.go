package repository

import (
	"gorm.io/gorm"

	"student-projects/internal/model"
	pkgErrors "student-projects/pkg/responses"
)

type ProjectMemberRepository interface {
	ListByProject(projectID int64) ([]*model.ProjectMember, error)
	// ListUserIDs 查询项目当前全部成员的用户ID, 通知扇出使用
	ListUserIDs(projectID int64) ([]int64, error)
	IsMember(projectID, userID int64) (bool, error)
}

type projectMemberRepository struct {
	db *gorm.DB
}

func NewProjectMemberRepository(db *gorm.DB) ProjectMemberRepository {
	return &projectMemberRepository{db: db}
}

func (r *projectMemberRepository) ListByProject(projectID int64) ([]*model.ProjectMember, error) {
	var members []*model.ProjectMember
	err := r.db.Where("project_id = ?", projectID).
		Preload("User").
		Order("created_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目成员失败", err)
	}
	return members, nil
}

func (r *projectMemberRepository) ListUserIDs(projectID int64) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&model.ProjectMember{}).
		Where("project_id = ?", projectID).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目成员失败", err)
	}
	return ids, nil
}

func (r *projectMemberRepository) IsMember(projectID, userID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	if err != nil {
		return false, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目成员失败", err)
	}
	return count > 0, nil
}
