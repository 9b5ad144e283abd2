package repository

import (
	"errors"

	"gorm.io/gorm"

	"student-projects/internal/model"
	"student-projects/pkg/constants"
	pkgErrors "student-projects/pkg/responses"
)

type ProjectRepository interface {
	// CreateWithMembers 在一个事务内插入项目、成员和通知
	// 任一插入失败则整体回滚, 不允许出现部分成员
	CreateWithMembers(project *model.Project, members []*model.ProjectMember, notifications []*model.Notification) error
	// UpdateWithMembers 在一个事务内更新项目字段并重建非leader成员集合
	UpdateWithMembers(project *model.Project, newMembers []*model.ProjectMember, notifications []*model.Notification) error
	FindByID(id int64) (*model.Project, error)
	FindByIDWithRelations(id int64) (*model.Project, error)
	// ListByUser 查询用户可见的项目: 本人创建、本人督导或本人为成员
	ListByUser(userID int64) ([]*model.Project, error)
	ListAll() ([]*model.Project, error)
	UpdateStatus(id int64, status string) error
	// UpdateProgress 写入派生的进度缓存, 只能由进度重算调用
	UpdateProgress(id int64, progress int) error
	Delete(id int64) error
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) CreateWithMembers(project *model.Project, members []*model.ProjectMember, notifications []*model.Notification) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		for _, m := range members {
			m.ProjectID = project.ID
		}
		if len(members) > 0 {
			if err := tx.Create(&members).Error; err != nil {
				return err
			}
		}
		for _, n := range notifications {
			n.ProjectID = project.ID
		}
		if len(notifications) > 0 {
			if err := tx.Create(&notifications).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建项目失败", err)
	}
	return nil
}

func (r *projectRepository) UpdateWithMembers(project *model.Project, newMembers []*model.ProjectMember, notifications []*model.Notification) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(project).Error; err != nil {
			return err
		}
		// 重建成员集合: 删除所有非leader成员后重新插入, 保证结果幂等
		if err := tx.Where("project_id = ? AND role <> ?", project.ID, constants.MemberRoleLeader).
			Delete(&model.ProjectMember{}).Error; err != nil {
			return err
		}
		if len(newMembers) > 0 {
			if err := tx.Create(&newMembers).Error; err != nil {
				return err
			}
		}
		if len(notifications) > 0 {
			if err := tx.Create(&notifications).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新项目失败", err)
	}
	return nil
}

func (r *projectRepository) FindByID(id int64) (*model.Project, error) {
	var project model.Project
	err := r.db.First(&project, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgErrors.ErrProjectNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目失败", err)
	}
	return &project, nil
}

func (r *projectRepository) FindByIDWithRelations(id int64) (*model.Project, error) {
	var project model.Project
	err := r.db.Preload("Supervisor").Preload("Creator").
		Preload("Members").Preload("Members.User").
		First(&project, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgErrors.ErrProjectNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目失败", err)
	}
	return &project, nil
}

func (r *projectRepository) ListByUser(userID int64) ([]*model.Project, error) {
	var projects []*model.Project
	err := r.db.
		Distinct("projects.*").
		Joins("LEFT JOIN project_members pm ON pm.project_id = projects.id").
		Where("projects.created_by = ? OR projects.supervisor_id = ? OR pm.user_id = ?", userID, userID, userID).
		Order("projects.created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目列表失败", err)
	}
	return projects, nil
}

func (r *projectRepository) ListAll() ([]*model.Project, error) {
	var projects []*model.Project
	err := r.db.Order("created_at DESC").Find(&projects).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目列表失败", err)
	}
	return projects, nil
}

func (r *projectRepository) UpdateStatus(id int64, status string) error {
	if err := r.db.Model(&model.Project{}).Where("id = ?", id).
		Update("status", status).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新项目状态失败", err)
	}
	return nil
}

func (r *projectRepository) UpdateProgress(id int64, progress int) error {
	if err := r.db.Model(&model.Project{}).Where("id = ?", id).
		Update("progress_percentage", progress).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新项目进度失败", err)
	}
	return nil
}

func (r *projectRepository) Delete(id int64) error {
	// 依赖数据库外键的 ON DELETE CASCADE 清掉成员/任务/评论/文档/通知
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Delete(&model.Project{}, id).Error
	})
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "删除项目失败", err)
	}
	return nil
}
