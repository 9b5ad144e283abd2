package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"student-projects/internal/model"
	"student-projects/pkg/constants"
	pkgErrors "student-projects/pkg/responses"
)

type TaskRepository interface {
	Create(task *model.Task) error
	FindByID(id int64) (*model.Task, error)
	ListByProject(projectID int64) ([]*model.Task, error)
	// UpdateStatus 更新状态; completedAt 为 nil 时清空 completed_at 字段
	UpdateStatus(id int64, status string, completedAt *time.Time) error
	// CountByProject 统计任务总数与已完成数, 进度重算使用
	CountByProject(projectID int64) (total int64, completed int64, err error)
	// ListDueSoon 查询未完成且截止日期落在 [from, to) 区间内已指派的任务
	ListDueSoon(from, to time.Time) ([]*model.Task, error)
}

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(task *model.Task) error {
	if err := r.db.Create(task).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建任务失败", err)
	}
	return nil
}

func (r *taskRepository) FindByID(id int64) (*model.Task, error) {
	var task model.Task
	err := r.db.First(&task, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgErrors.ErrTaskNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询任务失败", err)
	}
	return &task, nil
}

func (r *taskRepository) ListByProject(projectID int64) ([]*model.Task, error) {
	var tasks []*model.Task
	err := r.db.Where("project_id = ?", projectID).
		Preload("Assignee").
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询任务列表失败", err)
	}
	return tasks, nil
}

func (r *taskRepository) UpdateStatus(id int64, status string, completedAt *time.Time) error {
	// 用map更新, 保证 completed_at 能被写成 NULL
	err := r.db.Model(&model.Task{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       status,
			"completed_at": completedAt,
		}).Error
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新任务状态失败", err)
	}
	return nil
}

func (r *taskRepository) CountByProject(projectID int64) (int64, int64, error) {
	var total, completed int64

	if err := r.db.Model(&model.Task{}).
		Where("project_id = ?", projectID).
		Count(&total).Error; err != nil {
		return 0, 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "统计任务数量失败", err)
	}

	if err := r.db.Model(&model.Task{}).
		Where("project_id = ? AND status = ?", projectID, constants.TaskStatusCompleted).
		Count(&completed).Error; err != nil {
		return 0, 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "统计任务数量失败", err)
	}

	return total, completed, nil
}

func (r *taskRepository) ListDueSoon(from, to time.Time) ([]*model.Task, error) {
	var tasks []*model.Task
	err := r.db.
		Where("status <> ? AND assigned_to IS NOT NULL AND due_date >= ? AND due_date < ?",
			constants.TaskStatusCompleted, from, to).
		Preload("Project").
		Find(&tasks).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询到期任务失败", err)
	}
	return tasks, nil
}
