package repository

import (
	"gorm.io/gorm"

	"student-projects/internal/model"
	"student-projects/pkg/constants"
	pkgErrors "student-projects/pkg/responses"
)

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type DomainCount struct {
	Domain string `json:"domain"`
	Count  int64  `json:"count"`
}

type PriorityCount struct {
	Priority string `json:"priority"`
	Count    int64  `json:"count"`
}

type ReportRepository interface {
	CountProjects() (int64, error)
	CountUsersByRole(role string) (int64, error)
	CountTasks() (int64, error)
	CountProjectsByStatus() ([]StatusCount, error)
	CountTasksByPriority() ([]PriorityCount, error)
	TopDomains(limit int) ([]DomainCount, error)
	AvgCompletionDays() (float64, error)
	RecentProjects(limit int) ([]*model.Project, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) CountProjects() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Project{}).Count(&count).Error; err != nil {
		return 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "统计项目数量失败", err)
	}
	return count, nil
}

func (r *reportRepository) CountUsersByRole(role string) (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("role = ?", role).Count(&count).Error
	if err != nil {
		return 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "统计用户数量失败", err)
	}
	return count, nil
}

func (r *reportRepository) CountTasks() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Task{}).Count(&count).Error; err != nil {
		return 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "统计任务数量失败", err)
	}
	return count, nil
}

func (r *reportRepository) CountProjectsByStatus() ([]StatusCount, error) {
	var counts []StatusCount
	err := r.db.Model(&model.Project{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "统计项目状态分布失败", err)
	}
	return counts, nil
}

func (r *reportRepository) CountTasksByPriority() ([]PriorityCount, error) {
	var counts []PriorityCount
	err := r.db.Model(&model.Task{}).
		Select("priority, COUNT(*) AS count").
		Group("priority").
		Scan(&counts).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "统计任务优先级分布失败", err)
	}
	return counts, nil
}

func (r *reportRepository) TopDomains(limit int) ([]DomainCount, error) {
	var counts []DomainCount
	err := r.db.Model(&model.Project{}).
		Select("domain, COUNT(*) AS count").
		Where("domain <> ''").
		Group("domain").
		Order("count DESC").
		Limit(limit).
		Scan(&counts).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "统计项目领域分布失败", err)
	}
	return counts, nil
}

// AvgCompletionDays 统计已完成项目的平均完成天数.
// 完成时间取项目下最后完成任务的时间, 无已完成任务时取当前时间.
func (r *reportRepository) AvgCompletionDays() (float64, error) {
	var avg *float64
	err := r.db.Model(&model.Project{}).
		Select("AVG(DATEDIFF(COALESCE((SELECT MAX(t.completed_at) FROM tasks t WHERE t.project_id = projects.id AND t.completed_at IS NOT NULL), NOW()), projects.start_date))").
		Where("projects.status = ?", constants.ProjectStatusCompleted).
		Scan(&avg).Error
	if err != nil {
		return 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "统计平均完成天数失败", err)
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}

func (r *reportRepository) RecentProjects(limit int) ([]*model.Project, error) {
	var projects []*model.Project
	err := r.db.Preload("Supervisor").Preload("Creator").
		Order("created_at DESC").
		Limit(limit).
		Find(&projects).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询最近项目失败", err)
	}
	return projects, nil
}
