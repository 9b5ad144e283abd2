package dto

import "student-projects/internal/repository"

// SummaryReportResponse 平台汇总报表响应
type SummaryReportResponse struct {
	TotalProjects     int64                      `json:"total_projects"`
	TotalStudents     int64                      `json:"total_students"`
	TotalSupervisors  int64                      `json:"total_supervisors"`
	TotalTasks        int64                      `json:"total_tasks"`
	ProjectsByStatus  []repository.StatusCount   `json:"projects_by_status"`
	TasksByPriority   []repository.PriorityCount `json:"tasks_by_priority"`
	TopDomains        []repository.DomainCount   `json:"top_domains"`
	AvgCompletionDays float64                    `json:"avg_completion_days"`
	RecentProjects    []*ProjectResponse         `json:"recent_projects"`
}
