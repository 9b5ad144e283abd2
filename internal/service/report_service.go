package service

import (
	"student-projects/internal/dto"
	"student-projects/internal/repository"
	"student-projects/pkg/constants"
	pkgErrors "student-projects/pkg/responses"
)

type ReportService interface {
	// Summary 平台汇总报表, 仅导师可查看
	Summary(userID int64) (*dto.SummaryReportResponse, error)
}

type reportService struct {
	reportRepo repository.ReportRepository
	userRepo   repository.UserRepository
}

func NewReportService(reportRepo repository.ReportRepository, userRepo repository.UserRepository) ReportService {
	return &reportService{reportRepo: reportRepo, userRepo: userRepo}
}

func (s *reportService) Summary(userID int64) (*dto.SummaryReportResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if !user.IsSupervisor() {
		return nil, pkgErrors.New(pkgErrors.CodeForbidden, "只有导师可以查看报表")
	}

	totalProjects, err := s.reportRepo.CountProjects()
	if err != nil {
		return nil, err
	}
	totalStudents, err := s.reportRepo.CountUsersByRole(constants.RoleStudent)
	if err != nil {
		return nil, err
	}
	totalSupervisors, err := s.reportRepo.CountUsersByRole(constants.RoleSupervisor)
	if err != nil {
		return nil, err
	}
	totalTasks, err := s.reportRepo.CountTasks()
	if err != nil {
		return nil, err
	}
	byStatus, err := s.reportRepo.CountProjectsByStatus()
	if err != nil {
		return nil, err
	}
	byPriority, err := s.reportRepo.CountTasksByPriority()
	if err != nil {
		return nil, err
	}
	topDomains, err := s.reportRepo.TopDomains(10)
	if err != nil {
		return nil, err
	}
	avgDays, err := s.reportRepo.AvgCompletionDays()
	if err != nil {
		return nil, err
	}
	recent, err := s.reportRepo.RecentProjects(15)
	if err != nil {
		return nil, err
	}

	return &dto.SummaryReportResponse{
		TotalProjects:     totalProjects,
		TotalStudents:     totalStudents,
		TotalSupervisors:  totalSupervisors,
		TotalTasks:        totalTasks,
		ProjectsByStatus:  byStatus,
		TasksByPriority:   byPriority,
		TopDomains:        topDomains,
		AvgCompletionDays: avgDays,
		RecentProjects:    dto.ToProjectResponses(recent),
	}, nil
}
