package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"student-projects/internal/model"
	"student-projects/internal/repository"
	"student-projects/pkg/constants"
)

type fakeReportRepo struct{}

func (r *fakeReportRepo) CountProjects() (int64, error)            { return 12, nil }
func (r *fakeReportRepo) CountUsersByRole(role string) (int64, error) {
	if role == constants.RoleSupervisor {
		return 3, nil
	}
	return 40, nil
}
func (r *fakeReportRepo) CountTasks() (int64, error) { return 87, nil }
func (r *fakeReportRepo) CountProjectsByStatus() ([]repository.StatusCount, error) {
	return []repository.StatusCount{{Status: "in_progress", Count: 7}, {Status: "completed", Count: 5}}, nil
}
func (r *fakeReportRepo) CountTasksByPriority() ([]repository.PriorityCount, error) {
	return []repository.PriorityCount{{Priority: "medium", Count: 60}}, nil
}
func (r *fakeReportRepo) TopDomains(limit int) ([]repository.DomainCount, error) {
	return []repository.DomainCount{{Domain: "web", Count: 6}}, nil
}
func (r *fakeReportRepo) AvgCompletionDays() (float64, error) { return 42.5, nil }
func (r *fakeReportRepo) RecentProjects(limit int) ([]*model.Project, error) {
	return nil, nil
}

func TestSummaryReportSupervisorOnly(t *testing.T) {
	env := newTestEnv()
	student := env.addUser(t, "alice", constants.RoleStudent)
	supervisor := env.addUser(t, "prof", constants.RoleSupervisor)

	reportSvc := NewReportService(&fakeReportRepo{}, env.users)

	_, err := reportSvc.Summary(student.ID)
	require.Error(t, err)

	resp, err := reportSvc.Summary(supervisor.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(12), resp.TotalProjects)
	assert.Equal(t, int64(40), resp.TotalStudents)
	assert.Equal(t, int64(3), resp.TotalSupervisors)
	assert.Equal(t, 42.5, resp.AvgCompletionDays)
}
