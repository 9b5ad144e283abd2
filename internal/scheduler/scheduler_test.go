package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"student-projects/internal/dto"
	"student-projects/internal/model"
	"student-projects/pkg/constants"
)

type stubTaskRepo struct {
	gotFrom time.Time
	gotTo   time.Time
	tasks   []*model.Task
}

func (r *stubTaskRepo) Create(*model.Task) error                  { return nil }
func (r *stubTaskRepo) FindByID(int64) (*model.Task, error)       { return nil, nil }
func (r *stubTaskRepo) ListByProject(int64) ([]*model.Task, error) { return nil, nil }
func (r *stubTaskRepo) UpdateStatus(int64, string, *time.Time) error { return nil }
func (r *stubTaskRepo) CountByProject(int64) (int64, int64, error) { return 0, 0, nil }

func (r *stubTaskRepo) ListDueSoon(from, to time.Time) ([]*model.Task, error) {
	r.gotFrom = from
	r.gotTo = to
	return r.tasks, nil
}

type recordedNotification struct {
	userID    int64
	projectID int64
	title     string
	severity  string
}

type stubNotifier struct {
	sent []recordedNotification
}

func (n *stubNotifier) Notify(userID, projectID int64, title, message, severity string) error {
	n.sent = append(n.sent, recordedNotification{userID, projectID, title, severity})
	return nil
}

func (n *stubNotifier) FanOut(*model.Project, int64, string, string, string, ...int64) {}

func (n *stubNotifier) ListByUser(int64, bool) (*dto.NotificationListResponse, error) {
	return nil, nil
}
func (n *stubNotifier) MarkRead(int64, int64) error       { return nil }
func (n *stubNotifier) MarkAllRead(int64) (int64, error)  { return 0, nil }

func TestRemindDueTasksUses24HourWindow(t *testing.T) {
	assignee := int64(5)
	due := datatypes.Date(time.Now())
	repo := &stubTaskRepo{tasks: []*model.Task{{
		BaseModel:  model.BaseModel{ID: 1},
		ProjectID:  3,
		Title:      "撰写开题报告",
		Status:     constants.TaskStatusTodo,
		AssignedTo: &assignee,
		DueDate:    &due,
	}}}
	notifier := &stubNotifier{}
	s := &Scheduler{taskRepo: repo, notifier: notifier}

	require.NoError(t, s.RemindDueTasks())

	assert.Equal(t, 24*time.Hour, repo.gotTo.Sub(repo.gotFrom))

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, assignee, notifier.sent[0].userID)
	assert.Equal(t, int64(3), notifier.sent[0].projectID)
	assert.Equal(t, constants.NotifySeverityWarning, notifier.sent[0].severity)
}

func TestRemindDueTasksSkipsUnassigned(t *testing.T) {
	due := datatypes.Date(time.Now())
	repo := &stubTaskRepo{tasks: []*model.Task{{
		BaseModel: model.BaseModel{ID: 2},
		ProjectID: 3,
		Title:     "无人认领的任务",
		Status:    constants.TaskStatusTodo,
		DueDate:   &due,
	}}}
	notifier := &stubNotifier{}
	s := &Scheduler{taskRepo: repo, notifier: notifier}

	require.NoError(t, s.RemindDueTasks())
	assert.Empty(t, notifier.sent)
}
