package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"student-projects/internal/dto"
	"student-projects/internal/model"
	"student-projects/pkg/constants"
	pkgErrors "student-projects/pkg/responses"
)

type testEnv struct {
	users    *fakeUserRepo
	members  *fakeMemberRepo
	notifs   *fakeNotificationRepo
	projects *fakeProjectRepo
	tasks    *fakeTaskRepo
	comments *fakeCommentRepo
	docs     *fakeDocumentRepo
	store    *fakeStore

	authz       AuthorizationService
	notifier    NotificationService
	projectSvc  ProjectService
	taskSvc     TaskService
	commentSvc  CommentService
	documentSvc DocumentService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		users:   newFakeUserRepo(),
		members: &fakeMemberRepo{},
		notifs:  &fakeNotificationRepo{},
		tasks:   newFakeTaskRepo(),
		comments: &fakeCommentRepo{},
		docs:    newFakeDocumentRepo(),
		store:   newFakeStore(),
	}
	env.projects = newFakeProjectRepo(env.members, env.notifs)
	env.authz = NewAuthorizationService(env.users, env.projects, env.members)
	env.notifier = NewNotificationService(env.notifs, env.members)
	env.projectSvc = NewProjectService(
		env.users, env.projects, env.members, env.tasks, env.comments, env.docs,
		env.authz, env.notifier, env.store,
	)
	env.taskSvc = NewTaskService(env.tasks, env.members, env.authz, env.notifier, env.projectSvc)
	env.commentSvc = NewCommentService(env.comments, env.users, env.authz, env.notifier)
	env.documentSvc = NewDocumentService(env.docs, env.authz, env.notifier, env.store)
	return env
}

func (env *testEnv) addUser(t *testing.T, username, role string) *model.User {
	t.Helper()
	user := &model.User{
		Username:  username,
		Email:     username + "@example.com",
		FirstName: username,
		LastName:  "Test",
		Role:      role,
	}
	require.NoError(t, env.users.Create(user))
	return user
}

func (env *testEnv) addProject(t *testing.T, creatorID int64, supervisorID *int64, memberIDs ...int64) *model.Project {
	t.Helper()
	project := &model.Project{
		Title:        "测试项目",
		Description:  "描述",
		Status:       constants.ProjectStatusPlanning,
		SupervisorID: supervisorID,
		CreatedBy:    creatorID,
	}
	members := []*model.ProjectMember{{UserID: creatorID, Role: constants.MemberRoleLeader}}
	for _, id := range memberIDs {
		members = append(members, &model.ProjectMember{UserID: id, Role: constants.MemberRoleMember})
	}
	require.NoError(t, env.projects.CreateWithMembers(project, members, nil))
	return project
}

func TestCreateProject(t *testing.T) {
	env := newTestEnv()
	creator := env.addUser(t, "alice", constants.RoleStudent)
	member := env.addUser(t, "bob", constants.RoleStudent)
	supervisor := env.addUser(t, "prof", constants.RoleSupervisor)

	resp, err := env.projectSvc.CreateProject(creator.ID, &dto.CreateProjectRequest{
		Title:        "毕业设计",
		Description:  "关于分布式系统的课题",
		Domain:       "distributed-systems",
		StartDate:    "2026-01-10",
		SupervisorID: &supervisor.ID,
		MemberIDs:    []int64{member.ID, member.ID, creator.ID}, // 重复与创建者本人应被剔除
	})
	require.NoError(t, err)
	assert.Equal(t, constants.ProjectStatusPlanning, resp.Status)
	assert.Equal(t, 0, resp.ProgressPercentage)

	// 创建者固定为leader
	members, _ := env.members.ListByProject(resp.ID)
	require.Len(t, members, 2)
	roleByUser := map[int64]string{}
	for _, m := range members {
		roleByUser[m.UserID] = m.Role
	}
	assert.Equal(t, constants.MemberRoleLeader, roleByUser[creator.ID])
	assert.Equal(t, constants.MemberRoleMember, roleByUser[member.ID])

	// 成员与导师收到通知, 创建者本人不收
	assert.Len(t, env.notifs.forUser(member.ID), 1)
	assert.Len(t, env.notifs.forUser(supervisor.ID), 1)
	assert.Empty(t, env.notifs.forUser(creator.ID))
}

func TestCreateProjectEndDateNotAfterStart(t *testing.T) {
	env := newTestEnv()
	creator := env.addUser(t, "alice", constants.RoleStudent)

	end := "2026-01-10"
	_, err := env.projectSvc.CreateProject(creator.ID, &dto.CreateProjectRequest{
		Title:       "无效项目",
		Description: "desc",
		StartDate:   "2026-01-10",
		EndDate:     &end,
	})
	require.Error(t, err)
	// 校验失败时不落库
	projects, _ := env.projects.ListAll()
	assert.Empty(t, projects)
}

func TestCreateProjectSupervisorMustHaveSupervisorRole(t *testing.T) {
	env := newTestEnv()
	creator := env.addUser(t, "alice", constants.RoleStudent)
	student := env.addUser(t, "bob", constants.RoleStudent)

	_, err := env.projectSvc.CreateProject(creator.ID, &dto.CreateProjectRequest{
		Title:        "项目",
		Description:  "desc",
		StartDate:    "2026-01-10",
		SupervisorID: &student.ID,
	})
	require.Error(t, err)
}

func TestCanAccessProject(t *testing.T) {
	env := newTestEnv()
	creator := env.addUser(t, "alice", constants.RoleStudent)
	member := env.addUser(t, "bob", constants.RoleStudent)
	supervisor := env.addUser(t, "prof", constants.RoleSupervisor)
	otherSupervisor := env.addUser(t, "prof2", constants.RoleSupervisor)
	outsider := env.addUser(t, "eve", constants.RoleStudent)

	project := env.addProject(t, creator.ID, &supervisor.ID, member.ID)

	cases := []struct {
		name   string
		userID int64
		want   bool
	}{
		{"creator", creator.ID, true},
		{"member", member.ID, true},
		{"assigned supervisor", supervisor.ID, true},
		{"any supervisor", otherSupervisor.ID, true},
		{"outsider student", outsider.ID, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := env.authz.CanAccessProject(tc.userID, project.ID)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}

	// 项目不存在返回false而非错误
	ok, err := env.authz.CanAccessProject(creator.ID, 9999)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCanManageProject(t *testing.T) {
	env := newTestEnv()
	creator := env.addUser(t, "alice", constants.RoleStudent)
	member := env.addUser(t, "bob", constants.RoleStudent)
	supervisor := env.addUser(t, "prof", constants.RoleSupervisor)
	otherSupervisor := env.addUser(t, "prof2", constants.RoleSupervisor)
	outsider := env.addUser(t, "eve", constants.RoleStudent)

	project := env.addProject(t, creator.ID, &supervisor.ID, member.ID)

	cases := []struct {
		name   string
		userID int64
		want   bool
	}{
		{"creator", creator.ID, true},
		{"assigned supervisor", supervisor.ID, true},
		{"any supervisor", otherSupervisor.ID, true},
		{"plain member", member.ID, false},
		{"outsider student", outsider.ID, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := env.authz.CanManageProject(tc.userID, project.ID)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}

	// 项目不存在返回false而非错误
	ok, err := env.authz.CanManageProject(creator.ID, 9999)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdateProjectDeniedForPlainMember(t *testing.T) {
	env := newTestEnv()
	creator := env.addUser(t, "alice", constants.RoleStudent)
	member := env.addUser(t, "bob", constants.RoleStudent)
	project := env.addProject(t, creator.ID, nil, member.ID)

	_, err := env.projectSvc.UpdateProject(member.ID, project.ID, &dto.UpdateProjectRequest{
		Title:       "成员擅自改名",
		Description: "desc",
		StartDate:   "2026-01-10",
		MemberIDs:   []int64{member.ID},
	})
	assert.ErrorIs(t, err, pkgErrors.ErrProjectAccessDenied)

	unchanged, _ := env.projects.FindByID(project.ID)
	assert.Equal(t, "测试项目", unchanged.Title)
}

func TestUpdateProjectNotifiesOnlyNewMembers(t *testing.T) {
	env := newTestEnv()
	creator := env.addUser(t, "alice", constants.RoleStudent)
	oldMember := env.addUser(t, "bob", constants.RoleStudent)
	newMember := env.addUser(t, "carol", constants.RoleStudent)

	project := env.addProject(t, creator.ID, nil, oldMember.ID)

	_, err := env.projectSvc.UpdateProject(creator.ID, project.ID, &dto.UpdateProjectRequest{
		Title:       "更新后的项目",
		Description: "desc",
		StartDate:   "2026-01-10",
		MemberIDs:   []int64{oldMember.ID, newMember.ID},
	})
	require.NoError(t, err)

	assert.Len(t, env.notifs.forUser(newMember.ID), 1)
	assert.Empty(t, env.notifs.forUser(oldMember.ID))
}

func TestUpdateProjectNotifiesChangedSupervisor(t *testing.T) {
	env := newTestEnv()
	creator := env.addUser(t, "alice", constants.RoleStudent)
	oldSupervisor := env.addUser(t, "prof", constants.RoleSupervisor)
	newSupervisor := env.addUser(t, "prof2", constants.RoleSupervisor)
	project := env.addProject(t, creator.ID, &oldSupervisor.ID)

	// 导师不变, 不重复通知
	_, err := env.projectSvc.UpdateProject(creator.ID, project.ID, &dto.UpdateProjectRequest{
		Title:        "项目",
		Description:  "desc",
		StartDate:    "2026-01-10",
		SupervisorID: &oldSupervisor.ID,
	})
	require.NoError(t, err)
	assert.Empty(t, env.notifs.forUser(oldSupervisor.ID))

	_, err = env.projectSvc.UpdateProject(creator.ID, project.ID, &dto.UpdateProjectRequest{
		Title:        "项目",
		Description:  "desc",
		StartDate:    "2026-01-10",
		SupervisorID: &newSupervisor.ID,
	})
	require.NoError(t, err)
	assert.Len(t, env.notifs.forUser(newSupervisor.ID), 1)
}

func TestUpdateProjectStatus(t *testing.T) {
	env := newTestEnv()
	creator := env.addUser(t, "alice", constants.RoleStudent)
	member := env.addUser(t, "bob", constants.RoleStudent)
	project := env.addProject(t, creator.ID, nil, member.ID)

	err := env.projectSvc.UpdateStatus(creator.ID, &dto.UpdateProjectStatusRequest{
		ProjectID: project.ID,
		Status:    constants.ProjectStatusCompleted,
	})
	require.NoError(t, err)

	updated, _ := env.projects.FindByID(project.ID)
	assert.Equal(t, constants.ProjectStatusCompleted, updated.Status)

	// 操作者本人不收通知, 成员收到success级别通知
	assert.Empty(t, env.notifs.forUser(creator.ID))
	notifs := env.notifs.forUser(member.ID)
	require.Len(t, notifs, 1)
	assert.Equal(t, constants.NotifySeveritySuccess, notifs[0].Severity)
}

func TestUpdateProjectStatusRejectsUnknownValue(t *testing.T) {
	env := newTestEnv()
	creator := env.addUser(t, "alice", constants.RoleStudent)
	project := env.addProject(t, creator.ID, nil)

	err := env.projectSvc.UpdateStatus(creator.ID, &dto.UpdateProjectStatusRequest{
		ProjectID: project.ID,
		Status:    "archived",
	})
	require.Error(t, err)

	unchanged, _ := env.projects.FindByID(project.ID)
	assert.Equal(t, constants.ProjectStatusPlanning, unchanged.Status)
}

func TestDeleteProjectRemovesStoredFiles(t *testing.T) {
	env := newTestEnv()
	creator := env.addUser(t, "alice", constants.RoleStudent)
	project := env.addProject(t, creator.ID, nil)

	path, err := env.store.Save("doc.pdf", strings.NewReader("%PDF-1.4 content"))
	require.NoError(t, err)
	require.NoError(t, env.docs.Create(&model.Document{
		ProjectID:  project.ID,
		UploadedBy: creator.ID,
		Filename:   "doc.pdf",
		UploadPath: path,
	}))

	require.NoError(t, env.projectSvc.DeleteProject(creator.ID, project.ID))

	_, err = env.projects.FindByID(project.ID)
	assert.ErrorIs(t, err, pkgErrors.ErrProjectNotFound)
	_, err = env.store.Open(path)
	assert.Error(t, err, "磁盘文件应在删除后被清理")
}

func TestDeleteProjectDeniedForPlainMember(t *testing.T) {
	env := newTestEnv()
	creator := env.addUser(t, "alice", constants.RoleStudent)
	member := env.addUser(t, "bob", constants.RoleStudent)
	project := env.addProject(t, creator.ID, nil, member.ID)

	err := env.projectSvc.DeleteProject(member.ID, project.ID)
	assert.ErrorIs(t, err, pkgErrors.ErrProjectAccessDenied)

	_, err = env.projects.FindByID(project.ID)
	assert.NoError(t, err)
}

func TestRecomputeProgress(t *testing.T) {
	env := newTestEnv()
	creator := env.addUser(t, "alice", constants.RoleStudent)
	project := env.addProject(t, creator.ID, nil)

	for _, status := range []string{
		constants.TaskStatusCompleted,
		constants.TaskStatusCompleted,
		constants.TaskStatusTodo,
		constants.TaskStatusInProgress,
	} {
		require.NoError(t, env.tasks.Create(&model.Task{
			ProjectID: project.ID,
			Title:     "任务",
			Status:    status,
			Priority:  constants.TaskPriorityMedium,
		}))
	}

	progress, err := env.projectSvc.RecomputeProgress(project.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, progress)

	p, _ := env.projects.FindByID(project.ID)
	assert.Equal(t, 50, p.ProgressPercentage)
}

func TestRecomputeProgressNoTasks(t *testing.T) {
	env := newTestEnv()
	creator := env.addUser(t, "alice", constants.RoleStudent)
	project := env.addProject(t, creator.ID, nil)
	project.ProgressPercentage = 80 // 脏缓存

	progress, err := env.projectSvc.RecomputeProgress(project.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, progress)
}
