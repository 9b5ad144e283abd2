package service

import (
	"bytes"
	"errors"
	"io"
	"time"

	"student-projects/internal/model"
	pkgErrors "student-projects/pkg/responses"
)

// 内存版仓储实现, 服务层单测不依赖数据库

type fakeUserRepo struct {
	users  map[int64]*model.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*model.User), nextID: 1}
}

func (r *fakeUserRepo) Create(user *model.User) error {
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(id int64) (*model.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pkgErrors.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) FindByLogin(identifier string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == identifier || u.Email == identifier {
			return u, nil
		}
	}
	return nil, pkgErrors.ErrUserNotFound
}

func (r *fakeUserRepo) ExistsByUsernameOrEmail(username, email string) (bool, error) {
	for _, u := range r.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) ListByRole(role string) ([]*model.User, error) {
	var users []*model.User
	for _, u := range r.users {
		if role == "" || u.Role == role {
			users = append(users, u)
		}
	}
	return users, nil
}

func (r *fakeUserRepo) ListByIDs(ids []int64) ([]*model.User, error) {
	var users []*model.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

type fakeProjectRepo struct {
	projects map[int64]*model.Project
	members  *fakeMemberRepo
	notifs   *fakeNotificationRepo
	nextID   int64
}

func newFakeProjectRepo(members *fakeMemberRepo, notifs *fakeNotificationRepo) *fakeProjectRepo {
	return &fakeProjectRepo{
		projects: make(map[int64]*model.Project),
		members:  members,
		notifs:   notifs,
		nextID:   1,
	}
}

func (r *fakeProjectRepo) CreateWithMembers(project *model.Project, members []*model.ProjectMember, notifications []*model.Notification) error {
	project.ID = r.nextID
	r.nextID++
	r.projects[project.ID] = project
	for _, m := range members {
		m.ProjectID = project.ID
		r.members.rows = append(r.members.rows, m)
	}
	for _, n := range notifications {
		n.ProjectID = project.ID
		_ = r.notifs.Create(n)
	}
	return nil
}

func (r *fakeProjectRepo) UpdateWithMembers(project *model.Project, newMembers []*model.ProjectMember, notifications []*model.Notification) error {
	r.projects[project.ID] = project
	var kept []*model.ProjectMember
	for _, m := range r.members.rows {
		if m.ProjectID != project.ID || m.Role == "leader" {
			kept = append(kept, m)
		}
	}
	r.members.rows = append(kept, newMembers...)
	for _, n := range notifications {
		_ = r.notifs.Create(n)
	}
	return nil
}

func (r *fakeProjectRepo) FindByID(id int64) (*model.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, pkgErrors.ErrProjectNotFound
	}
	return p, nil
}

func (r *fakeProjectRepo) FindByIDWithRelations(id int64) (*model.Project, error) {
	return r.FindByID(id)
}

func (r *fakeProjectRepo) ListByUser(userID int64) ([]*model.Project, error) {
	var projects []*model.Project
	for _, p := range r.projects {
		visible := p.CreatedBy == userID || (p.SupervisorID != nil && *p.SupervisorID == userID)
		if !visible {
			visible, _ = r.members.IsMember(p.ID, userID)
		}
		if visible {
			projects = append(projects, p)
		}
	}
	return projects, nil
}

func (r *fakeProjectRepo) ListAll() ([]*model.Project, error) {
	var projects []*model.Project
	for _, p := range r.projects {
		projects = append(projects, p)
	}
	return projects, nil
}

func (r *fakeProjectRepo) UpdateStatus(id int64, status string) error {
	p, ok := r.projects[id]
	if !ok {
		return pkgErrors.ErrProjectNotFound
	}
	p.Status = status
	return nil
}

func (r *fakeProjectRepo) UpdateProgress(id int64, progress int) error {
	p, ok := r.projects[id]
	if !ok {
		return pkgErrors.ErrProjectNotFound
	}
	p.ProgressPercentage = progress
	return nil
}

func (r *fakeProjectRepo) Delete(id int64) error {
	delete(r.projects, id)
	return nil
}

type fakeMemberRepo struct {
	rows []*model.ProjectMember
}

func (r *fakeMemberRepo) ListByProject(projectID int64) ([]*model.ProjectMember, error) {
	var members []*model.ProjectMember
	for _, m := range r.rows {
		if m.ProjectID == projectID {
			members = append(members, m)
		}
	}
	return members, nil
}

func (r *fakeMemberRepo) ListUserIDs(projectID int64) ([]int64, error) {
	var ids []int64
	for _, m := range r.rows {
		if m.ProjectID == projectID {
			ids = append(ids, m.UserID)
		}
	}
	return ids, nil
}

func (r *fakeMemberRepo) IsMember(projectID, userID int64) (bool, error) {
	for _, m := range r.rows {
		if m.ProjectID == projectID && m.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

type fakeTaskRepo struct {
	tasks  map[int64]*model.Task
	nextID int64
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[int64]*model.Task), nextID: 1}
}

func (r *fakeTaskRepo) Create(task *model.Task) error {
	task.ID = r.nextID
	r.nextID++
	r.tasks[task.ID] = task
	return nil
}

func (r *fakeTaskRepo) FindByID(id int64) (*model.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, pkgErrors.ErrTaskNotFound
	}
	return t, nil
}

func (r *fakeTaskRepo) ListByProject(projectID int64) ([]*model.Task, error) {
	var tasks []*model.Task
	for _, t := range r.tasks {
		if t.ProjectID == projectID {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

func (r *fakeTaskRepo) UpdateStatus(id int64, status string, completedAt *time.Time) error {
	t, ok := r.tasks[id]
	if !ok {
		return pkgErrors.ErrTaskNotFound
	}
	t.Status = status
	t.CompletedAt = completedAt
	return nil
}

func (r *fakeTaskRepo) CountByProject(projectID int64) (int64, int64, error) {
	var total, completed int64
	for _, t := range r.tasks {
		if t.ProjectID != projectID {
			continue
		}
		total++
		if t.Status == "completed" {
			completed++
		}
	}
	return total, completed, nil
}

func (r *fakeTaskRepo) ListDueSoon(from, to time.Time) ([]*model.Task, error) {
	var tasks []*model.Task
	for _, t := range r.tasks {
		if t.Status == "completed" || t.AssignedTo == nil || t.DueDate == nil {
			continue
		}
		due := time.Time(*t.DueDate)
		if !due.Before(from) && due.Before(to) {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

type fakeCommentRepo struct {
	comments []*model.Comment
	nextID   int64
}

func (r *fakeCommentRepo) Create(comment *model.Comment) error {
	r.nextID++
	comment.ID = r.nextID
	r.comments = append(r.comments, comment)
	return nil
}

func (r *fakeCommentRepo) ListByProject(projectID int64) ([]*model.Comment, error) {
	var comments []*model.Comment
	for _, c := range r.comments {
		if c.ProjectID == projectID {
			comments = append(comments, c)
		}
	}
	return comments, nil
}

type fakeDocumentRepo struct {
	docs      map[int64]*model.Document
	nextID    int64
	failNext  bool
	createErr error
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: make(map[int64]*model.Document), nextID: 1}
}

func (r *fakeDocumentRepo) Create(doc *model.Document) error {
	if r.failNext {
		r.failNext = false
		if r.createErr == nil {
			r.createErr = errors.New("insert failed")
		}
		return r.createErr
	}
	doc.ID = r.nextID
	r.nextID++
	r.docs[doc.ID] = doc
	return nil
}

func (r *fakeDocumentRepo) FindByID(id int64) (*model.Document, error) {
	d, ok := r.docs[id]
	if !ok {
		return nil, pkgErrors.ErrRecordNotFound
	}
	return d, nil
}

func (r *fakeDocumentRepo) ListByProject(projectID int64) ([]*model.Document, error) {
	var docs []*model.Document
	for _, d := range r.docs {
		if d.ProjectID == projectID {
			docs = append(docs, d)
		}
	}
	return docs, nil
}

func (r *fakeDocumentRepo) ListPathsByProject(projectID int64) ([]string, error) {
	var paths []string
	for _, d := range r.docs {
		if d.ProjectID == projectID {
			paths = append(paths, d.UploadPath)
		}
	}
	return paths, nil
}

type fakeNotificationRepo struct {
	notifications []*model.Notification
	nextID        int64
}

func (r *fakeNotificationRepo) Create(n *model.Notification) error {
	r.nextID++
	n.ID = r.nextID
	r.notifications = append(r.notifications, n)
	return nil
}

func (r *fakeNotificationRepo) CreateBatch(notifications []*model.Notification) error {
	for _, n := range notifications {
		_ = r.Create(n)
	}
	return nil
}

func (r *fakeNotificationRepo) ListByUser(userID int64, unreadOnly bool) ([]*model.Notification, error) {
	var notifications []*model.Notification
	for _, n := range r.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}

func (r *fakeNotificationRepo) CountUnread(userID int64) (int64, error) {
	var count int64
	for _, n := range r.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkRead(id, userID int64) error {
	for _, n := range r.notifications {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
			return nil
		}
	}
	return pkgErrors.ErrNotificationNotFound
}

func (r *fakeNotificationRepo) MarkAllRead(userID int64) (int64, error) {
	var count int64
	for _, n := range r.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) forUser(userID int64) []*model.Notification {
	notifications, _ := r.ListByUser(userID, false)
	return notifications
}

type fakeStore struct {
	files map[string][]byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{files: make(map[string][]byte)}
}

func (s *fakeStore) Save(filename string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.files[filename] = data
	return filename, nil
}

func (s *fakeStore) Remove(path string) error {
	delete(s.files, path)
	return nil
}

func (s *fakeStore) Open(path string) (io.ReadCloser, error) {
	data, ok := s.files[path]
	if !ok {
		return nil, errors.New("file not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}
