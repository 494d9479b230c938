package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/avelinsk/task-manager/internal/entity"
)

// In-memory port implementations backed by maps. Each fake counts
// Save calls so tests can assert that failed use cases never persist.

type fakeTaskRepo struct {
	tasks     map[string]*entity.Task
	saveCalls int
	saveErr   error
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[string]*entity.Task)}
}

func (r *fakeTaskRepo) Save(_ context.Context, task *entity.Task) (*entity.Task, error) {
	r.saveCalls++
	if r.saveErr != nil {
		return nil, r.saveErr
	}
	copied := *task
	r.tasks[task.ID] = &copied
	return task, nil
}

func (r *fakeTaskRepo) FindByID(_ context.Context, id string) (*entity.Task, error) {
	return r.tasks[id], nil
}

func (r *fakeTaskRepo) FindAll(_ context.Context) ([]*entity.Task, error) {
	out := make([]*entity.Task, 0, len(r.tasks))
	for _, task := range r.tasks {
		out = append(out, task)
	}
	return out, nil
}

func (r *fakeTaskRepo) FindByUserID(_ context.Context, userID string) ([]*entity.Task, error) {
	var out []*entity.Task
	for _, task := range r.tasks {
		if task.AssignedUserID == userID {
			out = append(out, task)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) FindByProjectID(_ context.Context, projectID string) ([]*entity.Task, error) {
	var out []*entity.Task
	for _, task := range r.tasks {
		if task.ProjectID == projectID {
			out = append(out, task)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) FindByStatus(_ context.Context, status entity.TaskStatus) ([]*entity.Task, error) {
	var out []*entity.Task
	for _, task := range r.tasks {
		if task.Status == status {
			out = append(out, task)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) FindByPriority(_ context.Context, priority entity.TaskPriority) ([]*entity.Task, error) {
	var out []*entity.Task
	for _, task := range r.tasks {
		if task.Priority == priority {
			out = append(out, task)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) FindOverdue(_ context.Context, now time.Time) ([]*entity.Task, error) {
	var out []*entity.Task
	for _, task := range r.tasks {
		if task.DueDate != nil && now.After(*task.DueDate) && task.Status.IsActive() {
			out = append(out, task)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) FindDueWithin(_ context.Context, limit time.Time) ([]*entity.Task, error) {
	var out []*entity.Task
	for _, task := range r.tasks {
		if task.DueDate != nil && task.DueDate.Before(limit) {
			out = append(out, task)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) FindByUserIDAndStatus(_ context.Context, userID string, status entity.TaskStatus) ([]*entity.Task, error) {
	var out []*entity.Task
	for _, task := range r.tasks {
		if task.AssignedUserID == userID && task.Status == status {
			out = append(out, task)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) FindByProjectIDAndStatus(_ context.Context, projectID string, status entity.TaskStatus) ([]*entity.Task, error) {
	var out []*entity.Task
	for _, task := range r.tasks {
		if task.ProjectID == projectID && task.Status == status {
			out = append(out, task)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) ExistsByID(_ context.Context, id string) (bool, error) {
	_, ok := r.tasks[id]
	return ok, nil
}

func (r *fakeTaskRepo) DeleteByID(_ context.Context, id string) error {
	if _, ok := r.tasks[id]; !ok {
		return errors.New("task not in fake store")
	}
	delete(r.tasks, id)
	return nil
}

func (r *fakeTaskRepo) CountByUserID(ctx context.Context, userID string) (int64, error) {
	tasks, _ := r.FindByUserID(ctx, userID)
	return int64(len(tasks)), nil
}

func (r *fakeTaskRepo) CountByProjectID(ctx context.Context, projectID string) (int64, error) {
	tasks, _ := r.FindByProjectID(ctx, projectID)
	return int64(len(tasks)), nil
}

func (r *fakeTaskRepo) CountByStatus(ctx context.Context, status entity.TaskStatus) (int64, error) {
	tasks, _ := r.FindByStatus(ctx, status)
	return int64(len(tasks)), nil
}

type fakeUserRepo struct {
	users     map[string]*entity.User
	saveCalls int
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (r *fakeUserRepo) Save(_ context.Context, user *entity.User) (*entity.User, error) {
	r.saveCalls++
	copied := *user
	r.users[user.ID] = &copied
	return user, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, user)
	}
	return out, nil
}

func (r *fakeUserRepo) FindByStatus(_ context.Context, status entity.UserStatus) ([]*entity.User, error) {
	var out []*entity.User
	for _, user := range r.users {
		if user.Status == status {
			out = append(out, user)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) FindByRole(_ context.Context, role entity.UserRole) ([]*entity.User, error) {
	var out []*entity.User
	for _, user := range r.users {
		if user.Role == role {
			out = append(out, user)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) ExistsByID(_ context.Context, id string) (bool, error) {
	_, ok := r.users[id]
	return ok, nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	user, _ := r.FindByEmail(ctx, email)
	return user != nil, nil
}

func (r *fakeUserRepo) DeleteByID(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) CountByStatus(ctx context.Context, status entity.UserStatus) (int64, error) {
	users, _ := r.FindByStatus(ctx, status)
	return int64(len(users)), nil
}

func (r *fakeUserRepo) CountByRole(ctx context.Context, role entity.UserRole) (int64, error) {
	users, _ := r.FindByRole(ctx, role)
	return int64(len(users)), nil
}

type fakeProjectRepo struct {
	projects  map[string]*entity.Project
	saveCalls int
}

func newFakeProjectRepo(projects ...*entity.Project) *fakeProjectRepo {
	repo := &fakeProjectRepo{projects: make(map[string]*entity.Project)}
	for _, project := range projects {
		repo.projects[project.ID] = project
	}
	return repo
}

func (r *fakeProjectRepo) Save(_ context.Context, project *entity.Project) (*entity.Project, error) {
	r.saveCalls++
	copied := *project
	r.projects[project.ID] = &copied
	return project, nil
}

func (r *fakeProjectRepo) FindByID(_ context.Context, id string) (*entity.Project, error) {
	return r.projects[id], nil
}

func (r *fakeProjectRepo) FindAll(_ context.Context) ([]*entity.Project, error) {
	out := make([]*entity.Project, 0, len(r.projects))
	for _, project := range r.projects {
		out = append(out, project)
	}
	return out, nil
}

func (r *fakeProjectRepo) FindByOwnerID(_ context.Context, ownerID string) ([]*entity.Project, error) {
	var out []*entity.Project
	for _, project := range r.projects {
		if project.OwnerID == ownerID {
			out = append(out, project)
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) FindByStatus(_ context.Context, status entity.ProjectStatus) ([]*entity.Project, error) {
	var out []*entity.Project
	for _, project := range r.projects {
		if project.Status == status {
			out = append(out, project)
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) FindActive(_ context.Context) ([]*entity.Project, error) {
	var out []*entity.Project
	for _, project := range r.projects {
		if project.Status.IsActive() {
			out = append(out, project)
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) FindOverdue(_ context.Context, now time.Time) ([]*entity.Project, error) {
	var out []*entity.Project
	for _, project := range r.projects {
		if project.EndDate != nil && now.After(*project.EndDate) && project.Status.IsActive() {
			out = append(out, project)
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) FindEndingWithin(_ context.Context, limit time.Time) ([]*entity.Project, error) {
	var out []*entity.Project
	for _, project := range r.projects {
		if project.EndDate != nil && project.EndDate.Before(limit) {
			out = append(out, project)
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) ExistsByID(_ context.Context, id string) (bool, error) {
	_, ok := r.projects[id]
	return ok, nil
}

func (r *fakeProjectRepo) DeleteByID(_ context.Context, id string) error {
	delete(r.projects, id)
	return nil
}

func (r *fakeProjectRepo) CountByOwnerID(ctx context.Context, ownerID string) (int64, error) {
	projects, _ := r.FindByOwnerID(ctx, ownerID)
	return int64(len(projects)), nil
}

func (r *fakeProjectRepo) CountByStatus(ctx context.Context, status entity.ProjectStatus) (int64, error) {
	projects, _ := r.FindByStatus(ctx, status)
	return int64(len(projects)), nil
}

type fakeTaskCache struct {
	userTasks    map[string][]TaskOutput
	projectTasks map[string][]TaskOutput
	invalidated  int
}

func newFakeTaskCache() *fakeTaskCache {
	return &fakeTaskCache{
		userTasks:    make(map[string][]TaskOutput),
		projectTasks: make(map[string][]TaskOutput),
	}
}

func (c *fakeTaskCache) GetUserTasks(_ context.Context, userID string) ([]TaskOutput, error) {
	return c.userTasks[userID], nil
}

func (c *fakeTaskCache) SetUserTasks(_ context.Context, userID string, tasks []TaskOutput, _ time.Duration) error {
	c.userTasks[userID] = tasks
	return nil
}

func (c *fakeTaskCache) GetProjectTasks(_ context.Context, projectID string) ([]TaskOutput, error) {
	return c.projectTasks[projectID], nil
}

func (c *fakeTaskCache) SetProjectTasks(_ context.Context, projectID string, tasks []TaskOutput, _ time.Duration) error {
	c.projectTasks[projectID] = tasks
	return nil
}

func (c *fakeTaskCache) InvalidateTask(_ context.Context, userID, projectID string) error {
	c.invalidated++
	delete(c.userTasks, userID)
	delete(c.projectTasks, projectID)
	return nil
}

type fakeHasher struct {
	calls int
}

func (h *fakeHasher) Hash(plain string) (string, error) {
	h.calls++
	return "hashed:" + plain, nil
}
