package usecase

import (
	"context"
	"time"

	"github.com/avelinsk/task-manager/internal/entity"
)

// Repository ports. Implementations live in internal/repo. Lookups
// return (nil, nil) when the id or key is absent; raising the matching
// not-found error is the use case's job.

type TaskRepository interface {
	Save(ctx context.Context, task *entity.Task) (*entity.Task, error)
	FindByID(ctx context.Context, id string) (*entity.Task, error)
	FindAll(ctx context.Context) ([]*entity.Task, error)
	FindByUserID(ctx context.Context, userID string) ([]*entity.Task, error)
	FindByProjectID(ctx context.Context, projectID string) ([]*entity.Task, error)
	FindByStatus(ctx context.Context, status entity.TaskStatus) ([]*entity.Task, error)
	FindByPriority(ctx context.Context, priority entity.TaskPriority) ([]*entity.Task, error)
	FindOverdue(ctx context.Context, now time.Time) ([]*entity.Task, error)
	FindDueWithin(ctx context.Context, dueDateLimit time.Time) ([]*entity.Task, error)
	FindByUserIDAndStatus(ctx context.Context, userID string, status entity.TaskStatus) ([]*entity.Task, error)
	FindByProjectIDAndStatus(ctx context.Context, projectID string, status entity.TaskStatus) ([]*entity.Task, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	DeleteByID(ctx context.Context, id string) error
	CountByUserID(ctx context.Context, userID string) (int64, error)
	CountByProjectID(ctx context.Context, projectID string) (int64, error)
	CountByStatus(ctx context.Context, status entity.TaskStatus) (int64, error)
}

type UserRepository interface {
	Save(ctx context.Context, user *entity.User) (*entity.User, error)
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindAll(ctx context.Context) ([]*entity.User, error)
	FindByStatus(ctx context.Context, status entity.UserStatus) ([]*entity.User, error)
	FindByRole(ctx context.Context, role entity.UserRole) ([]*entity.User, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	DeleteByID(ctx context.Context, id string) error
	CountByStatus(ctx context.Context, status entity.UserStatus) (int64, error)
	CountByRole(ctx context.Context, role entity.UserRole) (int64, error)
}

type ProjectRepository interface {
	Save(ctx context.Context, project *entity.Project) (*entity.Project, error)
	FindByID(ctx context.Context, id string) (*entity.Project, error)
	FindAll(ctx context.Context) ([]*entity.Project, error)
	FindByOwnerID(ctx context.Context, ownerID string) ([]*entity.Project, error)
	FindByStatus(ctx context.Context, status entity.ProjectStatus) ([]*entity.Project, error)
	FindActive(ctx context.Context) ([]*entity.Project, error)
	FindOverdue(ctx context.Context, now time.Time) ([]*entity.Project, error)
	FindEndingWithin(ctx context.Context, endDateLimit time.Time) ([]*entity.Project, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	DeleteByID(ctx context.Context, id string) error
	CountByOwnerID(ctx context.Context, ownerID string) (int64, error)
	CountByStatus(ctx context.Context, status entity.ProjectStatus) (int64, error)
}

// TaskCache holds assembled task projections keyed by user or project.
// A cache miss is (nil, nil); errors are logged and never fail the
// request.
type TaskCache interface {
	GetUserTasks(ctx context.Context, userID string) ([]TaskOutput, error)
	SetUserTasks(ctx context.Context, userID string, tasks []TaskOutput, ttl time.Duration) error
	GetProjectTasks(ctx context.Context, projectID string) ([]TaskOutput, error)
	SetProjectTasks(ctx context.Context, projectID string, tasks []TaskOutput, ttl time.Duration) error
	InvalidateTask(ctx context.Context, userID, projectID string) error
}

// PasswordHasher hashes passwords on the way to persistence. Entities
// validate plaintext strength but never hash.
type PasswordHasher interface {
	Hash(plain string) (string, error)
}
