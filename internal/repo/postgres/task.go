package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/avelinsk/task-manager/internal/entity"
	"github.com/avelinsk/task-manager/pkg/logger"
)

const taskColumns = "id, title, description, due_date, status, priority, assigned_user_id, project_id, created_at, updated_at"

type TaskRepository struct {
	db     *pgxpool.Pool
	logger *logrus.Logger
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{
		db:     db,
		logger: logger.Log,
	}
}

// Save upserts by id. Timestamps come from the entity, not the database.
func (r *TaskRepository) Save(ctx context.Context, task *entity.Task) (*entity.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			due_date = EXCLUDED.due_date,
			status = EXCLUDED.status,
			priority = EXCLUDED.priority,
			assigned_user_id = EXCLUDED.assigned_user_id,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + taskColumns

	row := r.db.QueryRow(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		task.DueDate,
		string(task.Status),
		string(task.Priority),
		task.AssignedUserID,
		task.ProjectID,
		task.CreatedAt,
		task.UpdatedAt,
	)

	saved, err := scanTask(row)
	if err != nil {
		r.logger.WithFields(logrus.Fields{
			"method":  "Save",
			"task_id": task.ID,
		}).WithError(err).Error("Failed to save task")
		return nil, fmt.Errorf("failed to save task: %w", err)
	}
	return saved, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*entity.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.WithFields(logrus.Fields{
			"method":  "FindByID",
			"task_id": id,
		}).WithError(err).Error("Failed to get task")
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

func (r *TaskRepository) FindAll(ctx context.Context) ([]*entity.Task, error) {
	return r.queryTasks(ctx, "FindAll", `SELECT `+taskColumns+` FROM tasks ORDER BY created_at`)
}

func (r *TaskRepository) FindByUserID(ctx context.Context, userID string) ([]*entity.Task, error) {
	return r.queryTasks(ctx, "FindByUserID",
		`SELECT `+taskColumns+` FROM tasks WHERE assigned_user_id = $1 ORDER BY created_at`, userID)
}

func (r *TaskRepository) FindByProjectID(ctx context.Context, projectID string) ([]*entity.Task, error) {
	return r.queryTasks(ctx, "FindByProjectID",
		`SELECT `+taskColumns+` FROM tasks WHERE project_id = $1 ORDER BY created_at`, projectID)
}

func (r *TaskRepository) FindByStatus(ctx context.Context, status entity.TaskStatus) ([]*entity.Task, error) {
	return r.queryTasks(ctx, "FindByStatus",
		`SELECT `+taskColumns+` FROM tasks WHERE status = $1 ORDER BY created_at`, string(status))
}

func (r *TaskRepository) FindByPriority(ctx context.Context, priority entity.TaskPriority) ([]*entity.Task, error) {
	return r.queryTasks(ctx, "FindByPriority",
		`SELECT `+taskColumns+` FROM tasks WHERE priority = $1 ORDER BY created_at`, string(priority))
}

func (r *TaskRepository) FindOverdue(ctx context.Context, now time.Time) ([]*entity.Task, error) {
	return r.queryTasks(ctx, "FindOverdue",
		`SELECT `+taskColumns+` FROM tasks
		 WHERE due_date IS NOT NULL AND due_date < $1 AND status NOT IN ('COMPLETED', 'CANCELLED')
		 ORDER BY due_date`, now)
}

func (r *TaskRepository) FindDueWithin(ctx context.Context, dueDateLimit time.Time) ([]*entity.Task, error) {
	return r.queryTasks(ctx, "FindDueWithin",
		`SELECT `+taskColumns+` FROM tasks
		 WHERE due_date IS NOT NULL AND due_date <= $1 AND status NOT IN ('COMPLETED', 'CANCELLED')
		 ORDER BY due_date`, dueDateLimit)
}

func (r *TaskRepository) FindByUserIDAndStatus(ctx context.Context, userID string, status entity.TaskStatus) ([]*entity.Task, error) {
	return r.queryTasks(ctx, "FindByUserIDAndStatus",
		`SELECT `+taskColumns+` FROM tasks WHERE assigned_user_id = $1 AND status = $2 ORDER BY created_at`,
		userID, string(status))
}

func (r *TaskRepository) FindByProjectIDAndStatus(ctx context.Context, projectID string, status entity.TaskStatus) ([]*entity.Task, error) {
	return r.queryTasks(ctx, "FindByProjectIDAndStatus",
		`SELECT `+taskColumns+` FROM tasks WHERE project_id = $1 AND status = $2 ORDER BY created_at`,
		projectID, string(status))
}

func (r *TaskRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM tasks WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		r.logger.WithFields(logrus.Fields{
			"method":  "ExistsByID",
			"task_id": id,
		}).WithError(err).Error("Failed to check task existence")
		return false, fmt.Errorf("failed to check task existence: %w", err)
	}
	return exists, nil
}

func (r *TaskRepository) DeleteByID(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		r.logger.WithFields(logrus.Fields{
			"method":  "DeleteByID",
			"task_id": id,
		}).WithError(err).Error("Failed to delete task")
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.RowsAffected() == 0 {
		r.logger.WithFields(logrus.Fields{
			"method":  "DeleteByID",
			"task_id": id,
		}).Warn("Task not found for deletion")
	}
	return nil
}

func (r *TaskRepository) CountByUserID(ctx context.Context, userID string) (int64, error) {
	return r.countTasks(ctx, "CountByUserID",
		`SELECT COUNT(*) FROM tasks WHERE assigned_user_id = $1`, userID)
}

func (r *TaskRepository) CountByProjectID(ctx context.Context, projectID string) (int64, error) {
	return r.countTasks(ctx, "CountByProjectID",
		`SELECT COUNT(*) FROM tasks WHERE project_id = $1`, projectID)
}

func (r *TaskRepository) CountByStatus(ctx context.Context, status entity.TaskStatus) (int64, error) {
	return r.countTasks(ctx, "CountByStatus",
		`SELECT COUNT(*) FROM tasks WHERE status = $1`, string(status))
}

func (r *TaskRepository) queryTasks(ctx context.Context, method, query string, args ...any) ([]*entity.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.WithFields(logrus.Fields{"method": method}).WithError(err).Error("Failed to query tasks")
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*entity.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			r.logger.WithFields(logrus.Fields{"method": method}).WithError(err).Error("Failed to scan task row")
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		r.logger.WithFields(logrus.Fields{"method": method}).WithError(err).Error("Error after scanning rows")
		return nil, fmt.Errorf("error after scanning rows: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) countTasks(ctx context.Context, method, query string, args ...any) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.logger.WithFields(logrus.Fields{"method": method}).WithError(err).Error("Failed to count tasks")
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return count, nil
}

func scanTask(row pgx.Row) (*entity.Task, error) {
	var id, title, description, status, priority, assignedUserID, projectID string
	var dueDate *time.Time
	var createdAt, updatedAt time.Time
	err := row.Scan(&id, &title, &description, &dueDate, &status, &priority,
		&assignedUserID, &projectID, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	return entity.LoadTask(id, title, description, dueDate, entity.TaskStatus(status),
		entity.TaskPriority(priority), assignedUserID, projectID, createdAt, updatedAt), nil
}
