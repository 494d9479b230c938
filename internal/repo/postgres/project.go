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

const projectColumns = "id, name, description, owner_id, status, start_date, end_date, created_at, updated_at"

type ProjectRepository struct {
	db     *pgxpool.Pool
	logger *logrus.Logger
}

func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{
		db:     db,
		logger: logger.Log,
	}
}

func (r *ProjectRepository) Save(ctx context.Context, project *entity.Project) (*entity.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			owner_id = EXCLUDED.owner_id,
			status = EXCLUDED.status,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + projectColumns

	row := r.db.QueryRow(ctx, query,
		project.ID,
		project.Name,
		project.Description,
		project.OwnerID,
		string(project.Status),
		project.StartDate,
		project.EndDate,
		project.CreatedAt,
		project.UpdatedAt,
	)

	saved, err := scanProject(row)
	if err != nil {
		r.logger.WithFields(logrus.Fields{
			"method":     "Save",
			"project_id": project.ID,
		}).WithError(err).Error("Failed to save project")
		return nil, fmt.Errorf("failed to save project: %w", err)
	}
	return saved, nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*entity.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`

	project, err := scanProject(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.WithFields(logrus.Fields{
			"method":     "FindByID",
			"project_id": id,
		}).WithError(err).Error("Failed to get project")
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

func (r *ProjectRepository) FindAll(ctx context.Context) ([]*entity.Project, error) {
	return r.queryProjects(ctx, "FindAll", `SELECT `+projectColumns+` FROM projects ORDER BY created_at`)
}

func (r *ProjectRepository) FindByOwnerID(ctx context.Context, ownerID string) ([]*entity.Project, error) {
	return r.queryProjects(ctx, "FindByOwnerID",
		`SELECT `+projectColumns+` FROM projects WHERE owner_id = $1 ORDER BY created_at`, ownerID)
}

func (r *ProjectRepository) FindByStatus(ctx context.Context, status entity.ProjectStatus) ([]*entity.Project, error) {
	return r.queryProjects(ctx, "FindByStatus",
		`SELECT `+projectColumns+` FROM projects WHERE status = $1 ORDER BY created_at`, string(status))
}

func (r *ProjectRepository) FindActive(ctx context.Context) ([]*entity.Project, error) {
	return r.queryProjects(ctx, "FindActive",
		`SELECT `+projectColumns+` FROM projects WHERE status IN ('PLANNING', 'IN_PROGRESS') ORDER BY created_at`)
}

func (r *ProjectRepository) FindOverdue(ctx context.Context, now time.Time) ([]*entity.Project, error) {
	return r.queryProjects(ctx, "FindOverdue",
		`SELECT `+projectColumns+` FROM projects
		 WHERE end_date IS NOT NULL AND end_date < $1 AND status NOT IN ('COMPLETED', 'CANCELLED')
		 ORDER BY end_date`, now)
}

func (r *ProjectRepository) FindEndingWithin(ctx context.Context, endDateLimit time.Time) ([]*entity.Project, error) {
	return r.queryProjects(ctx, "FindEndingWithin",
		`SELECT `+projectColumns+` FROM projects
		 WHERE end_date IS NOT NULL AND end_date <= $1 AND status NOT IN ('COMPLETED', 'CANCELLED')
		 ORDER BY end_date`, endDateLimit)
}

func (r *ProjectRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM projects WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		r.logger.WithFields(logrus.Fields{
			"method":     "ExistsByID",
			"project_id": id,
		}).WithError(err).Error("Failed to check project existence")
		return false, fmt.Errorf("failed to check project existence: %w", err)
	}
	return exists, nil
}

func (r *ProjectRepository) DeleteByID(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id); err != nil {
		r.logger.WithFields(logrus.Fields{
			"method":     "DeleteByID",
			"project_id": id,
		}).WithError(err).Error("Failed to delete project")
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) CountByOwnerID(ctx context.Context, ownerID string) (int64, error) {
	return r.countProjects(ctx, "CountByOwnerID",
		`SELECT COUNT(*) FROM projects WHERE owner_id = $1`, ownerID)
}

func (r *ProjectRepository) CountByStatus(ctx context.Context, status entity.ProjectStatus) (int64, error) {
	return r.countProjects(ctx, "CountByStatus",
		`SELECT COUNT(*) FROM projects WHERE status = $1`, string(status))
}

func (r *ProjectRepository) queryProjects(ctx context.Context, method, query string, args ...any) ([]*entity.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.WithFields(logrus.Fields{"method": method}).WithError(err).Error("Failed to query projects")
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	var projects []*entity.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			r.logger.WithFields(logrus.Fields{"method": method}).WithError(err).Error("Failed to scan project row")
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		r.logger.WithFields(logrus.Fields{"method": method}).WithError(err).Error("Error after scanning rows")
		return nil, fmt.Errorf("error after scanning rows: %w", err)
	}
	return projects, nil
}

func (r *ProjectRepository) countProjects(ctx context.Context, method, query string, args ...any) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.logger.WithFields(logrus.Fields{"method": method}).WithError(err).Error("Failed to count projects")
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return count, nil
}

func scanProject(row pgx.Row) (*entity.Project, error) {
	var id, name, description, ownerID, status string
	var startDate, endDate *time.Time
	var createdAt, updatedAt time.Time

	err := row.Scan(&id, &name, &description, &ownerID, &status,
		&startDate, &endDate, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	return entity.LoadProject(id, name, description, ownerID, entity.ProjectStatus(status),
		startDate, endDate, createdAt, updatedAt), nil
}
