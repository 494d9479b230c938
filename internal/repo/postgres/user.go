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

const userColumns = "id, email, first_name, last_name, password, role, status, created_at, updated_at, last_login_at"

type UserRepository struct {
	db     *pgxpool.Pool
	logger *logrus.Logger
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger.Log,
	}
}

func (r *UserRepository) Save(ctx context.Context, user *entity.User) (*entity.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			password = EXCLUDED.password,
			role = EXCLUDED.role,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at,
			last_login_at = EXCLUDED.last_login_at
		RETURNING ` + userColumns

	row := r.db.QueryRow(ctx, query,
		user.ID,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Password,
		string(user.Role),
		string(user.Status),
		user.CreatedAt,
		user.UpdatedAt,
		user.LastLoginAt,
	)

	saved, err := scanUser(row)
	if err != nil {
		r.logger.WithFields(logrus.Fields{
			"method":  "Save",
			"user_id": user.ID,
		}).WithError(err).Error("Failed to save user")
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	return saved, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, "FindByID", `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "FindByEmail", `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	return r.queryUsers(ctx, "FindAll", `SELECT `+userColumns+` FROM users ORDER BY created_at`)
}

func (r *UserRepository) FindByStatus(ctx context.Context, status entity.UserStatus) ([]*entity.User, error) {
	return r.queryUsers(ctx, "FindByStatus",
		`SELECT `+userColumns+` FROM users WHERE status = $1 ORDER BY created_at`, string(status))
}

func (r *UserRepository) FindByRole(ctx context.Context, role entity.UserRole) ([]*entity.User, error) {
	return r.queryUsers(ctx, "FindByRole",
		`SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY created_at`, string(role))
}

func (r *UserRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	return r.exists(ctx, "ExistsByID", `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id)
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "ExistsByEmail", `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
}

func (r *UserRepository) DeleteByID(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		r.logger.WithFields(logrus.Fields{
			"method":  "DeleteByID",
			"user_id": id,
		}).WithError(err).Error("Failed to delete user")
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (r *UserRepository) CountByStatus(ctx context.Context, status entity.UserStatus) (int64, error) {
	return r.count(ctx, "CountByStatus", `SELECT COUNT(*) FROM users WHERE status = $1`, string(status))
}

func (r *UserRepository) CountByRole(ctx context.Context, role entity.UserRole) (int64, error) {
	return r.count(ctx, "CountByRole", `SELECT COUNT(*) FROM users WHERE role = $1`, string(role))
}

func (r *UserRepository) findOne(ctx context.Context, method, query string, args ...any) (*entity.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	user, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.WithFields(logrus.Fields{"method": method}).WithError(err).Error("Failed to get user")
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) queryUsers(ctx context.Context, method, query string, args ...any) ([]*entity.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.WithFields(logrus.Fields{"method": method}).WithError(err).Error("Failed to query users")
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			r.logger.WithFields(logrus.Fields{"method": method}).WithError(err).Error("Failed to scan user row")
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		r.logger.WithFields(logrus.Fields{"method": method}).WithError(err).Error("Error after scanning rows")
		return nil, fmt.Errorf("error after scanning rows: %w", err)
	}
	return users, nil
}

func (r *UserRepository) exists(ctx context.Context, method, query string, args ...any) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var exists bool
	if err := r.db.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		r.logger.WithFields(logrus.Fields{"method": method}).WithError(err).Error("Failed to check user existence")
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}

func (r *UserRepository) count(ctx context.Context, method, query string, args ...any) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.logger.WithFields(logrus.Fields{"method": method}).WithError(err).Error("Failed to count users")
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var id, email, firstName, lastName, password, role, status string
	var createdAt, updatedAt time.Time
	var lastLoginAt *time.Time

	err := row.Scan(&id, &email, &firstName, &lastName, &password, &role, &status,
		&createdAt, &updatedAt, &lastLoginAt)
	if err != nil {
		return nil, err
	}
	return entity.LoadUser(id, email, firstName, lastName, password, entity.UserRole(role),
		entity.UserStatus(status), createdAt, updatedAt, lastLoginAt), nil
}
