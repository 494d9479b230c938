package usecase

import (
	"time"

	"github.com/avelinsk/task-manager/internal/entity"
)

type CreateTaskInput struct {
	Title          string
	Description    string
	DueDate        *time.Time
	AssignedUserID string
	ProjectID      string
	Priority       entity.TaskPriority
}

type UpdateTaskInput struct {
	TaskID      string
	Title       string
	Description string
	DueDate     *time.Time
	Priority    entity.TaskPriority
}

// TaskOutput is a read projection: task fields plus resolved relation
// names and precomputed flags, so callers never chase references.
type TaskOutput struct {
	ID               string              `json:"id"`
	Title            string              `json:"title"`
	Description      string              `json:"description,omitempty"`
	DueDate          *time.Time          `json:"due_date,omitempty"`
	Status           entity.TaskStatus   `json:"status"`
	Priority         entity.TaskPriority `json:"priority"`
	AssignedUserID   string              `json:"assigned_user_id"`
	AssignedUserName string              `json:"assigned_user_name"`
	ProjectID        string              `json:"project_id"`
	ProjectName      string              `json:"project_name"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
	IsOverdue        bool                `json:"is_overdue"`
	DaysUntilDue     int64               `json:"days_until_due"`
}

func newTaskOutput(task *entity.Task, assignee *entity.User, project *entity.Project) TaskOutput {
	return TaskOutput{
		ID:               task.ID,
		Title:            task.Title,
		Description:      task.Description,
		DueDate:          task.DueDate,
		Status:           task.Status,
		Priority:         task.Priority,
		AssignedUserID:   task.AssignedUserID,
		AssignedUserName: assignee.FullName(),
		ProjectID:        task.ProjectID,
		ProjectName:      project.Name,
		CreatedAt:        task.CreatedAt,
		UpdatedAt:        task.UpdatedAt,
		IsOverdue:        task.IsOverdue(),
		DaysUntilDue:     task.DaysUntilDue(),
	}
}

type CreateUserInput struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
	Role      entity.UserRole
}

type UserOutput struct {
	ID             string          `json:"id"`
	Email          string          `json:"email"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	Role           entity.UserRole `json:"role"`
	FullName       string          `json:"full_name"`
	DisplayName    string          `json:"display_name"`
	CreatedAt      time.Time       `json:"created_at"`
	LastLoginAt    *time.Time      `json:"last_login_at,omitempty"`
	RecentlyActive bool            `json:"recently_active"`
}

func newUserOutput(user *entity.User) UserOutput {
	return UserOutput{
		ID:             user.ID,
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Role:           user.Role,
		FullName:       user.FullName(),
		DisplayName:    user.DisplayName(),
		CreatedAt:      user.CreatedAt,
		LastLoginAt:    user.LastLoginAt,
		RecentlyActive: user.IsRecentlyActive(),
	}
}

type CreateProjectInput struct {
	Name        string
	Description string
	OwnerID     string
	StartDate   *time.Time
	EndDate     *time.Time
}

type ProjectOutput struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Description   string               `json:"description,omitempty"`
	OwnerID       string               `json:"owner_id"`
	OwnerName     string               `json:"owner_name"`
	Status        entity.ProjectStatus `json:"status"`
	StartDate     *time.Time           `json:"start_date,omitempty"`
	EndDate       *time.Time           `json:"end_date,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	IsOverdue     bool                 `json:"is_overdue"`
	DaysRemaining int64                `json:"days_remaining"`
	TimeProgress  float64              `json:"time_progress"`
	NearDeadline  bool                 `json:"near_deadline"`
}

func newProjectOutput(project *entity.Project, owner *entity.User) ProjectOutput {
	return ProjectOutput{
		ID:            project.ID,
		Name:          project.Name,
		Description:   project.Description,
		OwnerID:       project.OwnerID,
		OwnerName:     owner.FullName(),
		Status:        project.Status,
		StartDate:     project.StartDate,
		EndDate:       project.EndDate,
		CreatedAt:     project.CreatedAt,
		IsOverdue:     project.IsOverdue(),
		DaysRemaining: project.DaysRemaining(),
		TimeProgress:  project.TimeProgress(),
		NearDeadline:  project.IsNearDeadline(),
	}
}
