package entity

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
	TaskStatusCancelled  TaskStatus = "CANCELLED"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	}
	return false
}

func (s TaskStatus) IsActive() bool {
	return s == TaskStatusTodo || s == TaskStatusInProgress
}

func (s TaskStatus) IsCompleted() bool { return s == TaskStatusCompleted }
func (s TaskStatus) IsCancelled() bool { return s == TaskStatusCancelled }

func ParseTaskStatus(s string) (TaskStatus, error) {
	status := TaskStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", fmt.Errorf("%w: unknown task status %q", ErrValidation, s)
	}
	return status, nil
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
	PriorityUrgent TaskPriority = "URGENT"
)

// priorityRank orders priorities, lowest first.
var priorityRank = map[TaskPriority]int{
	PriorityLow:    1,
	PriorityMedium: 2,
	PriorityHigh:   3,
	PriorityUrgent: 4,
}

func (p TaskPriority) Valid() bool {
	_, ok := priorityRank[p]
	return ok
}

// Value returns the numeric rank of the priority, 1 through 4.
func (p TaskPriority) Value() int { return priorityRank[p] }

func (p TaskPriority) HigherThan(other TaskPriority) bool {
	return priorityRank[p] > priorityRank[other]
}

func (p TaskPriority) LowerThan(other TaskPriority) bool {
	return priorityRank[p] < priorityRank[other]
}

func ParseTaskPriority(s string) (TaskPriority, error) {
	priority := TaskPriority(strings.ToUpper(strings.TrimSpace(s)))
	if !priority.Valid() {
		return "", fmt.Errorf("%w: unknown task priority %q", ErrValidation, s)
	}
	return priority, nil
}

// TaskPriorityFromValue maps a numeric rank back to its priority.
func TaskPriorityFromValue(value int) (TaskPriority, error) {
	for priority, rank := range priorityRank {
		if rank == value {
			return priority, nil
		}
	}
	return "", fmt.Errorf("%w: invalid priority value %d", ErrValidation, value)
}

const maxTaskTitleLen = 200

// Task is the aggregate for a unit of work inside a project.
// COMPLETED and CANCELLED are terminal for mutation. Unlike Project,
// the transition guards only forbid the states they name, so
// re-completing an already completed task is permitted.
type Task struct {
	ID             string
	Title          string
	Description    string
	DueDate        *time.Time
	Status         TaskStatus
	Priority       TaskPriority
	AssignedUserID string
	ProjectID      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewTask validates the title and creates a TODO task with a fresh id.
// An empty priority defaults to MEDIUM.
func NewTask(title, description string, dueDate *time.Time, assignedUserID, projectID string, priority TaskPriority) (*Task, error) {
	validTitle, err := validateTaskTitle(title)
	if err != nil {
		return nil, err
	}
	if priority == "" {
		priority = PriorityMedium
	} else if !priority.Valid() {
		return nil, fmt.Errorf("%w: unknown task priority %q", ErrValidation, priority)
	}

	now := time.Now()
	return &Task{
		ID:             uuid.NewString(),
		Title:          validTitle,
		Description:    description,
		DueDate:        dueDate,
		Status:         TaskStatusTodo,
		Priority:       priority,
		AssignedUserID: assignedUserID,
		ProjectID:      projectID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// LoadTask rehydrates a persisted task without re-validating fields.
func LoadTask(id, title, description string, dueDate *time.Time, status TaskStatus,
	priority TaskPriority, assignedUserID, projectID string, createdAt, updatedAt time.Time) *Task {
	return &Task{
		ID:             id,
		Title:          title,
		Description:    description,
		DueDate:        dueDate,
		Status:         status,
		Priority:       priority,
		AssignedUserID: assignedUserID,
		ProjectID:      projectID,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}
}

func (t *Task) MarkAsCompleted() error {
	if t.Status == TaskStatusCancelled {
		return fmt.Errorf("%w: cannot complete a cancelled task", ErrIllegalState)
	}
	t.Status = TaskStatusCompleted
	t.UpdatedAt = time.Now()
	return nil
}

func (t *Task) MarkAsInProgress() error {
	if t.Status == TaskStatusCompleted {
		return fmt.Errorf("%w: cannot mark a completed task as in progress", ErrIllegalState)
	}
	if t.Status == TaskStatusCancelled {
		return fmt.Errorf("%w: cannot mark a cancelled task as in progress", ErrIllegalState)
	}
	t.Status = TaskStatusInProgress
	t.UpdatedAt = time.Now()
	return nil
}

func (t *Task) Cancel() error {
	if t.Status == TaskStatusCompleted {
		return fmt.Errorf("%w: cannot cancel a completed task", ErrIllegalState)
	}
	t.Status = TaskStatusCancelled
	t.UpdatedAt = time.Now()
	return nil
}

// UpdateDetails replaces the mutable fields. An empty priority keeps
// the current one.
func (t *Task) UpdateDetails(title, description string, dueDate *time.Time, priority TaskPriority) error {
	if t.Status == TaskStatusCompleted {
		return fmt.Errorf("%w: cannot update a completed task", ErrIllegalState)
	}
	if t.Status == TaskStatusCancelled {
		return fmt.Errorf("%w: cannot update a cancelled task", ErrIllegalState)
	}
	validTitle, err := validateTaskTitle(title)
	if err != nil {
		return err
	}
	if priority != "" && !priority.Valid() {
		return fmt.Errorf("%w: unknown task priority %q", ErrValidation, priority)
	}
	t.Title = validTitle
	t.Description = description
	t.DueDate = dueDate
	if priority != "" {
		t.Priority = priority
	}
	t.UpdatedAt = time.Now()
	return nil
}

func (t *Task) AssignTo(userID string) error {
	if t.Status == TaskStatusCompleted {
		return fmt.Errorf("%w: cannot reassign a completed task", ErrIllegalState)
	}
	if t.Status == TaskStatusCancelled {
		return fmt.Errorf("%w: cannot reassign a cancelled task", ErrIllegalState)
	}
	t.AssignedUserID = userID
	t.UpdatedAt = time.Now()
	return nil
}

func (t *Task) IsOverdue() bool {
	return t.DueDate != nil &&
		time.Now().After(*t.DueDate) &&
		t.Status != TaskStatusCompleted &&
		t.Status != TaskStatusCancelled
}

// DaysUntilDue returns math.MaxInt64 for tasks without a due date.
func (t *Task) DaysUntilDue() int64 {
	if t.DueDate == nil {
		return math.MaxInt64
	}
	return daysBetween(time.Now(), *t.DueDate)
}

// IsUrgent reports a high-priority task that is already overdue.
func (t *Task) IsUrgent() bool {
	return t.Priority == PriorityHigh && t.IsOverdue()
}

func (t *Task) String() string {
	return fmt.Sprintf("Task{id=%s, title=%s, status=%s, priority=%s}", t.ID, t.Title, t.Status, t.Priority)
}

func validateTaskTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", fmt.Errorf("%w: task title cannot be empty", ErrValidation)
	}
	if len(title) > maxTaskTitleLen {
		return "", fmt.Errorf("%w: task title cannot exceed %d characters", ErrValidation, maxTaskTitleLen)
	}
	return trimmed, nil
}
