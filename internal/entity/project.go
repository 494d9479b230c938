package entity

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ProjectStatus string

const (
	ProjectStatusPlanning   ProjectStatus = "PLANNING"
	ProjectStatusInProgress ProjectStatus = "IN_PROGRESS"
	ProjectStatusOnHold     ProjectStatus = "ON_HOLD"
	ProjectStatusCompleted  ProjectStatus = "COMPLETED"
	ProjectStatusCancelled  ProjectStatus = "CANCELLED"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusInProgress, ProjectStatusOnHold,
		ProjectStatusCompleted, ProjectStatusCancelled:
		return true
	}
	return false
}

func (s ProjectStatus) IsActive() bool {
	return s == ProjectStatusPlanning || s == ProjectStatusInProgress
}

func (s ProjectStatus) IsCompleted() bool { return s == ProjectStatusCompleted }
func (s ProjectStatus) IsCancelled() bool { return s == ProjectStatusCancelled }

// CanAcceptTasks reports whether tasks may be created or modified in a
// project with this status.
func (s ProjectStatus) CanAcceptTasks() bool {
	return s == ProjectStatusPlanning || s == ProjectStatusInProgress
}

// CanBeModified reports whether project details may still change.
// COMPLETED and CANCELLED are terminal.
func (s ProjectStatus) CanBeModified() bool {
	return s != ProjectStatusCompleted && s != ProjectStatusCancelled
}

func ParseProjectStatus(s string) (ProjectStatus, error) {
	status := ProjectStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", fmt.Errorf("%w: unknown project status %q", ErrValidation, s)
	}
	return status, nil
}

const maxProjectNameLen = 100

// nearDeadlineDays is the window for IsNearDeadline.
const nearDeadlineDays = 7

// Project is the aggregate for project lifecycle. Transitions are
// strict edges: calling Start on a project that is not in PLANNING
// fails instead of being a no-op.
type Project struct {
	ID          string
	Name        string
	Description string
	OwnerID     string
	Status      ProjectStatus
	StartDate   *time.Time
	EndDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProject validates fields and creates a project in PLANNING status.
// Start and end dates are optional but must be ordered when both are set.
func NewProject(name, description, ownerID string, startDate, endDate *time.Time) (*Project, error) {
	validName, err := validateProjectName(name)
	if err != nil {
		return nil, err
	}
	owner := strings.TrimSpace(ownerID)
	if owner == "" {
		return nil, fmt.Errorf("%w: project owner id cannot be empty", ErrValidation)
	}
	if err := validateDateRange(startDate, endDate); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Project{
		ID:          uuid.NewString(),
		Name:        validName,
		Description: description,
		OwnerID:     owner,
		Status:      ProjectStatusPlanning,
		StartDate:   startDate,
		EndDate:     endDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// LoadProject rehydrates a persisted project without re-validating fields.
func LoadProject(id, name, description, ownerID string, status ProjectStatus,
	startDate, endDate *time.Time, createdAt, updatedAt time.Time) *Project {
	return &Project{
		ID:          id,
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
		Status:      status,
		StartDate:   startDate,
		EndDate:     endDate,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

func (p *Project) Start() error {
	if p.Status != ProjectStatusPlanning {
		return fmt.Errorf("%w: can only start projects in planning status", ErrIllegalState)
	}
	p.Status = ProjectStatusInProgress
	p.UpdatedAt = time.Now()
	return nil
}

// Complete requires IN_PROGRESS: a project on hold must be resumed first.
func (p *Project) Complete() error {
	if p.Status != ProjectStatusInProgress {
		return fmt.Errorf("%w: can only complete projects that are in progress", ErrIllegalState)
	}
	p.Status = ProjectStatusCompleted
	p.UpdatedAt = time.Now()
	return nil
}

func (p *Project) Cancel() error {
	if p.Status == ProjectStatusCompleted {
		return fmt.Errorf("%w: cannot cancel a completed project", ErrIllegalState)
	}
	p.Status = ProjectStatusCancelled
	p.UpdatedAt = time.Now()
	return nil
}

func (p *Project) PutOnHold() error {
	if p.Status != ProjectStatusInProgress {
		return fmt.Errorf("%w: can only put in-progress projects on hold", ErrIllegalState)
	}
	p.Status = ProjectStatusOnHold
	p.UpdatedAt = time.Now()
	return nil
}

func (p *Project) Resume() error {
	if p.Status != ProjectStatusOnHold {
		return fmt.Errorf("%w: can only resume projects that are on hold", ErrIllegalState)
	}
	p.Status = ProjectStatusInProgress
	p.UpdatedAt = time.Now()
	return nil
}

func (p *Project) UpdateDetails(name, description string, startDate, endDate *time.Time) error {
	if p.Status == ProjectStatusCompleted {
		return fmt.Errorf("%w: cannot update completed project", ErrIllegalState)
	}
	if p.Status == ProjectStatusCancelled {
		return fmt.Errorf("%w: cannot update cancelled project", ErrIllegalState)
	}
	validName, err := validateProjectName(name)
	if err != nil {
		return err
	}
	if err := validateDateRange(startDate, endDate); err != nil {
		return err
	}
	p.Name = validName
	p.Description = description
	p.StartDate = startDate
	p.EndDate = endDate
	p.UpdatedAt = time.Now()
	return nil
}

func (p *Project) ChangeOwner(newOwnerID string) error {
	if p.Status == ProjectStatusCompleted {
		return fmt.Errorf("%w: cannot change owner of completed project", ErrIllegalState)
	}
	if p.Status == ProjectStatusCancelled {
		return fmt.Errorf("%w: cannot change owner of cancelled project", ErrIllegalState)
	}
	owner := strings.TrimSpace(newOwnerID)
	if owner == "" {
		return fmt.Errorf("%w: project owner id cannot be empty", ErrValidation)
	}
	p.OwnerID = owner
	p.UpdatedAt = time.Now()
	return nil
}

func (p *Project) IsOverdue() bool {
	return p.EndDate != nil &&
		time.Now().After(*p.EndDate) &&
		p.Status != ProjectStatusCompleted &&
		p.Status != ProjectStatusCancelled
}

func (p *Project) IsActive() bool { return p.Status.IsActive() }

func (p *Project) DurationInDays() int64 {
	if p.StartDate == nil || p.EndDate == nil {
		return 0
	}
	return daysBetween(*p.StartDate, *p.EndDate)
}

// DaysRemaining returns math.MaxInt64 for projects without an end date.
func (p *Project) DaysRemaining() int64 {
	if p.EndDate == nil {
		return math.MaxInt64
	}
	return daysBetween(time.Now(), *p.EndDate)
}

// TimeProgress is the share of the project window already elapsed,
// clamped to [0, 100]. Projects without both dates report 0.
func (p *Project) TimeProgress() float64 {
	if p.StartDate == nil || p.EndDate == nil {
		return 0
	}
	now := time.Now()
	if now.Before(*p.StartDate) {
		return 0
	}
	if now.After(*p.EndDate) {
		return 100
	}
	total := daysBetween(*p.StartDate, *p.EndDate)
	if total <= 0 {
		return 0
	}
	elapsed := daysBetween(*p.StartDate, now)
	return float64(elapsed) * 100 / float64(total)
}

func (p *Project) IsNearDeadline() bool {
	remaining := p.DaysRemaining()
	return remaining > 0 && remaining <= nearDeadlineDays
}

func (p *Project) String() string {
	return fmt.Sprintf("Project{id=%s, name=%s, status=%s, owner=%s}", p.ID, p.Name, p.Status, p.OwnerID)
}

func validateProjectName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("%w: project name cannot be empty", ErrValidation)
	}
	if len(name) > maxProjectNameLen {
		return "", fmt.Errorf("%w: project name cannot exceed %d characters", ErrValidation, maxProjectNameLen)
	}
	return trimmed, nil
}

func validateDateRange(startDate, endDate *time.Time) error {
	if startDate != nil && endDate != nil && startDate.After(*endDate) {
		return fmt.Errorf("%w: start date cannot be after end date", ErrValidation)
	}
	return nil
}

// daysBetween counts whole days from one instant to another,
// truncating toward zero.
func daysBetween(from, to time.Time) int64 {
	return int64(to.Sub(from).Hours() / 24)
}
