package entity

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

func newTestProject(t *testing.T) *Project {
	t.Helper()
	project, err := NewProject("Apollo", "Launch program", "owner-1", nil, nil)
	if err != nil {
		t.Fatalf("NewProject() error = %v", err)
	}
	return project
}

func TestNewProject_Defaults(t *testing.T) {
	project := newTestProject(t)

	if project.ID == "" {
		t.Error("ID should not be empty")
	}
	if project.Status != ProjectStatusPlanning {
		t.Errorf("Status = %q, want %q", project.Status, ProjectStatusPlanning)
	}
	if !project.CreatedAt.Equal(project.UpdatedAt) {
		t.Error("CreatedAt and UpdatedAt should be equal on creation")
	}
}

func TestNewProject_Validation(t *testing.T) {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -1)

	tests := []struct {
		name      string
		projName  string
		ownerID   string
		startDate *time.Time
		endDate   *time.Time
	}{
		{"empty name", "", "owner-1", nil, nil},
		{"blank name", "   ", "owner-1", nil, nil},
		{"name too long", strings.Repeat("x", 101), "owner-1", nil, nil},
		{"empty owner", "Apollo", "", nil, nil},
		{"start after end", "Apollo", "owner-1", &start, &end},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewProject(tc.projName, "", tc.ownerID, tc.startDate, tc.endDate)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("NewProject() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestProject_Lifecycle(t *testing.T) {
	project := newTestProject(t)

	if err := project.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if project.Status != ProjectStatusInProgress {
		t.Errorf("Status = %q, want %q", project.Status, ProjectStatusInProgress)
	}

	if err := project.PutOnHold(); err != nil {
		t.Fatalf("PutOnHold() error = %v", err)
	}
	if err := project.Resume(); err != nil {
		t.Fatalf("Resume() error = %v", err)
	}
	if err := project.Complete(); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if project.Status != ProjectStatusCompleted {
		t.Errorf("Status = %q, want %q", project.Status, ProjectStatusCompleted)
	}
}

func TestProject_InvalidTransitions(t *testing.T) {
	tests := []struct {
		name string
		prep func(p *Project)
		op   func(p *Project) error
	}{
		{"start from in progress", func(p *Project) { p.Start() }, (*Project).Start},
		{"complete from planning", func(p *Project) {}, (*Project).Complete},
		{"complete from on hold", func(p *Project) { p.Start(); p.PutOnHold() }, (*Project).Complete},
		{"hold from planning", func(p *Project) {}, (*Project).PutOnHold},
		{"resume from in progress", func(p *Project) { p.Start() }, (*Project).Resume},
		{"cancel completed", func(p *Project) { p.Start(); p.Complete() }, (*Project).Cancel},
		{"start cancelled", func(p *Project) { p.Cancel() }, (*Project).Start},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			project := newTestProject(t)
			tc.prep(project)
			before := *project

			err := tc.op(project)
			if !errors.Is(err, ErrIllegalState) {
				t.Fatalf("transition error = %v, want ErrIllegalState", err)
			}
			if project.Status != before.Status {
				t.Errorf("Status changed to %q after failed transition", project.Status)
			}
			if !project.UpdatedAt.Equal(before.UpdatedAt) {
				t.Error("failed transition should not touch UpdatedAt")
			}
		})
	}
}

func TestProject_CancelFromAnyNonCompleted(t *testing.T) {
	for _, prep := range []func(p *Project){
		func(p *Project) {},
		func(p *Project) { p.Start() },
		func(p *Project) { p.Start(); p.PutOnHold() },
	} {
		project := newTestProject(t)
		prep(project)
		if err := project.Cancel(); err != nil {
			t.Errorf("Cancel() from %q error = %v", project.Status, err)
		}
	}
}

func TestProject_UpdateDetails_TerminalGuard(t *testing.T) {
	project := newTestProject(t)
	project.Start()
	project.Complete()

	err := project.UpdateDetails("New Name", "desc", nil, nil)
	if !errors.Is(err, ErrIllegalState) {
		t.Errorf("UpdateDetails() on completed project error = %v, want ErrIllegalState", err)
	}

	cancelled := newTestProject(t)
	cancelled.Cancel()
	if err := cancelled.ChangeOwner("owner-2"); !errors.Is(err, ErrIllegalState) {
		t.Errorf("ChangeOwner() on cancelled project error = %v, want ErrIllegalState", err)
	}
}

func TestProject_UpdateDetails(t *testing.T) {
	project := newTestProject(t)
	start := time.Now().AddDate(0, 0, 1)
	end := start.AddDate(0, 1, 0)

	if err := project.UpdateDetails("  Artemis  ", "next one", &start, &end); err != nil {
		t.Fatalf("UpdateDetails() error = %v", err)
	}
	if project.Name != "Artemis" {
		t.Errorf("Name = %q, want %q", project.Name, "Artemis")
	}
	if project.StartDate == nil || project.EndDate == nil {
		t.Error("dates should be set")
	}
}

func TestProject_IsOverdue(t *testing.T) {
	past := time.Now().AddDate(0, 0, -2)
	future := time.Now().AddDate(0, 0, 2)

	project := newTestProject(t)
	if project.IsOverdue() {
		t.Error("project without end date should not be overdue")
	}

	project.EndDate = &past
	if !project.IsOverdue() {
		t.Error("active project past its end date should be overdue")
	}

	project.Start()
	project.Complete()
	if project.IsOverdue() {
		t.Error("completed project should never be overdue")
	}

	project = newTestProject(t)
	project.EndDate = &future
	if project.IsOverdue() {
		t.Error("project before its end date should not be overdue")
	}
}

func TestProject_DaysRemaining(t *testing.T) {
	project := newTestProject(t)
	if got := project.DaysRemaining(); got != math.MaxInt64 {
		t.Errorf("DaysRemaining() without end date = %d, want MaxInt64", got)
	}

	end := time.Now().AddDate(0, 0, 10)
	project.EndDate = &end
	got := project.DaysRemaining()
	if got < 9 || got > 10 {
		t.Errorf("DaysRemaining() = %d, want 9 or 10", got)
	}
}

func TestProject_TimeProgress(t *testing.T) {
	project := newTestProject(t)
	if got := project.TimeProgress(); got != 0 {
		t.Errorf("TimeProgress() without dates = %f, want 0", got)
	}

	// Window entirely in the past: clamped to 100.
	start := time.Now().AddDate(0, 0, -20)
	end := time.Now().AddDate(0, 0, -10)
	project.StartDate = &start
	project.EndDate = &end
	if got := project.TimeProgress(); got != 100 {
		t.Errorf("TimeProgress() past window = %f, want 100", got)
	}

	// Window entirely in the future: clamped to 0.
	start = time.Now().AddDate(0, 0, 10)
	end = time.Now().AddDate(0, 0, 20)
	project.StartDate = &start
	project.EndDate = &end
	if got := project.TimeProgress(); got != 0 {
		t.Errorf("TimeProgress() future window = %f, want 0", got)
	}

	// Halfway through a 10-day window.
	start = time.Now().AddDate(0, 0, -5)
	end = time.Now().AddDate(0, 0, 5)
	project.StartDate = &start
	project.EndDate = &end
	got := project.TimeProgress()
	if got < 40 || got > 60 {
		t.Errorf("TimeProgress() mid window = %f, want around 50", got)
	}
}

func TestProject_IsNearDeadline(t *testing.T) {
	project := newTestProject(t)
	if project.IsNearDeadline() {
		t.Error("project without end date should not be near deadline")
	}

	end := time.Now().AddDate(0, 0, 3)
	project.EndDate = &end
	if !project.IsNearDeadline() {
		t.Error("project ending in 3 days should be near deadline")
	}

	end = time.Now().AddDate(0, 0, 30)
	project.EndDate = &end
	if project.IsNearDeadline() {
		t.Error("project ending in 30 days should not be near deadline")
	}

	end = time.Now().AddDate(0, 0, -1)
	project.EndDate = &end
	if project.IsNearDeadline() {
		t.Error("overdue project should not be near deadline")
	}
}

func TestProject_DurationInDays(t *testing.T) {
	project := newTestProject(t)
	if got := project.DurationInDays(); got != 0 {
		t.Errorf("DurationInDays() without dates = %d, want 0", got)
	}

	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 14)
	project.StartDate = &start
	project.EndDate = &end
	if got := project.DurationInDays(); got != 14 {
		t.Errorf("DurationInDays() = %d, want 14", got)
	}
}

func TestParseProjectStatus(t *testing.T) {
	status, err := ParseProjectStatus(" in_progress ")
	if err != nil {
		t.Fatalf("ParseProjectStatus() error = %v", err)
	}
	if status != ProjectStatusInProgress {
		t.Errorf("ParseProjectStatus() = %q, want %q", status, ProjectStatusInProgress)
	}

	if _, err := ParseProjectStatus("ARCHIVED"); !errors.Is(err, ErrValidation) {
		t.Errorf("ParseProjectStatus(ARCHIVED) error = %v, want ErrValidation", err)
	}
}
