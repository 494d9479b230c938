package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/avelinsk/task-manager/internal/entity"
)

func newProjectOwner(t *testing.T, role entity.UserRole) *entity.User {
	t.Helper()
	user, err := entity.NewUser("owner@example.com", "Pat", "Manager", "Password1!", role)
	if err != nil {
		t.Fatalf("NewUser() error = %v", err)
	}
	return user
}

func TestProjectUseCase_Create(t *testing.T) {
	owner := newProjectOwner(t, entity.RoleProjectManager)
	projectRepo := newFakeProjectRepo()
	uc := NewProjectUseCase(projectRepo, newFakeUserRepo(owner))

	start := time.Now().AddDate(0, 0, 1)
	end := start.AddDate(0, 2, 0)

	out, err := uc.Create(context.Background(), CreateProjectInput{
		Name:        "Apollo",
		Description: "Launch program",
		OwnerID:     owner.ID,
		StartDate:   &start,
		EndDate:     &end,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if out.Status != entity.ProjectStatusPlanning {
		t.Errorf("Status = %q, want %q", out.Status, entity.ProjectStatusPlanning)
	}
	if out.OwnerName != "Pat Manager" {
		t.Errorf("OwnerName = %q, want %q", out.OwnerName, "Pat Manager")
	}
	if projectRepo.saveCalls != 1 {
		t.Errorf("saveCalls = %d, want 1", projectRepo.saveCalls)
	}
}

func TestProjectUseCase_Create_AdminOwner(t *testing.T) {
	owner := newProjectOwner(t, entity.RoleAdmin)
	uc := NewProjectUseCase(newFakeProjectRepo(), newFakeUserRepo(owner))

	if _, err := uc.Create(context.Background(), CreateProjectInput{
		Name:    "Apollo",
		OwnerID: owner.ID,
	}); err != nil {
		t.Fatalf("Create() with admin owner error = %v", err)
	}
}

func TestProjectUseCase_Create_OwnerNotFound(t *testing.T) {
	projectRepo := newFakeProjectRepo()
	uc := NewProjectUseCase(projectRepo, newFakeUserRepo())

	_, err := uc.Create(context.Background(), CreateProjectInput{
		Name:    "Apollo",
		OwnerID: "ghost",
	})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("Create() error = %v, want ErrUserNotFound", err)
	}
	if projectRepo.saveCalls != 0 {
		t.Errorf("saveCalls = %d, want 0 after failed create", projectRepo.saveCalls)
	}
}

func TestProjectUseCase_Create_OwnerNotManager(t *testing.T) {
	owner := newProjectOwner(t, entity.RoleUser)
	projectRepo := newFakeProjectRepo()
	uc := NewProjectUseCase(projectRepo, newFakeUserRepo(owner))

	_, err := uc.Create(context.Background(), CreateProjectInput{
		Name:    "Apollo",
		OwnerID: owner.ID,
	})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("Create() error = %v, want ErrUnauthorized", err)
	}
	if projectRepo.saveCalls != 0 {
		t.Errorf("saveCalls = %d, want 0 after unauthorized create", projectRepo.saveCalls)
	}
}

func TestProjectUseCase_Create_InvalidDates(t *testing.T) {
	owner := newProjectOwner(t, entity.RoleProjectManager)
	uc := NewProjectUseCase(newFakeProjectRepo(), newFakeUserRepo(owner))

	start := time.Now().AddDate(0, 1, 0)
	end := time.Now()

	_, err := uc.Create(context.Background(), CreateProjectInput{
		Name:      "Apollo",
		OwnerID:   owner.ID,
		StartDate: &start,
		EndDate:   &end,
	})
	if !errors.Is(err, entity.ErrValidation) {
		t.Fatalf("Create() error = %v, want ErrValidation", err)
	}
}
