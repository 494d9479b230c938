package usecase

import (
	"context"
	"fmt"

	"github.com/avelinsk/task-manager/internal/entity"
	"github.com/avelinsk/task-manager/pkg/logger"
)

type ProjectUseCase interface {
	Create(ctx context.Context, input CreateProjectInput) (ProjectOutput, error)
}

type ProjectUseCaseImpl struct {
	projectRepo ProjectRepository
	userRepo    UserRepository
}

func NewProjectUseCase(projectRepo ProjectRepository, userRepo UserRepository) *ProjectUseCaseImpl {
	return &ProjectUseCaseImpl{
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// Create requires the owner to exist and to hold a project-manager or
// admin role.
func (uc *ProjectUseCaseImpl) Create(ctx context.Context, input CreateProjectInput) (ProjectOutput, error) {
	logger.Log.WithField("name", input.Name).Info("Creating project")

	owner, err := uc.userRepo.FindByID(ctx, input.OwnerID)
	if err != nil {
		return ProjectOutput{}, err
	}
	if owner == nil {
		return ProjectOutput{}, fmt.Errorf("%w: owner %s", ErrUserNotFound, input.OwnerID)
	}
	if !owner.IsProjectManager() {
		logger.Log.WithField("owner_id", input.OwnerID).Warn("Owner is not allowed to create projects")
		return ProjectOutput{}, fmt.Errorf("%w: user is not authorized to create projects", ErrUnauthorized)
	}

	project, err := entity.NewProject(input.Name, input.Description, input.OwnerID, input.StartDate, input.EndDate)
	if err != nil {
		return ProjectOutput{}, err
	}

	saved, err := uc.projectRepo.Save(ctx, project)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to save project")
		return ProjectOutput{}, err
	}

	logger.Log.WithField("project_id", saved.ID).Info("Project created")
	return newProjectOutput(saved, owner), nil
}
