package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/avelinsk/task-manager/internal/entity"
	"github.com/avelinsk/task-manager/pkg/logger"
)

const cacheTTL = 5 * time.Minute

type TaskUseCase interface {
	Create(ctx context.Context, input CreateTaskInput) (TaskOutput, error)
	Get(ctx context.Context, taskID string) (TaskOutput, error)
	GetByUser(ctx context.Context, userID string) ([]TaskOutput, error)
	GetByProject(ctx context.Context, projectID string) ([]TaskOutput, error)
	Update(ctx context.Context, input UpdateTaskInput) (TaskOutput, error)
	UpdateStatus(ctx context.Context, taskID string, status entity.TaskStatus) (TaskOutput, error)
	Delete(ctx context.Context, taskID string) error
}

type TaskUseCaseImpl struct {
	taskRepo    TaskRepository
	userRepo    UserRepository
	projectRepo ProjectRepository
	cache       TaskCache
}

func NewTaskUseCase(taskRepo TaskRepository, userRepo UserRepository, projectRepo ProjectRepository, cache TaskCache) *TaskUseCaseImpl {
	return &TaskUseCaseImpl{
		taskRepo:    taskRepo,
		userRepo:    userRepo,
		projectRepo: projectRepo,
		cache:       cache,
	}
}

// Create checks that the assignee and project exist and that the
// project still accepts tasks, then persists a new TODO task.
func (uc *TaskUseCaseImpl) Create(ctx context.Context, input CreateTaskInput) (TaskOutput, error) {
	logger.Log.WithField("title", input.Title).Info("Creating task")

	assignee, err := uc.userRepo.FindByID(ctx, input.AssignedUserID)
	if err != nil {
		return TaskOutput{}, err
	}
	if assignee == nil {
		return TaskOutput{}, fmt.Errorf("%w: %s", ErrUserNotFound, input.AssignedUserID)
	}

	project, err := uc.projectRepo.FindByID(ctx, input.ProjectID)
	if err != nil {
		return TaskOutput{}, err
	}
	if project == nil {
		return TaskOutput{}, fmt.Errorf("%w: %s", ErrProjectNotFound, input.ProjectID)
	}
	if !project.Status.CanAcceptTasks() {
		logger.Log.WithField("project_status", project.Status).Warn("Project does not accept tasks")
		return TaskOutput{}, fmt.Errorf("%w: cannot create tasks in project status %s", ErrBusinessRule, project.Status)
	}

	task, err := entity.NewTask(input.Title, input.Description, input.DueDate,
		input.AssignedUserID, input.ProjectID, input.Priority)
	if err != nil {
		return TaskOutput{}, err
	}

	saved, err := uc.taskRepo.Save(ctx, task)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to save task")
		return TaskOutput{}, err
	}
	uc.invalidate(ctx, saved.AssignedUserID, saved.ProjectID)

	logger.Log.WithField("task_id", saved.ID).Info("Task created")
	return newTaskOutput(saved, assignee, project), nil
}

func (uc *TaskUseCaseImpl) Get(ctx context.Context, taskID string) (TaskOutput, error) {
	task, err := uc.loadTask(ctx, taskID)
	if err != nil {
		return TaskOutput{}, err
	}

	assignee, err := uc.loadAssignee(ctx, task.AssignedUserID)
	if err != nil {
		return TaskOutput{}, err
	}
	project, err := uc.loadProject(ctx, task.ProjectID)
	if err != nil {
		return TaskOutput{}, err
	}
	return newTaskOutput(task, assignee, project), nil
}

func (uc *TaskUseCaseImpl) GetByUser(ctx context.Context, userID string) ([]TaskOutput, error) {
	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}

	if cached, err := uc.cache.GetUserTasks(ctx, userID); err != nil {
		logger.Log.WithError(err).Warn("Task cache read failed")
	} else if cached != nil {
		return cached, nil
	}

	tasks, err := uc.taskRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	outputs := make([]TaskOutput, 0, len(tasks))
	for _, task := range tasks {
		project, err := uc.loadProject(ctx, task.ProjectID)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, newTaskOutput(task, user, project))
	}

	if err := uc.cache.SetUserTasks(ctx, userID, outputs, cacheTTL); err != nil {
		logger.Log.WithError(err).Warn("Task cache write failed")
	}
	return outputs, nil
}

func (uc *TaskUseCaseImpl) GetByProject(ctx context.Context, projectID string) ([]TaskOutput, error) {
	project, err := uc.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, projectID)
	}

	if cached, err := uc.cache.GetProjectTasks(ctx, projectID); err != nil {
		logger.Log.WithError(err).Warn("Task cache read failed")
	} else if cached != nil {
		return cached, nil
	}

	tasks, err := uc.taskRepo.FindByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	outputs := make([]TaskOutput, 0, len(tasks))
	for _, task := range tasks {
		assignee, err := uc.loadAssignee(ctx, task.AssignedUserID)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, newTaskOutput(task, assignee, project))
	}

	if err := uc.cache.SetProjectTasks(ctx, projectID, outputs, cacheTTL); err != nil {
		logger.Log.WithError(err).Warn("Task cache write failed")
	}
	return outputs, nil
}

// Update rewrites the task's mutable details. The owning project must
// still accept tasks; the task's own terminal-state guard applies on
// top of that.
func (uc *TaskUseCaseImpl) Update(ctx context.Context, input UpdateTaskInput) (TaskOutput, error) {
	logger.Log.WithField("task_id", input.TaskID).Info("Updating task")

	task, err := uc.loadTask(ctx, input.TaskID)
	if err != nil {
		return TaskOutput{}, err
	}

	project, err := uc.loadProject(ctx, task.ProjectID)
	if err != nil {
		return TaskOutput{}, err
	}
	if !project.Status.CanAcceptTasks() {
		return TaskOutput{}, fmt.Errorf("%w: cannot update tasks in project status %s", ErrBusinessRule, project.Status)
	}

	if err := task.UpdateDetails(input.Title, input.Description, input.DueDate, input.Priority); err != nil {
		return TaskOutput{}, err
	}

	saved, err := uc.taskRepo.Save(ctx, task)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to save task")
		return TaskOutput{}, err
	}
	uc.invalidate(ctx, saved.AssignedUserID, saved.ProjectID)

	assignee, err := uc.loadAssignee(ctx, saved.AssignedUserID)
	if err != nil {
		return TaskOutput{}, err
	}
	return newTaskOutput(saved, assignee, project), nil
}

// UpdateStatus dispatches on the target status. TODO re-applies the
// current details, which refreshes updated_at without moving state.
func (uc *TaskUseCaseImpl) UpdateStatus(ctx context.Context, taskID string, status entity.TaskStatus) (TaskOutput, error) {
	logger.Log.WithFields(map[string]interface{}{
		"task_id": taskID,
		"status":  status,
	}).Info("Updating task status")

	task, err := uc.loadTask(ctx, taskID)
	if err != nil {
		return TaskOutput{}, err
	}

	project, err := uc.loadProject(ctx, task.ProjectID)
	if err != nil {
		return TaskOutput{}, err
	}
	if !project.Status.CanAcceptTasks() {
		return TaskOutput{}, fmt.Errorf("%w: cannot update tasks in project status %s", ErrBusinessRule, project.Status)
	}

	switch status {
	case entity.TaskStatusCompleted:
		err = task.MarkAsCompleted()
	case entity.TaskStatusInProgress:
		err = task.MarkAsInProgress()
	case entity.TaskStatusCancelled:
		err = task.Cancel()
	case entity.TaskStatusTodo:
		err = task.UpdateDetails(task.Title, task.Description, task.DueDate, task.Priority)
	default:
		return TaskOutput{}, fmt.Errorf("%w: invalid task status %q", ErrInvalidArgument, status)
	}
	if err != nil {
		return TaskOutput{}, err
	}

	saved, err := uc.taskRepo.Save(ctx, task)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to save task")
		return TaskOutput{}, err
	}
	uc.invalidate(ctx, saved.AssignedUserID, saved.ProjectID)

	assignee, err := uc.loadAssignee(ctx, saved.AssignedUserID)
	if err != nil {
		return TaskOutput{}, err
	}
	return newTaskOutput(saved, assignee, project), nil
}

func (uc *TaskUseCaseImpl) Delete(ctx context.Context, taskID string) error {
	logger.Log.WithField("task_id", taskID).Info("Deleting task")

	task, err := uc.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task == nil {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}

	if err := uc.taskRepo.DeleteByID(ctx, taskID); err != nil {
		logger.Log.WithError(err).Error("Failed to delete task")
		return err
	}
	uc.invalidate(ctx, task.AssignedUserID, task.ProjectID)
	return nil
}

func (uc *TaskUseCaseImpl) loadTask(ctx context.Context, taskID string) (*entity.Task, error) {
	task, err := uc.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}
	return task, nil
}

func (uc *TaskUseCaseImpl) loadAssignee(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: assigned user %s", ErrUserNotFound, userID)
	}
	return user, nil
}

func (uc *TaskUseCaseImpl) loadProject(ctx context.Context, projectID string) (*entity.Project, error) {
	project, err := uc.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, projectID)
	}
	return project, nil
}

func (uc *TaskUseCaseImpl) invalidate(ctx context.Context, userID, projectID string) {
	if err := uc.cache.InvalidateTask(ctx, userID, projectID); err != nil {
		logger.Log.WithError(err).Warn("Task cache invalidation failed")
	}
}
