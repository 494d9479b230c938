package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/avelinsk/task-manager/internal/entity"
	"github.com/avelinsk/task-manager/internal/usecase"
	"github.com/avelinsk/task-manager/pkg/logger"
)

// TaskHandler handles HTTP requests for task management.
type TaskHandler struct {
	taskUseCase usecase.TaskUseCase
}

func NewTaskHandler(taskUseCase usecase.TaskUseCase) *TaskHandler {
	return &TaskHandler{
		taskUseCase: taskUseCase,
	}
}

// RegisterRoutes mounts task routes on the given router.
func (h *TaskHandler) RegisterRoutes(r chi.Router) {
	r.Route("/tasks", func(r chi.Router) {
		r.Post("/", h.CreateTask)
		r.Get("/user/{userID}", h.GetTasksByUser)
		r.Get("/project/{projectID}", h.GetTasksByProject)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetTask)
			r.Put("/", h.UpdateTask)
			r.Patch("/status", h.UpdateTaskStatus)
			r.Delete("/", h.DeleteTask)
		})
	})
}

type createTaskRequest struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	DueDate        *time.Time `json:"due_date"`
	AssignedUserID string     `json:"assigned_user_id"`
	ProjectID      string     `json:"project_id"`
	Priority       string     `json:"priority"`
}

type updateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    string     `json:"priority"`
}

type updateTaskStatusRequest struct {
	Status string `json:"status"`
}

// CreateTask handles task creation.
// @Summary      Create task
// @Description  Creates a new task in a project
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        task body     createTaskRequest true "Task data"
// @Success      201  {object} usecase.TaskOutput
// @Failure      400  {object} map[string]string
// @Failure      404  {object} map[string]string
// @Failure      422  {object} map[string]string
// @Router       /tasks [post]
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validateCreateTask(&req); err != nil {
		logger.Log.WithError(err).Warn("Task validation failed")
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	priority, err := parseOptionalPriority(req.Priority)
	if err != nil {
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	output, err := h.taskUseCase.Create(r.Context(), usecase.CreateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		DueDate:        req.DueDate,
		AssignedUserID: req.AssignedUserID,
		ProjectID:      req.ProjectID,
		Priority:       priority,
	})
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, output)
}

// GetTask returns a single task by id.
// @Summary      Get task
// @Tags         tasks
// @Produce      json
// @Param        id   path     string true "Task ID"
// @Success      200  {object} usecase.TaskOutput
// @Failure      404  {object} map[string]string
// @Router       /tasks/{id} [get]
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	output, err := h.taskUseCase.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, output)
}

// GetTasksByUser lists tasks assigned to a user.
// @Summary      List tasks by user
// @Tags         tasks
// @Produce      json
// @Param        userID path   string true "User ID"
// @Success      200  {array}  usecase.TaskOutput
// @Failure      404  {object} map[string]string
// @Router       /tasks/user/{userID} [get]
func (h *TaskHandler) GetTasksByUser(w http.ResponseWriter, r *http.Request) {
	outputs, err := h.taskUseCase.GetByUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, outputs)
}

// GetTasksByProject lists tasks in a project.
// @Summary      List tasks by project
// @Tags         tasks
// @Produce      json
// @Param        projectID path string true "Project ID"
// @Success      200  {array}  usecase.TaskOutput
// @Failure      404  {object} map[string]string
// @Router       /tasks/project/{projectID} [get]
func (h *TaskHandler) GetTasksByProject(w http.ResponseWriter, r *http.Request) {
	outputs, err := h.taskUseCase.GetByProject(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, outputs)
}

// UpdateTask rewrites a task's details.
// @Summary      Update task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id   path     string true "Task ID"
// @Param        task body     updateTaskRequest true "Updated task data"
// @Success      200  {object} usecase.TaskOutput
// @Failure      400  {object} map[string]string
// @Failure      404  {object} map[string]string
// @Failure      422  {object} map[string]string
// @Router       /tasks/{id} [put]
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validateTaskFields(req.Title, req.Description, req.DueDate); err != nil {
		logger.Log.WithError(err).Warn("Task validation failed")
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	priority, err := parseOptionalPriority(req.Priority)
	if err != nil {
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	output, err := h.taskUseCase.Update(r.Context(), usecase.UpdateTaskInput{
		TaskID:      chi.URLParam(r, "id"),
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    priority,
	})
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, output)
}

// UpdateTaskStatus moves a task to the requested status.
// @Summary      Update task status
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id     path   string true "Task ID"
// @Param        status body   updateTaskStatusRequest true "Target status"
// @Success      200  {object} usecase.TaskOutput
// @Failure      400  {object} map[string]string
// @Failure      404  {object} map[string]string
// @Failure      409  {object} map[string]string
// @Router       /tasks/{id}/status [patch]
func (h *TaskHandler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	var req updateTaskStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	status, err := entity.ParseTaskStatus(req.Status)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	output, err := h.taskUseCase.UpdateStatus(r.Context(), chi.URLParam(r, "id"), status)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, output)
}

// DeleteTask removes a task by id.
// @Summary      Delete task
// @Tags         tasks
// @Param        id   path     string true "Task ID"
// @Success      204
// @Failure      404  {object} map[string]string
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.taskUseCase.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondWithDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

const maxDescriptionLen = 1000

func validateCreateTask(req *createTaskRequest) error {
	if err := validateTaskFields(req.Title, req.Description, req.DueDate); err != nil {
		return err
	}
	if req.AssignedUserID == "" {
		return errors.New("assigned user id is required")
	}
	if req.ProjectID == "" {
		return errors.New("project id is required")
	}
	return nil
}

func validateTaskFields(title, description string, dueDate *time.Time) error {
	if title == "" {
		return errors.New("title is required")
	}
	if len(title) > 200 {
		return errors.New("title cannot exceed 200 characters")
	}
	if len(description) > maxDescriptionLen {
		return fmt.Errorf("description cannot exceed %d characters", maxDescriptionLen)
	}
	if dueDate != nil && dueDate.Before(time.Now()) {
		return errors.New("due date must be in the present or future")
	}
	return nil
}

func parseOptionalPriority(s string) (entity.TaskPriority, error) {
	if s == "" {
		return "", nil
	}
	return entity.ParseTaskPriority(s)
}
