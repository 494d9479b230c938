package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/avelinsk/task-manager/internal/usecase"
	"github.com/avelinsk/task-manager/pkg/logger"
)

// ProjectHandler handles HTTP requests for project management.
type ProjectHandler struct {
	projectUseCase usecase.ProjectUseCase
}

func NewProjectHandler(projectUseCase usecase.ProjectUseCase) *ProjectHandler {
	return &ProjectHandler{
		projectUseCase: projectUseCase,
	}
}

func (h *ProjectHandler) RegisterRoutes(r chi.Router) {
	r.Post("/projects", h.CreateProject)
}

type createProjectRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	OwnerID     string     `json:"owner_id"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

// CreateProject creates a new project owned by a manager or admin.
// @Summary      Create project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        project body  createProjectRequest true "Project data"
// @Success      201  {object} usecase.ProjectOutput
// @Failure      400  {object} map[string]string
// @Failure      403  {object} map[string]string
// @Failure      404  {object} map[string]string
// @Failure      422  {object} map[string]string
// @Router       /projects [post]
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validateCreateProject(&req); err != nil {
		logger.Log.WithError(err).Warn("Project validation failed")
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	output, err := h.projectUseCase.Create(r.Context(), usecase.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     req.OwnerID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, output)
}

func validateCreateProject(req *createProjectRequest) error {
	if req.Name == "" {
		return errors.New("project name is required")
	}
	if len(req.Name) > 100 {
		return errors.New("project name cannot exceed 100 characters")
	}
	if len(req.Description) > maxDescriptionLen {
		return errors.New("description cannot exceed 1000 characters")
	}
	if req.OwnerID == "" {
		return errors.New("owner id is required")
	}
	return nil
}
