package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avelinsk/task-manager/internal/entity"
	"github.com/avelinsk/task-manager/internal/usecase"
	"github.com/avelinsk/task-manager/pkg/logger"
)

// UserHandler handles HTTP requests for user management.
type UserHandler struct {
	userUseCase usecase.UserUseCase
}

func NewUserHandler(userUseCase usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Post("/users", h.CreateUser)
}

type createUserRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

// CreateUser registers a new user account.
// @Summary      Create user
// @Description  Registers a new user with a role
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        user body     createUserRequest true "User data"
// @Success      201  {object} usecase.UserOutput
// @Failure      400  {object} map[string]string
// @Failure      409  {object} map[string]string
// @Failure      422  {object} map[string]string
// @Router       /users [post]
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validateCreateUser(&req); err != nil {
		logger.Log.WithError(err).Warn("User validation failed")
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	// An omitted role falls back to USER downstream.
	var role entity.UserRole
	if req.Role != "" {
		parsed, err := entity.ParseUserRole(req.Role)
		if err != nil {
			respondWithError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		role = parsed
	}

	output, err := h.userUseCase.Create(r.Context(), usecase.CreateUserInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
		Role:      role,
	})
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, output)
}

func validateCreateUser(req *createUserRequest) error {
	if req.Email == "" {
		return errors.New("email is required")
	}
	if req.FirstName == "" {
		return errors.New("first name is required")
	}
	if len(req.FirstName) > 50 {
		return errors.New("first name cannot exceed 50 characters")
	}
	if req.LastName == "" {
		return errors.New("last name is required")
	}
	if len(req.LastName) > 50 {
		return errors.New("last name cannot exceed 50 characters")
	}
	if req.Password == "" {
		return errors.New("password is required")
	}
	return nil
}
