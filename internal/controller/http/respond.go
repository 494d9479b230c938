package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avelinsk/task-manager/internal/entity"
	"github.com/avelinsk/task-manager/internal/usecase"
	"github.com/avelinsk/task-manager/pkg/logger"
)

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithDomainError translates domain error kinds to transport
// status codes and hides internals behind a generic 500.
func respondWithDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrTaskNotFound),
		errors.Is(err, usecase.ErrUserNotFound),
		errors.Is(err, usecase.ErrProjectNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, usecase.ErrUserAlreadyExists):
		respondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, usecase.ErrUnauthorized):
		respondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, usecase.ErrBusinessRule),
		errors.Is(err, usecase.ErrInvalidArgument):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, entity.ErrValidation):
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, entity.ErrIllegalState):
		respondWithError(w, http.StatusConflict, err.Error())
	default:
		logger.Log.WithError(err).Error("Unexpected error")
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
