package usecase

import "errors"

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrProjectNotFound   = errors.New("project not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUnauthorized      = errors.New("unauthorized access")
	ErrBusinessRule      = errors.New("business rule violation")
	ErrInvalidArgument   = errors.New("invalid argument")
)
