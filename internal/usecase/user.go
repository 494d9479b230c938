package usecase

import (
	"context"
	"fmt"

	"github.com/avelinsk/task-manager/internal/entity"
	"github.com/avelinsk/task-manager/pkg/logger"
)

type UserUseCase interface {
	Create(ctx context.Context, input CreateUserInput) (UserOutput, error)
}

type UserUseCaseImpl struct {
	userRepo UserRepository
	hasher   PasswordHasher
}

func NewUserUseCase(userRepo UserRepository, hasher PasswordHasher) *UserUseCaseImpl {
	return &UserUseCaseImpl{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

// Create validates the user, enforces email uniqueness and hashes the
// password before anything reaches the repository.
func (uc *UserUseCaseImpl) Create(ctx context.Context, input CreateUserInput) (UserOutput, error) {
	logger.Log.WithField("email", input.Email).Info("Creating user")

	user, err := entity.NewUser(input.Email, input.FirstName, input.LastName, input.Password, input.Role)
	if err != nil {
		return UserOutput{}, err
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, user.Email)
	if err != nil {
		return UserOutput{}, err
	}
	if exists {
		logger.Log.WithField("email", user.Email).Warn("Email already registered")
		return UserOutput{}, fmt.Errorf("%w: email %s", ErrUserAlreadyExists, user.Email)
	}

	hashed, err := uc.hasher.Hash(user.Password)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to hash password")
		return UserOutput{}, err
	}
	user.Password = hashed

	saved, err := uc.userRepo.Save(ctx, user)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to save user")
		return UserOutput{}, err
	}

	logger.Log.WithField("user_id", saved.ID).Info("User created")
	return newUserOutput(saved), nil
}
