package entity

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleUser           UserRole = "USER"
	RoleProjectManager UserRole = "PROJECT_MANAGER"
	RoleAdmin          UserRole = "ADMIN"
)

// roleRank orders roles by privilege, lowest first.
var roleRank = map[UserRole]int{
	RoleUser:           1,
	RoleProjectManager: 2,
	RoleAdmin:          3,
}

func (r UserRole) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

func (r UserRole) HasAdminPrivileges() bool { return r == RoleAdmin }

func (r UserRole) CanManageProjects() bool {
	return r == RoleProjectManager || r == RoleAdmin
}

func (r UserRole) CanManageUsers() bool { return r == RoleAdmin }

func (r UserRole) HasHigherPrivilegesThan(other UserRole) bool {
	return roleRank[r] > roleRank[other]
}

func ParseUserRole(s string) (UserRole, error) {
	role := UserRole(strings.ToUpper(strings.TrimSpace(s)))
	if !role.Valid() {
		return "", fmt.Errorf("%w: unknown user role %q", ErrValidation, s)
	}
	return role, nil
}

type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
	UserStatusDeleted  UserStatus = "DELETED"
)

func (s UserStatus) IsActive() bool  { return s == UserStatusActive }
func (s UserStatus) IsDeleted() bool { return s == UserStatusDeleted }

// CanPerformActions reports whether a user in this status may log in
// or otherwise act in the system.
func (s UserStatus) CanPerformActions() bool { return s == UserStatusActive }

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

const (
	maxNameLen     = 50
	minPasswordLen = 8
	maxPasswordLen = 100
)

// passwordSymbols is the fixed set of special characters a password
// must draw at least one character from.
const passwordSymbols = "!@#$%^&*()"

// User is the aggregate for account management. DELETED is terminal:
// no profile or password mutation is allowed past it, and users are
// never hard-deleted.
type User struct {
	ID          string
	Email       string
	FirstName   string
	LastName    string
	Password    string
	Role        UserRole
	Status      UserStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
	LastLoginAt *time.Time
}

// NewUser validates all fields and creates an ACTIVE user with a fresh id.
// An empty role defaults to RoleUser.
func NewUser(email, firstName, lastName, password string, role UserRole) (*User, error) {
	normEmail, err := validateEmail(email)
	if err != nil {
		return nil, err
	}
	first, err := validateName(firstName, "first name")
	if err != nil {
		return nil, err
	}
	last, err := validateName(lastName, "last name")
	if err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if role == "" {
		role = RoleUser
	} else if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown user role %q", ErrValidation, role)
	}

	now := time.Now()
	return &User{
		ID:        uuid.NewString(),
		Email:     normEmail,
		FirstName: first,
		LastName:  last,
		Password:  password,
		Role:      role,
		Status:    UserStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// LoadUser rehydrates a persisted user without re-validating fields.
func LoadUser(id, email, firstName, lastName, password string, role UserRole, status UserStatus,
	createdAt, updatedAt time.Time, lastLoginAt *time.Time) *User {
	return &User{
		ID:          id,
		Email:       email,
		FirstName:   firstName,
		LastName:    lastName,
		Password:    password,
		Role:        role,
		Status:      status,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
		LastLoginAt: lastLoginAt,
	}
}

func (u *User) UpdateProfile(firstName, lastName, email string) error {
	if u.Status == UserStatusDeleted {
		return fmt.Errorf("%w: cannot update profile of deleted user", ErrIllegalState)
	}
	first, err := validateName(firstName, "first name")
	if err != nil {
		return err
	}
	last, err := validateName(lastName, "last name")
	if err != nil {
		return err
	}
	normEmail, err := validateEmail(email)
	if err != nil {
		return err
	}
	u.FirstName = first
	u.LastName = last
	u.Email = normEmail
	u.UpdatedAt = time.Now()
	return nil
}

func (u *User) ChangePassword(newPassword string) error {
	if u.Status == UserStatusDeleted {
		return fmt.Errorf("%w: cannot change password of deleted user", ErrIllegalState)
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	u.Password = newPassword
	u.UpdatedAt = time.Now()
	return nil
}

func (u *User) Deactivate() error {
	if u.Status == UserStatusDeleted {
		return fmt.Errorf("%w: cannot deactivate deleted user", ErrIllegalState)
	}
	u.Status = UserStatusInactive
	u.UpdatedAt = time.Now()
	return nil
}

func (u *User) Activate() error {
	if u.Status == UserStatusDeleted {
		return fmt.Errorf("%w: cannot activate deleted user", ErrIllegalState)
	}
	u.Status = UserStatusActive
	u.UpdatedAt = time.Now()
	return nil
}

// MarkAsDeleted soft-deletes the user. DELETED is a sink.
func (u *User) MarkAsDeleted() {
	u.Status = UserStatusDeleted
	u.UpdatedAt = time.Now()
}

func (u *User) UpdateLastLogin() error {
	if u.Status != UserStatusActive {
		return fmt.Errorf("%w: only active users can login", ErrIllegalState)
	}
	now := time.Now()
	u.LastLoginAt = &now
	return nil
}

func (u *User) CanBeAssignedTasks() bool { return u.Status == UserStatusActive }

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// IsProjectManager reports whether the user may own projects.
// Admins qualify implicitly.
func (u *User) IsProjectManager() bool { return u.Role.CanManageProjects() }

func (u *User) FullName() string { return u.FirstName + " " + u.LastName }

// DisplayName is the first name plus last initial, e.g. "John D.".
func (u *User) DisplayName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName[:1] + "."
}

// IsRecentlyActive reports whether the user logged in within the last 30 days.
func (u *User) IsRecentlyActive() bool {
	return u.LastLoginAt != nil && u.LastLoginAt.After(time.Now().AddDate(0, 0, -30))
}

func (u *User) String() string {
	return fmt.Sprintf("User{id=%s, email=%s, role=%s, status=%s}", u.ID, u.Email, u.Role, u.Status)
}

func validateEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", fmt.Errorf("%w: email cannot be empty", ErrValidation)
	}
	if !emailPattern.MatchString(email) {
		return "", fmt.Errorf("%w: invalid email format", ErrValidation)
	}
	return email, nil
}

func validateName(name, field string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("%w: %s cannot be empty", ErrValidation, field)
	}
	if len(name) > maxNameLen {
		return "", fmt.Errorf("%w: %s cannot exceed %d characters", ErrValidation, field, maxNameLen)
	}
	return trimmed, nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters long", ErrValidation, minPasswordLen)
	}
	if len(password) > maxPasswordLen {
		return fmt.Errorf("%w: password cannot exceed %d characters", ErrValidation, maxPasswordLen)
	}
	var upper, lower, digit, symbol bool
	for _, c := range password {
		switch {
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= '0' && c <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, c):
			symbol = true
		}
	}
	if !upper || !lower || !digit || !symbol {
		return fmt.Errorf("%w: password must contain at least one uppercase letter, one lowercase letter, one number, and one special character", ErrValidation)
	}
	return nil
}
