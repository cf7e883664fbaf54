package service

import (
	"context"
	"time"

	"github.com/surveymaster/server/internal/models"
	"github.com/surveymaster/server/internal/repository"
)

type UserService struct {
	users repository.Users
}

func NewUserService(users repository.Users) *UserService {
	return &UserService{users: users}
}

type RegisterResult struct {
	Message    string  `json:"message,omitempty"`
	InsertedID *string `json:"insertedId"`
}

// Register is idempotent on email: re-registering reports the conflict with
// a nil insertedId instead of inserting a second record.
func (s *UserService) Register(ctx context.Context, user *models.User) (*RegisterResult, error) {
	if user.Role == "" {
		user.Role = models.RoleNone
	}
	if !models.ValidRole(user.Role) {
		return nil, ErrInvalidRole
	}
	existing, err := s.users.FindByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &RegisterResult{Message: "User already exist!"}, nil
	}
	user.CreatedAt = time.Now().UTC()
	id, err := s.users.Insert(ctx, user)
	if err == repository.ErrDuplicate {
		// Lost a race against a concurrent registration; same outcome.
		return &RegisterResult{Message: "User already exist!"}, nil
	}
	if err != nil {
		return nil, err
	}
	return &RegisterResult{InsertedID: &id}, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.FindAll(ctx)
}

// HasRole reports whether the stored record for email carries exactly the
// given role. A missing record is simply false.
func (s *UserService) HasRole(ctx context.Context, email, role string) (bool, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return user != nil && user.Role == role, nil
}

// PromoteToSurveyor grants the surveyor role by user id.
func (s *UserService) PromoteToSurveyor(ctx context.Context, id string) error {
	err := s.users.UpdateRoleByID(ctx, id, models.RoleSurveyor)
	if err == repository.ErrNotFound {
		return ErrNotFound
	}
	return err
}

func (s *UserService) SetRole(ctx context.Context, email, role string) error {
	if !models.ValidRole(role) {
		return ErrInvalidRole
	}
	err := s.users.UpdateRoleByEmail(ctx, email, role)
	if err == repository.ErrNotFound {
		return ErrNotFound
	}
	return err
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	err := s.users.Delete(ctx, id)
	if err == repository.ErrNotFound {
		return ErrNotFound
	}
	return err
}
