package repository

import (
	"context"
	"errors"

	"github.com/surveymaster/server/internal/models"
)

var (
	// ErrNotFound is returned by mutations whose target record is absent.
	// Read paths report an absent record as a nil result instead.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a uniqueness
	// constraint. For votes this is the store-level guard behind the
	// one-vote-per-survey invariant.
	ErrDuplicate = errors.New("duplicate record")
)

type Users interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	Insert(ctx context.Context, user *models.User) (string, error)
	UpdateRoleByID(ctx context.Context, id, role string) error
	UpdateRoleByEmail(ctx context.Context, email, role string) error
	Delete(ctx context.Context, id string) error
}

type Surveys interface {
	FindByStatus(ctx context.Context, status string) ([]models.Survey, error)
	FindByID(ctx context.Context, id string) (*models.Survey, error)
	FindByCreator(ctx context.Context, email string) ([]models.Survey, error)
	Insert(ctx context.Context, survey *models.Survey) (string, error)
	Update(ctx context.Context, id string, survey *models.Survey) error
	IncrementTally(ctx context.Context, id, choice string) error
	Delete(ctx context.Context, id string) error
}

type Votes interface {
	Find(ctx context.Context, surveyID, userEmail string) (*models.Vote, error)
	Insert(ctx context.Context, vote *models.Vote) (string, error)
}

type Payments interface {
	FindByEmail(ctx context.Context, email string) ([]models.Payment, error)
	FindAll(ctx context.Context) ([]models.Payment, error)
	Insert(ctx context.Context, payment *models.Payment) (string, error)
	SetStatus(ctx context.Context, id, status string) error
}
