package repository

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/surveymaster/server/internal/models"
)

// In-memory implementations of the store interfaces. They enforce the same
// uniqueness constraints as the Mongo indexes so the voting and registration
// invariants are testable without a running database.

type MemoryUsers struct {
	mu    sync.Mutex
	users map[string]*models.User // keyed by id hex
}

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{users: map[string]*models.User{}}
}

func (r *MemoryUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r *MemoryUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		c := *u
		return &c, nil
	}
	return nil, nil
}

func (r *MemoryUsers) FindAll(_ context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.User{}
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *MemoryUsers) Insert(_ context.Context, user *models.User) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return "", ErrDuplicate
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	id := user.ID.Hex()
	c := *user
	r.users[id] = &c
	return id, nil
}

func (r *MemoryUsers) UpdateRoleByID(_ context.Context, id, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.Role = role
	return nil
}

func (r *MemoryUsers) UpdateRoleByEmail(_ context.Context, email, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			u.Role = role
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryUsers) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type MemorySurveys struct {
	mu      sync.Mutex
	surveys map[string]*models.Survey
}

func NewMemorySurveys() *MemorySurveys {
	return &MemorySurveys{surveys: map[string]*models.Survey{}}
}

func (r *MemorySurveys) FindByStatus(_ context.Context, status string) ([]models.Survey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Survey{}
	for _, s := range r.surveys {
		if s.Status == status {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *MemorySurveys) FindByCreator(_ context.Context, email string) ([]models.Survey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Survey{}
	for _, s := range r.surveys {
		if s.CreatedBy == email {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *MemorySurveys) FindByID(_ context.Context, id string) (*models.Survey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.surveys[id]; ok {
		c := *s
		return &c, nil
	}
	return nil, nil
}

func (r *MemorySurveys) Insert(_ context.Context, survey *models.Survey) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if survey.ID.IsZero() {
		survey.ID = primitive.NewObjectID()
	}
	id := survey.ID.Hex()
	c := *survey
	r.surveys[id] = &c
	return id, nil
}

func (r *MemorySurveys) Update(_ context.Context, id string, survey *models.Survey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.surveys[id]
	if !ok {
		return ErrNotFound
	}
	s.Title = survey.Title
	s.Description = survey.Description
	s.Category = survey.Category
	s.Deadline = survey.Deadline
	s.Status = survey.Status
	s.UpdatedOn = survey.UpdatedOn
	return nil
}

func (r *MemorySurveys) IncrementTally(_ context.Context, id, choice string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.surveys[id]
	if !ok {
		return ErrNotFound
	}
	if choice == models.ChoiceYes {
		s.YesOption++
	} else {
		s.NoOption++
	}
	return nil
}

func (r *MemorySurveys) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.surveys[id]; !ok {
		return ErrNotFound
	}
	delete(r.surveys, id)
	return nil
}

type MemoryVotes struct {
	mu    sync.Mutex
	votes map[[2]string]*models.Vote // keyed by (surveyId, userEmail)
}

func NewMemoryVotes() *MemoryVotes {
	return &MemoryVotes{votes: map[[2]string]*models.Vote{}}
}

func (r *MemoryVotes) Find(_ context.Context, surveyID, userEmail string) (*models.Vote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.votes[[2]string{surveyID, userEmail}]; ok {
		c := *v
		return &c, nil
	}
	return nil, nil
}

func (r *MemoryVotes) Insert(_ context.Context, vote *models.Vote) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]string{vote.SurveyID, vote.UserEmail}
	if _, ok := r.votes[key]; ok {
		return "", ErrDuplicate
	}
	if vote.ID.IsZero() {
		vote.ID = primitive.NewObjectID()
	}
	c := *vote
	r.votes[key] = &c
	return vote.ID.Hex(), nil
}

type MemoryPayments struct {
	mu       sync.Mutex
	payments map[string]*models.Payment
}

func NewMemoryPayments() *MemoryPayments {
	return &MemoryPayments{payments: map[string]*models.Payment{}}
}

func (r *MemoryPayments) FindByEmail(_ context.Context, email string) ([]models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Payment{}
	for _, p := range r.payments {
		if p.Email == email {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *MemoryPayments) FindAll(_ context.Context) ([]models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Payment{}
	for _, p := range r.payments {
		out = append(out, *p)
	}
	return out, nil
}

func (r *MemoryPayments) Insert(_ context.Context, payment *models.Payment) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if payment.ID.IsZero() {
		payment.ID = primitive.NewObjectID()
	}
	id := payment.ID.Hex()
	c := *payment
	r.payments[id] = &c
	return id, nil
}

func (r *MemoryPayments) SetStatus(_ context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	if !ok {
		return ErrNotFound
	}
	p.Status = status
	return nil
}
