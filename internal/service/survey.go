package service

import (
	"context"
	"time"

	"github.com/surveymaster/server/internal/models"
	"github.com/surveymaster/server/internal/repository"
)

type SurveyService struct {
	surveys repository.Surveys
}

func NewSurveyService(surveys repository.Surveys) *SurveyService {
	return &SurveyService{surveys: surveys}
}

// Published returns the public listing, filtered to published surveys only.
func (s *SurveyService) Published(ctx context.Context) ([]models.Survey, error) {
	return s.surveys.FindByStatus(ctx, models.StatusPublish)
}

// Detail fetches by id with no status filter, so drafts stay reachable by
// their owner through the detail route.
func (s *SurveyService) Detail(ctx context.Context, id string) (*models.Survey, error) {
	survey, err := s.surveys.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if survey == nil {
		return nil, ErrNotFound
	}
	return survey, nil
}

func (s *SurveyService) ByCreator(ctx context.Context, email string) ([]models.Survey, error) {
	return s.surveys.FindByCreator(ctx, email)
}

// Create records a new survey owned by the caller. Tallies start at zero and
// belong to the voting pipeline from here on.
func (s *SurveyService) Create(ctx context.Context, survey *models.Survey, createdBy string) (string, error) {
	survey.CreatedBy = createdBy
	survey.YesOption = 0
	survey.NoOption = 0
	if survey.Status == "" {
		survey.Status = models.StatusDraft
	}
	survey.UpdatedOn = time.Now().UTC()
	return s.surveys.Insert(ctx, survey)
}

func (s *SurveyService) Update(ctx context.Context, id string, survey *models.Survey) error {
	survey.UpdatedOn = time.Now().UTC()
	err := s.surveys.Update(ctx, id, survey)
	if err == repository.ErrNotFound {
		return ErrNotFound
	}
	return err
}

func (s *SurveyService) Delete(ctx context.Context, id string) error {
	err := s.surveys.Delete(ctx, id)
	if err == repository.ErrNotFound {
		return ErrNotFound
	}
	return err
}
