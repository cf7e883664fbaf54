package service

import (
	"context"
	"time"

	"github.com/surveymaster/server/internal/models"
	"github.com/surveymaster/server/internal/repository"
)

// VoteService is the voting pipeline. Its contract: at most one vote per
// (surveyId, userEmail), and survey tallies reflect exactly the recorded
// votes. The duplicate pre-check is a fast path only; the store's unique
// index on the pair is what holds the invariant when two casts race.
type VoteService struct {
	votes   repository.Votes
	surveys repository.Surveys
}

func NewVoteService(votes repository.Votes, surveys repository.Surveys) *VoteService {
	return &VoteService{votes: votes, surveys: surveys}
}

// HasVoted is a pure lookup; an absent vote is false, never an error.
func (s *VoteService) HasVoted(ctx context.Context, surveyID, userEmail string) (bool, error) {
	vote, err := s.votes.Find(ctx, surveyID, userEmail)
	if err != nil {
		return false, err
	}
	return vote != nil, nil
}

type CastResult struct {
	InsertedID    string `json:"insertedId"`
	ModifiedCount int64  `json:"modifiedCount"`
}

// Cast records a one-shot, irrevocable vote and bumps the matching tally by
// exactly one. A duplicate cast leaves both stores untouched.
func (s *VoteService) Cast(ctx context.Context, surveyID, userEmail, choice string) (*CastResult, error) {
	if !models.ValidChoice(choice) {
		return nil, ErrInvalidChoice
	}
	survey, err := s.surveys.FindByID(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if survey == nil {
		return nil, ErrNotFound
	}

	existing, err := s.votes.Find(ctx, surveyID, userEmail)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateVote
	}

	id, err := s.votes.Insert(ctx, &models.Vote{
		SurveyID:  surveyID,
		UserEmail: userEmail,
		Choice:    choice,
		CastAt:    time.Now().UTC(),
	})
	if err == repository.ErrDuplicate {
		// Concurrent cast won the race; the unique index rejected ours.
		return nil, ErrDuplicateVote
	}
	if err != nil {
		return nil, err
	}

	if err := s.surveys.IncrementTally(ctx, surveyID, choice); err != nil {
		return nil, err
	}
	return &CastResult{InsertedID: id, ModifiedCount: 1}, nil
}
