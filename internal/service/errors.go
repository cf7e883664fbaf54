package service

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateVote = errors.New("already voted on this survey")
	ErrInvalidChoice = errors.New("choice must be yes or no")
	ErrInvalidRole   = errors.New("unknown role")
	ErrInvalidAmount = errors.New("price must be positive")
)
