package usecase

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrSessionNotFound = errors.New("session not found")
	ErrDatasetNotFound = errors.New("dataset not found")
	ErrJobNotFound     = errors.New("job not found")
	ErrUnmappedSkill   = errors.New("profile is missing required skills")
	ErrInternal        = errors.New("internal error")
)
