package app

import "github.com/pkg/errors"

var (
	ErrNoStates      = errors.New("state machine has no states")
	ErrInvalidConfig = errors.New("window size must be positive")
)
