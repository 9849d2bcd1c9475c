package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already registered")

	// Week errors
	ErrWeekNotFound = errors.New("week not found")
	ErrWeekExists   = errors.New("week number already exists")

	// Game errors
	ErrGameNotFound = errors.New("game not found")

	// Bet errors
	ErrBetNotFound       = errors.New("bet not found")
	ErrBetExists         = errors.New("bet already placed for this game")
	ErrInvalidPrediction = errors.New("prediction must be home, draw or away")
)
