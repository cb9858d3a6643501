package util

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailRegistered      = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionFull          = errors.New("session is full")
	ErrAlreadyRegistered    = errors.New("already registered for this session")
	ErrSessionStarted       = errors.New("session has already started")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrInvalidTransition    = errors.New("invalid session status transition")
	ErrInvalidWeeklyGoal    = errors.New("weekly goal must be between 1 and 10")
	ErrResetTokenInvalid    = errors.New("reset token is invalid or expired")
	ErrInvalidParticipants  = errors.New("some selected students are not registered for this session")
)
