package errors

import "errors"

// Common errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrInternalError = errors.New("internal server error")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
	ErrTokenInvalid    = errors.New("token invalid")
)

// Transcript errors
var (
	ErrTranscriptEmpty        = errors.New("transcript is empty")
	ErrTranscriberUnavailable = errors.New("audio transcriber not configured")
)

// Collaborator errors
var (
	ErrCalendarUnavailable = errors.New("calendar integration not configured")
	ErrNotesUnavailable    = errors.New("notes integration not configured")
	ErrInvalidTime         = errors.New("invalid date or time")
)

// Infrastructure errors
var (
	ErrStorageUnavailable = errors.New("object storage not configured")
	ErrArchiveUnavailable = errors.New("analysis archive not configured")
	ErrInvalidOAuthState  = errors.New("invalid or expired oauth state")
)
