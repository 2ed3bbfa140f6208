// Package common defines shared constants and sentinel errors used across
// the backend. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrVersionConflict = errors.New("version conflict")
	ErrorCorruptData   = errors.New("corrupt data")
	ErrorUninitialized = errors.New("database not initialized")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Account lifecycle errors.
	ErrorUserExists   = errors.New("username already exists")
	ErrorBanned       = errors.New("account is banned")
	ErrorExpired      = errors.New("subscription expired")
	ErrorHWIDMismatch = errors.New("hwid mismatch")

	// Key redemption errors.
	ErrorKeyBanned       = errors.New("key is banned")
	ErrorKeyUsed         = errors.New("key already used")
	ErrorInvalidDuration = errors.New("invalid key duration")
)
