// Package common defines shared sentinel errors and error types used across
// the store, repository, and service layers of starly. Callers should use
// errors.Is for sentinels and errors.As for the typed errors.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation error")
)

// StoreInitError reports that the local database could not be opened,
// created, or migrated. Callers treat it as fatal.
type StoreInitError struct {
	Path string
	Err  error
}

func (e *StoreInitError) Error() string {
	return fmt.Sprintf("failed to initialize store %q: %v", e.Path, e.Err)
}

func (e *StoreInitError) Unwrap() error { return e.Err }

// RepositoryError tags a store-level fault with the operation that was
// attempted. The original cause stays reachable through errors.Is/As.
type RepositoryError struct {
	Op  string
	Err error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *RepositoryError) Unwrap() error { return e.Err }

// NewRepositoryError wraps err as a RepositoryError for op. A nil err yields nil.
func NewRepositoryError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &RepositoryError{Op: op, Err: err}
}

// GenerateRandByteArray returns size bytes from crypto/rand.
func GenerateRandByteArray(size int) ([]byte, error) {
	b := make([]byte, size)
	if _, err := randRead(b); err != nil {
		return nil, fmt.Errorf("read random bytes: %w", err)
	}
	return b, nil
}

// WipeByteArray overwrites b with zeros. Nil is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
