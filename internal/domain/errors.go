package domain

import "errors"

// Store-level errors. Repositories wrap these; usecases translate them.
var (
	ErrNotFound  = errors.New("resource not found")
	ErrDuplicate = errors.New("duplicate key")
)
