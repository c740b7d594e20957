package models

import "errors"

// Custom errors
var (
	ErrNotFound     = errors.New("record not found")
	ErrPickLocked   = errors.New("pick is locked")
	ErrDuplicateKey = errors.New("duplicate key violation")
	ErrNoGames      = errors.New("no games found")
)
