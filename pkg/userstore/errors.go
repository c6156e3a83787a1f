package userstore

import "errors"

var (
	// ErrUserNotFound is returned when no record in the users file matches
	// the requested username.
	ErrUserNotFound = errors.New("user not found in users file")
	// ErrFailedToOpenStore is returned when the users file cannot be opened.
	ErrFailedToOpenStore = errors.New("failed to open users file")
	// ErrFailedToLockStore is returned when the exclusive update lock cannot
	// be acquired within the configured bound.
	ErrFailedToLockStore = errors.New("failed to lock users file")
	// ErrFailedToRewriteStore is returned when writing or renaming the
	// rewritten users file fails. The original file is left untouched.
	ErrFailedToRewriteStore = errors.New("failed to rewrite users file")
	// ErrInvalidStorePath is returned when a Store is constructed with an
	// empty path.
	ErrInvalidStorePath = errors.New("users file path cannot be empty")
)
