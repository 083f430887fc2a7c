// Package model provides core data types for errnogen.
package model

import (
	platformerrors "github.com/jmgilman/go/errors"
)

// Error types for errnogen operations
var (
	ErrInvalidName       = platformerrors.New(platformerrors.CodeInvalidInput, "invalid error constant name")
	ErrConflictingEntry  = platformerrors.New(platformerrors.CodeConflict, "conflicting codes for error constant")
	ErrSourceUnavailable = platformerrors.New(platformerrors.CodeUnavailable, "error table source unavailable")
	ErrInvalidSource     = platformerrors.New(platformerrors.CodeInvalidInput, "invalid source")
	ErrSnapshotNotFound  = platformerrors.New(platformerrors.CodeNotFound, "snapshot not found")
	ErrInvalidOrder      = platformerrors.New(platformerrors.CodeInvalidInput, "invalid order")
	ErrStale             = platformerrors.New(platformerrors.CodeConflict, "generated file is out of date")
)
