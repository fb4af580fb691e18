package auth

import "errors"

// Sentinels classifying failed results. Result.Err stays the display string;
// these drive errors.Is through Result.Cause.
var (
	ErrNotFound       = errors.New("auth: not found")
	ErrAlreadyExists  = errors.New("auth: already exists")
	ErrInvalidInput   = errors.New("auth: invalid input")
	ErrBadCredentials = errors.New("auth: bad credentials")
)
