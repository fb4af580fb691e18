package auth

import (
	"errors"
	"time"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleAuditor Role = "auditor"
	RoleViewer  Role = "viewer"
)

// ParseRole validates a role string.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleAuditor, RoleViewer:
		return Role(s), true
	}
	return "", false
}

// Account is a registered identity. PasswordHash is bcrypt and is stripped
// before an account crosses the service boundary.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	Company      string    `json:"company"`
	PasswordHash string    `json:"password,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// sanitized returns a copy with the credential stripped.
func (a Account) sanitized() Account {
	a.PasswordHash = ""
	return a
}

// session is the persisted current-user record. The token lets a reload
// detect tampering: an invalid token reads as "no session".
type session struct {
	Token string  `json:"token"`
	User  Account `json:"user"`
}

// RegisterData carries the registration form fields.
type RegisterData struct {
	Email    string
	Name     string
	Role     Role
	Company  string
	Password string
}

// Result is the discriminated outcome of a user-facing flow. Err is a
// human-readable message, never an exception; Cause classifies the failure
// against the package sentinels and is nil for internal faults.
type Result struct {
	OK    bool
	User  *Account
	Err   string
	Cause error
}

// FailureError converts a failed result into an error whose message is the
// display string and which matches the classifying sentinel under errors.Is.
func (r Result) FailureError() error {
	if r.OK {
		return nil
	}
	if r.Cause == nil {
		return errors.New(r.Err)
	}
	return &resultError{msg: r.Err, cause: r.Cause}
}

type resultError struct {
	msg   string
	cause error
}

func (e *resultError) Error() string { return e.msg }
func (e *resultError) Unwrap() error { return e.cause }

func failure(cause error, msg string) Result { return Result{Err: msg, Cause: cause} }
