package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"gemba.tools/internal/store"
	"gemba.tools/internal/store/filekv"
)

func newTestService(t *testing.T, opts ...ServiceOption) *Service {
	t.Helper()
	kv, err := filekv.New(afero.NewMemMapFs(), "/data")
	if err != nil {
		t.Fatalf("filekv.New: %v", err)
	}
	adapter := store.NewAdapter(kv, zap.NewNop())
	base := []ServiceOption{
		WithBcryptCost(bcrypt.MinCost),
		WithLogger(zap.NewNop()),
	}
	return NewService(adapter, "test-secret", append(base, opts...)...)
}

func validRegistration() RegisterData {
	return RegisterData{
		Email:    "a@b.com",
		Name:     "Ana Silva",
		Role:     RoleAuditor,
		Company:  "Acme",
		Password: "secret1",
	}
}

func TestRegisterEstablishesSession(t *testing.T) {
	svc := newTestService(t)

	res := svc.Register(validRegistration())
	if !res.OK {
		t.Fatalf("register failed: %s", res.Err)
	}
	if res.User == nil || res.User.Email != "a@b.com" {
		t.Fatalf("unexpected user: %+v", res.User)
	}
	if res.User.PasswordHash != "" {
		t.Fatal("credential leaked through the result")
	}

	current := svc.CurrentUser()
	if current == nil || current.Email != "a@b.com" {
		t.Fatalf("session not established: %+v", current)
	}
	if current.PasswordHash != "" {
		t.Fatal("credential leaked through the session")
	}
}

func TestRegisterValidationOrder(t *testing.T) {
	svc := newTestService(t)

	cases := []struct {
		name    string
		mutate  func(*RegisterData)
		wantErr string
	}{
		{"missing email", func(d *RegisterData) { d.Email = "" }, "all fields are required"},
		{"missing password", func(d *RegisterData) { d.Password = "" }, "all fields are required"},
		{"no at sign", func(d *RegisterData) { d.Email = "nope" }, "email address is invalid"},
		{"short password", func(d *RegisterData) { d.Password = "12345" }, "password must be at least 6 characters"},
		{"short name", func(d *RegisterData) { d.Name = "A" }, "name must be at least 2 characters"},
		{"short company", func(d *RegisterData) { d.Company = "X" }, "company must be at least 2 characters"},
		{"bad role", func(d *RegisterData) { d.Role = "root" }, "role must be admin, auditor, or viewer"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := validRegistration()
			tc.mutate(&data)
			res := svc.Register(data)
			if res.OK {
				t.Fatal("expected failure")
			}
			if res.Err != tc.wantErr {
				t.Fatalf("error = %q, want %q", res.Err, tc.wantErr)
			}
		})
	}
}

func TestRegisterDuplicateEmailCaseInsensitive(t *testing.T) {
	svc := newTestService(t)

	if res := svc.Register(validRegistration()); !res.OK {
		t.Fatalf("first register failed: %s", res.Err)
	}
	dup := validRegistration()
	dup.Email = "A@B.COM"
	res := svc.Register(dup)
	if res.OK {
		t.Fatal("duplicate email accepted")
	}
	if res.Err != "an account with this email already exists" {
		t.Fatalf("unexpected error: %q", res.Err)
	}
}

func TestLogin(t *testing.T) {
	svc := newTestService(t)
	svc.Register(validRegistration())
	svc.Logout()

	if res := svc.Login("A@b.Com", "secret1"); !res.OK {
		t.Fatalf("login with cased email failed: %s", res.Err)
	}
	if current := svc.CurrentUser(); current == nil {
		t.Fatal("session missing after login")
	}

	if res := svc.Login("a@b.com", "wrong-pass"); res.OK || res.Err != "incorrect password" {
		t.Fatalf("wrong password: %+v", res)
	}
	if res := svc.Login("ghost@b.com", "secret1"); res.OK || res.Err != "account not found" {
		t.Fatalf("unknown email: %+v", res)
	}
	if res := svc.Login("", ""); res.OK || res.Err != "email and password are required" {
		t.Fatalf("empty credentials: %+v", res)
	}
	if res := svc.Login("nope", "secret1"); res.OK || res.Err != "email address is invalid" {
		t.Fatalf("bad email: %+v", res)
	}
}

func TestLogoutKeepsAccounts(t *testing.T) {
	svc := newTestService(t)
	svc.Register(validRegistration())

	svc.Logout()
	if svc.CurrentUser() != nil {
		t.Fatal("session survived logout")
	}
	if res := svc.Login("a@b.com", "secret1"); !res.OK {
		t.Fatalf("account lost on logout: %s", res.Err)
	}
}

func TestChangePassword(t *testing.T) {
	svc := newTestService(t)
	svc.Register(validRegistration())

	if res := svc.ChangePassword("a@b.com", "wrong", "newsecret"); res.OK || res.Err != "incorrect password" {
		t.Fatalf("wrong current password: %+v", res)
	}
	if res := svc.ChangePassword("a@b.com", "secret1", "short"); res.OK {
		t.Fatal("short new password accepted")
	}
	if res := svc.ChangePassword("a@b.com", "secret1", "newsecret"); !res.OK {
		t.Fatalf("change failed: %s", res.Err)
	}

	svc.Logout()
	if res := svc.Login("a@b.com", "secret1"); res.OK {
		t.Fatal("old password still valid")
	}
	if res := svc.Login("a@b.com", "newsecret"); !res.OK {
		t.Fatalf("new password rejected: %s", res.Err)
	}
}

func TestCurrentUserRejectsTamperedSession(t *testing.T) {
	kv, err := filekv.New(afero.NewMemMapFs(), "/data")
	if err != nil {
		t.Fatalf("filekv.New: %v", err)
	}
	adapter := store.NewAdapter(kv, zap.NewNop())
	svc := NewService(adapter, "test-secret",
		WithBcryptCost(bcrypt.MinCost), WithLogger(zap.NewNop()))
	svc.Register(validRegistration())

	// forge a session record with a bad token
	var sess session
	if !adapter.Get(store.KeySession, &sess) {
		t.Fatal("session record missing")
	}
	sess.Token = "forged"
	adapter.Set(store.KeySession, sess)

	if svc.CurrentUser() != nil {
		t.Fatal("tampered session accepted")
	}
	// the rejected record is cleared
	if adapter.Get(store.KeySession, &sess) {
		t.Fatal("tampered session not cleared")
	}
}

func TestSessionExpires(t *testing.T) {
	current := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	svc := newTestService(t,
		WithClock(func() time.Time { return current }),
		WithSessionTTL(time.Hour),
	)
	svc.Register(validRegistration())

	if svc.CurrentUser() == nil {
		t.Fatal("fresh session rejected")
	}
	current = current.Add(2 * time.Hour)
	if svc.CurrentUser() != nil {
		t.Fatal("expired session accepted")
	}
}

func TestIsolatedServicesDoNotShareSessions(t *testing.T) {
	a := newTestService(t)
	b := newTestService(t)
	a.Register(validRegistration())

	if b.CurrentUser() != nil {
		t.Fatal("session leaked across isolated stores")
	}
}

func TestFailureClassification(t *testing.T) {
	svc := newTestService(t)
	if res := svc.Register(validRegistration()); !res.OK {
		t.Fatalf("seed registration failed: %s", res.Err)
	}

	cases := []struct {
		name string
		res  Result
		want error
	}{
		{"short password", svc.Register(RegisterData{Email: "x@y.com", Name: "Bo Li", Role: RoleViewer, Company: "Acme", Password: "abc"}), ErrInvalidInput},
		{"duplicate email", svc.Register(validRegistration()), ErrAlreadyExists},
		{"unknown account", svc.Login("nobody@b.com", "secret1"), ErrNotFound},
		{"wrong password", svc.Login("a@b.com", "wrong"), ErrBadCredentials},
	}
	for _, tc := range cases {
		if tc.res.OK {
			t.Fatalf("%s: unexpectedly succeeded", tc.name)
		}
		if !errors.Is(tc.res.Cause, tc.want) {
			t.Fatalf("%s: Cause = %v, want %v", tc.name, tc.res.Cause, tc.want)
		}
		err := tc.res.FailureError()
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: FailureError does not match sentinel: %v", tc.name, err)
		}
		if err.Error() != tc.res.Err {
			t.Fatalf("%s: error message %q, want display string %q", tc.name, err.Error(), tc.res.Err)
		}
	}
}

func TestFailureErrorNilOnSuccess(t *testing.T) {
	res := Result{OK: true}
	if err := res.FailureError(); err != nil {
		t.Fatalf("FailureError on success = %v, want nil", err)
	}
}
