package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"gemba.tools/internal/obs"
	"gemba.tools/internal/store"
)

const defaultSessionTTL = 30 * 24 * time.Hour

// Service is the session/account store. It owns the registered-accounts
// collection and the current-session record, both persisted through the
// storage adapter.
type Service struct {
	store      *store.Adapter
	secret     []byte
	now        func() time.Time
	log        *zap.Logger
	bcryptCost int
	sessionTTL time.Duration
}

// ServiceOption configures Service behavior.
type ServiceOption func(*Service)

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) ServiceOption {
	return func(s *Service) {
		if fn != nil {
			s.now = fn
		}
	}
}

// WithBcryptCost sets the credential hashing cost. Tests use bcrypt.MinCost.
func WithBcryptCost(cost int) ServiceOption {
	return func(s *Service) { s.bcryptCost = cost }
}

// WithSessionTTL configures how long a persisted session stays valid.
func WithSessionTTL(ttl time.Duration) ServiceOption {
	return func(s *Service) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

// WithLogger overrides the diagnostic logger.
func WithLogger(l *zap.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// NewService constructs the account store. secret signs session tokens; an
// empty secret still works but any process restart with a different secret
// invalidates persisted sessions, which is the safe failure mode.
func NewService(adapter *store.Adapter, secret string, opts ...ServiceOption) *Service {
	svc := &Service{
		store:      adapter,
		secret:     []byte(secret),
		now:        time.Now,
		log:        obs.Logger(),
		bcryptCost: bcrypt.DefaultCost,
		sessionTTL: defaultSessionTTL,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register validates the form, appends the account to the registered
// collection, and establishes a session. Validation failures come back as a
// message in the result, never as an error value.
func (s *Service) Register(data RegisterData) Result {
	if strings.TrimSpace(data.Email) == "" || data.Password == "" ||
		strings.TrimSpace(data.Name) == "" || strings.TrimSpace(data.Company) == "" ||
		data.Role == "" {
		return failure(ErrInvalidInput, "all fields are required")
	}
	if !strings.Contains(data.Email, "@") {
		return failure(ErrInvalidInput, "email address is invalid")
	}
	if len(data.Password) < 6 {
		return failure(ErrInvalidInput, "password must be at least 6 characters")
	}
	if len(strings.TrimSpace(data.Name)) < 2 {
		return failure(ErrInvalidInput, "name must be at least 2 characters")
	}
	if len(strings.TrimSpace(data.Company)) < 2 {
		return failure(ErrInvalidInput, "company must be at least 2 characters")
	}
	if _, ok := ParseRole(string(data.Role)); !ok {
		return failure(ErrInvalidInput, "role must be admin, auditor, or viewer")
	}

	accounts := s.loadAccounts()
	email := normalizeEmail(data.Email)
	for _, existing := range accounts {
		if normalizeEmail(existing.Email) == email {
			return failure(ErrAlreadyExists, "an account with this email already exists")
		}
	}

	hash, err := HashPassword(data.Password, s.bcryptCost)
	if err != nil {
		s.log.Error("password hashing failed", zap.Error(err))
		return failure(nil, "could not create the account, try again")
	}

	account := Account{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(data.Name),
		Role:         data.Role,
		Company:      strings.TrimSpace(data.Company),
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	accounts = append(accounts, account)
	if !s.store.Set(store.KeyAccounts, accounts) {
		return failure(nil, "could not save the account, try again")
	}

	if err := s.establishSession(account); err != nil {
		s.log.Warn("session not established after registration", zap.Error(err))
	}
	sanitized := account.sanitized()
	return Result{OK: true, User: &sanitized}
}

// Login authenticates by normalized email and password and establishes a
// session on success.
func (s *Service) Login(email, password string) Result {
	outcome := "rejected"
	defer func() { obs.Logins.WithLabelValues(outcome).Inc() }()

	if strings.TrimSpace(email) == "" || password == "" {
		return failure(ErrInvalidInput, "email and password are required")
	}
	if !strings.Contains(email, "@") {
		return failure(ErrInvalidInput, "email address is invalid")
	}

	email = normalizeEmail(email)
	var found *Account
	for _, account := range s.loadAccounts() {
		if normalizeEmail(account.Email) == email {
			found = &account
			break
		}
	}
	if found == nil || found.PasswordHash == "" {
		return failure(ErrNotFound, "account not found")
	}
	if err := VerifyPassword(found.PasswordHash, password); err != nil {
		return failure(ErrBadCredentials, "incorrect password")
	}

	if err := s.establishSession(*found); err != nil {
		s.log.Warn("session not established after login", zap.Error(err))
	}
	outcome = "ok"
	sanitized := found.sanitized()
	return Result{OK: true, User: &sanitized}
}

// ChangePassword verifies the current credential and re-hashes the new one.
// Registered accounts are otherwise immutable.
func (s *Service) ChangePassword(email, current, next string) Result {
	if strings.TrimSpace(email) == "" || current == "" || next == "" {
		return failure(ErrInvalidInput, "all fields are required")
	}
	if len(next) < 6 {
		return failure(ErrInvalidInput, "password must be at least 6 characters")
	}

	accounts := s.loadAccounts()
	email = normalizeEmail(email)
	for i, account := range accounts {
		if normalizeEmail(account.Email) != email {
			continue
		}
		if err := VerifyPassword(account.PasswordHash, current); err != nil {
			return failure(ErrBadCredentials, "incorrect password")
		}
		hash, err := HashPassword(next, s.bcryptCost)
		if err != nil {
			s.log.Error("password hashing failed", zap.Error(err))
			return failure(nil, "could not update the password, try again")
		}
		accounts[i].PasswordHash = hash
		if !s.store.Set(store.KeyAccounts, accounts) {
			return failure(nil, "could not save the account, try again")
		}
		sanitized := accounts[i].sanitized()
		return Result{OK: true, User: &sanitized}
	}
	return failure(ErrNotFound, "account not found")
}

// Logout clears the session entry only; registered accounts remain.
func (s *Service) Logout() {
	s.store.Remove(store.KeySession)
}

// CurrentUser returns the persisted session's account, credential stripped,
// or nil when there is no valid session. Any read, decode, or token failure
// reads as "not logged in".
func (s *Service) CurrentUser() *Account {
	var sess session
	if !s.store.Get(store.KeySession, &sess) {
		return nil
	}
	if sess.User.ID == "" {
		return nil
	}
	if err := verifySessionToken(s.secret, sess.Token, sess.User.ID, s.now()); err != nil {
		s.log.Warn("stored session rejected", zap.String("account_id", sess.User.ID))
		s.store.Remove(store.KeySession)
		return nil
	}
	account := sess.User.sanitized()
	return &account
}

func (s *Service) establishSession(account Account) error {
	token, err := signSessionToken(s.secret, account.ID, s.sessionTTL, s.now())
	if err != nil {
		return err
	}
	if !s.store.Set(store.KeySession, session{Token: token, User: account.sanitized()}) {
		return errors.New("session record not persisted")
	}
	return nil
}

// loadAccounts restores the registered-accounts collection, defaulting to
// empty when missing or corrupt.
func (s *Service) loadAccounts() []Account {
	var accounts []Account
	s.store.Get(store.KeyAccounts, &accounts)
	return accounts
}
