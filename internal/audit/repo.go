package audit

import (
	"context"
	"time"

	"go.uber.org/zap"

	"gemba.tools/internal/auth"
	"gemba.tools/internal/ids"
	"gemba.tools/internal/obs"
	"gemba.tools/internal/store"
)

// CreateInput carries the caller-supplied fields of a new audit. Owner
// identity comes from the context, never from the input.
type CreateInput struct {
	Title           string
	Area            string
	Date            string
	Status          Status
	Responses       []Response
	Recommendations []string
}

// UpdateInput is a partial audit: nil fields are left untouched.
type UpdateInput struct {
	Title           *string
	Area            *string
	Date            *string
	Status          *Status
	Responses       *[]Response
	Recommendations *[]string
}

// Repository maintains the persisted audit collection. All mutation goes
// through the same adapter, so within one process reads always observe the
// most recent write.
type Repository struct {
	store *store.Adapter
	now   func() time.Time
	log   *zap.Logger
}

// RepositoryOption configures Repository behavior.
type RepositoryOption func(*Repository)

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) RepositoryOption {
	return func(r *Repository) {
		if fn != nil {
			r.now = fn
		}
	}
}

// WithLogger overrides the diagnostic logger.
func WithLogger(l *zap.Logger) RepositoryOption {
	return func(r *Repository) {
		if l != nil {
			r.log = l
		}
	}
}

// NewRepository constructs an audit repository over the storage adapter.
func NewRepository(adapter *store.Adapter, opts ...RepositoryOption) *Repository {
	repo := &Repository{
		store: adapter,
		now:   time.Now,
		log:   obs.Logger(),
	}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// Create stamps owner, id, timestamps, and scores, appends the record, and
// returns the new id. Fails without an authenticated account in the context.
func (r *Repository) Create(ctx context.Context, in CreateInput) (string, error) {
	owner, ok := auth.AccountFromContext(ctx)
	if !ok {
		return "", ErrUnauthenticated
	}
	if in.Title == "" || in.Area == "" {
		return "", ErrInvalidInput
	}
	for _, resp := range in.Responses {
		if resp.Score < 0 || resp.Score > 5 {
			return "", ErrInvalidScore
		}
	}

	status := in.Status
	if status == "" {
		status = StatusDraft
	}
	date := in.Date
	now := r.now().UTC()
	if date == "" {
		date = now.Format("2006-01-02")
	}

	record := Audit{
		ID:              ids.NewAt(now),
		Title:           in.Title,
		Area:            in.Area,
		AuditorID:       owner.ID,
		AuditorName:     owner.Name,
		Date:            date,
		Status:          status,
		Responses:       in.Responses,
		MaxScore:        MaxScore,
		Recommendations: in.Recommendations,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	record.recomputeScores()

	audits := r.loadAll()
	audits = append(audits, record)
	if !r.store.Set(store.KeyAudits, audits) {
		r.log.Error("audit collection not persisted", zap.String("audit_id", record.ID))
	}
	obs.AuditsCreated.Inc()
	return record.ID, nil
}

// Update merges the partial into the matching record and refreshes
// UpdatedAt. A blank id is a logged no-op; an unknown id no-ops silently.
func (r *Repository) Update(id string, in UpdateInput) {
	if id == "" {
		r.log.Warn("audit update requested without an id")
		return
	}

	audits := r.loadAll()
	changed := false
	for i := range audits {
		if audits[i].ID != id {
			continue
		}
		if in.Title != nil {
			audits[i].Title = *in.Title
		}
		if in.Area != nil {
			audits[i].Area = *in.Area
		}
		if in.Date != nil {
			audits[i].Date = *in.Date
		}
		if in.Status != nil {
			audits[i].Status = *in.Status
		}
		if in.Responses != nil {
			audits[i].Responses = *in.Responses
			audits[i].recomputeScores()
		}
		if in.Recommendations != nil {
			audits[i].Recommendations = *in.Recommendations
		}
		audits[i].UpdatedAt = r.now().UTC()
		changed = true
		break
	}
	if !changed {
		return
	}
	if !r.store.Set(store.KeyAudits, audits) {
		r.log.Error("audit collection not persisted", zap.String("audit_id", id))
	}
}

// SetStatus moves a record along the draft -> completed -> approved flow.
func (r *Repository) SetStatus(id string, status Status) {
	r.Update(id, UpdateInput{Status: &status})
}

// ByID returns the matching record, or nil when absent.
func (r *Repository) ByID(id string) *Audit {
	if id == "" {
		return nil
	}
	for _, a := range r.loadAll() {
		if a.ID == id {
			return &a
		}
	}
	return nil
}

// ForUser returns only the records owned by the account in the context,
// empty when unauthenticated.
func (r *Repository) ForUser(ctx context.Context) []Audit {
	owner, ok := auth.AccountFromContext(ctx)
	if !ok {
		return nil
	}
	var out []Audit
	for _, a := range r.loadAll() {
		if a.AuditorID == owner.ID {
			out = append(out, a)
		}
	}
	return out
}

// All returns every persisted audit regardless of owner.
func (r *Repository) All() []Audit {
	return r.loadAll()
}

// loadAll restores the collection, dropping entries that fail shape
// validation. A payload that is not a list resets to empty (the adapter
// clears it as corrupt).
func (r *Repository) loadAll() []Audit {
	var raw []Audit
	if !r.store.Get(store.KeyAudits, &raw) {
		return nil
	}
	valid := raw[:0]
	for _, a := range raw {
		if a.ID == "" || a.Title == "" || a.AuditorID == "" {
			r.log.Warn("dropping malformed audit entry", zap.String("audit_id", a.ID))
			continue
		}
		valid = append(valid, a)
	}
	return valid
}

// recomputeScores pins the stored invariants: total is the mean of response
// scores (0 when unanswered) and the percentage is total over the maximum.
func (a *Audit) recomputeScores() {
	a.MaxScore = MaxScore
	if len(a.Responses) == 0 {
		a.TotalScore = 0
		a.PercentageScore = 0
		return
	}
	sum := 0
	for _, resp := range a.Responses {
		sum += resp.Score
	}
	a.TotalScore = float64(sum) / float64(len(a.Responses))
	a.PercentageScore = a.TotalScore / MaxScore * 100
}
