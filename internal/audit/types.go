package audit

import (
	"errors"
	"time"
)

// MaxScore is the top of the per-question scale. Percentages are always
// relative to it.
const MaxScore = 5.0

// Status is the audit lifecycle state. The flow is one-way biased
// (draft -> completed -> approved) but no transition graph is enforced.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusCompleted Status = "completed"
	StatusApproved  Status = "approved"
)

// ParseStatus validates a status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusDraft, StatusCompleted, StatusApproved:
		return Status(s), nil
	}
	return "", errors.New("audit: unknown status " + s)
}

// Response is one answered question: a 0-5 score plus optional free-text
// comment and evidence reference.
type Response struct {
	QuestionID string `json:"questionId"`
	Score      int    `json:"score"`
	Comments   string `json:"comments,omitempty"`
	Evidence   string `json:"evidence,omitempty"`
}

// Audit is the central record: one evaluation of an area against the fixed
// question set, owned by exactly one account.
type Audit struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Area            string     `json:"area"`
	AuditorID       string     `json:"auditorId"`
	AuditorName     string     `json:"auditorName"`
	Date            string     `json:"date"` // ISO calendar date (2006-01-02)
	Status          Status     `json:"status"`
	Responses       []Response `json:"responses"`
	TotalScore      float64    `json:"totalScore"`
	MaxScore        float64    `json:"maxScore"`
	PercentageScore float64    `json:"percentageScore"`
	Recommendations []string   `json:"recommendations"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

var (
	ErrUnauthenticated = errors.New("audit: authentication required")
	ErrInvalidInput    = errors.New("audit: title and area are required")
	ErrInvalidScore    = errors.New("audit: score must be between 0 and 5")
)
