// Package scoring converts per-question responses into category and total
// scores. Everything here is a pure function over the fixed question
// taxonomy; nothing reads or writes storage.
package scoring

import "gemba.tools/internal/audit"

// CategoryScore is the mean score of the answered questions belonging to the
// category, 0 when none are answered. Responses whose question id is not in
// the taxonomy belong to no category and are excluded here.
func CategoryScore(responses []audit.Response, c audit.Category) float64 {
	sum, n := 0, 0
	for _, r := range responses {
		q, ok := audit.QuestionByID(r.QuestionID)
		if !ok || q.Category != c {
			continue
		}
		sum += r.Score
		n++
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// CategoryPercentage maps the category score onto a 0-100 scale.
func CategoryPercentage(responses []audit.Response, c audit.Category) float64 {
	return CategoryScore(responses, c) / audit.MaxScore * 100
}

// TotalScore is the mean across all answered questions, 0 when none are
// answered. Responses with unknown question ids still count here: a stray
// response lowers no category but does move the total, and that inclusion is
// deliberate rather than incidental.
func TotalScore(responses []audit.Response) float64 {
	if len(responses) == 0 {
		return 0
	}
	sum := 0
	for _, r := range responses {
		sum += r.Score
	}
	return float64(sum) / float64(len(responses))
}

// TotalPercentage maps the total score onto a 0-100 scale.
func TotalPercentage(responses []audit.Response) float64 {
	return TotalScore(responses) / audit.MaxScore * 100
}

// StatusLabel classifies a 0-100 percentage. The 60/80 boundaries are the
// behavioral contract; the labels are display strings.
func StatusLabel(totalPercentage float64) string {
	switch {
	case totalPercentage >= 80:
		return "excellent"
	case totalPercentage >= 60:
		return "good"
	default:
		return "needs improvement"
	}
}

// Band is the severity tier used when rendering a single 0-5 score.
type Band string

const (
	BandExcellent  Band = "excellent"  // >= 4.5
	BandGood       Band = "good"       // >= 4.0
	BandAcceptable Band = "acceptable" // >= 3.5
	BandCritical   Band = "critical"   // > 0
	BandUnanswered Band = "unanswered" // 0
)

// BandFor buckets a 0-5 score into its severity tier.
func BandFor(score float64) Band {
	switch {
	case score >= 4.5:
		return BandExcellent
	case score >= 4.0:
		return BandGood
	case score >= 3.5:
		return BandAcceptable
	case score > 0:
		return BandCritical
	default:
		return BandUnanswered
	}
}
