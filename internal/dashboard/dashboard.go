// Package dashboard derives aggregate metrics from a user's audit
// collection. It is a read-only projection: recompute it after every change,
// it never mutates a stored record.
package dashboard

import (
	"time"

	"gemba.tools/internal/audit"
	"gemba.tools/internal/ids"
	"gemba.tools/internal/scoring"
)

// Metrics is the dashboard projection over one user's audits. Score-derived
// figures consider completed audits only.
type Metrics struct {
	TotalAudits int
	Drafts      int
	Completed   int
	Approved    int

	// AverageScore is the mean percentage score of completed audits (0-100).
	AverageScore float64
	// CriticalIssues counts completed audits below 60%.
	CriticalIssues int
	// ExcellentAudits counts completed audits at or above 80%.
	ExcellentAudits int
	// ComplianceRate is the share of completed audits at or above 70%, 0-100.
	ComplianceRate float64
	// ImprovementTrend is the signed percent change of the last calendar
	// month's mean percentage score against the month before, 0 when the
	// prior month has no completed audits.
	ImprovementTrend float64
	// LastMonthAudits counts completed audits dated within the last month window.
	LastMonthAudits int
	// ByCategory is the mean 0-5 score per pillar across the responses of
	// all completed audits.
	ByCategory map[audit.Category]float64
}

// Compute builds the projection. now anchors the trend windows; pass
// time.Now() outside tests.
func Compute(audits []audit.Audit, now time.Time) Metrics {
	m := Metrics{
		TotalAudits: len(audits),
		ByCategory:  make(map[audit.Category]float64, len(audit.Categories)),
	}

	var completed []audit.Audit
	for _, a := range audits {
		switch a.Status {
		case audit.StatusDraft:
			m.Drafts++
		case audit.StatusCompleted:
			m.Completed++
			completed = append(completed, a)
		case audit.StatusApproved:
			m.Approved++
		}
	}

	if len(completed) > 0 {
		sum := 0.0
		compliant := 0
		for _, a := range completed {
			sum += a.PercentageScore
			if a.PercentageScore < 60 {
				m.CriticalIssues++
			}
			if a.PercentageScore >= 80 {
				m.ExcellentAudits++
			}
			if a.PercentageScore >= 70 {
				compliant++
			}
		}
		m.AverageScore = sum / float64(len(completed))
		m.ComplianceRate = float64(compliant) / float64(len(completed)) * 100
	}

	m.ImprovementTrend, m.LastMonthAudits = trend(completed, now)

	var pooled []audit.Response
	for _, a := range completed {
		pooled = append(pooled, a.Responses...)
	}
	for _, c := range audit.Categories {
		m.ByCategory[c] = scoring.CategoryScore(pooled, c)
	}
	return m
}

// trend compares the mean percentage score of completed audits dated within
// the last calendar month against the month before. Windows follow the
// calendar: [first day of previous month, now] and the month before that.
// An audit whose Date does not parse falls back to the creation time its id
// carries; an id minted elsewhere reads as the zero time and is skipped.
func trend(completed []audit.Audit, now time.Time) (float64, int) {
	lastMonthStart := time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, now.Location())
	previousMonthStart := time.Date(now.Year(), now.Month()-2, 1, 0, 0, 0, 0, now.Location())

	lastSum, lastN := 0.0, 0
	prevSum, prevN := 0.0, 0
	for _, a := range completed {
		date, err := time.ParseInLocation("2006-01-02", a.Date, now.Location())
		if err != nil {
			created := ids.Time(a.ID)
			if created.IsZero() {
				continue
			}
			date = created.In(now.Location())
		}
		switch {
		case !date.Before(lastMonthStart) && !date.After(now):
			lastSum += a.PercentageScore
			lastN++
		case !date.Before(previousMonthStart) && date.Before(lastMonthStart):
			prevSum += a.PercentageScore
			prevN++
		}
	}

	if prevN == 0 {
		return 0, lastN
	}
	lastAvg := 0.0
	if lastN > 0 {
		lastAvg = lastSum / float64(lastN)
	}
	prevAvg := prevSum / float64(prevN)
	return (lastAvg - prevAvg) / prevAvg * 100, lastN
}
