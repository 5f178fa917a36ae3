package model

import (
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/nao1215/threadodds/internal/odds"
	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewID returns a sortable unique identifier for a run started at t.
func NewID(t time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// ResultRow is one ranked keyword group.
type ResultRow struct {
	// Keyword is the display name of the group.
	Keyword string `json:"keyword"`

	// Count is the number of posts mentioning the group.
	Count int `json:"count"`

	// Odds is the payout multiplier, null when nobody mentioned the group.
	Odds odds.Odds `json:"odds"`

	// OddsDisplay is Odds formatted for people.
	OddsDisplay string `json:"odds_display"`

	// Probability is the share of all mentions.
	Probability float64 `json:"probability"`

	// ProbabilityDisplay is Probability as a percentage.
	ProbabilityDisplay string `json:"probability_display"`

	// Synonyms are the keywords that were matched.
	Synonyms []string `json:"synonyms"`
}

// Summary aggregates a run.
type Summary struct {
	// TotalCount is the sum of all group counts.
	TotalCount int `json:"total_count"`

	// PostCount is the number of posts analysed.
	PostCount int `json:"post_count"`

	// PayoutRate is the fraction of the pool paid back.
	PayoutRate float64 `json:"payout_rate"`

	// KeywordCount is the number of keyword groups.
	KeywordCount int `json:"keyword_count"`

	// ThreadCount is the number of threads requested.
	ThreadCount int `json:"thread_count"`

	// SuccessCount is the number of threads that yielded posts.
	SuccessCount int `json:"success_count"`
}

// PayoutRateDisplay formats the payout rate as a whole percentage.
func (s Summary) PayoutRateDisplay() string {
	return fmt.Sprintf("%.0f%%", s.PayoutRate*100)
}

// AnalysisReport is the result of a run.
type AnalysisReport struct {
	// ID identifies the run.
	ID string `json:"id"`

	// GeneratedAt is when the report was built.
	GeneratedAt time.Time `json:"generated_at"`

	// Results are ranked from favourite to long shot.
	Results []ResultRow `json:"results"`

	// Summary holds the totals.
	Summary Summary `json:"summary"`

	// Threads holds one report per requested thread, in request order.
	Threads []*ThreadReport `json:"threads"`
}

// NewAnalysisReport builds a report from the thread outcomes and the
// ranked odds.
func NewAnalysisReport(threads []*ThreadReport, result *odds.Result) *AnalysisReport {
	now := time.Now()

	rows := make([]ResultRow, len(result.Entries))
	for i, e := range result.Entries {
		rows[i] = ResultRow{
			Keyword:            e.Group.DisplayName,
			Count:              e.Count,
			Odds:               e.Odds,
			OddsDisplay:        e.OddsDisplay(),
			Probability:        e.Probability,
			ProbabilityDisplay: e.ProbabilityDisplay(),
			Synonyms:           e.Group.Synonyms,
		}
	}

	success := 0
	for _, t := range threads {
		if t.Succeeded() {
			success++
		}
	}

	return &AnalysisReport{
		ID:          NewID(now),
		GeneratedAt: now,
		Results:     rows,
		Summary: Summary{
			TotalCount:   result.TotalCount,
			PostCount:    result.PostCount,
			PayoutRate:   result.PayoutRate,
			KeywordCount: len(result.Entries),
			ThreadCount:  len(threads),
			SuccessCount: success,
		},
		Threads: threads,
	}
}

// FailedThreads returns the threads that could not be used.
func (r *AnalysisReport) FailedThreads() []*ThreadReport {
	var failed []*ThreadReport
	for _, t := range r.Threads {
		if !t.Succeeded() {
			failed = append(failed, t)
		}
	}
	return failed
}
