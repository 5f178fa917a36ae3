package odds

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/nao1215/threadodds/internal/keyword"
)

// Entry is the priced result for one keyword group.
type Entry struct {
	// Group is the keyword group.
	Group keyword.Group

	// Count is the number of posts mentioning the group.
	Count int

	// Odds is the payout multiplier.
	Odds Odds

	// Probability is Count divided by the total of all counts.
	Probability float64

	// Order is the position of the group in the input, used to break ties.
	Order int
}

// OddsDisplay formats the odds for output.
func (e Entry) OddsDisplay() string {
	return e.Odds.String()
}

// ProbabilityDisplay formats the probability as a percentage with one decimal.
func (e Entry) ProbabilityDisplay() string {
	return fmt.Sprintf("%.1f%%", e.Probability*100)
}

// Result is a ranked set of entries.
type Result struct {
	// Entries are ranked from shortest to longest odds.
	Entries []Entry

	// TotalCount is the sum of all group counts.
	TotalCount int

	// PostCount is the number of posts analysed.
	PostCount int

	// PayoutRate is the fraction of the pool paid back.
	PayoutRate float64
}

// TotalCount sums the counts.
func TotalCount(counts []keyword.Count) int {
	total := 0
	for _, c := range counts {
		total += c.Posts
	}
	return total
}

// Calculate prices each count in input order. The payout rate is used as
// given.
func Calculate(counts []keyword.Count, payoutRate float64) []Entry {
	total := TotalCount(counts)

	entries := make([]Entry, len(counts))
	for i, c := range counts {
		e := Entry{
			Group: c.Group,
			Count: c.Posts,
			Odds:  Undefined(),
			Order: i,
		}
		if c.Posts > 0 {
			raw := float64(total) * payoutRate / float64(c.Posts)
			e.Odds = Defined(max(raw, MinOdds))
			e.Probability = float64(c.Posts) / float64(total)
		}
		entries[i] = e
	}
	return entries
}

// Rank sorts entries by ascending odds with undefined odds last. Equal odds
// keep input order.
func Rank(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		if c := compare(a.Odds, b.Odds); c != 0 {
			return c
		}
		return cmp.Compare(a.Order, b.Order)
	})
}

// Analyze groups specs, counts mentions in posts and returns the ranked
// result.
func Analyze(posts []string, specs []string, payoutRate float64) (*Result, error) {
	groups := keyword.ParseGroups(specs)

	counts, err := keyword.CountPosts(posts, groups)
	if err != nil {
		return nil, err
	}

	entries := Calculate(counts, payoutRate)
	Rank(entries)

	return &Result{
		Entries:    entries,
		TotalCount: TotalCount(counts),
		PostCount:  len(posts),
		PayoutRate: payoutRate,
	}, nil
}
