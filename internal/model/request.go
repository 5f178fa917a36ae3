package model

import (
	"fmt"
	"strconv"
	"strings"
)

// RangeSeparator separates start and end in a post range.
const RangeSeparator = "-"

// ThreadRequest asks for the posts of one thread, optionally limited to a
// 1-based inclusive range.
type ThreadRequest struct {
	// Reference is the thread URL as given by the user.
	Reference string `json:"url"`

	// Start is the first post to use, at least 1.
	Start int `json:"start"`

	// End is the last post to use. Zero means the last post of the thread.
	End int `json:"end,omitempty"`
}

// NewThreadRequest returns a request for every post of the thread.
func NewThreadRequest(reference string) ThreadRequest {
	return ThreadRequest{Reference: reference, Start: 1}
}

// ParseThreadRequest parses a line of the form "URL [start|start-end]".
// Range parts that are not numbers are ignored. A start below 1 becomes 1
// and an end before the start is dropped. It returns false for blank lines.
func ParseThreadRequest(line string) (ThreadRequest, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ThreadRequest{}, false
	}

	req := NewThreadRequest(fields[0])
	if len(fields) > 1 {
		req.Start, req.End = parseRange(fields[1])
	}

	if req.Start < 1 {
		req.Start = 1
	}
	if req.End != 0 && req.End < req.Start {
		req.End = 0
	}
	return req, true
}

// ParseThreadRequests parses one request per non-blank line.
func ParseThreadRequests(text string) []ThreadRequest {
	var reqs []ThreadRequest
	for line := range strings.Lines(text) {
		if req, ok := ParseThreadRequest(line); ok {
			reqs = append(reqs, req)
		}
	}
	return reqs
}

// parseRange parses "start", "start-", "-end" or "start-end". Parsing stops
// at the first part that is not a number, keeping what was parsed so far.
func parseRange(s string) (start, end int) {
	start = 1

	first, rest, hasEnd := strings.Cut(s, RangeSeparator)
	if first != "" {
		n, err := strconv.Atoi(first)
		if err != nil {
			return 1, 0
		}
		start = n
	}
	if !hasEnd {
		return start, 0
	}

	last, _, _ := strings.Cut(rest, RangeSeparator)
	if last == "" {
		return start, 0
	}
	n, err := strconv.Atoi(last)
	if err != nil {
		return start, 0
	}
	return start, n
}

// Bounds returns the slice indices selecting the requested posts out of
// total posts. The result is always within [0, total].
func (r ThreadRequest) Bounds(total int) (lo, hi int) {
	lo = max(r.Start-1, 0)
	hi = total
	if r.End > 0 {
		hi = min(r.End, total)
	}
	lo = min(lo, total)
	if lo > hi {
		lo = hi
	}
	return lo, hi
}

// RangeLabel formats the requested range as "start-end", using total when
// no end was given.
func (r ThreadRequest) RangeLabel(total int) string {
	end := r.End
	if end == 0 {
		end = total
	}
	return fmt.Sprintf("%d-%d", r.Start, end)
}

// String returns the request in the line format accepted by
// ParseThreadRequest.
func (r ThreadRequest) String() string {
	switch {
	case r.End > 0:
		return fmt.Sprintf("%s %d-%d", r.Reference, r.Start, r.End)
	case r.Start > 1:
		return fmt.Sprintf("%s %d", r.Reference, r.Start)
	default:
		return r.Reference
	}
}
