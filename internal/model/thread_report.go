package model

import (
	"time"

	"github.com/nao1215/threadodds/internal/extract"
)

// ThreadStatus is the outcome of processing one thread.
type ThreadStatus string

const (
	// StatusPending means the thread has not been processed yet.
	StatusPending ThreadStatus = "pending"
	// StatusSuccess means posts were retrieved.
	StatusSuccess ThreadStatus = "success"
	// StatusError means the thread was skipped because of an error.
	StatusError ThreadStatus = "error"
)

// ThreadReport records what happened to one requested thread.
type ThreadReport struct {
	// Request is the thread and range that was asked for.
	Request ThreadRequest `json:"request"`

	// URL is the canonical thread address, or the reference when it could
	// not be resolved.
	URL string `json:"url"`

	// Status is the outcome.
	Status ThreadStatus `json:"status"`

	// Source is the format the posts came from ("dat" or "html").
	Source string `json:"source,omitempty"`

	// Lossy is true when undecodable bytes were replaced.
	Lossy bool `json:"lossy,omitempty"`

	// PostCount is the number of posts used after applying the range.
	PostCount int `json:"post_count"`

	// TotalPosts is the number of posts in the thread.
	TotalPosts int `json:"total_posts"`

	// Range is the applied range as "start-end".
	Range string `json:"range,omitempty"`

	// Posts is every post of the thread.
	Posts []extract.Post `json:"-"`

	// Selected is the part of Posts inside the range.
	Selected []extract.Post `json:"-"`

	// Elapsed is the time spent on the thread.
	Elapsed time.Duration `json:"elapsed_ns"`

	// Error is the failure, if any.
	Error error `json:"-"`

	// ErrorMessage is Error as text for serialization.
	ErrorMessage string `json:"error,omitempty"` //nolint:tagliatelle // error is conventional
}

// NewThreadReport returns a pending report for req.
func NewThreadReport(req ThreadRequest) *ThreadReport {
	return &ThreadReport{
		Request: req,
		URL:     req.Reference,
		Status:  StatusPending,
	}
}

// Fail marks the report as failed with err.
func (r *ThreadReport) Fail(err error) {
	r.Status = StatusError
	r.Error = err
	r.ErrorMessage = err.Error()
	r.PostCount = 0
	r.Selected = nil
}

// Succeeded reports whether posts were retrieved.
func (r *ThreadReport) Succeeded() bool {
	return r.Status == StatusSuccess
}

// Bodies returns the text of the selected posts.
func (r *ThreadReport) Bodies() []string {
	return extract.Bodies(r.Selected)
}
