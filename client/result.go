package client

import (
	"time"

	"github.com/google/uuid"
)

// RequestInfo identifies a single call. The ID correlates log lines
// and trace spans belonging to the same request.
type RequestInfo struct {
	ID     string
	Method string
	URL    string
}

// Result wraps a single call's successfully decoded outcome. A Result
// is only ever returned once the full pipeline succeeded; failed calls
// propagate an error instead.
type Result[T any] struct {
	Request     RequestInfo
	InitiatedAt time.Time
	CompletedAt time.Time
	Duration    time.Duration
	Data        T
}

// newResult captures the request identity and start time.
func newResult[T any](method, url string) *Result[T] {
	return &Result[T]{
		Request: RequestInfo{
			ID:     uuid.New().String(),
			Method: method,
			URL:    url,
		},
		InitiatedAt: time.Now().UTC(),
	}
}

// applyData records the decoded value and completion timing. It runs
// at most once per Result, on the success path only.
func (r *Result[T]) applyData(v T) {
	r.Data = v
	r.CompletedAt = time.Now().UTC()
	r.Duration = r.CompletedAt.Sub(r.InitiatedAt)
}
