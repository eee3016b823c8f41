package domain

import (
	"time"

	"github.com/google/uuid"
)

// ItemOutcome records what happened to one iteration of a batch.
type ItemOutcome struct {
	Index         int
	OpportunityID uuid.UUID
	Style         string
	Video         *Video
	Err           error
	Skipped       bool // no opportunity available in the pool
	Cancelled     bool
}

func (o ItemOutcome) Succeeded() bool {
	return o.Video != nil && o.Err == nil
}

// BatchResult holds per-item outcomes of a single batch run.
type BatchResult struct {
	Platform    string
	IsAffiliate bool
	Requested   int
	Items       []ItemOutcome
	StartedAt   time.Time
	Duration    time.Duration
}

func (r *BatchResult) Succeeded() int {
	n := 0
	for _, item := range r.Items {
		if item.Succeeded() {
			n++
		}
	}
	return n
}

func (r *BatchResult) Failed() int {
	n := 0
	for _, item := range r.Items {
		if item.Err != nil && !item.Skipped && !item.Cancelled {
			n++
		}
	}
	return n
}

func (r *BatchResult) Skipped() int {
	n := 0
	for _, item := range r.Items {
		if item.Skipped {
			n++
		}
	}
	return n
}
