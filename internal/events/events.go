// Package events provides an event system for run progress notifications.
package events

import "time"

// EventType represents the type of event
type EventType string

const (
	// EventRunStarted is emitted when a run begins
	EventRunStarted EventType = "run_started"
	// EventSliceCompleted is emitted when a slice job finishes
	EventSliceCompleted EventType = "slice_completed"
	// EventRunCompleted is emitted when a run finishes
	EventRunCompleted EventType = "run_completed"
	// EventRunFailed is emitted when a run aborts with an error
	EventRunFailed EventType = "run_failed"
)

// Event represents a run progress event
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	RunID     string    `json:"run_id"`
	Data      EventData `json:"data,omitempty"`
}

// EventData contains event-specific data
type EventData struct {
	Max         uint64 `json:"max,omitempty"`
	Workers     int    `json:"workers,omitempty"`
	Slice       int    `json:"slice,omitempty"`
	Slices      int    `json:"slices,omitempty"`
	Percent     int    `json:"percent,omitempty"`
	SlicePrimes uint64 `json:"slice_primes,omitempty"`
	TotalPrimes uint64 `json:"total_primes,omitempty"`
	LastPrime   uint64 `json:"last_prime,omitempty"`
	Error       string `json:"error,omitempty"`
}

// NewRunStartedEvent creates a run started event
func NewRunStartedEvent(runID string, max uint64, workers, slices int) Event {
	return Event{
		Type:      EventRunStarted,
		Timestamp: time.Now(),
		RunID:     runID,
		Data: EventData{
			Max:     max,
			Workers: workers,
			Slices:  slices,
		},
	}
}

// NewSliceCompletedEvent creates a slice completed event
func NewSliceCompletedEvent(runID string, slice, slices int, slicePrimes uint64) Event {
	percent := 0
	if slices > 0 {
		percent = (slice*100 + slices/2) / slices
	}
	return Event{
		Type:      EventSliceCompleted,
		Timestamp: time.Now(),
		RunID:     runID,
		Data: EventData{
			Slice:       slice,
			Slices:      slices,
			Percent:     percent,
			SlicePrimes: slicePrimes,
		},
	}
}

// NewRunCompletedEvent creates a run completed event
func NewRunCompletedEvent(runID string, totalPrimes, lastPrime uint64) Event {
	return Event{
		Type:      EventRunCompleted,
		Timestamp: time.Now(),
		RunID:     runID,
		Data: EventData{
			TotalPrimes: totalPrimes,
			LastPrime:   lastPrime,
		},
	}
}

// NewRunFailedEvent creates a run failed event
func NewRunFailedEvent(runID string, err error) Event {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	return Event{
		Type:      EventRunFailed,
		Timestamp: time.Now(),
		RunID:     runID,
		Data: EventData{
			Error: errMsg,
		},
	}
}
