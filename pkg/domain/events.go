package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventExpand EventType = "expand"
	EventSample EventType = "sample"
	EventError  EventType = "error"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Grammar   string    `json:"grammar"`
}

// ExpandEvent is fired each time a nonterminal site is rewritten.
type ExpandEvent struct {
	EventBase
	Symbol Label `json:"symbol"`
	Option int   `json:"option"`
	Step   int   `json:"step"`
}

// SampleEvent is fired once a tree has been generated and scored.
type SampleEvent struct {
	EventBase
	SampleID string        `json:"sample_id"`
	Size     int           `json:"size"`
	Depth    int           `json:"depth"`
	Score    float64       `json:"score"`
	Duration time.Duration `json:"duration"`
}

// ErrorEvent is fired when generation or scoring fails.
type ErrorEvent struct {
	EventBase
	Err error `json:"-"`
}

// Hooks defines callbacks for oracle observability.
// Expansion hooks fire on the generating goroutine; they must be safe for
// concurrent use when batches run in parallel.
type Hooks struct {
	OnExpand func(context.Context, *ExpandEvent)
	OnSample func(context.Context, *SampleEvent)
	OnError  func(context.Context, *ErrorEvent)
}
