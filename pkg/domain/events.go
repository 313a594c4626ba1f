package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventSelect  EventType = "select"
	EventRebuild EventType = "rebuild"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Workspace string    `json:"workspace,omitempty"`
}

// SelectEvent reports a computed selection.
type SelectEvent struct {
	EventBase
	Mode     SelectionMode `json:"mode"`
	Added    int           `json:"added"`
	Removed  int           `json:"removed"`
	Selected int           `json:"selected"` // top-level members of the result
	Leaves   int           `json:"leaves"`   // flattened leaves of the result
	Err      error         `json:"-"`
}

// RebuildEvent reports a layer list being (re)loaded into the engine.
type RebuildEvent struct {
	EventBase
	Layers int      `json:"layers"`
	Groups int      `json:"groups"`
	Pruned []string `json:"pruned,omitempty"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnSelect  func(context.Context, *SelectEvent)
	OnRebuild func(context.Context, *RebuildEvent)
}
