// Package memory is the persistent-memory collaborator: a read-only
// summary at session start and one structured event write at session
// end. All cross-session state lives here; the orchestration core keeps
// none.
package memory

import (
	"context"
	"fmt"
)

// EventType classifies a memory event.
type EventType string

const (
	EventFact         EventType = "fact"
	EventPreference   EventType = "preference"
	EventEvent        EventType = "event"
	EventInsight      EventType = "insight"
	EventTask         EventType = "task"
	EventRelationship EventType = "relationship"
)

// Valid reports whether t is a known event type.
func (t EventType) Valid() bool {
	switch t {
	case EventFact, EventPreference, EventEvent, EventInsight, EventTask, EventRelationship:
		return true
	}
	return false
}

// Store is the collaborator contract. ReadSummary is best-effort and
// may return an empty summary; WriteEvent persists one structured
// event. Implementations must serialize concurrent writers.
type Store interface {
	ReadSummary(ctx context.Context) (string, error)
	WriteEvent(ctx context.Context, content string, typ EventType, importance int) error
}

// NopStore discards writes and returns an empty summary. Used for
// dry runs so the session controller's exactly-one-write contract holds
// without persisting anything.
type NopStore struct{}

func (NopStore) ReadSummary(context.Context) (string, error) {
	return "", nil
}

func (NopStore) WriteEvent(_ context.Context, _ string, typ EventType, _ int) error {
	if !typ.Valid() {
		return fmt.Errorf("invalid event type %q", typ)
	}
	return nil
}
