package contract

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Event kinds emitted by the core. The surrounding pipeline subscribes through
// Sink; the core never sees the pipeline's own message types.
const (
	EventToolInvoked      = "tool.invoked"
	EventOrderPlaced      = "order.placed"
	EventCheckinCompleted = "checkin.completed"
	EventLeadQualified    = "lead.qualified"
	EventCaseUpdated      = "case.updated"
	EventSessionReset     = "session.reset"
)

type Event struct {
	Kind      string         `json:"kind"`
	SessionID string         `json:"session_id,omitempty"`
	Payload   map[string]any `json:"payload,omitempty"`
	At        time.Time      `json:"at"`
}

// Sink receives core events. Implementations must not block for long; a slow
// sink stalls the tool call that emitted the event.
type Sink interface {
	Emit(ctx context.Context, ev Event)
}

// Sinks fans out to every member sink in order.
type Sinks []Sink

func (s Sinks) Emit(ctx context.Context, ev Event) {
	for _, sink := range s {
		if sink != nil {
			sink.Emit(ctx, ev)
		}
	}
}

// NopSink discards events.
type NopSink struct{}

func (NopSink) Emit(context.Context, Event) {}

// LogSink writes events to the global zerolog logger.
type LogSink struct{}

func (LogSink) Emit(_ context.Context, ev Event) {
	log.Info().
		Str("kind", ev.Kind).
		Str("session_id", ev.SessionID).
		Interface("payload", ev.Payload).
		Msg("core event")
}
