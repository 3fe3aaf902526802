package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/kritsw/attendant/agent/contract"
)

// Registry holds the tool set of one assistant and dispatches calls against
// it. Calls for the same session run strictly one at a time; the registry
// performs no internal parallelism.
type Registry struct {
	sessionID string
	specs     []Spec
	byName    map[string]*Spec
	sink      contractx.Sink
	now       func() time.Time
}

func NewRegistry(sessionID string, sink contractx.Sink, specs []Spec) *Registry {
	if sink == nil {
		sink = contractx.NopSink{}
	}
	r := &Registry{
		sessionID: sessionID,
		specs:     specs,
		byName:    make(map[string]*Spec, len(specs)),
		sink:      sink,
		now:       time.Now,
	}
	for i := range specs {
		r.byName[specs[i].Name] = &specs[i]
	}
	return r
}

// Specs returns the declared tools in registration order.
func (r *Registry) Specs() []Spec {
	return r.specs
}

// Dispatch validates arguments and executes one tool synchronously to
// completion. Every failure mode comes back as conversational text; Dispatch
// never returns an error to the caller.
func (r *Registry) Dispatch(ctx context.Context, name string, raw map[string]any) string {
	spec, ok := r.byName[name]
	if !ok {
		return fmt.Sprintf("I don't have an action called %s.", name)
	}

	args := make(Args, len(spec.Args))
	var missing []string
	var malformed []string
	for _, arg := range spec.Args {
		value, present := raw[arg.Name]
		if !present || value == nil {
			if arg.Required {
				missing = append(missing, arg.Name)
				continue
			}
			if arg.Default != nil {
				args[arg.Name] = arg.Default
			}
			continue
		}
		coerced, ok := coerce(arg.Type, value)
		if !ok {
			malformed = append(malformed, arg.Name)
			continue
		}
		args[arg.Name] = coerced
	}
	if len(missing) > 0 {
		return fmt.Sprintf("I'm missing some information for %s: %s.", name, strings.Join(missing, ", "))
	}
	if len(malformed) > 0 {
		return fmt.Sprintf("I couldn't understand these values for %s: %s.", name, strings.Join(malformed, ", "))
	}

	r.sink.Emit(ctx, contractx.Event{
		Kind:      contractx.EventToolInvoked,
		SessionID: r.sessionID,
		Payload:   map[string]any{"tool": name},
		At:        r.now().UTC(),
	})

	text, err := spec.Handler(ctx, args)
	if err != nil {
		return r.errorText(name, err)
	}
	return text
}

// errorText converts handler errors into speech-safe text. Handlers format
// their own precondition and lookup messages; only unexpected and persistence
// failures reach this path.
func (r *Registry) errorText(name string, err error) string {
	log.Error().Err(err).Str("tool", name).Str("session_id", r.sessionID).Msg("tool handler failed")
	switch {
	case errors.Is(err, contractx.ErrPersistence):
		return "I hit a problem saving that just now. Please try again in a moment."
	case errors.Is(err, contractx.ErrNotFound):
		return "I couldn't find what you were looking for."
	case errors.Is(err, contractx.ErrValidation):
		return "Something about that request didn't look right. Could you rephrase it?"
	default:
		return "Sorry, something went wrong handling that. Let's try again."
	}
}
