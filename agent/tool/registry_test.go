package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	contractx "github.com/kritsw/attendant/agent/contract"
)

type captureSink struct {
	events []contractx.Event
}

func (s *captureSink) Emit(_ context.Context, ev contractx.Event) {
	s.events = append(s.events, ev)
}

func echoSpec() Spec {
	return Spec{
		Name: "add_to_cart",
		Desc: "Add an item to the cart.",
		Args: []Arg{
			{Name: "item_name", Desc: "item to add", Type: TypeString, Required: true},
			{Name: "quantity", Desc: "how many", Type: TypeInt, Default: 1},
			{Name: "notes", Desc: "preferences", Type: TypeString, Default: ""},
		},
		Handler: func(_ context.Context, args Args) (string, error) {
			return fmt.Sprintf("%s x%d [%s]", args.String("item_name"), args.Int("quantity"), args.String("notes")), nil
		},
	}
}

func TestDispatchUnknownTool(t *testing.T) {
	t.Parallel()

	r := NewRegistry("s1", nil, []Spec{echoSpec()})
	got := r.Dispatch(context.Background(), "launch_rocket", nil)
	if !strings.Contains(got, "launch_rocket") {
		t.Fatalf("unknown-tool text = %q, want tool name mentioned", got)
	}
}

func TestDispatchMissingRequired(t *testing.T) {
	t.Parallel()

	sink := &captureSink{}
	r := NewRegistry("s1", sink, []Spec{echoSpec()})

	got := r.Dispatch(context.Background(), "add_to_cart", map[string]any{"quantity": 2})
	if !strings.Contains(got, "item_name") {
		t.Fatalf("missing-arg text = %q, want item_name named", got)
	}
	if len(sink.events) != 0 {
		t.Fatal("rejected call must not emit events")
	}
}

func TestDispatchAppliesDefaults(t *testing.T) {
	t.Parallel()

	r := NewRegistry("s1", nil, []Spec{echoSpec()})
	got := r.Dispatch(context.Background(), "add_to_cart", map[string]any{"item_name": "milk"})
	if got != "milk x1 []" {
		t.Fatalf("dispatch = %q, want defaults applied", got)
	}
}

func TestDispatchCoercion(t *testing.T) {
	t.Parallel()

	r := NewRegistry("s1", nil, []Spec{echoSpec()})

	// JSON numbers arrive as float64; stringified ints are accepted too.
	cases := []struct {
		name string
		raw  map[string]any
		want string
	}{
		{"json number", map[string]any{"item_name": "milk", "quantity": float64(3)}, "milk x3 []"},
		{"stringified int", map[string]any{"item_name": "milk", "quantity": "4"}, "milk x4 []"},
	}
	for _, tc := range cases {
		if got := r.Dispatch(context.Background(), "add_to_cart", tc.raw); got != tc.want {
			t.Fatalf("%s: dispatch = %q, want %q", tc.name, got, tc.want)
		}
	}

	got := r.Dispatch(context.Background(), "add_to_cart", map[string]any{"item_name": "milk", "quantity": "lots"})
	if !strings.Contains(got, "quantity") {
		t.Fatalf("malformed-arg text = %q, want quantity named", got)
	}
}

func TestDispatchEmitsToolInvoked(t *testing.T) {
	t.Parallel()

	sink := &captureSink{}
	r := NewRegistry("s42", sink, []Spec{echoSpec()})
	r.Dispatch(context.Background(), "add_to_cart", map[string]any{"item_name": "milk"})

	if len(sink.events) != 1 {
		t.Fatalf("events = %d, want 1", len(sink.events))
	}
	ev := sink.events[0]
	if ev.Kind != contractx.EventToolInvoked || ev.SessionID != "s42" {
		t.Fatalf("event = %+v", ev)
	}
	if ev.Payload["tool"] != "add_to_cart" {
		t.Fatalf("event payload = %v", ev.Payload)
	}
}

func TestDispatchErrorText(t *testing.T) {
	t.Parallel()

	failing := func(err error) Spec {
		return Spec{
			Name: "fail",
			Handler: func(context.Context, Args) (string, error) {
				return "", err
			},
		}
	}

	cases := []struct {
		name string
		err  error
		want string
	}{
		{"persistence", fmt.Errorf("%w: disk full", contractx.ErrPersistence), "saving"},
		{"not found", fmt.Errorf("%w: nothing", contractx.ErrNotFound), "couldn't find"},
		{"validation", fmt.Errorf("%w: bad", contractx.ErrValidation), "rephrase"},
		{"generic", errors.New("boom"), "something went wrong"},
	}
	for _, tc := range cases {
		r := NewRegistry("s1", nil, []Spec{failing(tc.err)})
		got := r.Dispatch(context.Background(), "fail", nil)
		if !strings.Contains(got, tc.want) {
			t.Fatalf("%s: dispatch = %q, want substring %q", tc.name, got, tc.want)
		}
		if strings.Contains(got, tc.err.Error()) {
			t.Fatalf("%s: raw error leaked into speech text: %q", tc.name, got)
		}
	}
}
