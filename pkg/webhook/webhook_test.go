package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	contractx "github.com/kritsw/attendant/agent/contract"
)

func TestNewPublisherValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewPublisher(Config{URL: ""}); err == nil {
		t.Fatal("empty url must be rejected")
	}
	if _, err := NewPublisher(Config{URL: "not a url"}); err == nil {
		t.Fatal("malformed url must be rejected")
	}
	if _, err := NewPublisher(Config{URL: "https://hooks.example.com/events"}); err != nil {
		t.Fatalf("valid url rejected: %v", err)
	}
}

func TestEmitDeliversEvent(t *testing.T) {
	t.Parallel()

	var (
		gotAuth string
		gotEv   contractx.Event
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotEv); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p, err := NewPublisher(Config{URL: srv.URL, Token: "secret", Timeout: time.Second})
	if err != nil {
		t.Fatalf("new publisher: %v", err)
	}

	p.Emit(context.Background(), contractx.Event{
		Kind:      contractx.EventOrderPlaced,
		SessionID: "s1",
		Payload:   map[string]any{"order_id": "ORD-1"},
		At:        time.Now().UTC(),
	})

	if gotAuth != "Bearer secret" {
		t.Fatalf("auth header = %q", gotAuth)
	}
	if gotEv.Kind != contractx.EventOrderPlaced || gotEv.SessionID != "s1" {
		t.Fatalf("delivered event = %+v", gotEv)
	}
}

func TestEmitSwallowsServerErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p, err := NewPublisher(Config{URL: srv.URL})
	if err != nil {
		t.Fatalf("new publisher: %v", err)
	}

	// Must not panic and must not propagate; delivery failure is logged only.
	p.Emit(context.Background(), contractx.Event{Kind: contractx.EventToolInvoked})
}
