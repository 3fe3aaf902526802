package assistant

import (
	"strings"
	"testing"

	contractx "github.com/kritsw/attendant/agent/contract"
	recordx "github.com/kritsw/attendant/agent/record"
	toolx "github.com/kritsw/attendant/agent/tool"
)

func checkinForTest(t *testing.T) (*CheckIn, *memLog[recordx.CheckIn], *captureSink) {
	t.Helper()
	checkins := &memLog[recordx.CheckIn]{}
	sink := &captureSink{}
	c := NewCheckIn("s1", Deps{CheckIns: checkins, Sink: sink, Now: fixedNow})
	return c, checkins, sink
}

func TestCheckInCompleteGating(t *testing.T) {
	t.Parallel()

	c, checkins, _ := checkinForTest(t)
	invoke(t, c, "update_name", toolx.Args{"name": "Ana"})

	got := invoke(t, c, "complete_checkin", toolx.Args{"confirmed": true})
	if !strings.Contains(got, "mood") {
		t.Fatalf("incomplete reply = %q, want missing mood named", got)
	}

	invoke(t, c, "update_mood", toolx.Args{"mood": "pretty good"})
	got = invoke(t, c, "complete_checkin", toolx.Args{"confirmed": false})
	if !strings.Contains(got, "ready") {
		t.Fatalf("unconfirmed reply = %q", got)
	}
	if len(checkins.records) != 0 {
		t.Fatal("nothing should be logged before a confirmed, complete check-in")
	}
}

func TestCheckInCompletePersistsAndResets(t *testing.T) {
	t.Parallel()

	c, checkins, sink := checkinForTest(t)
	invoke(t, c, "update_name", toolx.Args{"name": "Ana"})
	invoke(t, c, "update_mood", toolx.Args{"mood": "a bit tired"})
	invoke(t, c, "add_stress_factor", toolx.Args{"factor": "deadline at work"})
	invoke(t, c, "update_highlight", toolx.Args{"highlight": "lunch with a friend"})

	got := invoke(t, c, "complete_checkin", toolx.Args{"confirmed": true})
	if !strings.Contains(got, "Ana") {
		t.Fatalf("complete reply = %q", got)
	}

	if len(checkins.records) != 1 {
		t.Fatalf("checkins logged = %d, want 1", len(checkins.records))
	}
	rec := checkins.records[0]
	if rec.ID == "" {
		t.Fatal("check-in id not assigned")
	}
	if rec.GuestName != "Ana" || rec.Mood != "a bit tired" || rec.Highlight != "lunch with a friend" {
		t.Fatalf("record = %+v", rec)
	}
	if len(rec.StressFactors) != 1 || rec.StressFactors[0] != "deadline at work" {
		t.Fatalf("stress factors = %v", rec.StressFactors)
	}

	if !sink.has(contractx.EventCheckinCompleted) {
		t.Fatalf("events = %v, want checkin.completed", sink.kinds())
	}
	if c.Session().Get("guest_name") != "" {
		t.Fatal("session not reset after completion")
	}
}

func TestCheckInStatus(t *testing.T) {
	t.Parallel()

	c, _, _ := checkinForTest(t)

	got := invoke(t, c, "checkin_status", nil)
	if !strings.Contains(got, "name") || !strings.Contains(got, "mood") {
		t.Fatalf("status reply = %q", got)
	}

	invoke(t, c, "update_name", toolx.Args{"name": "Ana"})
	invoke(t, c, "update_mood", toolx.Args{"mood": "fine"})
	got = invoke(t, c, "checkin_status", nil)
	if !strings.Contains(got, "everything I need") {
		t.Fatalf("complete status = %q", got)
	}
}
