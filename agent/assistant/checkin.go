package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	contractx "github.com/kritsw/attendant/agent/contract"
	recordx "github.com/kritsw/attendant/agent/record"
	statex "github.com/kritsw/attendant/agent/state"
	toolx "github.com/kritsw/attendant/agent/tool"
)

// CheckIn runs a short wellness check-in and appends the completed record to
// the check-in log.
type CheckIn struct {
	session  *statex.Session
	checkins recordx.Log[recordx.CheckIn]
	deps     Deps
}

func checkinSlots() []statex.SlotSpec {
	return []statex.SlotSpec{
		{Name: "guest_name", Label: "name", Required: true},
		{Name: "mood", Label: "mood", Required: true},
		{Name: "stress_factors", Label: "stress factors", List: true},
		{Name: "highlight", Label: "highlight"},
	}
}

func NewCheckIn(sessionID string, deps Deps) *CheckIn {
	return &CheckIn{
		session:  statex.NewSession(sessionID, checkinSlots(), deps.now()),
		checkins: deps.CheckIns,
		deps:     deps,
	}
}

func (c *CheckIn) Name() string         { return "checkin" }
func (c *CheckIn) Instructions() string { return prompt(checkinPromptRaw) }

// Session exposes the slot state for tests.
func (c *CheckIn) Session() *statex.Session { return c.session }

func (c *CheckIn) Tools() []toolx.Spec {
	return []toolx.Spec{
		{
			Name: "update_name",
			Desc: "Set the caller's name.",
			Args: []toolx.Arg{
				{Name: "name", Desc: "The caller's name", Type: toolx.TypeString, Required: true},
			},
			Handler: c.setScalar("guest_name", "name", "Lovely to talk with you, %s."),
		},
		{
			Name: "update_mood",
			Desc: "Record how the caller is feeling today.",
			Args: []toolx.Arg{
				{Name: "mood", Desc: "The caller's mood in their words", Type: toolx.TypeString, Required: true},
			},
			Handler: c.setScalar("mood", "mood", "Thanks for sharing that you're feeling %s."),
		},
		{
			Name: "add_stress_factor",
			Desc: "Record one thing that is weighing on the caller.",
			Args: []toolx.Arg{
				{Name: "factor", Desc: "The stress factor", Type: toolx.TypeString, Required: true},
			},
			Handler: c.addStressFactor,
		},
		{
			Name: "update_highlight",
			Desc: "Record one good thing from the caller's day.",
			Args: []toolx.Arg{
				{Name: "highlight", Desc: "The highlight", Type: toolx.TypeString, Required: true},
			},
			Handler: c.setScalar("highlight", "highlight", "That's wonderful: %s."),
		},
		{
			Name:    "checkin_status",
			Desc:    "See what has been collected and what is still needed.",
			Handler: c.status,
		},
		{
			Name: "complete_checkin",
			Desc: "Log the check-in. Call only after the caller confirmed the recap.",
			Args: []toolx.Arg{
				{Name: "confirmed", Desc: "Whether the caller confirmed the recap", Type: toolx.TypeBool, Required: true},
			},
			Handler: c.complete,
		},
	}
}

func (c *CheckIn) setScalar(slot, arg, confirmation string) toolx.Handler {
	return func(_ context.Context, args toolx.Args) (string, error) {
		value := strings.TrimSpace(args.String(arg))
		if err := c.session.Set(slot, value); err != nil {
			return "", err
		}
		return fmt.Sprintf(confirmation, value), nil
	}
}

func (c *CheckIn) addStressFactor(_ context.Context, args toolx.Args) (string, error) {
	factor := strings.TrimSpace(args.String("factor"))
	added, err := c.session.AppendUnique("stress_factors", factor)
	if err != nil {
		return "", err
	}
	if !added {
		return "You mentioned that one already, and that's okay.", nil
	}
	return "I've noted that down. Anything else on your mind?", nil
}

func (c *CheckIn) status(context.Context, toolx.Args) (string, error) {
	if missing := c.session.MissingFields(); len(missing) > 0 {
		return fmt.Sprintf("I still need: %s.", strings.Join(missing, ", ")), nil
	}
	return "I have everything I need to log the check-in.", nil
}

func (c *CheckIn) complete(ctx context.Context, args toolx.Args) (string, error) {
	if !args.Bool("confirmed") {
		return "No problem, we don't have to log it until you're ready.", nil
	}
	if missing := c.session.MissingFields(); len(missing) > 0 {
		return fmt.Sprintf("Before I log this I still need: %s.", strings.Join(missing, ", ")), nil
	}

	now := c.deps.now()
	rec := recordx.CheckIn{
		ID:            uuid.NewString(),
		CreatedAt:     now.UTC(),
		GuestName:     c.session.Get("guest_name"),
		Mood:          c.session.Get("mood"),
		StressFactors: append([]string{}, c.session.List("stress_factors")...),
		Highlight:     c.session.Get("highlight"),
	}
	if err := c.checkins.Append(ctx, rec); err != nil {
		return "", err
	}

	c.deps.sink().Emit(ctx, contractx.Event{
		Kind:      contractx.EventCheckinCompleted,
		SessionID: c.session.ID,
		Payload:   map[string]any{"checkin_id": rec.ID, "mood": rec.Mood},
		At:        now.UTC(),
	})

	reply := fmt.Sprintf("All logged, %s. Take care of yourself, and talk soon.", rec.GuestName)
	c.session.Reset(now)
	return reply, nil
}
