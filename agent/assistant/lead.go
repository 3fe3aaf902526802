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

// Lead qualifies an inbound sales prospect slot by slot and appends the
// finished lead to the lead log.
type Lead struct {
	session *statex.Session
	leads   recordx.Log[recordx.Lead]
	deps    Deps
}

func leadSlots() []statex.SlotSpec {
	return []statex.SlotSpec{
		{Name: "company", Label: "company name", Required: true},
		{Name: "contact_name", Label: "contact name", Required: true},
		{Name: "budget", Label: "budget range", Required: true},
		{Name: "timeline", Label: "timeline", Required: true},
		{Name: "needs", Label: "requirements", List: true, Required: true},
	}
}

func NewLead(sessionID string, deps Deps) *Lead {
	return &Lead{
		session: statex.NewSession(sessionID, leadSlots(), deps.now()),
		leads:   deps.Leads,
		deps:    deps,
	}
}

func (l *Lead) Name() string         { return "lead" }
func (l *Lead) Instructions() string { return prompt(leadPromptRaw) }

// Session exposes the slot state for tests.
func (l *Lead) Session() *statex.Session { return l.session }

func (l *Lead) Tools() []toolx.Spec {
	return []toolx.Spec{
		{
			Name: "update_company",
			Desc: "Set the prospect's company name.",
			Args: []toolx.Arg{
				{Name: "company", Desc: "The company name", Type: toolx.TypeString, Required: true},
			},
			Handler: l.setScalar("company", "company", "Got it, %s."),
		},
		{
			Name: "update_contact",
			Desc: "Set the contact person's name.",
			Args: []toolx.Arg{
				{Name: "contact_name", Desc: "The contact's name", Type: toolx.TypeString, Required: true},
			},
			Handler: l.setScalar("contact_name", "contact_name", "Thanks, %s."),
		},
		{
			Name: "update_budget",
			Desc: "Set the budget range the prospect mentioned.",
			Args: []toolx.Arg{
				{Name: "budget", Desc: "The budget range in their words", Type: toolx.TypeString, Required: true},
			},
			Handler: l.setScalar("budget", "budget", "Noted, a budget around %s."),
		},
		{
			Name: "update_timeline",
			Desc: "Set the prospect's timeline.",
			Args: []toolx.Arg{
				{Name: "timeline", Desc: "The timeline in their words", Type: toolx.TypeString, Required: true},
			},
			Handler: l.setScalar("timeline", "timeline", "Okay, looking at %s."),
		},
		{
			Name: "add_need",
			Desc: "Record one requirement the prospect has.",
			Args: []toolx.Arg{
				{Name: "need", Desc: "The requirement", Type: toolx.TypeString, Required: true},
			},
			Handler: l.addNeed,
		},
		{
			Name:    "lead_status",
			Desc:    "See which qualification details are still missing.",
			Handler: l.status,
		},
		{
			Name: "qualify_lead",
			Desc: "Save the qualified lead. Call only after the prospect confirmed the recap.",
			Args: []toolx.Arg{
				{Name: "confirmed", Desc: "Whether the prospect confirmed the recap", Type: toolx.TypeBool, Required: true},
			},
			Handler: l.qualify,
		},
	}
}

func (l *Lead) setScalar(slot, arg, confirmation string) toolx.Handler {
	return func(_ context.Context, args toolx.Args) (string, error) {
		value := strings.TrimSpace(args.String(arg))
		if err := l.session.Set(slot, value); err != nil {
			return "", err
		}
		return fmt.Sprintf(confirmation, value), nil
	}
}

func (l *Lead) addNeed(_ context.Context, args toolx.Args) (string, error) {
	need := strings.TrimSpace(args.String("need"))
	added, err := l.session.AppendUnique("needs", need)
	if err != nil {
		return "", err
	}
	if !added {
		return fmt.Sprintf("I already have %s on the list.", need), nil
	}
	return fmt.Sprintf("Added %s to your requirements.", need), nil
}

func (l *Lead) status(context.Context, toolx.Args) (string, error) {
	if missing := l.session.MissingFields(); len(missing) > 0 {
		return fmt.Sprintf("Still to cover: %s.", strings.Join(missing, ", ")), nil
	}
	return "I have everything needed to qualify this lead.", nil
}

func (l *Lead) qualify(ctx context.Context, args toolx.Args) (string, error) {
	if !args.Bool("confirmed") {
		return "Let's confirm the details together before I save anything.", nil
	}
	if missing := l.session.MissingFields(); len(missing) > 0 {
		return fmt.Sprintf("I can't qualify the lead yet, I still need: %s.", strings.Join(missing, ", ")), nil
	}

	now := l.deps.now()
	rec := recordx.Lead{
		ID:        uuid.NewString(),
		CreatedAt: now.UTC(),
		Company:   l.session.Get("company"),
		Contact:   l.session.Get("contact_name"),
		Budget:    l.session.Get("budget"),
		Timeline:  l.session.Get("timeline"),
		Needs:     append([]string{}, l.session.List("needs")...),
	}
	if err := l.leads.Append(ctx, rec); err != nil {
		return "", err
	}

	l.deps.sink().Emit(ctx, contractx.Event{
		Kind:      contractx.EventLeadQualified,
		SessionID: l.session.ID,
		Payload:   map[string]any{"lead_id": rec.ID, "company": rec.Company},
		At:        now.UTC(),
	})

	reply := fmt.Sprintf("Thanks %s, I've got everything I need. Our team will reach out to %s shortly.", rec.Contact, rec.Company)
	l.session.Reset(now)
	return reply, nil
}
