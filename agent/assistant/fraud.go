package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	contractx "github.com/kritsw/attendant/agent/contract"
	recordx "github.com/kritsw/attendant/agent/record"
	"github.com/kritsw/attendant/agent/scoring"
	toolx "github.com/kritsw/attendant/agent/tool"
)

// Fraud walks a customer through identity verification for a flagged
// transaction and records the outcome against the case store.
//
// verified is scoped to the current case: looking up a different user resets
// it, and every gated action re-checks it.
type Fraud struct {
	sessionID   string
	cases       *recordx.CaseStore
	currentCase *recordx.Case
	verified    bool
	deps        Deps
}

func NewFraud(sessionID string, deps Deps) *Fraud {
	return &Fraud{
		sessionID: sessionID,
		cases:     deps.Cases,
		deps:      deps,
	}
}

func (f *Fraud) Name() string         { return "fraud" }
func (f *Fraud) Instructions() string { return prompt(fraudPromptRaw) }

// Verified reports whether the current case passed identity verification.
func (f *Fraud) Verified() bool { return f.verified }

func (f *Fraud) Tools() []toolx.Spec {
	return []toolx.Spec{
		{
			Name: "lookup_user",
			Desc: "Look up the fraud case for a customer by name.",
			Args: []toolx.Arg{
				{Name: "user_name", Desc: "The customer's name", Type: toolx.TypeString, Required: true},
			},
			Handler: f.lookup,
		},
		{
			Name: "verify_security_answer",
			Desc: "Check the customer's answer to their security question.",
			Args: []toolx.Arg{
				{Name: "answer", Desc: "The customer's answer", Type: toolx.TypeString, Required: true},
			},
			Handler: f.verify,
		},
		{
			Name:    "get_transaction_details",
			Desc:    "Read out the flagged transaction. Requires verified identity.",
			Handler: f.transactionDetails,
		},
		{
			Name: "process_transaction_response",
			Desc: "Record whether the customer recognizes the transaction. Requires verified identity.",
			Args: []toolx.Arg{
				{Name: "is_safe", Desc: "True if the customer made the transaction", Type: toolx.TypeBool, Required: true},
			},
			Handler: f.processResponse,
		},
	}
}

func (f *Fraud) lookup(ctx context.Context, args toolx.Args) (string, error) {
	userName := strings.TrimSpace(args.String("user_name"))

	c, err := f.cases.Find(ctx, userName)
	if err != nil {
		if errors.Is(err, contractx.ErrNotFound) {
			return fmt.Sprintf("I couldn't find a case under the name %s.", userName), nil
		}
		return "", err
	}

	f.currentCase = &c
	f.verified = false
	return fmt.Sprintf(
		"I found a case for %s. Before we go further I need to verify your identity. %s",
		c.UserName, c.SecurityQuestion,
	), nil
}

func (f *Fraud) verify(_ context.Context, args toolx.Args) (string, error) {
	if f.currentCase == nil {
		return "I don't have a case open yet. Let me look up your account first.", nil
	}
	if !scoring.VerifyAnswer(f.currentCase.SecurityAnswer, args.String("answer")) {
		f.verified = false
		return "I'm sorry, that answer is incorrect. Could you try again?", nil
	}
	f.verified = true
	return "Thank you. Identity verified.", nil
}

func (f *Fraud) transactionDetails(context.Context, toolx.Args) (string, error) {
	if f.currentCase == nil {
		return "I don't have a case open yet. Let me look up your account first.", nil
	}
	if !f.verified {
		return "I can't share transaction details until your identity is verified.", nil
	}
	c := f.currentCase
	return fmt.Sprintf(
		"We flagged a charge of %s to %s at %s from %s, made via %s on the card ending %s.",
		c.TransactionAmount, c.TransactionName, c.TransactionTime,
		c.TransactionLocation, c.TransactionSource, c.CardEnding,
	), nil
}

func (f *Fraud) processResponse(ctx context.Context, args toolx.Args) (string, error) {
	if f.currentCase == nil {
		return "I don't have a case open yet. Let me look up your account first.", nil
	}
	if !f.verified {
		return "I can't act on this case until your identity is verified.", nil
	}

	isSafe := args.Bool("is_safe")
	status := recordx.CaseConfirmedFraud
	note := "Customer did not recognize the transaction, card blocked and dispute opened."
	reply := "Understood. I've marked the transaction as fraudulent, blocked the card, and opened a dispute. A new card is on its way."
	if isSafe {
		status = recordx.CaseConfirmedSafe
		note = "Customer confirmed the transaction as their own."
		reply = "Great, thanks for confirming. Marked as safe, no further action needed."
	}

	found, err := f.cases.UpdateOutcome(ctx, f.currentCase.UserName, status, note)
	if err != nil {
		return "", err
	}
	if !found {
		return "I couldn't update the case record. Please contact support directly.", nil
	}

	f.currentCase.Status = status
	f.currentCase.OutcomeNote = note
	f.deps.sink().Emit(ctx, contractx.Event{
		Kind:      contractx.EventCaseUpdated,
		SessionID: f.sessionID,
		Payload:   map[string]any{"user": f.currentCase.UserName, "status": status},
		At:        f.deps.now().UTC(),
	})
	return reply, nil
}
