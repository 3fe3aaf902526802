package assistant

import (
	"fmt"
	"time"

	cartx "github.com/kritsw/attendant/agent/cart"
	contractx "github.com/kritsw/attendant/agent/contract"
	recordx "github.com/kritsw/attendant/agent/record"
	referencex "github.com/kritsw/attendant/agent/reference"
	toolx "github.com/kritsw/attendant/agent/tool"
)

// Assistant is one voice task assistant: a name for logging, the system
// instructions handed to the reasoning component, and the tool set it may
// call.
type Assistant interface {
	Name() string
	Instructions() string
	Tools() []toolx.Spec
}

// Deps carries the shared collaborators an assistant may need. Assistants
// take only what they use.
type Deps struct {
	Ref     *referencex.Store
	Recipes cartx.RecipeBook

	Orders       recordx.Log[recordx.Order]
	CoffeeOrders recordx.Log[recordx.CoffeeOrder]
	CheckIns     recordx.Log[recordx.CheckIn]
	Leads        recordx.Log[recordx.Lead]
	Cases        *recordx.CaseStore

	Sink contractx.Sink
	Now  func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d Deps) sink() contractx.Sink {
	if d.Sink != nil {
		return d.Sink
	}
	return contractx.NopSink{}
}

// New builds the assistant for a starting mode. The mode arrives already
// resolved; discovery is the caller's problem.
func New(mode, sessionID string, deps Deps) (Assistant, error) {
	switch mode {
	case "coffee":
		return NewCoffee(sessionID, deps), nil
	case "grocery":
		return NewGrocery(sessionID, deps), nil
	case "fraud":
		return NewFraud(sessionID, deps), nil
	case "tutor":
		return NewTutor(sessionID, deps), nil
	case "checkin":
		return NewCheckIn(sessionID, deps), nil
	case "lead":
		return NewLead(sessionID, deps), nil
	default:
		return nil, fmt.Errorf("%w: unknown assistant mode %q", contractx.ErrValidation, mode)
	}
}
