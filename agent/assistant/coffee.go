package assistant

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/kritsw/attendant/agent/contract"
	recordx "github.com/kritsw/attendant/agent/record"
	statex "github.com/kritsw/attendant/agent/state"
	toolx "github.com/kritsw/attendant/agent/tool"
)

// Coffee takes a complete coffee order slot by slot and appends confirmed
// orders to the coffee order log.
type Coffee struct {
	session *statex.Session
	orders  recordx.Log[recordx.CoffeeOrder]
	deps    Deps
}

func coffeeSlots() []statex.SlotSpec {
	return []statex.SlotSpec{
		{Name: "drink_type", Label: "drink type", Required: true},
		{Name: "size", Label: "size", Required: true},
		{Name: "milk", Label: "milk preference", Required: true},
		{Name: "extras", Label: "extras", List: true},
		{Name: "name", Label: "name", Required: true},
	}
}

func NewCoffee(sessionID string, deps Deps) *Coffee {
	return &Coffee{
		session: statex.NewSession(sessionID, coffeeSlots(), deps.now()),
		orders:  deps.CoffeeOrders,
		deps:    deps,
	}
}

func (c *Coffee) Name() string         { return "coffee" }
func (c *Coffee) Instructions() string { return prompt(coffeePromptRaw) }

// Session exposes the slot state for tests and status inspection.
func (c *Coffee) Session() *statex.Session { return c.session }

func (c *Coffee) Tools() []toolx.Spec {
	return []toolx.Spec{
		{
			Name: "update_drink_type",
			Desc: "Set the drink type for the current order, e.g. latte, cappuccino, americano.",
			Args: []toolx.Arg{
				{Name: "drink_type", Desc: "The type of coffee drink", Type: toolx.TypeString, Required: true},
			},
			Handler: c.setSlot("drink_type", "Got it, one %s!"),
		},
		{
			Name: "update_size",
			Desc: "Set the size for the current order: small, medium, or large.",
			Args: []toolx.Arg{
				{Name: "size", Desc: "The size of the drink", Type: toolx.TypeString, Required: true},
			},
			Handler: c.setSlot("size", "Great, %s size!"),
		},
		{
			Name: "update_milk",
			Desc: "Set the milk preference for the current order.",
			Args: []toolx.Arg{
				{Name: "milk", Desc: "Milk preference, e.g. whole, oat, almond, or none", Type: toolx.TypeString, Required: true},
			},
			Handler: c.setSlot("milk", "Perfect, %s!"),
		},
		{
			Name: "add_extra",
			Desc: "Add an extra to the order, e.g. an extra shot or vanilla syrup.",
			Args: []toolx.Arg{
				{Name: "extra", Desc: "The extra to add", Type: toolx.TypeString, Required: true},
			},
			Handler: c.addExtra,
		},
		{
			Name: "update_name",
			Desc: "Set the customer's name for the order.",
			Args: []toolx.Arg{
				{Name: "name", Desc: "The customer's name", Type: toolx.TypeString, Required: true},
			},
			Handler: c.setName,
		},
		{
			Name:    "check_order_status",
			Desc:    "See what has been collected so far and what is still missing.",
			Handler: c.status,
		},
		{
			Name: "save_order",
			Desc: "Place the completed order. Call only after the customer confirmed the full order.",
			Args: []toolx.Arg{
				{Name: "confirmed", Desc: "Whether the customer confirmed the order", Type: toolx.TypeBool, Required: true},
			},
			Handler: c.save,
		},
	}
}

func (c *Coffee) setSlot(arg, confirmation string) toolx.Handler {
	return func(_ context.Context, args toolx.Args) (string, error) {
		value := args.String(arg)
		if err := c.session.Set(arg, strings.ToLower(strings.TrimSpace(value))); err != nil {
			return "", err
		}
		c.session.Touch(c.deps.now())
		return fmt.Sprintf(confirmation, strings.TrimSpace(value)), nil
	}
}

// setName keeps the customer's casing, unlike the lowercased drink slots.
func (c *Coffee) setName(_ context.Context, args toolx.Args) (string, error) {
	name := strings.TrimSpace(args.String("name"))
	if err := c.session.Set("name", name); err != nil {
		return "", err
	}
	c.session.Touch(c.deps.now())
	return fmt.Sprintf("Thanks, %s!", name), nil
}

func (c *Coffee) addExtra(_ context.Context, args toolx.Args) (string, error) {
	extra := strings.TrimSpace(args.String("extra"))
	added, err := c.session.AppendUnique("extras", strings.ToLower(extra))
	if err != nil {
		return "", err
	}
	if !added {
		return fmt.Sprintf("You already have %s in your order.", extra), nil
	}
	c.session.Touch(c.deps.now())
	return fmt.Sprintf("Added %s to your order!", extra), nil
}

func (c *Coffee) status(context.Context, toolx.Args) (string, error) {
	snap := c.session.Snapshot()
	var parts []string
	for _, slot := range []string{"drink_type", "size", "milk", "name"} {
		if v, _ := snap[slot].(string); v != "" {
			parts = append(parts, fmt.Sprintf("%s %s", strings.ReplaceAll(slot, "_", " "), v))
		}
	}
	if extras := c.session.List("extras"); len(extras) > 0 {
		parts = append(parts, "extras "+strings.Join(extras, ", "))
	}

	summary := "Nothing has been ordered yet."
	if len(parts) > 0 {
		summary = "So far I have: " + strings.Join(parts, ", ") + "."
	}
	if missing := c.session.MissingFields(); len(missing) > 0 {
		summary += " Still needed: " + strings.Join(missing, ", ") + "."
	} else {
		summary += " The order is complete and ready to confirm."
	}
	return summary, nil
}

func (c *Coffee) save(ctx context.Context, args toolx.Args) (string, error) {
	if !args.Bool("confirmed") {
		return "The order isn't confirmed yet. Please confirm it with the customer before saving.", nil
	}
	if missing := c.session.MissingFields(); len(missing) > 0 {
		return fmt.Sprintf("I can't place the order yet, I still need: %s.", strings.Join(missing, ", ")), nil
	}

	now := c.deps.now()
	order := recordx.CoffeeOrder{
		CreatedAt: now.UTC(),
		DrinkType: c.session.Get("drink_type"),
		Size:      c.session.Get("size"),
		Milk:      c.session.Get("milk"),
		Extras:    append([]string{}, c.session.List("extras")...),
		Name:      c.session.Get("name"),
	}
	if err := c.orders.Append(ctx, order); err != nil {
		return "", err
	}

	c.deps.sink().Emit(ctx, contractx.Event{
		Kind:      contractx.EventOrderPlaced,
		SessionID: c.session.ID,
		Payload:   map[string]any{"drink_type": order.DrinkType, "name": order.Name},
		At:        now.UTC(),
	})

	reply := fmt.Sprintf(
		"Perfect! Your order has been placed, %s. Your %s %s with %s will be ready shortly.",
		order.Name, order.Size, order.DrinkType, order.Milk,
	)

	c.session.Reset(now)
	c.deps.sink().Emit(ctx, contractx.Event{
		Kind:      contractx.EventSessionReset,
		SessionID: c.session.ID,
		At:        now.UTC(),
	})
	return reply, nil
}
