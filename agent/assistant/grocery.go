package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	cartx "github.com/kritsw/attendant/agent/cart"
	contractx "github.com/kritsw/attendant/agent/contract"
	recordx "github.com/kritsw/attendant/agent/record"
	referencex "github.com/kritsw/attendant/agent/reference"
	toolx "github.com/kritsw/attendant/agent/tool"
)

// Grocery builds a cart against the catalog and places orders into the order
// log.
type Grocery struct {
	sessionID string
	ref       *referencex.Store
	cart      *cartx.Cart
	recipes   cartx.RecipeBook
	orders    recordx.Log[recordx.Order]
	deps      Deps
}

func NewGrocery(sessionID string, deps Deps) *Grocery {
	recipes := deps.Recipes
	if recipes == nil {
		recipes = cartx.DefaultRecipes()
	}
	return &Grocery{
		sessionID: sessionID,
		ref:       deps.Ref,
		cart:      cartx.New(),
		recipes:   recipes,
		orders:    deps.Orders,
		deps:      deps,
	}
}

func (g *Grocery) Name() string         { return "grocery" }
func (g *Grocery) Instructions() string { return prompt(groceryPromptRaw) }

// Cart exposes the working cart for tests.
func (g *Grocery) Cart() *cartx.Cart { return g.cart }

func (g *Grocery) Tools() []toolx.Spec {
	return []toolx.Spec{
		{
			Name: "get_catalog_items",
			Desc: "List available catalog items, optionally filtered by category.",
			Args: []toolx.Arg{
				{Name: "category", Desc: "Category to filter by, e.g. Snacks", Type: toolx.TypeString},
			},
			Handler: g.listCatalog,
		},
		{
			Name: "add_to_cart",
			Desc: "Add an item from the catalog to the cart.",
			Args: []toolx.Arg{
				{Name: "item_name", Desc: "Name of the catalog item", Type: toolx.TypeString, Required: true},
				{Name: "quantity", Desc: "How many to add", Type: toolx.TypeInt, Default: 1},
				{Name: "notes", Desc: "Free-text note, e.g. ripe ones please", Type: toolx.TypeString, Default: ""},
			},
			Handler: g.addToCart,
		},
		{
			Name: "remove_from_cart",
			Desc: "Remove an item from the cart.",
			Args: []toolx.Arg{
				{Name: "item_name", Desc: "Name of the item to remove", Type: toolx.TypeString, Required: true},
			},
			Handler: g.removeFromCart,
		},
		{
			Name:    "get_cart_contents",
			Desc:    "Read back the cart contents and the running total.",
			Handler: g.cartContents,
		},
		{
			Name: "add_ingredients_for_dish",
			Desc: "Add every ingredient needed for a known dish to the cart.",
			Args: []toolx.Arg{
				{Name: "dish_name", Desc: "Name of the dish, e.g. peanut butter sandwich", Type: toolx.TypeString, Required: true},
				{Name: "quantity", Desc: "How many servings worth", Type: toolx.TypeInt, Default: 1},
			},
			Handler: g.addDish,
		},
		{
			Name:    "place_order",
			Desc:    "Place the order for everything currently in the cart.",
			Handler: g.placeOrder,
		},
		{
			Name: "get_order_status",
			Desc: "Check the status of a past order by its order number.",
			Args: []toolx.Arg{
				{Name: "order_id", Desc: "The order number", Type: toolx.TypeString, Required: true},
			},
			Handler: g.orderStatus,
		},
		{
			Name:    "list_past_orders",
			Desc:    "List the customer's past orders.",
			Handler: g.pastOrders,
		},
	}
}

func (g *Grocery) listCatalog(_ context.Context, args toolx.Args) (string, error) {
	category := strings.TrimSpace(args.String("category"))

	items := g.ref.Items()
	if category != "" {
		items = g.ref.ItemsByCategory(category)
		if len(items) == 0 {
			return fmt.Sprintf("I don't have anything in the %s category.", category), nil
		}
	}

	// Display fields only; never the full record.
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = fmt.Sprintf("%s at %.2f", it.Name, it.Price)
	}
	if category != "" {
		return fmt.Sprintf("In %s we have: %s.", category, strings.Join(names, ", ")), nil
	}
	return fmt.Sprintf("We have: %s.", strings.Join(names, ", ")), nil
}

func (g *Grocery) addToCart(_ context.Context, args toolx.Args) (string, error) {
	name := args.String("item_name")
	qty := args.Int("quantity")

	item, err := g.ref.FindItem(name)
	if err != nil {
		if errors.Is(err, contractx.ErrNotFound) {
			return fmt.Sprintf("I couldn't find %s in the catalog.", name), nil
		}
		return "", err
	}
	if qty < 1 {
		qty = 1
	}

	g.cart.Add(item, qty, args.String("notes"))
	return fmt.Sprintf("Added %d %s to your cart.", qty, item.Name), nil
}

func (g *Grocery) removeFromCart(_ context.Context, args toolx.Args) (string, error) {
	name := args.String("item_name")
	item, err := g.ref.FindItem(name)
	if err != nil {
		if errors.Is(err, contractx.ErrNotFound) {
			return fmt.Sprintf("I couldn't find %s in the catalog.", name), nil
		}
		return "", err
	}
	if !g.cart.Remove(item.ID) {
		return fmt.Sprintf("%s isn't in your cart.", item.Name), nil
	}
	return fmt.Sprintf("Removed %s from your cart.", item.Name), nil
}

func (g *Grocery) cartContents(context.Context, toolx.Args) (string, error) {
	entries := g.cart.Entries()
	if len(entries) == 0 {
		return "Your cart is empty.", nil
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = fmt.Sprintf("%d %s", e.Quantity, e.Item.Name)
		if e.Notes != "" {
			lines[i] += fmt.Sprintf(" (%s)", e.Notes)
		}
	}
	return fmt.Sprintf("In your cart: %s. The total is %s.", strings.Join(lines, ", "), g.cart.TotalString()), nil
}

// addDish expands a recipe by invoking the single-item add once per
// ingredient; an unknown ingredient is reported inline, not aborted.
func (g *Grocery) addDish(_ context.Context, args toolx.Args) (string, error) {
	dish := args.String("dish_name")
	qty := args.Int("quantity")
	if qty < 1 {
		qty = 1
	}

	ingredients, ok := g.recipes.Resolve(dish)
	if !ok {
		return fmt.Sprintf("I don't have a recipe for %s.", dish), nil
	}

	var added, failed []string
	for _, ingredient := range ingredients {
		item, err := g.ref.FindItem(ingredient)
		if err != nil {
			failed = append(failed, ingredient)
			continue
		}
		g.cart.Add(item, qty, "")
		added = append(added, item.Name)
	}

	reply := fmt.Sprintf("For %s I added: %s.", dish, strings.Join(added, ", "))
	if len(added) == 0 {
		reply = fmt.Sprintf("I couldn't add anything for %s.", dish)
	}
	if len(failed) > 0 {
		reply += fmt.Sprintf(" I couldn't find: %s.", strings.Join(failed, ", "))
	}
	return reply, nil
}

func (g *Grocery) placeOrder(ctx context.Context, _ toolx.Args) (string, error) {
	if g.cart.Len() == 0 {
		return "Your cart is empty, there's nothing to order yet.", nil
	}

	now := g.deps.now()
	entries := g.cart.Entries()
	lines := make([]recordx.OrderLine, len(entries))
	for i, e := range entries {
		lines[i] = recordx.OrderLine{
			ItemID:    e.Item.ID,
			Name:      e.Item.Name,
			Quantity:  e.Quantity,
			UnitPrice: e.Item.Price,
			Notes:     e.Notes,
		}
	}
	order := recordx.Order{
		ID:        recordx.NewOrderID(now),
		CreatedAt: now.UTC(),
		Items:     lines,
		Total:     g.cart.Total(),
	}

	if err := g.orders.Append(ctx, order); err != nil {
		return "", err
	}

	g.cart.Clear()
	g.deps.sink().Emit(ctx, contractx.Event{
		Kind:      contractx.EventOrderPlaced,
		SessionID: g.sessionID,
		Payload:   map[string]any{"order_id": order.ID, "total": order.Total},
		At:        now.UTC(),
	})

	return fmt.Sprintf("Your order is placed! The order number is %s and the total came to %.2f.", order.ID, order.Total), nil
}

func (g *Grocery) orderStatus(ctx context.Context, args toolx.Args) (string, error) {
	orderID := strings.TrimSpace(args.String("order_id"))
	orders, err := g.orders.List(ctx)
	if err != nil {
		return "", err
	}
	for _, o := range orders {
		if strings.EqualFold(o.ID, orderID) {
			status := recordx.OrderStatus(o.CreatedAt, g.deps.now())
			return fmt.Sprintf("Order %s: %s.", o.ID, status), nil
		}
	}
	return fmt.Sprintf("I couldn't find an order with number %s.", orderID), nil
}

func (g *Grocery) pastOrders(ctx context.Context, _ toolx.Args) (string, error) {
	orders, err := g.orders.List(ctx)
	if err != nil {
		return "", err
	}
	if len(orders) == 0 {
		return "You haven't placed any orders yet.", nil
	}
	lines := make([]string, len(orders))
	for i, o := range orders {
		lines[i] = fmt.Sprintf("%s with %d items for %.2f", o.ID, len(o.Items), o.Total)
	}
	return fmt.Sprintf("Your past orders: %s.", strings.Join(lines, "; ")), nil
}
