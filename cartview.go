package sdk

import (
	"context"
	"errors"
	"strconv"

	"github.com/bloomify/bloomify/sdk/go/routes"
)

// CartService is the slice of the API client the cart view needs.
// *CartClient implements it; tests substitute mocks.
type CartService interface {
	Get(ctx context.Context) (Cart, error)
	RemoveItem(ctx context.Context, index int) error
}

// OrderService places orders. *OrdersClient implements it.
type OrderService interface {
	Place(ctx context.Context) error
}

// Renderer receives the view the synchronizer computes. Implementations own
// presentation; the synchronizer owns ordering: within one refresh, Clear
// always runs before the first RenderItem, so a partially mixed cart is
// never visible.
type Renderer interface {
	// Clear discards all currently displayed items.
	Clear()
	// RenderItem displays one line item tagged with its current position.
	// The index is what RemoveItem expects for that row.
	RenderItem(index int, item LineItem)
	// ShowTotal displays the formatted total for the rendered items.
	ShowTotal(formatted string)
	// ShowSummary reveals the order summary panel.
	ShowSummary()
}

// Navigator performs page navigation after a successful login or order.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

// Navigate implements Navigator.
func (f NavigatorFunc) Navigate(path string) { f(path) }

// Notifier presents a user-visible notice.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

// Notify implements Notifier.
func (f NotifierFunc) Notify(message string) { f(message) }

// NotifyPolicy selects which failures surface to the user. Order-placement
// failures always surface; the policy governs the rest.
type NotifyPolicy int

const (
	// NotifyOrders is the historical storefront behavior: cart fetch and
	// removal failures are logged only, and the view keeps its last good
	// state with no banner. The next load quietly repairs it.
	NotifyOrders NotifyPolicy = iota
	// NotifyAll also surfaces cart fetch and removal failures.
	NotifyAll
)

// ViewState reports whether a refresh is in flight.
type ViewState int

const (
	ViewIdle ViewState = iota
	ViewRefreshing
)

// User-facing notices. Fixed strings; server error detail never reaches
// the user through these.
const (
	orderFailedNotice  = "Failed to place order. Please try again."
	loadFailedNotice   = "Could not load your cart. Please try again."
	removeFailedNotice = "Could not remove the item. Please try again."
)

// currencyPrefix is display formatting only. Totals are computed on the raw
// numeric values and the prefix never participates in arithmetic.
const currencyPrefix = "₹"

// FormatPrice renders a price for display. The numeric text matches the
// value exactly: no rounding and no trailing-zero padding, so 250 renders
// as ₹250 and 99.75 as ₹99.75.
func FormatPrice(v float64) string {
	return currencyPrefix + strconv.FormatFloat(v, 'f', -1, 64)
}

// CartViewConfig wires the synchronizer's collaborators.
type CartViewConfig struct {
	// Cart and Renderer are required.
	Cart     CartService
	Renderer Renderer
	// Orders is required for PlaceOrder; a view that only reads may omit it.
	Orders OrderService
	// Navigator handles the post-order redirect. Optional.
	Navigator Navigator
	// Notifier presents user-visible failure notices. Optional.
	Notifier Notifier
	// Policy defaults to NotifyOrders.
	Policy NotifyPolicy
	// Telemetry receives the failures the policy keeps away from the user.
	Telemetry TelemetryHooks
}

// CartView keeps a renderer synchronized with the server-side cart. It
// follows an authoritative-resync strategy: every mutation is followed by a
// full re-fetch and wholesale re-render, never an optimistic local edit, so
// the view cannot drift from the server. That trades an extra round-trip
// per mutation for not having a reconciliation path at all.
//
// CartView assumes the single-threaded, event-driven model of the page it
// replaces: it is not safe for concurrent use. Overlapping refreshes from
// separate goroutines are not coordinated; the last response to arrive
// wins, even if it was issued first.
type CartView struct {
	cart      CartService
	orders    OrderService
	view      Renderer
	nav       Navigator
	notifier  Notifier
	policy    NotifyPolicy
	telemetry TelemetryHooks

	state ViewState
}

// NewCartView validates the configuration and returns an idle view.
func NewCartView(cfg CartViewConfig) (*CartView, error) {
	if cfg.Cart == nil {
		return nil, errors.New("sdk: cart service required")
	}
	if cfg.Renderer == nil {
		return nil, errors.New("sdk: renderer required")
	}
	nav := cfg.Navigator
	if nav == nil {
		nav = NavigatorFunc(func(string) {})
	}
	notifier := cfg.Notifier
	if notifier == nil {
		notifier = NotifierFunc(func(string) {})
	}
	return &CartView{
		cart:      cfg.Cart,
		orders:    cfg.Orders,
		view:      cfg.Renderer,
		nav:       nav,
		notifier:  notifier,
		policy:    cfg.Policy,
		telemetry: cfg.Telemetry,
	}, nil
}

// State reports whether a refresh is in flight.
func (v *CartView) State() ViewState { return v.state }

// Load fetches the cart and re-renders it wholesale: clear first, then each
// item in response order tagged with its position, then the formatted
// total, then the summary panel. On failure the previous render is left
// untouched and the error is logged; under NotifyAll the user also gets a
// notice.
func (v *CartView) Load(ctx context.Context) error {
	v.state = ViewRefreshing
	defer func() { v.state = ViewIdle }()

	cart, err := v.cart.Get(ctx)
	if err != nil {
		v.telemetry.log(ctx, LogLevelError, "cart_load_failed", map[string]any{"error": err.Error()})
		if v.policy == NotifyAll {
			v.notifier.Notify(loadFailedNotice)
		}
		return err
	}

	v.view.Clear()
	var total float64
	for i, item := range cart.Items {
		v.view.RenderItem(i, item)
		total += item.Price
	}
	v.view.ShowTotal(FormatPrice(total))
	v.view.ShowSummary()
	return nil
}

// Remove deletes the item at the given rendered position and, on success,
// resynchronizes the whole view from the server. On failure the error is
// logged and the render goes stale until the next Load; under NotifyAll
// the user also gets a notice.
func (v *CartView) Remove(ctx context.Context, index int) error {
	if err := v.cart.RemoveItem(ctx, index); err != nil {
		v.telemetry.log(ctx, LogLevelError, "cart_remove_failed", map[string]any{
			"index": index,
			"error": err.Error(),
		})
		if v.policy == NotifyAll {
			v.notifier.Notify(removeFailedNotice)
		}
		return err
	}
	return v.Load(ctx)
}

// PlaceOrder creates an order from the current server-side cart and, on
// success, navigates to the confirmation page. Order failures always reach
// the user, regardless of policy.
func (v *CartView) PlaceOrder(ctx context.Context) error {
	if v.orders == nil {
		return errors.New("sdk: order service not configured")
	}
	if err := v.orders.Place(ctx); err != nil {
		v.telemetry.log(ctx, LogLevelError, "order_place_failed", map[string]any{"error": err.Error()})
		v.notifier.Notify(orderFailedNotice)
		return err
	}
	v.nav.Navigate(routes.ThankYou)
	return nil
}
