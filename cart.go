package sdk

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bloomify/bloomify/sdk/go/routes"
)

// LineItem is one product entry in the cart.
type LineItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

// Cart is a snapshot of the server-side cart. Item order is the order the
// backend returned; removal addresses items by that position. Snapshots are
// never cached: each fetch replaces the previous one wholesale.
type Cart struct {
	Items []LineItem `json:"items"`
}

// Total returns the arithmetic sum of the item prices, in the same numeric
// representation the API returned. No rounding is applied.
func (c Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price
	}
	return total
}

// CartClient provides methods for reading and mutating the server-side cart.
type CartClient struct {
	client *Client
}

// Get fetches the current cart.
func (c *CartClient) Get(ctx context.Context) (Cart, error) {
	req, err := c.client.newJSONRequest(ctx, http.MethodGet, routes.Cart, nil)
	if err != nil {
		return Cart{}, err
	}
	c.client.authorize(req)
	resp, err := c.client.send(req, "cart.get")
	if err != nil {
		return Cart{}, err
	}
	var cart Cart
	if err := decodeJSON(resp, &cart); err != nil {
		return Cart{}, err
	}
	return cart, nil
}

// RemoveItem deletes the item at the given position in the last-fetched
// sequence. Removal is positional, not by item identity: a mutation from
// another session between fetch and delete can shift which item the index
// names. The backend issues no stable per-item id, so position is all
// there is to address by.
func (c *CartClient) RemoveItem(ctx context.Context, index int) error {
	if index < 0 {
		return fmt.Errorf("sdk: cart index must be non-negative, got %d", index)
	}
	req, err := c.client.newJSONRequest(ctx, http.MethodDelete, fmt.Sprintf(routes.CartItem, index), nil)
	if err != nil {
		return err
	}
	c.client.authorize(req)
	c.client.protect(req)
	resp, err := c.client.send(req, "cart.remove")
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil)
}
