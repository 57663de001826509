package sdk

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bloomify/bloomify/sdk/go/routes"
)

// Order is one previously placed order as the backend reports it.
type Order struct {
	ID        int64       `json:"id"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	Items     []OrderItem `json:"items"`
}

// OrderItem is one product line inside an order.
type OrderItem struct {
	ID       int64 `json:"id"`
	Product  int64 `json:"product"`
	Quantity int   `json:"quantity"`
}

// OrdersClient provides methods for placing and managing orders.
type OrdersClient struct {
	client *Client
}

// Place creates an order from the current server-side cart. The request
// carries no body; the backend derives the order from the cart it already
// holds, so there is no client-local order representation to send.
func (o *OrdersClient) Place(ctx context.Context) error {
	req, err := o.client.newJSONRequest(ctx, http.MethodPost, routes.Orders, nil)
	if err != nil {
		return err
	}
	o.client.authorize(req)
	o.client.protect(req)
	resp, err := o.client.send(req, "orders.place")
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil)
}

// List returns the authenticated customer's past orders.
func (o *OrdersClient) List(ctx context.Context) ([]Order, error) {
	req, err := o.client.newJSONRequest(ctx, http.MethodGet, routes.OrdersList, nil)
	if err != nil {
		return nil, err
	}
	o.client.authorize(req)
	resp, err := o.client.send(req, "orders.list")
	if err != nil {
		return nil, err
	}
	var orders []Order
	if err := decodeJSON(resp, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Cancel deletes an order. The backend only allows this while the order is
// still pending.
func (o *OrdersClient) Cancel(ctx context.Context, id int64) error {
	req, err := o.client.newJSONRequest(ctx, http.MethodDelete, fmt.Sprintf(routes.Order, id), nil)
	if err != nil {
		return err
	}
	o.client.authorize(req)
	o.client.protect(req)
	resp, err := o.client.send(req, "orders.cancel")
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil)
}
