package sdk

import (
	"context"
	"net/http"

	"github.com/bloomify/bloomify/sdk/go/routes"
)

// Customer is the authenticated customer's profile.
type Customer struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

// CustomerPatch holds the profile fields that may be changed. Nil fields
// are left as they are; username and email are read-only server-side.
type CustomerPatch struct {
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Address     *string `json:"address,omitempty"`
}

// CustomersClient provides methods for the authenticated customer's own
// profile.
type CustomersClient struct {
	client *Client
}

// Profile returns the current customer's profile.
func (c *CustomersClient) Profile(ctx context.Context) (Customer, error) {
	req, err := c.client.newJSONRequest(ctx, http.MethodGet, routes.Profile, nil)
	if err != nil {
		return Customer{}, err
	}
	c.client.authorize(req)
	resp, err := c.client.send(req, "customers.profile")
	if err != nil {
		return Customer{}, err
	}
	var customer Customer
	if err := decodeJSON(resp, &customer); err != nil {
		return Customer{}, err
	}
	return customer, nil
}

// UpdateProfile applies a partial profile update and returns the profile
// the backend settled on.
func (c *CustomersClient) UpdateProfile(ctx context.Context, patch CustomerPatch) (Customer, error) {
	req, err := c.client.newJSONRequest(ctx, http.MethodPatch, routes.Profile, patch)
	if err != nil {
		return Customer{}, err
	}
	c.client.authorize(req)
	c.client.protect(req)
	resp, err := c.client.send(req, "customers.update")
	if err != nil {
		return Customer{}, err
	}
	var customer Customer
	if err := decodeJSON(resp, &customer); err != nil {
		return Customer{}, err
	}
	return customer, nil
}
