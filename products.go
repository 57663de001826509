package sdk

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bloomify/bloomify/sdk/go/routes"
)

// Product is one catalog entry.
type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	// Price arrives as a decimal string ("149.00"); the backend serializes
	// its decimal column that way to avoid float drift on catalog prices.
	Price string `json:"price"`
	Stock int    `json:"stock"`
	Image string `json:"image"`
}

// ProductsClient reads the public product catalog. Catalog endpoints need
// no authentication.
type ProductsClient struct {
	client *Client
}

// List returns the full catalog.
func (p *ProductsClient) List(ctx context.Context) ([]Product, error) {
	req, err := p.client.newJSONRequest(ctx, http.MethodGet, routes.ProductsList, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.client.send(req, "products.list")
	if err != nil {
		return nil, err
	}
	var products []Product
	if err := decodeJSON(resp, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Get returns a single product by id.
func (p *ProductsClient) Get(ctx context.Context, id int64) (Product, error) {
	req, err := p.client.newJSONRequest(ctx, http.MethodGet, fmt.Sprintf(routes.Product, id), nil)
	if err != nil {
		return Product{}, err
	}
	resp, err := p.client.send(req, "products.get")
	if err != nil {
		return Product{}, err
	}
	var product Product
	if err := decodeJSON(resp, &product); err != nil {
		return Product{}, err
	}
	return product, nil
}
