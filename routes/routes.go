// Package routes provides shared route constants used by the storefront
// clients and the fake backend to prevent path mismatches.
package routes

// API route paths. Trailing slashes are part of the contract; the Django
// backend redirects slashless paths and the redirect drops request bodies.
const (
	// Cart returns the authenticated customer's current cart.
	Cart = "/api/cart/"

	// CartItem addresses one cart entry by its position in the last-fetched
	// sequence. Removal is positional, not by item identity.
	CartItem = "/api/cart/%d/"

	// Orders creates an order from the current server-side cart.
	Orders = "/api/orders/"

	// OrdersList returns the authenticated customer's past orders.
	OrdersList = "/api/orders/list/"

	// Order addresses one order by id (cancel).
	Order = "/api/orders/%d/"

	// Login exchanges credentials for a session token.
	Login = "/api/login/"

	// Register creates a customer account.
	Register = "/api/register/"

	// Logout revokes the current session token server-side.
	Logout = "/api/logout/"

	// Profile returns or updates the authenticated customer's profile.
	Profile = "/api/profile/"

	// ProductsList returns the public product catalog.
	ProductsList = "/api/products/list/"

	// Product addresses one catalog product by id.
	Product = "/api/products/%d/"

	// Chatbot returns the chatbot widget markup. The response is opaque
	// HTML inserted into the page verbatim.
	Chatbot = "/chatbot/"
)

// Page paths the flows navigate to.
const (
	// Home is the post-login landing page.
	Home = "/"

	// ThankYou is the post-order confirmation page.
	ThankYou = "/thank-you/"
)
