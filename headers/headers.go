// Package headers defines HTTP header constants used across the Bloomify storefront.
// This is the single source of truth for header names used in API requests/responses.
package headers

const (
	// Authorization carries the session token ("Token <value>").
	Authorization = "Authorization"

	// CSRFToken is the anti-forgery header required on every mutating request.
	// Its value is mirrored from the csrftoken cookie at call time.
	CSRFToken = "X-CSRFToken" //nolint:gosec // This is a header name, not a credential

	// RequestID is the header for request correlation.
	RequestID = "X-Request-Id"

	// ContentType is set to application/json on every API request, matching
	// what the storefront pages have always sent.
	ContentType = "Content-Type"
)

// TokenScheme is the Authorization scheme the storefront backend expects.
// It is DRF-style token auth, not Bearer.
const TokenScheme = "Token"
