package sdk

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/bloomify/bloomify/sdk/go/routes"
)

// Credentials is the login/register request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks that required fields are set.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Email) == "" {
		return errors.New("email is required")
	}
	if c.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

// LoginResponse carries the session token the backend issued, plus the
// customer identity fields it echoes back.
type LoginResponse struct {
	Token    string `json:"token"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// RegisterResponse acknowledges account creation.
type RegisterResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
	Email   string `json:"email"`
}

// AuthClient drives the credential round-trips. Login and Register run
// pre-auth: they attach the anti-forgery token but no session token.
type AuthClient struct {
	client *Client
}

// Login exchanges credentials for a session token. The token is returned,
// not stored; whether and where to persist it is the caller's decision
// (AuthFlow persists it through the CredentialStore).
//
// A rejected login comes back as AuthError wrapping the backend's APIError;
// a request that never reached the backend stays a TransportError.
func (a *AuthClient) Login(ctx context.Context, creds Credentials) (LoginResponse, error) {
	if err := creds.Validate(); err != nil {
		return LoginResponse{}, AuthError{Op: "login", Cause: err}
	}
	req, err := a.client.newJSONRequest(ctx, http.MethodPost, routes.Login, creds)
	if err != nil {
		return LoginResponse{}, err
	}
	a.client.protect(req)
	resp, err := a.client.send(req, "auth.login")
	if err != nil {
		return LoginResponse{}, wrapAuthRejection("login", err)
	}
	var out LoginResponse
	if err := decodeJSON(resp, &out); err != nil {
		return LoginResponse{}, AuthError{Op: "login", Cause: err}
	}
	if out.Token == "" {
		return LoginResponse{}, AuthError{Op: "login", Cause: errors.New("response carried no session token")}
	}
	return out, nil
}

// Register creates a customer account. Registration does not log the
// customer in; the backend expects a login round-trip afterwards.
func (a *AuthClient) Register(ctx context.Context, creds Credentials) (RegisterResponse, error) {
	if err := creds.Validate(); err != nil {
		return RegisterResponse{}, AuthError{Op: "register", Cause: err}
	}
	req, err := a.client.newJSONRequest(ctx, http.MethodPost, routes.Register, creds)
	if err != nil {
		return RegisterResponse{}, err
	}
	a.client.protect(req)
	resp, err := a.client.send(req, "auth.register")
	if err != nil {
		return RegisterResponse{}, wrapAuthRejection("register", err)
	}
	var out RegisterResponse
	if err := decodeJSON(resp, &out); err != nil {
		return RegisterResponse{}, AuthError{Op: "register", Cause: err}
	}
	return out, nil
}

// Logout asks the backend to revoke the current session token. It does not
// touch the credential store; clearing or overwriting the dead token is the
// caller's move.
func (a *AuthClient) Logout(ctx context.Context) error {
	req, err := a.client.newJSONRequest(ctx, http.MethodPost, routes.Logout, nil)
	if err != nil {
		return err
	}
	a.client.authorize(req)
	a.client.protect(req)
	resp, err := a.client.send(req, "auth.logout")
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil)
}

// wrapAuthRejection classifies a failed credential round-trip: backend
// rejections become AuthError, transport failures pass through unchanged.
func wrapAuthRejection(op string, err error) error {
	var apiErr APIError
	if errors.As(err, &apiErr) {
		return AuthError{Op: op, Cause: apiErr}
	}
	return err
}
