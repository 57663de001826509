package sdk

import (
	"context"
	"errors"

	"github.com/bloomify/bloomify/sdk/go/routes"
)

// AuthService is the slice of the API client the auth flow needs.
// *AuthClient implements it; tests substitute mocks.
type AuthService interface {
	Login(ctx context.Context, creds Credentials) (LoginResponse, error)
	Register(ctx context.Context, creds Credentials) (RegisterResponse, error)
}

// Mode selects which credential form is active.
type Mode int

const (
	ModeLogin Mode = iota
	ModeSignup
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	if m == ModeSignup {
		return "signup"
	}
	return "login"
}

// FormView reflects flow state back to the user. Exactly one mode is active
// at a time: SetMode shows the chosen form, hides the other, and marks the
// matching toggle active, all in one call so no intermediate both-visible
// or neither-visible state exists.
type FormView interface {
	SetMode(mode Mode)
	NotifySuccess(message string)
	NotifyFailure(message string)
}

// Fixed user-facing notices. Generic on purpose: server rejection detail is
// logged, never shown.
const (
	loginFailedNotice     = "Login failed. Please check your credentials."
	signupFailedNotice    = "Registration failed. Please try again."
	signupSucceededNotice = "Registration successful! Please log in."
)

// AuthFlowConfig wires the flow's collaborators.
type AuthFlowConfig struct {
	// Auth, Credentials, and View are required.
	Auth        AuthService
	Credentials CredentialStore
	View        FormView
	// Navigator handles the post-login redirect. Optional.
	Navigator Navigator
	// Telemetry receives the rejection causes the notices hide.
	Telemetry TelemetryHooks
}

// AuthFlow drives the login/signup forms. It is constructed once at page
// initialization and threaded through explicitly; nothing is read from
// ambient globals. Like CartView it assumes a single goroutine.
type AuthFlow struct {
	auth      AuthService
	creds     CredentialStore
	view      FormView
	nav       Navigator
	telemetry TelemetryHooks

	mode Mode
}

// NewAuthFlow validates the configuration and returns a flow in login mode,
// with the view already told so.
func NewAuthFlow(cfg AuthFlowConfig) (*AuthFlow, error) {
	if cfg.Auth == nil {
		return nil, errors.New("sdk: auth service required")
	}
	if cfg.Credentials == nil {
		return nil, errors.New("sdk: credential store required")
	}
	if cfg.View == nil {
		return nil, errors.New("sdk: form view required")
	}
	nav := cfg.Navigator
	if nav == nil {
		nav = NavigatorFunc(func(string) {})
	}
	flow := &AuthFlow{
		auth:      cfg.Auth,
		creds:     cfg.Credentials,
		view:      cfg.View,
		nav:       nav,
		telemetry: cfg.Telemetry,
		mode:      ModeLogin,
	}
	flow.view.SetMode(ModeLogin)
	return flow, nil
}

// Mode reports which form is active.
func (f *AuthFlow) Mode() Mode { return f.mode }

// SetMode switches the visible form.
func (f *AuthFlow) SetMode(mode Mode) {
	f.mode = mode
	f.view.SetMode(mode)
}

// Login authenticates the given credentials. On success the issued token is
// persisted through the credential store, then the user is sent to the home
// page. On failure the store is left exactly as it was and the user sees a
// fixed generic notice; the real cause goes to telemetry.
func (f *AuthFlow) Login(ctx context.Context, email, password string) error {
	resp, err := f.auth.Login(ctx, Credentials{Email: email, Password: password})
	if err != nil {
		f.telemetry.log(ctx, LogLevelError, "login_failed", map[string]any{"error": err.Error()})
		f.view.NotifyFailure(loginFailedNotice)
		return err
	}
	if err := f.creds.SetSessionToken(resp.Token); err != nil {
		f.telemetry.log(ctx, LogLevelError, "token_persist_failed", map[string]any{"error": err.Error()})
		f.view.NotifyFailure(loginFailedNotice)
		return err
	}
	f.nav.Navigate(routes.Home)
	return nil
}

// Signup registers a new account. On success the user sees the success
// notice and the flow switches itself to login mode, ready for the fresh
// credentials. On failure: generic notice, cause to telemetry.
func (f *AuthFlow) Signup(ctx context.Context, email, password string) error {
	if _, err := f.auth.Register(ctx, Credentials{Email: email, Password: password}); err != nil {
		f.telemetry.log(ctx, LogLevelError, "signup_failed", map[string]any{"error": err.Error()})
		f.view.NotifyFailure(signupFailedNotice)
		return err
	}
	f.view.NotifySuccess(signupSucceededNotice)
	f.SetMode(ModeLogin)
	return nil
}

// FormState is an in-memory FormView that records visibility, the active
// toggle, and the last notice. It is the reference implementation used by
// tests and examples; real frontends implement FormView against their own
// widgets.
type FormState struct {
	LoginVisible  bool
	SignupVisible bool
	ActiveToggle  Mode
	LastNotice    string
	LastNoticeOK  bool
}

// NewFormState returns a form state showing the login form, matching the
// page's initial markup.
func NewFormState() *FormState {
	return &FormState{LoginVisible: true, ActiveToggle: ModeLogin}
}

// SetMode implements FormView.
func (s *FormState) SetMode(mode Mode) {
	s.LoginVisible = mode == ModeLogin
	s.SignupVisible = mode == ModeSignup
	s.ActiveToggle = mode
}

// NotifySuccess implements FormView.
func (s *FormState) NotifySuccess(message string) {
	s.LastNotice = message
	s.LastNoticeOK = true
}

// NotifyFailure implements FormView.
func (s *FormState) NotifyFailure(message string) {
	s.LastNotice = message
	s.LastNoticeOK = false
}
