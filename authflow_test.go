package sdk

import (
	"context"
	"testing"
)

func newTestFlow(t *testing.T, mock *MockStorefront) (*AuthFlow, *FormState, *MemoryCredentialStore, *[]string) {
	t.Helper()
	forms := NewFormState()
	creds := NewMemoryCredentialStore()
	var visited []string
	flow, err := NewAuthFlow(AuthFlowConfig{
		Auth:        mock.Auth,
		Credentials: creds,
		View:        forms,
		Navigator:   NavigatorFunc(func(path string) { visited = append(visited, path) }),
	})
	if err != nil {
		t.Fatalf("NewAuthFlow failed: %v", err)
	}
	return flow, forms, creds, &visited
}

func assertSingleForm(t *testing.T, forms *FormState, want Mode) {
	t.Helper()
	if forms.LoginVisible == forms.SignupVisible {
		t.Fatalf("forms: login=%v signup=%v, exactly one must be visible", forms.LoginVisible, forms.SignupVisible)
	}
	if forms.ActiveToggle != want {
		t.Fatalf("active toggle = %v, want %v", forms.ActiveToggle, want)
	}
	visible := ModeLogin
	if forms.SignupVisible {
		visible = ModeSignup
	}
	if visible != want {
		t.Fatalf("visible form = %v, want %v", visible, want)
	}
}

func TestModeToggleKeepsExactlyOneFormVisible(t *testing.T) {
	flow, forms, _, _ := newTestFlow(t, NewMockStorefront())

	assertSingleForm(t, forms, ModeLogin)

	for _, mode := range []Mode{ModeLogin, ModeSignup, ModeLogin, ModeSignup, ModeSignup} {
		flow.SetMode(mode)
		assertSingleForm(t, forms, mode)
		if flow.Mode() != mode {
			t.Fatalf("flow.Mode() = %v, want %v", flow.Mode(), mode)
		}
	}
}

func TestLoginPersistsTokenAndNavigatesHome(t *testing.T) {
	mock := NewMockStorefront().WithLoginResult(LoginResponse{Token: "tok-77"}, nil)
	flow, forms, creds, visited := newTestFlow(t, mock)

	if err := flow.Login(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	token, ok := creds.SessionToken()
	if !ok || token != "tok-77" {
		t.Errorf("stored token = %q, %v; want the response token", token, ok)
	}
	if len(*visited) != 1 || (*visited)[0] != "/" {
		t.Errorf("visited = %v, want home redirect", *visited)
	}
	if forms.LastNotice != "" {
		t.Errorf("notice = %q, want none on success", forms.LastNotice)
	}
	if got := mock.Auth.LoginCalls; len(got) != 1 || got[0].Email != "a@b.c" || got[0].Password != "pw" {
		t.Errorf("LoginCalls = %v", got)
	}
}

func TestLoginFailureLeavesStoreUntouched(t *testing.T) {
	mock := NewMockStorefront().WithLoginResult(LoginResponse{}, AuthError{Op: "login", Cause: MockError{Reason: "rejected"}})
	flow, forms, creds, visited := newTestFlow(t, mock)

	// Simulate a token from an earlier session.
	creds.SetSessionToken("tok-old")

	if err := flow.Login(context.Background(), "a@b.c", "wrong"); err == nil {
		t.Fatal("Login should fail")
	}
	token, _ := creds.SessionToken()
	if token != "tok-old" {
		t.Errorf("stored token = %q, want prior value untouched", token)
	}
	if len(*visited) != 0 {
		t.Errorf("visited = %v, want no navigation", *visited)
	}
	if forms.LastNotice != "Login failed. Please check your credentials." || forms.LastNoticeOK {
		t.Errorf("notice = %q (ok=%v), want the generic failure notice", forms.LastNotice, forms.LastNoticeOK)
	}
}

func TestSignupSuccessSwitchesToLogin(t *testing.T) {
	mock := NewMockStorefront().WithRegisterResult(RegisterResponse{Message: "Registration successful"}, nil)
	flow, forms, _, _ := newTestFlow(t, mock)

	flow.SetMode(ModeSignup)
	if err := flow.Signup(context.Background(), "new@b.c", "pw"); err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
	assertSingleForm(t, forms, ModeLogin)
	if forms.LastNotice != "Registration successful! Please log in." || !forms.LastNoticeOK {
		t.Errorf("notice = %q (ok=%v)", forms.LastNotice, forms.LastNoticeOK)
	}
}

func TestSignupFailureStaysInSignupMode(t *testing.T) {
	mock := NewMockStorefront().WithRegisterResult(RegisterResponse{}, AuthError{Op: "register", Cause: MockError{Reason: "taken"}})
	flow, forms, _, _ := newTestFlow(t, mock)

	flow.SetMode(ModeSignup)
	if err := flow.Signup(context.Background(), "dupe@b.c", "pw"); err == nil {
		t.Fatal("Signup should fail")
	}
	assertSingleForm(t, forms, ModeSignup)
	if forms.LastNotice != "Registration failed. Please try again." || forms.LastNoticeOK {
		t.Errorf("notice = %q (ok=%v), want the generic failure notice", forms.LastNotice, forms.LastNoticeOK)
	}
}
