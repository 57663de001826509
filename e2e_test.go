package sdk_test

import (
	"context"
	"fmt"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bloomify/bloomify/sdk/go"
	"github.com/bloomify/bloomify/sdk/go/testutil"
)

type rowRenderer struct {
	rows    []string
	total   string
	summary bool
}

func (r *rowRenderer) Clear() {
	r.rows = nil
	r.total = ""
	r.summary = false
}

func (r *rowRenderer) RenderItem(index int, item sdk.LineItem) {
	r.rows = append(r.rows, fmt.Sprintf("%d:%s", index, item.Name))
}

func (r *rowRenderer) ShowTotal(formatted string) { r.total = formatted }
func (r *rowRenderer) ShowSummary()               { r.summary = true }

func TestStorefrontJourney(t *testing.T) {
	backend := testutil.NewStorefront()
	backend.SeedCart(
		testutil.Item{Name: "Rose", Price: 100, Image: "r.jpg"},
		testutil.Item{Name: "Lily", Price: 150, Image: "l.jpg"},
	)
	server := httptest.NewServer(backend.Handler())
	defer server.Close()

	credsPath := filepath.Join(t.TempDir(), "session.json")
	creds := sdk.NewFileCredentialStore(credsPath)
	client, err := sdk.NewClient(sdk.Config{
		BaseURL:     server.URL,
		Credentials: creds,
		Cookies:     backend,
	})
	require.NoError(t, err)

	ctx := context.Background()
	forms := sdk.NewFormState()
	var visited []string
	flow, err := sdk.NewAuthFlow(sdk.AuthFlowConfig{
		Auth:        client.Auth,
		Credentials: creds,
		View:        forms,
		Navigator:   sdk.NavigatorFunc(func(path string) { visited = append(visited, path) }),
	})
	require.NoError(t, err)

	// Sign up, then log in with the new account.
	flow.SetMode(sdk.ModeSignup)
	require.NoError(t, flow.Signup(ctx, "demo@bloomify.test", "hunter2"))
	require.Equal(t, sdk.ModeLogin, flow.Mode())
	require.NoError(t, flow.Login(ctx, "demo@bloomify.test", "hunter2"))
	require.Equal(t, []string{"/"}, visited)

	token, ok := creds.SessionToken()
	require.True(t, ok)
	require.NotEmpty(t, token)

	// Cart loads and renders.
	renderer := &rowRenderer{}
	view, err := sdk.NewCartView(sdk.CartViewConfig{
		Cart:      client.Cart,
		Orders:    client.Orders,
		Renderer:  renderer,
		Navigator: sdk.NavigatorFunc(func(path string) { visited = append(visited, path) }),
	})
	require.NoError(t, err)
	require.NoError(t, view.Load(ctx))
	require.Equal(t, []string{"0:Rose", "1:Lily"}, renderer.rows)
	require.Equal(t, "₹250", renderer.total)
	require.True(t, renderer.summary)

	// The backend rotates the CSRF cookie; the next mutation must pick up
	// the new value on its own.
	backend.RotateCSRF()
	require.NoError(t, view.Remove(ctx, 0))
	require.Equal(t, []string{"0:Lily"}, renderer.rows)
	require.Equal(t, "₹150", renderer.total)

	backend.RotateCSRF()
	require.NoError(t, view.PlaceOrder(ctx))
	require.Equal(t, []string{"/", "/thank-you/"}, visited)
	require.Equal(t, 1, backend.OrdersPlaced())
	require.Empty(t, backend.CartItems())
}

func TestSessionTokenSurvivesRestart(t *testing.T) {
	backend := testutil.NewStorefront()
	backend.SeedUser("demo@bloomify.test", "hunter2")
	server := httptest.NewServer(backend.Handler())
	defer server.Close()

	ctx := context.Background()
	credsPath := filepath.Join(t.TempDir(), "session.json")

	first := sdk.NewFileCredentialStore(credsPath)
	client, err := sdk.NewClient(sdk.Config{BaseURL: server.URL, Credentials: first, Cookies: backend})
	require.NoError(t, err)
	resp, err := client.Auth.Login(ctx, sdk.Credentials{Email: "demo@bloomify.test", Password: "hunter2"})
	require.NoError(t, err)
	require.NoError(t, first.SetSessionToken(resp.Token))

	// A fresh process reads the same file and is authenticated without a
	// new login round-trip.
	second := sdk.NewFileCredentialStore(credsPath)
	reclient, err := sdk.NewClient(sdk.Config{BaseURL: server.URL, Credentials: second, Cookies: backend})
	require.NoError(t, err)
	_, err = reclient.Cart.Get(ctx)
	require.NoError(t, err)
}

func TestChatbotFragmentIsVerbatim(t *testing.T) {
	backend := testutil.NewStorefront()
	backend.SetChatbotFragment(`<div class="bot"><script>init()</script></div>`)
	server := httptest.NewServer(backend.Handler())
	defer server.Close()

	client, err := sdk.NewClient(sdk.Config{
		BaseURL:     server.URL,
		Credentials: sdk.NewMemoryCredentialStore(),
	})
	require.NoError(t, err)

	fragment, err := client.Chatbot.Fragment(context.Background())
	require.NoError(t, err)
	require.Equal(t, `<div class="bot"><script>init()</script></div>`, fragment)
}

func TestProductsListDecodes(t *testing.T) {
	backend := testutil.NewStorefront()
	backend.SeedProducts(
		testutil.Product{ID: 1, Name: "Rose Bouquet", Price: "149.00", Stock: 12, Image: "rb.jpg"},
		testutil.Product{ID: 2, Name: "Lily Bouquet", Price: "199.00", Stock: 3, Image: "lb.jpg"},
	)
	server := httptest.NewServer(backend.Handler())
	defer server.Close()

	client, err := sdk.NewClient(sdk.Config{
		BaseURL:     server.URL,
		Credentials: sdk.NewMemoryCredentialStore(),
	})
	require.NoError(t, err)

	products, err := client.Products.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	require.Equal(t, "Rose Bouquet", products[0].Name)
	require.Equal(t, "149.00", products[0].Price)
}
