package sdk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestProfileRoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/profile/" {
			t.Errorf("path = %s, want /api/profile/", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`{"id":4,"username":"demo","email":"a@b.c","first_name":"Demo","address":"12 Petal Lane"}`))
		case http.MethodPatch:
			var patch map[string]any
			json.NewDecoder(r.Body).Decode(&patch)
			if len(patch) != 1 {
				t.Errorf("patch = %v, nil fields must be omitted", patch)
			}
			if patch["address"] != "34 Stem Road" {
				t.Errorf("patch = %v", patch)
			}
			w.Write([]byte(`{"id":4,"username":"demo","email":"a@b.c","first_name":"Demo","address":"34 Stem Road"}`))
		default:
			t.Errorf("method = %s", r.Method)
		}
	}))
	defer server.Close()

	client, creds := newTestClient(t, server.URL, StaticCookies("csrftoken=c"))
	creds.SetSessionToken("tok")
	ctx := context.Background()

	profile, err := client.Customers.Profile(ctx)
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	if profile.Username != "demo" || profile.Address != "12 Petal Lane" {
		t.Errorf("profile = %+v", profile)
	}

	address := "34 Stem Road"
	updated, err := client.Customers.UpdateProfile(ctx, CustomerPatch{Address: &address})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.Address != "34 Stem Road" {
		t.Errorf("updated = %+v", updated)
	}
}
