package sdk

import (
	"path/filepath"
	"testing"
)

func TestCSRFTokenLookup(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   string
		found  bool
	}{
		{
			name:   "single cookie",
			header: "csrftoken=ABC",
			want:   "ABC",
			found:  true,
		},
		{
			name:   "name as substring of another value is not a match",
			header: "csrftoken=ABC; othertoken=csrftokenXYZ",
			want:   "ABC",
			found:  true,
		},
		{
			name:   "similarly named cookie does not match",
			header: "csrftoken2=NOPE; csrftoken=ABC",
			want:   "ABC",
			found:  true,
		},
		{
			name:   "target not first",
			header: "sessionid=s1; csrftoken=DEF",
			want:   "DEF",
			found:  true,
		},
		{
			name:   "no spaces between pairs",
			header: "a=1;csrftoken=GHI;b=2",
			want:   "GHI",
			found:  true,
		},
		{
			name:   "percent-encoded value",
			header: "csrftoken=a%2Fb",
			want:   "a/b",
			found:  true,
		},
		{
			name:   "empty header",
			header: "",
			found:  false,
		},
		{
			name:   "cookie absent",
			header: "sessionid=s1; theme=dark",
			found:  false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, found := CSRFToken(StaticCookies(tc.header))
			if found != tc.found {
				t.Fatalf("found = %v, want %v", found, tc.found)
			}
			if got != tc.want {
				t.Fatalf("token = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCSRFTokenNilSource(t *testing.T) {
	if _, found := CSRFToken(nil); found {
		t.Fatal("nil source should report absence")
	}
}

func TestMemoryCredentialStore(t *testing.T) {
	store := NewMemoryCredentialStore()
	if _, ok := store.SessionToken(); ok {
		t.Fatal("fresh store should hold no token")
	}
	if err := store.SetSessionToken("first"); err != nil {
		t.Fatal(err)
	}
	if err := store.SetSessionToken("second"); err != nil {
		t.Fatal(err)
	}
	token, ok := store.SessionToken()
	if !ok || token != "second" {
		t.Fatalf("token = %q, %v; want overwrite to win", token, ok)
	}
}

func TestFileCredentialStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds", "session.json")

	store := NewFileCredentialStore(path)
	if _, ok := store.SessionToken(); ok {
		t.Fatal("missing file should read as absent")
	}
	if err := store.SetSessionToken("tok-123"); err != nil {
		t.Fatal(err)
	}

	// A second store on the same path sees the token, the way a reloaded
	// page sees origin-local storage.
	reopened := NewFileCredentialStore(path)
	token, ok := reopened.SessionToken()
	if !ok || token != "tok-123" {
		t.Fatalf("token = %q, %v; want persisted value", token, ok)
	}

	if err := reopened.SetSessionToken("tok-456"); err != nil {
		t.Fatal(err)
	}
	token, _ = store.SessionToken()
	if token != "tok-456" {
		t.Fatalf("token = %q, want overwrite visible through first handle", token)
	}
}
