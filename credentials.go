package sdk

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// CSRFCookieName is the cookie the storefront backend issues its
// anti-forgery token under.
const CSRFCookieName = "csrftoken"

// CredentialStore owns the session token. There is at most one valid token
// per browser session: login overwrites any prior value, and the server is
// the only authority on expiry. Every other component reads the token
// through this interface, never holds a copy.
type CredentialStore interface {
	// SessionToken returns the last stored token, or false if none was
	// ever stored. It never fails.
	SessionToken() (string, bool)
	// SetSessionToken overwrites any prior token.
	SetSessionToken(token string) error
}

// MemoryCredentialStore keeps the session token in process memory. Use it
// for tests and short-lived programs; it does not survive a restart.
type MemoryCredentialStore struct {
	mu    sync.Mutex
	token string
	set   bool
}

// NewMemoryCredentialStore returns an empty in-memory store.
func NewMemoryCredentialStore() *MemoryCredentialStore {
	return &MemoryCredentialStore{}
}

// SessionToken returns the stored token, if any.
func (s *MemoryCredentialStore) SessionToken() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.set
}

// SetSessionToken overwrites the stored token.
func (s *MemoryCredentialStore) SetSessionToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.set = true
	return nil
}

// FileCredentialStore persists the session token to a small JSON file, so
// it survives process restarts the way the storefront pages kept it across
// reloads in origin-local storage.
type FileCredentialStore struct {
	mu   sync.Mutex
	path string
}

// NewFileCredentialStore returns a store backed by the given file path. The
// file is created on first SetSessionToken.
func NewFileCredentialStore(path string) *FileCredentialStore {
	return &FileCredentialStore{path: path}
}

type credentialFile struct {
	SessionToken string `json:"session_token"`
}

// SessionToken reads the persisted token. Any read or decode failure is
// reported as absence, matching the never-fails contract.
func (s *FileCredentialStore) SessionToken() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	var file credentialFile
	if err := json.Unmarshal(data, &file); err != nil || file.SessionToken == "" {
		return "", false
	}
	return file.SessionToken, true
}

// SetSessionToken overwrites the persisted token.
func (s *FileCredentialStore) SetSessionToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(credentialFile{SessionToken: token})
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// CookieSource supplies the raw outgoing Cookie header for the storefront
// origin. The CSRF token is parsed out of it freshly on every mutating
// request; the value is never cached because the backend may rotate the
// cookie between requests.
type CookieSource interface {
	CookieHeader() string
}

// StaticCookies is a fixed Cookie header value.
type StaticCookies string

// CookieHeader implements CookieSource.
func (s StaticCookies) CookieHeader() string { return string(s) }

// CookieFunc adapts a function to CookieSource.
type CookieFunc func() string

// CookieHeader implements CookieSource.
func (f CookieFunc) CookieHeader() string { return f() }

// CSRFToken reads the csrftoken cookie from the source's current header.
// It returns false when the header is empty or the cookie is absent.
func CSRFToken(src CookieSource) (string, bool) {
	if src == nil {
		return "", false
	}
	return cookieValue(src.CookieHeader(), CSRFCookieName)
}

// cookieValue finds the named cookie in a raw Cookie header. The name must
// match an entire pair key: "csrftoken=ABC; other=csrftokenXYZ" yields ABC
// and a cookie named csrftoken2 never matches a lookup for csrftoken.
// Values are percent-decoded; a value that fails to decode is returned as-is.
func cookieValue(header, name string) (string, bool) {
	if header == "" {
		return "", false
	}
	for _, part := range strings.Split(header, ";") {
		part = strings.TrimSpace(part)
		value, ok := strings.CutPrefix(part, name+"=")
		if !ok {
			continue
		}
		if decoded, err := url.PathUnescape(value); err == nil {
			value = decoded
		}
		return value, true
	}
	return "", false
}
