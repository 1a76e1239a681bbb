package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

// RecordedRequest is one request the fake server observed, with the
// form and query values already parsed.
type RecordedRequest struct {
	Method string
	Path   string
	Form   url.Values
}

// FakeLichess is an in-process double of the Lichess API for client
// tests. It serves HTTPS (the clients refuse anything else), answers
// the account-info and bot-upgrade calls every client constructor
// makes, records every request, and lets a test stub any further
// endpoint on its router.
type FakeLichess struct {
	Username string

	t      *testing.T
	router *chi.Mux
	server *httptest.Server

	mu            sync.Mutex
	playing       string
	upgradeStatus int
	upgradeError  string
	requests      []RecordedRequest
}

// NewFakeLichess starts the fake server. It is shut down with the test.
func NewFakeLichess(t *testing.T) *FakeLichess {
	f := &FakeLichess{
		t:        t,
		Username: "testbot",
		router:   chi.NewRouter(),
	}
	f.router.Use(f.record)
	f.router.Get("/api/account", f.handleAccount)
	f.router.Post("/api/bot/account/upgrade", f.handleUpgrade)

	f.server = httptest.NewTLSServer(f.router)
	t.Cleanup(f.server.Close)
	return f
}

// URL returns the fake server's https base URL.
func (f *FakeLichess) URL() string {
	return f.server.URL
}

// Client returns an HTTP client that trusts the fake server's certificate.
func (f *FakeLichess) Client() *http.Client {
	return f.server.Client()
}

// Handle stubs an endpoint on the fake server's router.
func (f *FakeLichess) Handle(method, pattern string, h http.HandlerFunc) {
	f.router.Method(method, pattern, h)
}

// SetUpgradeResponse overrides the bot-upgrade endpoint's answer. An
// errMsg renders as the usual {"error": ...} body.
func (f *FakeLichess) SetUpgradeResponse(status int, errMsg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upgradeStatus = status
	f.upgradeError = errMsg
}

// SetPlaying marks the account as playing the given game. The account
// payload reports it the way the real server does: a full URL with a
// color suffix.
func (f *FakeLichess) SetPlaying(gameID, color string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if gameID == "" {
		f.playing = ""
		return
	}
	f.playing = f.server.URL + "/" + gameID + "/" + color
}

// Requests returns a copy of every request observed so far.
func (f *FakeLichess) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]RecordedRequest(nil), f.requests...)
}

// LastRequest returns the most recent request, failing the test when
// none arrived.
func (f *FakeLichess) LastRequest() RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(f.t, f.requests, "no requests recorded")
	return f.requests[len(f.requests)-1]
}

func (f *FakeLichess) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Parse before the handler so the form body survives recording.
		_ = r.ParseForm()
		f.mu.Lock()
		f.requests = append(f.requests, RecordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Form:   r.Form,
		})
		f.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (f *FakeLichess) handleAccount(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	playing := f.playing
	f.mu.Unlock()
	WriteJSON(w, http.StatusOK, map[string]any{
		"id":       f.Username,
		"username": f.Username,
		"title":    "BOT",
		"online":   true,
		"playing":  playing,
	})
}

func (f *FakeLichess) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	status, errMsg := f.upgradeStatus, f.upgradeError
	f.mu.Unlock()
	if status == 0 {
		status = http.StatusOK
	}
	if errMsg != "" {
		WriteJSON(w, status, map[string]string{"error": errMsg})
		return
	}
	if status == http.StatusOK {
		WriteJSON(w, status, map[string]bool{"ok": true})
		return
	}
	w.WriteHeader(status)
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
