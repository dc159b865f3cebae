package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"i4.energy/across/mc20/modem"
)

func newTestServer(t *testing.T) (*Server, *modem.TestTransport) {
	t.Helper()

	tr := modem.NewTestTransport()
	tr.Respond("AT\r", "OK\r\n")

	config, err := modem.NewConfigBuilder().
		WithDialer(modem.DialerFunc(func(context.Context) (modem.Transport, error) {
			return tr, nil
		})).
		WithProbeInterval(time.Millisecond).
		Build()
	if err != nil {
		t.Fatalf("unexpected error from Build(): %v", err)
	}

	m, err := modem.New(context.Background(), config)
	if err != nil {
		t.Fatalf("failed to create modem: %v", err)
	}
	t.Cleanup(func() { m.Close() })

	return &Server{
		Logger: slog.New(slog.DiscardHandler),
		Modem:  m,
	}, tr
}

func TestHandleAT(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		reply  []string
		status int
		match  string
	}{
		{
			name:   "Direct reply",
			body:   `{"command":"AT+QGNSSC?","expect":"OK"}`,
			reply:  []string{"OK\r\n"},
			status: http.StatusOK,
			match:  "direct",
		},
		{
			name:   "Echoed reply with default expectation",
			body:   `{"command":"AT+QGNSSC?"}`,
			reply:  []string{"AT+QGNSSC?\r\r\nOK\r\n"},
			status: http.StatusOK,
			match:  "echo",
		},
		{
			name:   "Error reply",
			body:   `{"command":"AT+QGNSSC?"}`,
			reply:  []string{"ERROR\r\n"},
			status: http.StatusBadGateway,
		},
		{
			name:   "No reply",
			body:   `{"command":"AT+QGNSSC?"}`,
			status: http.StatusGatewayTimeout,
		},
		{
			name:   "Missing command",
			body:   `{"expect":"OK"}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "Bad JSON",
			body:   `{`,
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, tr := newTestServer(t)
			tr.Respond("AT+QGNSSC?\r", tt.reply...)

			req := httptest.NewRequest(http.MethodPost, "/at", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			s.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("expected status %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
			if tt.match == "" {
				return
			}

			var resp struct {
				Match string `json:"match"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Match != tt.match {
				t.Errorf("expected match %q, got %q", tt.match, resp.Match)
			}
		})
	}
}

func TestHandleATWrongMethod(t *testing.T) {
	s, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/at", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	s, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	if err := s.Modem.End(context.Background()); err != nil {
		t.Fatalf("unexpected error from End(): %v", err)
	}

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status %d, got %d", http.StatusServiceUnavailable, rec.Code)
	}

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/at", strings.NewReader(`{"command":"AT"}`)))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status %d for command without session, got %d", http.StatusServiceUnavailable, rec.Code)
	}
}
