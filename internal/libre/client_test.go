// ABOUTME: Tests for the LibreLinkUp client against a stub API server.
// ABOUTME: Covers login, headers, timestamp parsing, and error statuses.
package libre

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newStubServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/llu/auth/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if r.Header.Get("product") != "llu.android" || r.Header.Get("device-id") == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Password != "secret" {
			fmt.Fprint(w, `{"status":2,"data":{}}`)
			return
		}
		fmt.Fprint(w, `{"status":0,"data":{"authTicket":{"token":"tok-123"}}}`)
	})

	mux.HandleFunc("/llu/connections", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, `{"data":[{"patientId":"p1","firstName":"Ada","lastName":"L"}]}`)
	})

	mux.HandleFunc("/llu/connections/p1/logbook", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[
			{"Timestamp":"1/5/2026 8:30:00 AM","ValueInMgPerDl":98},
			{"Timestamp":"1/5/2026 12:15:00 PM","ValueInMgPerDl":142}
		]}`)
	})

	mux.HandleFunc("/llu/connections/p1/graph", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"graphData":[
			{"Timestamp":"1/5/2026 8:45:00 AM","ValueInMgPerDl":101}
		]}}`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func loggedInClient(t *testing.T) *Client {
	t.Helper()
	srv := newStubServer(t)
	c := NewClient(srv.URL)
	if err := c.Login(context.Background(), "a@example.com", "secret"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	return c
}

func TestLoginBadCredentials(t *testing.T) {
	srv := newStubServer(t)
	c := NewClient(srv.URL)
	if err := c.Login(context.Background(), "a@example.com", "wrong"); err == nil {
		t.Error("expected error for rejected credentials")
	}
}

func TestConnections(t *testing.T) {
	c := loggedInClient(t)
	patients, err := c.Connections(context.Background())
	if err != nil {
		t.Fatalf("Connections failed: %v", err)
	}
	if len(patients) != 1 || patients[0].PatientID != "p1" {
		t.Errorf("unexpected patients: %+v", patients)
	}
}

func TestConnectionsUnauthenticated(t *testing.T) {
	srv := newStubServer(t)
	c := NewClient(srv.URL)
	if _, err := c.Connections(context.Background()); err == nil {
		t.Error("expected error without login")
	}
}

func TestLogbook(t *testing.T) {
	c := loggedInClient(t)
	readings, err := c.Logbook(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Logbook failed: %v", err)
	}
	if len(readings) != 2 {
		t.Fatalf("expected 2 readings, got %d", len(readings))
	}
	want := time.Date(2026, 1, 5, 8, 30, 0, 0, time.UTC)
	if !readings[0].Timestamp.Equal(want) {
		t.Errorf("unexpected timestamp %v, want %v", readings[0].Timestamp, want)
	}
	if readings[1].Value != 142 {
		t.Errorf("unexpected value %v", readings[1].Value)
	}
}

func TestGraph(t *testing.T) {
	c := loggedInClient(t)
	readings, err := c.Graph(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Graph failed: %v", err)
	}
	if len(readings) != 1 || readings[0].Value != 101 {
		t.Errorf("unexpected readings: %+v", readings)
	}
}
