// ABOUTME: LibreLinkUp API client for pulling glucose readings.
// ABOUTME: Handles login, connection listing, and logbook/graph fetches.
package libre

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// DefaultBaseURL is the LibreLinkUp API endpoint.
const DefaultBaseURL = "https://api.libreview.io"

const (
	productHeader = "llu.android"
	versionHeader = "4.7.0"
)

// lluTimestamp is the timestamp format the API uses in reading payloads.
const lluTimestamp = "1/2/2006 3:04:05 PM"

// Client talks to the LibreLinkUp API. Create with NewClient, then Login
// before any data call.
type Client struct {
	baseURL    string
	httpClient *http.Client
	deviceID   string
	token      string
}

// NewClient creates a client against the given base URL (DefaultBaseURL for
// production). Each client gets a generated device id, which the API expects
// to stay stable within a session.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		deviceID:   uuid.NewString(),
	}
}

// Patient is one connection (sensor wearer) visible to the account.
type Patient struct {
	PatientID string `json:"patientId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Reading is one glucose measurement in mg/dL.
type Reading struct {
	Timestamp time.Time
	Value     float64
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Status int `json:"status"`
	Data   struct {
		AuthTicket struct {
			Token string `json:"token"`
		} `json:"authTicket"`
	} `json:"data"`
}

// Login authenticates with email/password and stores the session token.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return fmt.Errorf("failed to encode login request: %w", err)
	}

	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/llu/auth/login", bytes.NewReader(body), &resp); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if resp.Data.AuthTicket.Token == "" {
		return fmt.Errorf("login failed: no auth token in response (status %d)", resp.Status)
	}
	c.token = resp.Data.AuthTicket.Token
	return nil
}

type connectionsResponse struct {
	Data []Patient `json:"data"`
}

// Connections lists the patients visible to the authenticated account.
func (c *Client) Connections(ctx context.Context) ([]Patient, error) {
	var resp connectionsResponse
	if err := c.do(ctx, http.MethodGet, "/llu/connections", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}
	return resp.Data, nil
}

type measurement struct {
	Timestamp string  `json:"Timestamp"`
	Value     float64 `json:"ValueInMgPerDl"`
}

type logbookResponse struct {
	Data []measurement `json:"data"`
}

type graphResponse struct {
	Data struct {
		GraphData []measurement `json:"graphData"`
	} `json:"data"`
}

// Logbook fetches roughly the last two weeks of scanned readings.
func (c *Client) Logbook(ctx context.Context, patientID string) ([]Reading, error) {
	var resp logbookResponse
	path := fmt.Sprintf("/llu/connections/%s/logbook", patientID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch logbook: %w", err)
	}
	return convertMeasurements(resp.Data)
}

// Graph fetches the last ~12 hours of historic readings.
func (c *Client) Graph(ctx context.Context, patientID string) ([]Reading, error) {
	var resp graphResponse
	path := fmt.Sprintf("/llu/connections/%s/graph", patientID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch graph: %w", err)
	}
	return convertMeasurements(resp.Data.GraphData)
}

func convertMeasurements(ms []measurement) ([]Reading, error) {
	readings := make([]Reading, 0, len(ms))
	for _, m := range ms {
		t, err := time.Parse(lluTimestamp, m.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to parse reading timestamp %q: %w", m.Timestamp, err)
		}
		readings = append(readings, Reading{Timestamp: t, Value: m.Value})
	}
	return readings, nil
}

func (c *Client) do(ctx context.Context, method, path string, body *bytes.Reader, out any) error {
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	}
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("product", productHeader)
	req.Header.Set("version", versionHeader)
	req.Header.Set("device-id", c.deviceID)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
