package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/amiri/dayplan/internal/domain/types"
)

// client wraps http.Client for the events API.
type client struct {
	http    *http.Client
	baseURL string
}

func newClient(baseURL string, timeout time.Duration) *client {
	return &client{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// createEvent POSTs one event and decodes the stored record.
func (c *client) createEvent(ctx context.Context, e Event) (types.Event, error) {
	body, err := json.Marshal(e)
	if err != nil {
		return types.Event{}, fmt.Errorf("failed to marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/events", bytes.NewReader(body))
	if err != nil {
		return types.Event{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return types.Event{}, fmt.Errorf("create request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		data, _ := io.ReadAll(resp.Body)
		return types.Event{}, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(data))
	}

	var created types.Event
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return types.Event{}, fmt.Errorf("failed to decode created event: %w", err)
	}
	return created, nil
}

// listEvents GETs the sorted event list.
func (c *client) listEvents(ctx context.Context) ([]types.Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/events", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var events []types.Event
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("failed to decode event list: %w", err)
	}
	return events, nil
}
