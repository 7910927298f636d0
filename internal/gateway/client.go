// Package gateway is the thin request/response contract to the cargo
// shipment backend. It only moves payloads and surfaces the backend error
// envelope; business rules stay server-side.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"cargo-entry-service/internal/models"
	"cargo-entry-service/internal/numeric"
	"cargo-entry-service/internal/party"
)

// Client calls the cargo shipment backend API.
type Client struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
	logger     *logrus.Entry
}

// NewClient creates a backend API client.
func NewClient(baseURL, authToken string, logger *logrus.Logger) *Client {
	return &Client{
		baseURL:   baseURL,
		authToken: authToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger.WithField("component", "gateway"),
	}
}

// Create submits a normalized shipment payload via POST /cargo-shipment.
func (c *Client) Create(ctx context.Context, payload models.CreateShipmentRequest) (*models.ShipmentRecord, error) {
	var record models.ShipmentRecord
	if err := c.do(ctx, http.MethodPost, "/cargo-shipment", payload, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// List retrieves shipments via GET /cargo-shipments, filterable by status,
// branch, and date range.
func (c *Client) List(ctx context.Context, filters models.ListShipmentsFilters) ([]models.ShipmentRecord, error) {
	query := url.Values{}
	if filters.StatusID > 0 {
		query.Set("shipment_status_id", strconv.Itoa(filters.StatusID))
	}
	if filters.BranchID > 0 {
		query.Set("branch_id", strconv.Itoa(filters.BranchID))
	}
	if filters.DateFrom != "" {
		query.Set("date_from", filters.DateFrom)
	}
	if filters.DateTo != "" {
		query.Set("date_to", filters.DateTo)
	}

	path := "/cargo-shipments"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var records []models.ShipmentRecord
	if err := c.do(ctx, http.MethodGet, path, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// GetByID retrieves one shipment via GET /cargo-shipment/:id.
func (c *Client) GetByID(ctx context.Context, id int) (*models.ShipmentRecord, error) {
	var record models.ShipmentRecord
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/cargo-shipment/%d", id), nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// MarkCargoIn marks a cargo as arrived via PATCH /cargo-shipment/:id/mark-in.
// An id that does not coerce to a positive integer fails fast locally,
// before any request is made.
func (c *Client) MarkCargoIn(ctx context.Context, cargoID interface{}, body map[string]interface{}) error {
	id, err := parseCargoID(cargoID)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/cargo-shipment/%d/mark-in", id), body, nil)
}

// MarkCargoOut marks a cargo as departed via PATCH /cargo-shipment/:id/mark-not.
func (c *Client) MarkCargoOut(ctx context.Context, cargoID interface{}, body map[string]interface{}) error {
	id, err := parseCargoID(cargoID)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/cargo-shipment/%d/mark-not", id), body, nil)
}

// ListParties retrieves the raw party reference list via GET /parties.
// Role filtering happens client-side: the backend has no role filter.
func (c *Client) ListParties(ctx context.Context) ([]party.Record, error) {
	var records []party.Record
	if err := c.do(ctx, http.MethodGet, "/parties", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// parseCargoID validates a cargo id locally before any network call.
func parseCargoID(raw interface{}) (int, error) {
	n := numeric.ParseNumber(raw)
	if numeric.IsNaN(n) || n <= 0 || n != float64(int(n)) {
		return 0, models.NewValidationError("cargo_id", "must be a positive integer")
	}
	return int(n), nil
}

// do performs one backend request, encoding the body as JSON and decoding
// the response into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewBuffer(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reqErr := newRequestError(resp.StatusCode, respBody)
		c.logger.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
			"status": resp.StatusCode,
		}).Warn(reqErr.Message)
		return reqErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
