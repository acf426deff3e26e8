// Package opshero is a thin client for the Operations Hero helpdesk API.
// It submits repair requests and reports the upstream's verdict; all
// routing (locations, category, workflow) is static configuration.
package opshero

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"device-checkout/internal/config"
)

// SchoolLocations maps district school slugs to Operations Hero location
// identifiers.
var SchoolLocations = map[string]string{
	"kossman":        "748dba0b-9b01-4408-b2c2-d6bc7f8fc536",
	"cucinella":      "5cba7ac4-15f2-40d4-8299-2ef48c3d728e",
	"central-office": "76863b6d-0bf7-43d3-83f4-754677f7a962",
	"long-valley":    "399acf3a-8515-473e-86b1-ac1f7237b945",
	"old-farmers":    "b80ca82a-d847-4229-a454-417639eb044f",
	"flocktown":      "9a33a5d7-73a8-4d46-b452-c883423a3cfb",
}

// TicketInput describes one repair request to submit.
type TicketInput struct {
	SchoolID      string
	DeviceType    string
	FullName      string
	IssueType     string
	DeviceBarcode string
	Notes         string
	IsStaff       bool
}

// TicketResult is the accepted upstream ticket.
type TicketResult struct {
	ID string `json:"id"`
}

// APIError is a non-success response from the upstream service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("API Error: %d", e.StatusCode)
}

// UnknownLocationError means the school slug has no location mapping.
type UnknownLocationError struct {
	SchoolID string
}

func (e *UnknownLocationError) Error() string {
	return fmt.Sprintf("invalid school location: %s", e.SchoolID)
}

type Client struct {
	baseURL           string
	accountID         string
	apiKey            string
	reportingCategory string
	requester         string
	workflow          string
	locations         map[string]string
	httpClient        *http.Client
}

func NewClient(cfg *config.OpsHeroConfig) *Client {
	return &Client{
		baseURL:           strings.TrimRight(cfg.BaseURL, "/"),
		accountID:         cfg.AccountID,
		apiKey:            cfg.APIKey,
		reportingCategory: cfg.ReportingCategory,
		requester:         cfg.Requester,
		workflow:          cfg.Workflow,
		locations:         SchoolLocations,
		httpClient:        &http.Client{Timeout: 15 * time.Second},
	}
}

type requestPayload struct {
	Location          string            `json:"location"`
	Metadata          map[string]string `json:"metadata"`
	Priority          string            `json:"priority"`
	ReportingCategory string            `json:"reportingCategory"`
	Requester         string            `json:"requester"`
	Status            string            `json:"status"`
	Summary           string            `json:"summary"`
	Type              string            `json:"type"`
	Workflow          string            `json:"workflow"`
	EstimatedCost     *float64          `json:"estimatedCost"`
	EstimatedHours    *float64          `json:"estimatedHours"`
	ScheduledID       *string           `json:"scheduledRequestId"`
	Scheduling        scheduling        `json:"scheduling"`
}

type scheduling struct {
	Start     *string `json:"start"`
	Due       *string `json:"due"`
	Completed *string `json:"completed"`
}

type errorBody struct {
	Message string `json:"message"`
}

// CreateRequest submits a repair request. It returns *UnknownLocationError
// when the school has no location mapping and *APIError on any non-2xx
// upstream response; the caller writes nothing locally in either case.
func (c *Client) CreateRequest(ctx context.Context, in *TicketInput) (*TicketResult, error) {
	locationID, ok := c.locations[in.SchoolID]
	if !ok {
		return nil, &UnknownLocationError{SchoolID: in.SchoolID}
	}

	payload := requestPayload{
		Location:          locationID,
		Metadata:          map[string]string{"Directions_Room_Number": "Loaner Cart"},
		Priority:          "standard",
		ReportingCategory: c.reportingCategory,
		Requester:         c.requester,
		Status:            "new",
		Summary:           buildSummary(in),
		Type:              "triggered",
		Workflow:          c.workflow,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/accounts/%s/requests", c.baseURL, c.accountID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach helpdesk service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errBody errorBody
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errBody.Message}
	}

	var result TicketResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode helpdesk response: %w", err)
	}

	return &result, nil
}

// buildSummary renders the human-readable ticket body the technicians see.
func buildSummary(in *TicketInput) string {
	role := "Student"
	if in.IsStaff {
		role = "Staff"
	}

	parts := []string{
		fmt.Sprintf("Device Type: %s", in.DeviceType),
		fmt.Sprintf("Serial/Asset Tag: %s", in.DeviceBarcode),
		fmt.Sprintf("Issue: %s", in.IssueType),
		fmt.Sprintf("Submitted By: %s (%s)", in.FullName, role),
	}
	if in.Notes != "" {
		parts = append(parts, fmt.Sprintf("Additional Notes: %s", in.Notes))
	}
	parts = append(parts, "\nSubmitted via Device Checkout Kiosk")

	return strings.Join(parts, "\n")
}
