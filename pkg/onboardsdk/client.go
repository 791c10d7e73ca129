// Package onboardsdk is a Go client for the vallebot HTTP API. It carries the
// wire types shared with the server handlers.
package onboardsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client talks to a vallebot instance. AdminToken is required for the
// operator endpoints only.
type Client struct {
	BaseURL    string
	AdminToken string
	HTTPClient *http.Client
}

func NewClient(baseURL, adminToken string) *Client {
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		AdminToken: adminToken,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// SendText posts a text message to the webhook as if delivered by the
// messaging provider.
func (c *Client) SendText(ctx context.Context, phone, text string) (*Reply, error) {
	var reply Reply
	if err := c.do(ctx, http.MethodPost, "/webhook/whatsapp", false, NewTextPayload(phone, text), &reply, http.StatusOK); err != nil {
		return nil, err
	}
	return &reply, nil
}

func (c *Client) CreateInvitation(ctx context.Context, phone string) (*Invitation, error) {
	var inv Invitation
	req := CreateInvitationRequest{Phone: phone}
	if err := c.do(ctx, http.MethodPost, "/v1/invitations", true, req, &inv, http.StatusCreated); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (c *Client) ListInvitations(ctx context.Context, includeConsumed bool) ([]Invitation, error) {
	path := "/v1/invitations"
	if includeConsumed {
		path += "?all=true"
	}
	var out ListInvitationsResponse
	if err := c.do(ctx, http.MethodGet, path, true, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Invitations, nil
}

func (c *Client) RefreshRelationship(ctx context.Context, req RefreshRequest) (*Relationship, error) {
	var rel Relationship
	if err := c.do(ctx, http.MethodPost, "/v1/relationships/refresh", true, req, &rel, http.StatusOK); err != nil {
		return nil, err
	}
	return &rel, nil
}

func (c *Client) SearchRelationships(ctx context.Context, professionalID int64, query string, k int) (*SearchResponse, error) {
	q := url.Values{"q": {query}}
	if k > 0 {
		q.Set("k", strconv.Itoa(k))
	}
	path := fmt.Sprintf("/v1/professionals/%d/relationships/search?%s", professionalID, q.Encode())

	var out SearchResponse
	if err := c.do(ctx, http.MethodGet, path, true, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetLiveness checks if the service is alive.
func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.do(ctx, http.MethodGet, "/livez", false, nil, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}

// GetReadiness checks if the service and its dependencies are ready.
func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.do(ctx, http.MethodGet, "/readyz", false, nil, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}

func (c *Client) do(
	ctx context.Context,
	method, path string,
	admin bool,
	in, out any,
	expectedStatus int,
) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if admin {
		req.Header.Set("Authorization", "Bearer "+c.AdminToken)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, raw)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
