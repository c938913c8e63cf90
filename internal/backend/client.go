// Package backend implements the HTTP client for the remote deals backend.
// Every endpoint answers with the same {success, data, error} envelope; the
// envelope, not the HTTP status code, is authoritative for the outcome.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/skylabrooks/mi-rosarita-deals/internal/model"
)

// maxResponseBytes caps how much of a backend response is read (1MB).
const maxResponseBytes = 1 * 1024 * 1024

// Client handles communication with the deals backend.
type Client struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
}

// NewClient creates a backend client for the given base URL.
// timeout bounds every request end to end; authToken may be empty.
func NewClient(baseURL, authToken string, timeout time.Duration) *Client {
	return &Client{
		baseURL:   baseURL,
		authToken: authToken,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetDeals lists deals. A nil query sends no filter parameters.
func (c *Client) GetDeals(ctx context.Context, q *model.DealsQuery) (*model.Response[[]model.Deal], error) {
	params := url.Values{}
	if q != nil {
		if q.Category != "" {
			params.Set("category", q.Category)
		}
		if q.Location != "" {
			params.Set("location", q.Location)
		}
		if q.Limit > 0 {
			params.Set("limit", strconv.Itoa(q.Limit))
		}
		if q.Offset > 0 {
			params.Set("offset", strconv.Itoa(q.Offset))
		}
	}
	return request[[]model.Deal](ctx, c, http.MethodGet, "/deals", params)
}

// GetNearbyDeals lists deals around the given coordinates.
func (c *Client) GetNearbyDeals(ctx context.Context, q model.NearbyQuery) (*model.Response[[]model.Deal], error) {
	params := url.Values{}
	params.Set("latitude", formatFloat(q.Latitude))
	params.Set("longitude", formatFloat(q.Longitude))
	if q.Radius > 0 {
		params.Set("radius", formatFloat(q.Radius))
	}
	return request[[]model.Deal](ctx, c, http.MethodGet, "/deals/nearby", params)
}

// GetDealByID retrieves a single deal.
func (c *Client) GetDealByID(ctx context.Context, id string) (*model.Response[model.Deal], error) {
	return request[model.Deal](ctx, c, http.MethodGet, "/deals/"+url.PathEscape(id), nil)
}

// RedeemDeal redeems a deal for the authenticated user.
func (c *Client) RedeemDeal(ctx context.Context, id string) (*model.Response[model.RedemptionResult], error) {
	return request[model.RedemptionResult](ctx, c, http.MethodPost, "/deals/"+url.PathEscape(id)+"/redeem", nil)
}

// GetMyRedemptions lists the authenticated user's redemptions.
func (c *Client) GetMyRedemptions(ctx context.Context) (*model.Response[[]model.Redemption], error) {
	return request[[]model.Redemption](ctx, c, http.MethodGet, "/redemptions/me", nil)
}

// request performs one backend call and decodes the envelope.
// The envelope is decoded whatever the HTTP status; a body that is not a
// valid envelope is a transport-level failure.
func request[T any](ctx context.Context, c *Client, method, path string, params url.Values) (*model.Response[T], error) {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call backend: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var envelope model.Response[T]
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &envelope, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
