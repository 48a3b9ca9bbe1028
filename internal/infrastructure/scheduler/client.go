// Package scheduler implements the HTTP client for the interview scheduling
// service. The collaborator is a Spring-style JSON API; payload fields are
// camelCase and timestamps are RFC 3339.
package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ibs-platform/user-directory/internal/api/metrics"
	"github.com/ibs-platform/user-directory/internal/core/domain"
)

const (
	slotsBetweenPath = "/api/v1/slots/overlapping/slots"
	allSlotsPath     = "/api/v1/slots"

	defaultTimeout = 10 * time.Second
)

// Client reaches the scheduling service over synchronous HTTP calls. Failures
// surface as domain.ErrUpstreamUnavailable; no retry policy is applied here.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a scheduler client for the given base URL. When httpClient
// is nil a client with a sane default timeout is used.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

// GetSlotsBetween returns the assignment records overlapping [start, end].
// Whether the boundary itself is inclusive is decided by the scheduling
// service; the bounds are forwarded untouched.
func (c *Client) GetSlotsBetween(ctx context.Context, start, end time.Time) ([]domain.SlotAssignment, error) {
	query := url.Values{}
	query.Set("startTime", start.Format(time.RFC3339))
	query.Set("endTime", end.Format(time.RFC3339))

	return c.fetch(ctx, "slots_between", slotsBetweenPath+"?"+query.Encode())
}

// GetAllSlots returns the full, unwindowed set of assignment records.
func (c *Client) GetAllSlots(ctx context.Context) ([]domain.SlotAssignment, error) {
	return c.fetch(ctx, "all_slots", allSlotsPath)
}

func (c *Client) fetch(ctx context.Context, operation, path string) ([]domain.SlotAssignment, error) {
	started := time.Now()
	slots, err := c.doFetch(ctx, path)
	metrics.SchedulerRequestDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.SchedulerRequestsTotal.WithLabelValues(operation, outcome).Inc()
	return slots, err
}

func (c *Client) doFetch(ctx context.Context, path string) ([]domain.SlotAssignment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrUpstreamUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %s", domain.ErrUpstreamUnavailable, strconv.Itoa(resp.StatusCode))
	}

	var slots []domain.SlotAssignment
	if err := json.NewDecoder(resp.Body).Decode(&slots); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrUpstreamUnavailable, err)
	}
	return slots, nil
}
