// Package knowledge adapts the external knowledge service to the engine's
// QueryInvoker and TransformationExecutor ports over its REST API.
package knowledge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"julee/internal/validation/models"
	id "julee/pkg/domain"
	dErrors "julee/pkg/domain-errors"
)

// Client talks to the knowledge service. Every call carries its own timeout
// so a stalled query cannot hold a validation stage open indefinitely.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

type Option func(*Client)

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("knowledge service base URL is required")
	}
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		timeout:    30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type invokeRequest struct {
	QueryID    string `json:"query_id"`
	DocumentID string `json:"document_id"`
	ContentRef string `json:"content_ref"`
}

type invokeResponse struct {
	Score int `json:"score"`
}

// Invoke runs one scoring query. Timeouts surface as context.DeadlineExceeded
// so the scorer classifies them as CodeTimeout.
func (c *Client) Invoke(ctx context.Context, queryID id.QueryID, doc *models.Document) (int, error) {
	var resp invokeResponse
	err := c.post(ctx, "/v1/queries/invoke", invokeRequest{
		QueryID:    queryID.String(),
		DocumentID: doc.ID.String(),
		ContentRef: doc.ContentRef,
	}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.Score, nil
}

type transformRequest struct {
	DocumentID string   `json:"document_id"`
	ContentRef string   `json:"content_ref"`
	QueryIDs   []string `json:"query_ids"`
}

type transformResponse struct {
	DocumentID string `json:"document_id"`
}

// Transform runs the policy's transformation queries and returns the id of
// the new document the service captured.
func (c *Client) Transform(ctx context.Context, doc *models.Document, queryIDs []id.QueryID) (id.DocumentID, error) {
	req := transformRequest{
		DocumentID: doc.ID.String(),
		ContentRef: doc.ContentRef,
		QueryIDs:   make([]string, len(queryIDs)),
	}
	for i, queryID := range queryIDs {
		req.QueryIDs[i] = queryID.String()
	}

	var resp transformResponse
	if err := c.post(ctx, "/v1/queries/transform", req, &resp); err != nil {
		return "", err
	}
	newID, err := id.ParseDocumentID(resp.DocumentID)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeUnavailable, "knowledge service returned an invalid document id")
	}
	return newID, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || callCtx.Err() != nil {
			return context.DeadlineExceeded
		}
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "knowledge service unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return dErrors.Newf(dErrors.CodeUnavailable, "knowledge service returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "decode knowledge service response")
	}
	return nil
}
