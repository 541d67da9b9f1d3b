package ephemeris

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/NikitHamal/flashy-astro-go/internal/config"
)

// Client is the HTTP client for the external ephemeris resolver.
type Client struct {
	HTTPClient *http.Client
	BaseURL    string
	logger     *logrus.Logger
}

// NewClient creates an ephemeris client from config.
func NewClient(cfg *config.EphemerisConfig, logger *logrus.Logger) *Client {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = logrus.New()
	}

	return &Client{
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		BaseURL: strings.TrimSuffix(cfg.ServiceURL, "/"),
		logger:  logger,
	}
}

// HealthCheck checks whether the resolver is reachable.
func (c *Client) HealthCheck(ctx context.Context) (*HealthResponse, error) {
	var response HealthResponse
	if err := c.makeRequest(ctx, http.MethodGet, "/health", nil, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// ResolvePositions asks the resolver to compute a chart's positions.
func (c *Client) ResolvePositions(ctx context.Context, req *PositionsRequest) (*PositionsResponse, error) {
	var response PositionsResponse
	if err := c.makeRequest(ctx, http.MethodPost, "/api/positions", req, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (c *Client) makeRequest(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	url := c.BaseURL + path

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.WithError(err).Warn("Error closing response body")
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errorResp ErrorResponse
		if err := json.Unmarshal(respBody, &errorResp); err == nil && errorResp.Error != "" {
			return fmt.Errorf("ephemeris service error (%d): %s", resp.StatusCode, errorResp.Error)
		}
		return fmt.Errorf("ephemeris service error (%d): %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return nil
}
