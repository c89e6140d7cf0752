// HTTP client for the auth proxy served by `webplayer serve`
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/desertthunder/webplayer/internal/shared"
)

var _ Refresher = (*ProxyService)(nil)

// ProxyService makes raw HTTP requests to the auth proxy.
type ProxyService struct {
	baseURL    string
	httpClient *http.Client
}

// NewProxyService creates a proxy client. An empty baseURL means http://localhost:8888.
func NewProxyService(baseURL string, client *http.Client) *ProxyService {
	if baseURL == "" {
		baseURL = "http://localhost:8888"
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &ProxyService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
	}
}

// APIResponse represents a raw proxy response with status and body.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
}

// LoginURL is the proxy endpoint that starts the authorization flow.
func (p *ProxyService) LoginURL() string {
	return p.baseURL + "/login"
}

// Get performs a GET request to the specified path and returns the raw response.
func (p *ProxyService) Get(ctx context.Context, path string) (*APIResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	apiResp := &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}

	var jsonData any
	if err := json.Unmarshal(body, &jsonData); err == nil {
		apiResp.IsJSON = true
		apiResp.JSONData = jsonData
	}

	return apiResp, nil
}

type refreshResponse struct {
	AccessToken string `json:"access_token"`
	Error       string `json:"error"`
}

// Refresh asks the proxy for a new access token. The refresh token itself is not rotated.
func (p *ProxyService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", shared.ErrNoRefreshToken
	}

	resp, err := p.Get(ctx, "/refresh_token?"+url.Values{"refresh_token": {refreshToken}}.Encode())
	if err != nil {
		return "", fmt.Errorf("%w: %w", shared.ErrRefreshFailed, err)
	}

	var payload refreshResponse
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return "", fmt.Errorf("%w: status %d: invalid response body", shared.ErrRefreshFailed, resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d: %s", shared.ErrRefreshFailed, resp.StatusCode, payload.Error)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", shared.ErrRefreshFailed)
	}

	return payload.AccessToken, nil
}
