package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
)

//go:generate mockgen -source=client.go -destination=mocks/client_mock.go -package=mocks

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient HTTPClient
}

func NewClient(baseURL string, apiKey string, client HTTPClient) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: client,
	}
}

// GetAssets - запрос полного списка активов с текущими ценами
func (c *Client) GetAssets(ctx context.Context) ([]AssetResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+AssetsPath, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(APIKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, HandleErrorResponse(resp)
	}

	var result []AssetResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode assets: %w", err)
	}
	return result, nil
}

func HandleErrorResponse(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return NewRateLimitError(resp.Header)
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	default:
		return fmt.Errorf("%w: status %d", ErrServiceUnavailable, resp.StatusCode)
	}
}
