package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	log "github.com/sirupsen/logrus"
)

const DefaultBaseURL = "https://api.polygon.io"

// Client is a thin REST client for the market data provider. All typed
// fetch operations live in quotes.go, history.go, options.go and status.go.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) makeRequestURL(elem ...string) (string, error) {
	parsedURL, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("makeRequestURL: failed to parse base URL: %w", err)
	}

	parsedURL.Path = path.Join(append([]string{parsedURL.Path}, elem...)...)

	return parsedURL.String(), nil
}

// get issues a single GET request and decodes the JSON body into out. A
// non-2xx status yields a *ProviderError.
func (c *Client) get(ctx context.Context, op, requestURL string, query url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", op, err)
	}

	q := req.URL.Query()
	for key, values := range query {
		for _, v := range values {
			q.Add(key, v)
		}
	}

	req.URL.RawQuery = q.Encode()
	req.Header.Add("Accept", "application/json")
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))

	log.Debugf("%s: fetching from %v", op, req.URL.String())

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: failed to fetch: %w", op, err)
	}

	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(res.Body)
		return newProviderError(op, res.StatusCode, string(body))
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: failed to decode json: %w", op, err)
	}

	return nil
}
