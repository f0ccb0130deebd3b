package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPAuthClient talks to a hosted GoTrue-style auth service.
type HTTPAuthClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewHTTPAuthClient(baseURL, apiKey string) *HTTPAuthClient {
	return &HTTPAuthClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type tokenResponseDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

func (dto *tokenResponseDTO) toSession(now time.Time) *Session {
	return &Session{
		UserID:       dto.User.ID,
		Email:        dto.User.Email,
		AccessToken:  dto.AccessToken,
		RefreshToken: dto.RefreshToken,
		ExpiresAt:    now.Add(time.Duration(dto.ExpiresIn) * time.Second),
	}
}

func (c *HTTPAuthClient) post(ctx context.Context, op, path, accessToken string, payload interface{}, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%s: failed to marshal payload: %w", op, err)
		}

		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", op, err)
	}

	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("apikey", c.apiKey)

	if accessToken != "" {
		req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", accessToken))
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: failed to post: %w", op, err)
	}

	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		data, _ := io.ReadAll(res.Body)
		return fmt.Errorf("%s: auth service returned http code %v: %s", op, res.Status, string(data))
	}

	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			return fmt.Errorf("%s: failed to decode json: %w", op, err)
		}
	}

	return nil
}

func (c *HTTPAuthClient) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var dto tokenResponseDTO

	payload := map[string]string{"email": email, "password": password}
	if err := c.post(ctx, "SignIn", "/token?grant_type=password", "", payload, &dto); err != nil {
		return nil, err
	}

	return dto.toSession(time.Now().UTC()), nil
}

func (c *HTTPAuthClient) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	var dto tokenResponseDTO

	payload := map[string]string{"refresh_token": refreshToken}
	if err := c.post(ctx, "Refresh", "/token?grant_type=refresh_token", "", payload, &dto); err != nil {
		return nil, err
	}

	return dto.toSession(time.Now().UTC()), nil
}

func (c *HTTPAuthClient) SignOut(ctx context.Context, accessToken string) error {
	return c.post(ctx, "SignOut", "/logout", accessToken, nil, nil)
}
