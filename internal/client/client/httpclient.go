package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/pixeldrop/pixeldrop/internal/client/models"
)

// HTTPClient talks to the pixeldrop server's JSON API.
type HTTPClient struct {
	baseURL      string
	http         *http.Client
	sessionToken string
}

func NewHTTPClient(baseURL string, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

type authRequest struct {
	Password string `json:"password"`
}

type authResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Error   string `json:"error"`
}

type presignRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
}

type presignResponse struct {
	Success      bool   `json:"success"`
	PresignedURL string `json:"presignedUrl"`
	PublicURL    string `json:"publicUrl"`
	Key          string `json:"key"`
	Error        string `json:"error"`
}

func (c *HTTPClient) Login(ctx context.Context, password string) error {
	var resp authResponse
	status, err := c.postJSON(ctx, "/api/auth", authRequest{Password: password}, &resp)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	switch {
	case status == http.StatusOK && resp.Success:
		c.sessionToken = resp.Token
		return nil
	case status == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrInvalidPassword, resp.Error)
	default:
		return fmt.Errorf("login failed (status %d): %s", status, resp.Error)
	}
}

func (c *HTTPClient) Presign(ctx context.Context, fileName, contentType string) (*models.PresignGrant, error) {
	var resp presignResponse
	status, err := c.postJSON(ctx, "/api/presign", presignRequest{
		FileName:    fileName,
		ContentType: contentType,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	switch {
	case status == http.StatusOK && resp.Success &&
		resp.PresignedURL != "" && resp.PublicURL != "" && resp.Key != "":
		return &models.PresignGrant{
			UploadURL: resp.PresignedURL,
			PublicURL: resp.PublicURL,
			Key:       resp.Key,
		}, nil
	case status == http.StatusUnauthorized:
		return nil, fmt.Errorf("%w: %s", ErrUnauthorized, resp.Error)
	case resp.Error != "":
		return nil, fmt.Errorf("presign failed (status %d): %s", status, resp.Error)
	default:
		return nil, fmt.Errorf("presign failed (status %d): incomplete response", status)
	}
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health status %d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}

// postJSON sends payload and decodes the response body into out. A
// transport-level failure is returned as an error; an HTTP error status is
// not, so callers can branch on it together with the decoded body.
func (c *HTTPClient) postJSON(ctx context.Context, path string, payload, out any) (int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.sessionToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.sessionToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("decoding response: %w", err)
	}
	return resp.StatusCode, nil
}
