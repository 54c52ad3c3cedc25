package imgur

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/carlcarl/imgurup/internal/config"
	"github.com/carlcarl/imgurup/internal/multipart"
)

// Client performs imgur API calls.
//
// The client is stateless with respect to tokens: callers pass the
// authorization value on each request, so a refreshed token takes effect on
// the very next attempt.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	clientID     string
	clientSecret string
	userAgent    string
	log          *slog.Logger
}

// NewClient creates an API client from settings.
//
// The client is configured with a 60 second timeout and an "imgurup"
// User-Agent header.
func NewClient(settings *config.Settings, log *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		baseURL:      settings.APIBase,
		clientID:     settings.ClientID,
		clientSecret: settings.ClientSecret,
		userAgent:    "imgurup",
		log:          log,
	}
}

// ClientIDAuthorization returns the Authorization header value for
// anonymous calls.
func (c *Client) ClientIDAuthorization() string {
	return "Client-ID " + c.clientID
}

// BearerAuthorization returns the Authorization header value for
// token-authenticated calls.
func (c *Client) BearerAuthorization(accessToken string) string {
	return "Bearer " + accessToken
}

// ListAlbums fetches the album list of the given account. "me" requires a
// bearer token; any other account is fetched with the client id.
func (c *Client) ListAlbums(ctx context.Context, account, accessToken string) (*Envelope, error) {
	authorization := c.ClientIDAuthorization()
	if account == "me" {
		authorization = c.BearerAuthorization(accessToken)
	}
	path := fmt.Sprintf("/3/account/%s/albums", account)
	return c.doEnvelope(ctx, http.MethodGet, path, nil, map[string]string{
		"Authorization": authorization,
	})
}

// UploadImage posts a prepared multipart body to the image endpoint with the
// given Authorization header value. The encoder guarantees
// header.ContentLength == len(body), which goes on the wire as the request
// Content-Length.
func (c *Client) UploadImage(ctx context.Context, body []byte, header multipart.Header, authorization string) (*Envelope, error) {
	return c.doEnvelope(ctx, http.MethodPost, "/3/image", body, map[string]string{
		"Authorization": authorization,
		"Content-Type":  header.ContentType,
	})
}

// doEnvelope issues a request and decodes the response envelope. Transport
// and decode failures are returned as errors; a success=false envelope is
// not an error here, classification belongs to the retry policy.
func (c *Client) doEnvelope(ctx context.Context, method, path string, body []byte, headers map[string]string) (*Envelope, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if body != nil {
		req.ContentLength = int64(len(body))
	}

	c.log.Debug("api request", "method", method, "path", path)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var envelope Envelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", path, err)
	}
	return &envelope, nil
}
