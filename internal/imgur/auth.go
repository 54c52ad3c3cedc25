package imgur

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/carlcarl/imgurup/internal/model"
)

// Fixed state token embedded in the authorization URL.
const authState = "imgurup"

// AuthorizationURL returns the page the user visits to obtain a PIN code.
// The URL is deterministic for a given client id.
func (c *Client) AuthorizationURL() string {
	return fmt.Sprintf("%s/oauth2/authorize?client_id=%s&response_type=pin&state=%s",
		c.baseURL, c.clientID, authState)
}

// ExchangePIN trades a user-supplied PIN for a token pair.
func (c *Client) ExchangePIN(ctx context.Context, pin string) (model.Credentials, error) {
	form := url.Values{
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
		"grant_type":    {"pin"},
		"pin":           {pin},
	}
	return c.exchangeTokens(ctx, form)
}

// RefreshTokens trades a refresh token for a new token pair.
func (c *Client) RefreshTokens(ctx context.Context, refreshToken string) (model.Credentials, error) {
	form := url.Values{
		"refresh_token": {refreshToken},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
		"grant_type":    {"refresh_token"},
	}
	return c.exchangeTokens(ctx, form)
}

// tokenResponse covers both shapes the token endpoint is known to return:
// tokens at the top level, or wrapped in the {success, data} envelope.
type tokenResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	Success      *bool           `json:"success"`
	Data         json.RawMessage `json:"data"`
}

func (c *Client) exchangeTokens(ctx context.Context, form url.Values) (model.Credentials, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/oauth2/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return model.Credentials{}, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/plain")

	c.log.Debug("token exchange", "grant_type", form.Get("grant_type"))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.Credentials{}, fmt.Errorf("token exchange: %w", err)
	}
	defer resp.Body.Close()

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return model.Credentials{}, fmt.Errorf("decode token response: %w", err)
	}

	if tr.Success != nil && !*tr.Success {
		envelope := &Envelope{Data: tr.Data}
		return model.Credentials{}, &AuthError{Reason: envelope.ErrorMessage()}
	}

	creds := model.Credentials{AccessToken: tr.AccessToken, RefreshToken: tr.RefreshToken}
	if !creds.Complete() && len(tr.Data) > 0 {
		if err := json.Unmarshal(tr.Data, &creds); err != nil {
			return model.Credentials{}, fmt.Errorf("decode token response data: %w", err)
		}
	}
	if !creds.Complete() {
		return model.Credentials{}, &AuthError{Reason: "token response is missing tokens"}
	}
	return creds, nil
}
