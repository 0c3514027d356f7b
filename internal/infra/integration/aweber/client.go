package aweber

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/webinarlab/lead-intake/internal/config"
)

const (
	DefaultBaseURL = "https://api.aweber.com/1.0"
	DefaultAuthURL = "https://auth.aweber.com/oauth2/token"
)

type Client struct {
	BaseURL string
	AuthURL string

	cfg  config.AWeberConfig
	http *http.Client
}

func NewClient(cfg config.AWeberConfig) *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		AuthURL: DefaultAuthURL,
		cfg:     cfg,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// AccessToken exchanges the long-lived refresh token for a bearer token.
// Tokens are not cached: one exchange per submission, like the original
// funnel did.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	if c.cfg.ClientID == "" || c.cfg.ClientSecret == "" || c.cfg.RefreshToken == "" {
		return "", fmt.Errorf("aweber credentials not configured")
	}

	payload := tokenRequest{
		GrantType:    "refresh_token",
		RefreshToken: c.cfg.RefreshToken,
		ClientID:     c.cfg.ClientID,
		ClientSecret: c.cfg.ClientSecret,
	}
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.AuthURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("aweber token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return "", &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("aweber token decode failed: %w", err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("aweber returned an empty access token")
	}

	return token.AccessToken, nil
}

// FindSubscriber looks a subscriber up by exact email match on the target
// list. A missing subscriber is (nil, nil), not an error.
func (c *Client) FindSubscriber(ctx context.Context, token, email string) (*Subscriber, error) {
	endpoint := fmt.Sprintf("%s?ws.op=find&email=%s", c.subscribersURL(), url.QueryEscape(email))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req, token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("aweber lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var found findSubscribersResponse
	if err := json.NewDecoder(resp.Body).Decode(&found); err != nil {
		return nil, fmt.Errorf("aweber lookup decode failed: %w", err)
	}
	if len(found.Entries) == 0 {
		return nil, nil
	}

	return &found.Entries[0], nil
}

// UpdateSubscriber patches name and the phone custom field in place.
// Idempotent: repeating it is harmless.
func (c *Client) UpdateSubscriber(ctx context.Context, token string, sub *Subscriber, name, phone string) error {
	payload := patchSubscriberRequest{
		Name:         name,
		CustomFields: map[string]string{"phone": phone},
	}

	if err := c.doJSON(ctx, "PATCH", sub.SelfLink, token, payload); err != nil {
		return err
	}

	logrus.Infof("✅ AWeber: subscriber %d aggiornato", sub.ID)
	return nil
}

// AddTag posts the campaign tag to the subscriber's tags sub-resource.
func (c *Client) AddTag(ctx context.Context, token string, sub *Subscriber, tag string) error {
	return c.doJSON(ctx, "POST", sub.SelfLink+"/tags", token, addTagRequest{Name: tag})
}

// CreateSubscriber creates a new subscriber with the tag already set.
// update_existing stays false: the workflow performed its own existence
// check and must not race the provider's merge logic.
func (c *Client) CreateSubscriber(ctx context.Context, token string, input CreateSubscriberInput) error {
	payload := createSubscriberRequest{
		Email:          input.Email,
		Name:           input.Name,
		CustomFields:   map[string]string{"phone": input.Phone},
		Tags:           input.Tags,
		UpdateExisting: false,
	}

	if err := c.doJSON(ctx, "POST", c.subscribersURL(), token, payload); err != nil {
		return err
	}

	logrus.Infof("✅ AWeber: nuovo subscriber creato (%s)", input.Email)
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, endpoint, token string, payload any) error {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}
	c.setHeaders(req, token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("aweber request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return nil
}

func (c *Client) subscribersURL() string {
	return fmt.Sprintf("%s/accounts/%s/lists/%s/subscribers", c.BaseURL, c.cfg.AccountID, c.cfg.ListID)
}

func (c *Client) setHeaders(req *http.Request, token string) {
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}
