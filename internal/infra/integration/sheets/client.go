package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"github.com/webinarlab/lead-intake/internal/config"
)

const (
	DefaultBaseURL  = "https://sheets.googleapis.com/v4"
	DefaultTokenURL = "https://oauth2.googleapis.com/token"

	scopeSpreadsheets = "https://www.googleapis.com/auth/spreadsheets"
	jwtBearerGrant    = "urn:ietf:params:oauth:grant-type:jwt-bearer"

	// Columns A-F: name, email, phone, date, source, phone without prefix.
	appendRange = "A:F"
)

type Client struct {
	BaseURL  string
	TokenURL string

	cfg  config.SheetsConfig
	http *http.Client

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

func NewClient(cfg config.SheetsConfig) *Client {
	return &Client{
		BaseURL:  DefaultBaseURL,
		TokenURL: DefaultTokenURL,
		cfg:      cfg,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

type appendRequest struct {
	Values [][]string `json:"values"`
}

// AppendLeadRow appends one row to the configured spreadsheet with
// USER_ENTERED input so the sheet applies its own type coercion (dates in
// particular). Not retried: a failure here fails the whole submission.
func (c *Client) AppendLeadRow(ctx context.Context, row []string) error {
	token, err := c.accessToken(ctx)
	if err != nil {
		return fmt.Errorf("google sheets auth failed: %w", err)
	}

	endpoint := fmt.Sprintf(
		"%s/spreadsheets/%s/values/%s:append?valueInputOption=USER_ENTERED",
		c.BaseURL, c.cfg.SpreadsheetID, appendRange,
	)

	jsonBody, err := json.Marshal(appendRequest{Values: [][]string{row}})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("google sheets request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("google sheets append rejected (status %d): %s", resp.StatusCode, string(body))
	}

	logrus.Info("✅ Sheets: riga salvata")
	return nil
}

// accessToken returns a cached service-account token, exchanging a fresh
// RS256-signed assertion when the current one is about to expire.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Add(30*time.Second).Before(c.tokenExpiry) {
		return c.token, nil
	}

	assertion, err := c.signAssertion()
	if err != nil {
		return "", err
	}

	form := url.Values{}
	form.Set("grant_type", jwtBearerGrant)
	form.Set("assertion", assertion)

	req, err := http.NewRequestWithContext(ctx, "POST", c.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("token endpoint rejected assertion (status %d): %s", resp.StatusCode, string(body))
	}

	var data struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("token decode failed: %w", err)
	}

	c.token = data.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(data.ExpiresIn) * time.Second)

	return c.token, nil
}

func (c *Client) signAssertion() (string, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(c.cfg.PrivateKey))
	if err != nil {
		return "", fmt.Errorf("invalid service account key: %w", err)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"iss":   c.cfg.ServiceAccountEmail,
		"scope": scopeSpreadsheets,
		"aud":   c.TokenURL,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
}
