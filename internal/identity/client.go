package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL  = "https://identitytoolkit.googleapis.com/v1"
	defaultTokenURL = "https://securetoken.googleapis.com/v1"

	DefaultTimeout = 15 * time.Second
)

// ClientConfig configures the Identity Toolkit client. BaseURL and
// TokenURL exist for tests; production leaves them empty.
type ClientConfig struct {
	APIKey   string
	BaseURL  string
	TokenURL string
	Timeout  time.Duration
}

// Client speaks the identity provider's REST surface: sign-up and
// sign-in against the Identity Toolkit, token refresh against the
// Secure Token endpoint.
type Client struct {
	apiKey   string
	baseURL  string
	tokenURL string
	http     *http.Client
}

func NewClient(cfg ClientConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = defaultTokenURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		apiKey:   cfg.APIKey,
		baseURL:  cfg.BaseURL,
		tokenURL: cfg.TokenURL,
		http:     &http.Client{Timeout: cfg.Timeout},
	}
}

// accountResponse is the shape shared by signUp and signInWithPassword.
type accountResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"` // seconds, as a string
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// SignUp creates a provider account and returns its session.
func (c *Client) SignUp(ctx context.Context, email, password string) (*Session, error) {
	return c.account(ctx, "accounts:signUp", email, password)
}

// SignIn authenticates an existing provider account.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	return c.account(ctx, "accounts:signInWithPassword", email, password)
}

func (c *Client) account(ctx context.Context, endpoint, email, password string) (*Session, error) {
	payload, err := json.Marshal(map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	reqURL := c.baseURL + "/" + endpoint + "?key=" + url.QueryEscape(c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeProviderError(resp)
	}

	var acc accountResponse
	if err := json.NewDecoder(resp.Body).Decode(&acc); err != nil {
		return nil, fmt.Errorf("decode identity provider response: %w", err)
	}
	return sessionFrom(acc.LocalID, acc.Email, acc.DisplayName, acc.IDToken, acc.RefreshToken, acc.ExpiresIn), nil
}

type refreshResponse struct {
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    string `json:"expires_in"`
	UserID       string `json:"user_id"`
}

// Refresh exchanges a refresh token for a fresh ID token. It preserves
// the email and display name from the previous session since the
// Secure Token endpoint does not return them.
func (c *Client) Refresh(ctx context.Context, prev *Session) (*Session, error) {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {prev.RefreshToken},
	}

	reqURL := c.tokenURL + "/token?key=" + url.QueryEscape(c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeProviderError(resp)
	}

	var ref refreshResponse
	if err := json.NewDecoder(resp.Body).Decode(&ref); err != nil {
		return nil, fmt.Errorf("decode identity provider response: %w", err)
	}

	sess := sessionFrom(ref.UserID, prev.Email, prev.DisplayName, ref.IDToken, ref.RefreshToken, ref.ExpiresIn)
	if sess.SubjectID == "" {
		sess.SubjectID = prev.SubjectID
	}
	return sess, nil
}

func sessionFrom(subject, email, displayName, idToken, refreshToken, expiresIn string) *Session {
	secs, err := strconv.Atoi(expiresIn)
	if err != nil || secs <= 0 {
		secs = 3600
	}
	return &Session{
		SubjectID:    subject,
		Email:        email,
		DisplayName:  displayName,
		IDToken:      idToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(secs) * time.Second),
	}
}

func decodeProviderError(resp *http.Response) error {
	var er errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil || er.Error.Message == "" {
		return &ProviderError{
			Code:    fmt.Sprintf("HTTP_%d", resp.StatusCode),
			Message: fmt.Sprintf("identity provider returned status %d", resp.StatusCode),
		}
	}
	return newProviderError(er.Error.Message)
}
