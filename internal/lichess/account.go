package lichess

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cootshk/LiChess-Bot/internal/errors"
	"github.com/cootshk/LiChess-Bot/internal/logger"
)

// Error bodies are bounded; success bodies (account info, challenge
// lists) stay well under this too.
const maxBodyBytes = 1 << 20

// AccountClient owns the bearer token and endpoint base URL. It is the
// shared credential holder the game and challenge clients borrow; its
// state is read-only after construction, so one AccountClient is safe
// for concurrent use.
type AccountClient struct {
	token    string
	endpoint string

	httpClient *http.Client
	log        *logger.Logger

	// Account payload fetched while validating the token at construction.
	account *Account
}

// Option configures an AccountClient.
type Option func(*AccountClient)

// WithTimeout sets the transport timeout. A timed-out call surfaces as
// an API_ERROR; the client defines no timeout semantics of its own.
func WithTimeout(d time.Duration) Option {
	return func(c *AccountClient) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *AccountClient) {
		c.httpClient = hc
	}
}

// NewAccountClient validates the endpoint and token and upgrades the
// account to a bot account. The token is validated by fetching the
// account info once, classified like every other call, so a rate limit
// or a bad token fails construction. The upgrade is issued immediately
// after; a failed upgrade is NOT_A_BOT_TOKEN, since every bot-scoped
// operation afterwards assumes it succeeded.
func NewAccountClient(ctx context.Context, token, endpoint string, opts ...Option) (*AccountClient, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, errors.NewInvalidEndpointError(endpoint, err.Error())
	}
	if u.Scheme != "https" {
		return nil, errors.NewInvalidEndpointError(endpoint, "scheme must be https")
	}
	if u.Host == "" {
		return nil, errors.NewInvalidEndpointError(endpoint, "missing host")
	}

	c := &AccountClient{
		token:      token,
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        logger.Default().WithPrefix("lichess"),
	}
	for _, opt := range opts {
		opt(c)
	}

	account, err := c.AccountInfo(ctx)
	if err != nil {
		return nil, err
	}
	c.account = account
	c.log.Info("authenticated as %s", account.Username)

	if err := c.upgradeToBot(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *AccountClient) upgradeToBot(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/api/bot/account/upgrade", nil)
	if err != nil {
		// The only 400 this endpoint returns means the account already
		// holds the BOT title, which is the state the upgrade is after.
		if errors.HasCode(err, errors.ErrCodeBadRequest) {
			c.log.Debug("bot upgrade skipped: %v", err)
			return nil
		}
		c.log.Error("bot upgrade failed: %v", err)
		return errors.NewNotABotTokenError(err)
	}
	c.log.Info("account upgraded to bot")
	return nil
}

// Username returns the account name fetched at construction.
func (c *AccountClient) Username() string {
	return c.account.Username
}

// AccountInfo fetches the account's public information.
func (c *AccountClient) AccountInfo(ctx context.Context) (*Account, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/account", nil)
	if err != nil {
		return nil, err
	}
	var account Account
	if err := json.Unmarshal(body, &account); err != nil {
		return nil, errors.NewAPIError(200, fmt.Sprintf("decode account info: %v", err))
	}
	return &account, nil
}

// Email fetches the email address associated with the account.
func (c *AccountClient) Email(ctx context.Context) (string, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/account/email", nil)
	if err != nil {
		return "", err
	}
	var payload struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", errors.NewAPIError(200, fmt.Sprintf("decode email: %v", err))
	}
	return payload.Email, nil
}

// CurrentGameID refreshes the account info and resolves the id of the
// game currently being played. The server reports the game as a full
// URL with a color suffix; both are stripped to yield the bare id.
// Fails with NO_ACTIVE_GAME when the account is idle.
func (c *AccountClient) CurrentGameID(ctx context.Context) (string, error) {
	account, err := c.AccountInfo(ctx)
	if err != nil {
		return "", err
	}
	if account.Playing == "" {
		return "", errors.NewNoActiveGameError()
	}
	id := strings.TrimPrefix(account.Playing, c.endpoint+"/")
	id = strings.TrimSuffix(id, "/white")
	id = strings.TrimSuffix(id, "/black")
	c.log.Debug("current game: %s", id)
	return id, nil
}

// do performs one authenticated request and classifies the response.
// POST parameters travel as a form body, GET parameters as the query
// string. The returned bytes are the response body of a 2xx response.
func (c *AccountClient) do(ctx context.Context, method, path string, params url.Values) ([]byte, error) {
	log := logger.FromContext(ctx).WithPrefix("lichess")

	reqURL := c.endpoint + path
	var reqBody io.Reader
	if len(params) > 0 {
		if method == http.MethodGet {
			reqURL += "?" + params.Encode()
		} else {
			reqBody = strings.NewReader(params.Encode())
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return nil, errors.NewAPIError(0, err.Error())
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("%s %s failed: %v", method, path, err)
		return nil, errors.NewAPIError(0, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		log.Error("%s %s read body: %v", method, path, err)
		return nil, errors.NewAPIError(resp.StatusCode, err.Error())
	}

	log.Debug("%s %s -> %d in %v", method, path, resp.StatusCode, time.Since(start))

	if err := classify(resp.StatusCode, body, path); err != nil {
		return nil, err
	}
	return body, nil
}

// probe performs one authenticated GET and reports only the classified
// status, closing the body unread. Used against streaming endpoints
// where reading the body would block on a long-lived response.
func (c *AccountClient) probe(ctx context.Context, path string) error {
	log := logger.FromContext(ctx).WithPrefix("lichess")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+path, nil)
	if err != nil {
		return errors.NewAPIError(0, err.Error())
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("GET %s failed: %v", path, err)
		return errors.NewAPIError(0, err.Error())
	}
	defer resp.Body.Close()

	var body []byte
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ = io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	}
	log.Debug("GET %s -> %d", path, resp.StatusCode)
	return classify(resp.StatusCode, body, path)
}
