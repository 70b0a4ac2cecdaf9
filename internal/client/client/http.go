package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/userreg/internal/client/models"
	"github.com/dmitrijs2005/userreg/internal/common"
	"github.com/dmitrijs2005/userreg/internal/logging"
)

const (
	// MaxRedirects is the number of redirects followed before giving up.
	MaxRedirects = 5

	maxBodySize = 1 << 20
)

var errTooManyRedirects = fmt.Errorf("stopped after %d redirects", MaxRedirects)

type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger

	mu    sync.RWMutex
	token string

	newRequestID func() string
}

// NewHTTPClient returns a client for the API rooted at baseURL. A zero
// timeout means requests are bounded only by their context.
func NewHTTPClient(baseURL string, timeout time.Duration, logger logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid api url %q: missing host", baseURL)
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(u.String(), "/"),
		http: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) > MaxRedirects {
					return errTooManyRedirects
				}
				return nil
			},
		},
		logger:       logger.With("component", "api"),
		newRequestID: uuid.NewString,
	}, nil
}

// SetAuthToken makes later requests carry "Authorization: Bearer <token>".
// An empty token removes the header.
func (c *HTTPClient) SetAuthToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// AuthToken returns the token currently attached to requests.
func (c *HTTPClient) AuthToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) RegisterUser(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/users/", req, &raw); err != nil {
		return nil, err
	}

	if len(raw) == 0 {
		return nil, nil
	}
	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		c.logger.Warn(ctx, "unexpected registration response", "error", err)
		return nil, nil
	}
	return &u, nil
}

func (c *HTTPClient) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, errors.New("login response without access token")
	}
	return &resp, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, id models.ID, req models.UpdateProfileRequest) error {
	return c.do(ctx, http.MethodPut, userPath(id), req, nil)
}

func (c *HTTPClient) DeleteAccount(ctx context.Context, id models.ID) error {
	return c.do(ctx, http.MethodDelete, userPath(id), nil, nil)
}

func (c *HTTPClient) GetUserByID(ctx context.Context, id models.ID) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, userPath(id), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Ping reports whether the API answers at all. Any HTTP response counts.
func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
	_ = resp.Body.Close()
	return nil
}

func userPath(id models.ID) string {
	return "/users/" + url.PathEscape(id.String()) + "/"
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	var payload []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = b
		body = bytes.NewReader(b)
	}

	target := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestID := c.newRequestID()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if token := c.AuthToken(); token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	log := c.logger.With("request_id", requestID, "method", method, "url", target)
	log.Debug(ctx, "API Request", "data", redact(payload))

	resp, err := c.http.Do(req)
	if err != nil {
		log.Error(ctx, "API Request Error", "error", err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if errors.Is(err, errTooManyRedirects) {
			return errTooManyRedirects
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		log.Error(ctx, "API Response Error", "status", resp.StatusCode, "error", err)
		return fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: extractMessage(respBody), Body: respBody}
		log.Error(ctx, "API Response Error", "status", resp.StatusCode, "statusText", http.StatusText(resp.StatusCode), "data", string(respBody))
		return apiErr
	}

	log.Debug(ctx, "API Response", "status", resp.StatusCode, "statusText", http.StatusText(resp.StatusCode), "data", string(respBody))

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// redact renders a JSON request body for logging with the password masked.
func redact(payload []byte) string {
	if len(payload) == 0 {
		return ""
	}
	var m map[string]any
	if err := json.Unmarshal(payload, &m); err != nil {
		return string(payload)
	}
	if _, ok := m["password"]; ok {
		m["password"] = "***"
	}
	b, err := json.Marshal(m)
	if err != nil {
		return ""
	}
	return string(b)
}
