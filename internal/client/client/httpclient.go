package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vilarbucks/vilarbucks/internal/client/models"
)

const (
	RequestIDHeaderName = "X-Request-ID"

	// maxErrorBody bounds how much of an error response is read.
	maxErrorBody = 4 << 10
)

type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
}

// NewHTTPClient builds a client for the API rooted at baseURL
// (e.g. "https://api.vilarbucks.com/api").
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api url %q: scheme must be http or https", baseURL)
	}

	return &HTTPClient{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.AuthResult, error) {
	var out models.AuthResult
	body := models.Credentials{Email: email, Password: password}
	if err := c.do(ctx, "login", http.MethodPost, "/auth/login", "", body, &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, &AuthError{Op: "login", Message: "empty token", Err: ErrMalformedResponse}
	}
	return &out, nil
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResult, error) {
	var out models.AuthResult
	if err := c.do(ctx, "register", http.MethodPost, "/auth/register", "", req, &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, &AuthError{Op: "register", Message: "empty token", Err: ErrMalformedResponse}
	}
	return &out, nil
}

func (c *HTTPClient) GetCurrentProfile(ctx context.Context, token string) (*models.Profile, error) {
	var out struct {
		User *models.Profile `json:"user"`
	}
	if err := c.do(ctx, "get profile", http.MethodGet, "/auth/me", token, nil, &out); err != nil {
		return nil, err
	}
	if out.User == nil {
		return nil, &AuthError{Op: "get profile", Message: "no user in response", Err: ErrMalformedResponse}
	}
	return out.User, nil
}

func (c *HTTPClient) Logout(ctx context.Context, token string) error {
	return c.do(ctx, "logout", http.MethodPost, "/auth/logout", token, nil, nil)
}

func (c *HTTPClient) ListTasks(ctx context.Context, token string) ([]models.Task, error) {
	var out struct {
		Tasks []models.Task `json:"tasks"`
	}
	if err := c.do(ctx, "list tasks", http.MethodGet, "/tasks", token, nil, &out); err != nil {
		return nil, err
	}
	return out.Tasks, nil
}

func (c *HTTPClient) CompleteTask(ctx context.Context, token string, taskID int64) (*models.TaskCompletion, error) {
	var out models.TaskCompletion
	path := "/tasks/" + strconv.FormatInt(taskID, 10) + "/complete"
	if err := c.do(ctx, "complete task", http.MethodPost, path, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, "ping", http.MethodGet, "/health", "", nil, nil)
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// do performs one request. in, when non-nil, is sent as JSON; out, when
// non-nil, receives the decoded JSON body of a 2xx response.
func (c *HTTPClient) do(ctx context.Context, op, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return &AuthError{Op: op, Err: ErrBadRequest, Cause: err}
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return &AuthError{Op: op, Err: ErrBadRequest, Cause: err}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeaderName, uuid.NewString())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &AuthError{Op: op, Err: ErrUnavailable, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &AuthError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(raw),
			Err:        mapStatus(resp.StatusCode),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &AuthError{Op: op, StatusCode: resp.StatusCode, Err: ErrMalformedResponse, Cause: err}
	}
	return nil
}

func mapStatus(code int) error {
	switch {
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return ErrUnauthorized
	case code == http.StatusBadGateway, code == http.StatusServiceUnavailable, code == http.StatusGatewayTimeout:
		return ErrUnavailable
	case code >= 500:
		return ErrServer
	default:
		return ErrBadRequest
	}
}

// errorMessage pulls a human-readable message out of an error body shaped
// like {"error": "..."} or {"message": "..."}.
func errorMessage(raw []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Error != "" {
		return body.Error
	}
	return body.Message
}
