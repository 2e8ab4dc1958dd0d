package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/garimobility/admin-dashboard/internal/core/domain"
	"github.com/garimobility/admin-dashboard/internal/core/ports"
	"github.com/garimobility/admin-dashboard/internal/pkg/metrics"
)

const (
	loginPath      = "/api/v1/auth/login/"
	authScheme     = "Token"
	defaultTimeout = 15 * time.Second
	maxBodySize    = 4 << 20
)

// Client is the HTTP client for the remote rental backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// New creates a Client. A default timeout is applied when none is provided.
func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse covers both spellings of the token field the backend uses.
type loginResponse struct {
	TokenUpper string              `json:"Token"`
	Token      string              `json:"token"`
	User       *domain.UserProfile `json:"user"`
	Detail     string              `json:"detail"`
	Error      string              `json:"error"`
}

// Login posts the credentials to the backend and normalises its answer.
func (c *Client) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	payload, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+loginPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &domain.NetworkError{Op: "login", Err: err}
	}

	var data loginResponse
	if err := json.Unmarshal(raw, &data); err != nil {
		c.log.Warn().Int("status", resp.StatusCode).Msg("login: unparsable backend response")
		return nil, &domain.AuthError{Status: resp.StatusCode, Message: "Invalid response from server"}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := data.Detail
		if msg == "" {
			msg = data.Error
		}
		if msg == "" {
			msg = "Failed to login"
		}
		return nil, &domain.AuthError{Status: resp.StatusCode, Message: msg}
	}

	token := data.TokenUpper
	if token == "" {
		token = data.Token
	}
	if token == "" {
		return nil, &domain.AuthError{Status: resp.StatusCode, Message: "No token received from server"}
	}

	return &ports.LoginResult{Token: token, User: data.User}, nil
}

type errorBody struct {
	Detail  string `json:"detail"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Call performs one JSON request against the backend. A non-empty token is sent
// as "Authorization: Token <token>". Non-2xx answers become *domain.APIError.
func (c *Client) Call(ctx context.Context, token, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		rdr = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", authScheme+" "+token)
	}

	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		detail := eb.Detail
		if detail == "" {
			detail = eb.Error
		}
		if detail == "" {
			detail = eb.Message
		}
		return &domain.APIError{Status: resp.StatusCode, Detail: detail}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

// send executes req and records backend metrics. Transport failures are
// reported as *domain.NetworkError.
func (c *Client) send(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.BackendRequestDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(req.Method, "error").Inc()
		c.log.Error().Err(err).Str("method", req.Method).Str("path", req.URL.Path).Msg("backend request failed")
		return nil, &domain.NetworkError{Op: req.Method + " " + req.URL.Path, Err: err}
	}
	metrics.BackendRequestsTotal.WithLabelValues(req.Method, strconv.Itoa(resp.StatusCode)).Inc()
	c.log.Debug().Str("method", req.Method).Str("path", req.URL.Path).Int("status", resp.StatusCode).Msg("backend request")
	return resp, nil
}

// Ping checks that the backend answers at all; any HTTP status counts.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.send(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}
