// Package relay delivers contact messages through an EmailJS-compatible
// REST endpoint.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/verte-zerg/folio/internal/contact"
)

// DefaultEndpoint is the EmailJS send API.
const DefaultEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// maxErrorBody bounds how much of a failed response is kept.
const maxErrorBody = 512

// Config holds the relay credentials.
type Config struct {
	Endpoint   string
	ServiceID  string
	TemplateID string
	PublicKey  string
	PrivateKey string
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("relay returned status %d", e.Code)
	}
	return fmt.Sprintf("relay returned status %d: %s", e.Code, e.Body)
}

// Client sends messages. It implements contact.Relay.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *zap.Logger
}

// New returns a client. A nil logger disables logging.
func New(cfg Config, logger *zap.Logger) *Client {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: 30 * time.Second},
		logger: logger.Named("relay"),
	}
}

// Configured reports whether the credentials needed to send are present.
func (c *Client) Configured() bool {
	return c.cfg.ServiceID != "" && c.cfg.TemplateID != "" && c.cfg.PublicKey != ""
}

type templateParams struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type sendRequest struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	AccessToken    string         `json:"accessToken,omitempty"`
	TemplateParams templateParams `json:"template_params"`
}

// Send posts one message. The request is abandoned when ctx is done.
func (c *Client) Send(ctx context.Context, msg contact.Message) error {
	if !c.Configured() {
		return fmt.Errorf("relay credentials are not configured")
	}
	payload, err := json.Marshal(sendRequest{
		ServiceID:   c.cfg.ServiceID,
		TemplateID:  c.cfg.TemplateID,
		UserID:      c.cfg.PublicKey,
		AccessToken: c.cfg.PrivateKey,
		TemplateParams: templateParams{
			Name:    msg.Name,
			Email:   msg.Email,
			Message: msg.Body,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	c.logger.Debug("sending message", zap.String("endpoint", c.cfg.Endpoint), zap.Int("bytes", len(payload)))
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		serr := &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
		c.logger.Warn("relay rejected message", zap.Int("status", serr.Code), zap.String("body", serr.Body))
		return serr
	}
	// drain so the connection can be reused
	_, _ = io.Copy(io.Discard, resp.Body)
	c.logger.Debug("message sent", zap.Int("status", resp.StatusCode), zap.Duration("elapsed", time.Since(start)))
	return nil
}
