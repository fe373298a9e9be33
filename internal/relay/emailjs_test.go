package relay

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/verte-zerg/folio/internal/contact"
)

func testConfig(endpoint string) Config {
	return Config{
		Endpoint:   endpoint,
		ServiceID:  "service_x",
		TemplateID: "template_y",
		PublicKey:  "public_z",
	}
}

func TestSendPostsEmailJSPayload(t *testing.T) {
	var got sendRequest
	var contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		contentType = r.Header.Get("Content-Type")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte("OK"))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.PrivateKey = "secret"
	c := New(cfg, nil)
	err := c.Send(context.Background(), contact.Message{Name: "Ada", Email: "ada@example.com", Body: "Hi"})
	require.NoError(t, err)

	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, sendRequest{
		ServiceID:   "service_x",
		TemplateID:  "template_y",
		UserID:      "public_z",
		AccessToken: "secret",
		TemplateParams: templateParams{
			Name:    "Ada",
			Email:   "ada@example.com",
			Message: "Hi",
		},
	}, got)
}

func TestSendOmitsEmptyAccessToken(t *testing.T) {
	var raw map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
	}))
	defer srv.Close()

	require.NoError(t, New(testConfig(srv.URL), nil).Send(context.Background(), contact.Message{Name: "a", Email: "b", Body: "c"}))
	assert.NotContains(t, raw, "accessToken")
	assert.Contains(t, raw, "template_params")
}

func TestSendStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "The public key is invalid", http.StatusBadRequest)
	}))
	defer srv.Close()

	core, logs := observer.New(zap.WarnLevel)
	err := New(testConfig(srv.URL), zap.New(core)).Send(context.Background(), contact.Message{Name: "a", Email: "b", Body: "c"})

	var serr *StatusError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, http.StatusBadRequest, serr.Code)
	assert.Equal(t, "The public key is invalid", serr.Body)
	assert.Equal(t, 1, logs.FilterMessage("relay rejected message").Len())
}

func TestSendHonoursContext(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := New(testConfig(srv.URL), nil).Send(ctx, contact.Message{Name: "a", Email: "b", Body: "c"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestConfigured(t *testing.T) {
	assert.True(t, New(testConfig(""), nil).Configured())
	assert.False(t, New(Config{ServiceID: "s", TemplateID: "t"}, nil).Configured())

	err := New(Config{}, nil).Send(context.Background(), contact.Message{})
	assert.Error(t, err)
}

func TestNewDefaultsEndpoint(t *testing.T) {
	assert.Equal(t, DefaultEndpoint, New(Config{}, nil).cfg.Endpoint)
}

func TestClientDrivesContactFlow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	flow := contact.NewFlow(New(testConfig(srv.URL), nil), contact.Options{})
	defer flow.Close()
	flow.SetField(contact.FieldName, "Ada")
	flow.SetField(contact.FieldEmail, "ada@example.com")
	flow.SetField(contact.FieldMessage, "Hello")

	a, ok := flow.Submit()
	require.True(t, ok)
	require.True(t, flow.Complete(flow.Deliver(a)))
	assert.Equal(t, contact.PhaseSubmitted, flow.State().Phase)
}
