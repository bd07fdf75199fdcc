package mail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subkart/core/internal/config"
)

func TestRenderWelcomeTemplate(t *testing.T) {
	html, err := renderTemplate(welcomeTpl, welcomeData{Name: "Asha"})
	require.NoError(t, err)
	assert.Contains(t, html, "Welcome, Asha!")
}

func TestRenderWelcomeEscapesHTML(t *testing.T) {
	html, err := renderTemplate(welcomeTpl, welcomeData{Name: "<script>x</script>"})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>x</script>")
}

func TestRenderOTPTemplate(t *testing.T) {
	html, err := renderTemplate(otpTpl, otpData{Code: 424242})
	require.NoError(t, err)
	assert.Contains(t, html, "424242")
	assert.Contains(t, html, "expire in 10 minutes")
}

func TestSendPasswordResetOTPViaBrevo(t *testing.T) {
	var got struct {
		Sender struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"sender"`
		To []struct {
			Email string `json:"email"`
		} `json:"to"`
		Subject     string `json:"subject"`
		HTMLContent string `json:"htmlContent"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret-key", r.Header.Get("api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	orig := brevoEndpoint
	brevoEndpoint = srv.URL
	defer func() { brevoEndpoint = orig }()

	sender := New(config.MailConfig{
		BrevoKey:      "secret-key",
		SenderName:    "SubKart",
		SenderAddress: "no-reply@subkart.app",
	})
	sender.httpClient = srv.Client()

	require.NoError(t, sender.SendPasswordResetOTP(context.Background(), "asha@example.com", 424242))

	require.Len(t, got.To, 1)
	assert.Equal(t, "asha@example.com", got.To[0].Email)
	assert.Equal(t, "no-reply@subkart.app", got.Sender.Email)
	assert.Equal(t, "Your Password Reset OTP", got.Subject)
	assert.Contains(t, got.HTMLContent, "424242")
}

func TestSendBrevoErrorSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Key not found"}`))
	}))
	defer srv.Close()

	orig := brevoEndpoint
	brevoEndpoint = srv.URL
	defer func() { brevoEndpoint = orig }()

	sender := New(config.MailConfig{BrevoKey: "bad"})
	sender.httpClient = srv.Client()

	err := sender.Send(context.Background(), Message{To: "x@example.com", Subject: "s", HTML: "h"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Key not found")
}

func TestSendWithoutTransport(t *testing.T) {
	sender := New(config.MailConfig{})
	err := sender.Send(context.Background(), Message{To: "x@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
