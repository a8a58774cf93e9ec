package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/smartcontractkit/freeport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio/folio/internal/config"
	"github.com/folio/folio/internal/email"
	"github.com/folio/folio/internal/email/emailtest"
	"github.com/folio/folio/internal/logger"
)

func startServer(t *testing.T, cfg *config.Config) string {
	t.Helper()

	port := freeport.GetOne(t)
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = port

	srv := newServer(context.Background(), cfg, logger.Nop())
	go func() {
		_ = srv.ListenAndServe()
	}()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})

	base := fmt.Sprintf("http://127.0.0.1:%d", port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(base + "/api/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	return base
}

func unconfigured() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{MaxBodyBytes: 64 << 10},
		Email: config.EmailConfig{
			Provider:    config.ProviderSMTP,
			SiteName:    "Portfolio",
			SendTimeout: time.Second,
			SMTP:        config.SMTPConfig{Host: "smtp.example.com", Port: 587},
		},
		CORS: config.CORSConfig{AllowedSuffixes: []string{".vercel.app"}},
	}
}

func TestServer_StartsWithoutCredentials(t *testing.T) {
	base := startServer(t, unconfigured())

	resp, err := http.Post(base+"/api/contact", "application/json",
		strings.NewReader(`{"name":"Ada","email":"ada@example.com","message":"Hello"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Email service is not configured", body["message"])
}

func TestServer_ValidationPrecedesConfiguration(t *testing.T) {
	base := startServer(t, unconfigured())

	resp, err := http.Post(base+"/api/contact", "application/json", strings.NewReader(`{"name":"Ada"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_Preflight(t *testing.T) {
	base := startServer(t, unconfigured())

	req, err := http.NewRequest(http.MethodOptions, base+"/api/contact", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://preview-123.vercel.app")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "https://preview-123.vercel.app", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
}

func TestVerifySender(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		level   string
		message string
	}{
		{"ready", nil, "info", "email provider ready to send"},
		{"bad credentials", errors.New("535 5.7.8 Username and Password not accepted"), "error", "email provider verification failed; contact submissions will fail"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			rec := &emailtest.Recorder{VerifyErr: tt.err}
			s := email.WithTimeout(rec, time.Second, logger.Nop())

			verifySender(context.Background(), s, config.ProviderSMTP, logger.NewWithWriter(&buf, "info", "json"))

			var entry map[string]interface{}
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), buf.String())
			assert.Equal(t, tt.level, entry["level"])
			assert.Equal(t, tt.message, entry["message"])
			assert.Equal(t, "smtp", entry["provider"])
			if tt.err != nil {
				assert.Contains(t, entry["error"], "535")
			}
		})
	}
}
