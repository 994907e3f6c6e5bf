package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/photosync/internal/client/models"
	"github.com/dmitrijs2005/photosync/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticCreds struct {
	token string
}

func (s staticCreds) Read() (string, bool) {
	return s.token, s.token != ""
}

func TestNewTokenClient_InvalidURL(t *testing.T) {
	for _, raw := range []string{"", "localhost:8080", "://x"} {
		_, err := NewTokenClient(raw, nil, nil)
		require.ErrorIs(t, err, common.ErrInvalidInput, raw)
	}
}

func TestRequestUploadToken_Success(t *testing.T) {
	var gotReq models.UploadTokenRequest
	var gotAuth, gotCT, gotPath, gotMethod string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotCT = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotReq)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"blob_name":"x","upload_url":"https://example/u1","expires_at":"2030-01-01T00:00:00Z"}`))
	}))
	defer ts.Close()

	c, err := NewTokenClient(ts.URL+"/", ts.Client(), staticCreds{token: "secret"})
	require.NoError(t, err)

	tok, err := c.RequestUploadToken(context.Background(), "u1", "a.jpg")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/v1/mobile/upload-token", gotPath)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "application/json", gotCT)
	assert.Equal(t, models.UploadTokenRequest{UserID: "u1", Filename: "a.jpg"}, gotReq)

	assert.Equal(t, "x", tok.BlobName)
	assert.Equal(t, "https://example/u1", tok.UploadURL)
	assert.True(t, tok.ExpiresAt.Equal(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestRequestUploadToken_NoCredentialNoHeader(t *testing.T) {
	var sawAuth bool
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuth = r.Header["Authorization"]
		_, _ = w.Write([]byte(`{"blob_name":"x","upload_url":"https://example/u1","expires_at":"2030-01-01T00:00:00Z"}`))
	}))
	defer ts.Close()

	for _, creds := range []CredentialReader{nil, staticCreds{}} {
		c, err := NewTokenClient(ts.URL, ts.Client(), creds)
		require.NoError(t, err)

		_, err = c.RequestUploadToken(context.Background(), "u1", "a.jpg")
		require.NoError(t, err)
		assert.False(t, sawAuth)
	}
}

func TestRequestUploadToken_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":"missing bearer"}`, "401 Unauthorized"},
		{"server error", http.StatusInternalServerError, "", "500 Internal Server Error"},
		{"redirect is not success", http.StatusNotModified, "", "304 Not Modified"},
		{"not json", http.StatusOK, "<html>", "decode token response"},
		{"bad expiry", http.StatusOK, `{"blob_name":"x","upload_url":"https://e/u","expires_at":"soon"}`, "decode token response"},
		{"missing expiry", http.StatusOK, `{"blob_name":"x","upload_url":"https://e/u"}`, "without expires_at"},
		{"missing blob name", http.StatusOK, `{"upload_url":"https://e/u","expires_at":"2030-01-01T00:00:00Z"}`, "without blob_name"},
		{"relative url", http.StatusOK, `{"blob_name":"x","upload_url":"/u","expires_at":"2030-01-01T00:00:00Z"}`, "invalid upload_url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			c, err := NewTokenClient(ts.URL, ts.Client(), nil)
			require.NoError(t, err)

			tok, err := c.RequestUploadToken(context.Background(), "u1", "a.jpg")
			require.ErrorIs(t, err, common.ErrBackend)
			require.ErrorContains(t, err, tt.wantMsg)
			require.Equal(t, models.UploadTokenResponse{}, tok)
		})
	}
}

func TestRequestUploadToken_OversizedBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(common.ContentTypeHeader, common.ContentTypeJSON)
		_, _ = io.WriteString(w, `{"blob_name":"`+strings.Repeat("x", maxTokenResponse)+
			`","upload_url":"https://store.example/u","expires_at":"2030-01-01T00:00:00Z"}`)
	}))
	defer ts.Close()

	c, err := NewTokenClient(ts.URL, ts.Client(), nil)
	require.NoError(t, err)

	_, err = c.RequestUploadToken(context.Background(), "u1", "a.jpg")
	require.ErrorIs(t, err, common.ErrBackend)
	assert.Contains(t, err.Error(), "decode token response")
}

func TestRequestUploadToken_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	c, err := NewTokenClient(url, nil, nil)
	require.NoError(t, err)

	_, err = c.RequestUploadToken(context.Background(), "u1", "a.jpg")
	require.ErrorIs(t, err, common.ErrBackend)
}

func TestRequestUploadToken_ContextCanceled(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The server only notices a client hang-up once the body is consumed.
		_, _ = io.Copy(io.Discard, r.Body)
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer ts.Close()
	defer close(release)

	c, err := NewTokenClient(ts.URL, ts.Client(), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = c.RequestUploadToken(ctx, "u1", "a.jpg")
	require.ErrorIs(t, err, common.ErrBackend)
}
