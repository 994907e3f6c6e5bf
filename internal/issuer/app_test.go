package issuer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/photosync/internal/common"
	"github.com/dmitrijs2005/photosync/internal/issuer/auth"
	"github.com/dmitrijs2005/photosync/internal/issuer/config"
	"github.com/dmitrijs2005/photosync/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.ListenAddr = "127.0.0.1:0"
	c.JWTSecret = "secret"
	c.ShutdownTimeout = time.Second
	return c
}

func TestApp_IssuesPresignedToken(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(), logging.Discard())
	require.NoError(t, err)

	srv := httptest.NewServer(app.Handler())
	defer srv.Close()

	tok, err := auth.GenerateToken("u1", []byte("secret"), time.Minute)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, srv.URL+common.UploadTokenPath,
		strings.NewReader(`{"user_id":"u1","filename":"IMG_1.jpg"}`))
	require.NoError(t, err)
	req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+tok)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestApp_InvalidTTL(t *testing.T) {
	c := testConfig()
	c.TokenTTLMinutes = 0
	_, err := NewApp(context.Background(), c, logging.Discard())
	require.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(), logging.Discard())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestApp_RunListenError(t *testing.T) {
	c := testConfig()
	c.ListenAddr = "bad-address"
	app, err := NewApp(context.Background(), c, logging.Discard())
	require.NoError(t, err)

	err = app.Run(context.Background())
	require.Error(t, err)
}
