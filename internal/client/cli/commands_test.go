package cli

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/photosync/internal/client/config"
	"github.com/dmitrijs2005/photosync/internal/client/credentials"
	"github.com/dmitrijs2005/photosync/internal/client/models"
	"github.com/dmitrijs2005/photosync/internal/client/services"
	"github.com/dmitrijs2005/photosync/internal/common"
	"github.com/dmitrijs2005/photosync/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	perm   models.PermissionState
	assets []models.AssetRef
}

func (p *stubProvider) RequestPermission(context.Context) models.PermissionState { return p.perm }
func (p *stubProvider) FetchLatest(context.Context, int) ([]models.AssetRef, error) {
	return p.assets, nil
}
func (p *stubProvider) LoadData(_ context.Context, ref models.AssetRef) ([]byte, error) {
	return []byte(ref.ID), nil
}

type stubTokens struct{ fail bool }

func (s *stubTokens) RequestUploadToken(_ context.Context, userID, filename string) (models.UploadTokenResponse, error) {
	if s.fail {
		return models.UploadTokenResponse{}, fmt.Errorf("%w: token request failed: 401 Unauthorized", common.ErrBackend)
	}
	return models.UploadTokenResponse{BlobName: userID + "/" + filename, UploadURL: "https://blob/x", ExpiresAt: time.Now().Add(time.Hour)}, nil
}

type stubBlobs struct{ n int }

func (s *stubBlobs) Upload(context.Context, []byte, string, models.UploadTokenResponse) error {
	s.n++
	return nil
}

type testApp struct {
	*App
	out      *bytes.Buffer
	provider *stubProvider
	tokens   *stubTokens
	blobs    *stubBlobs
	creds    *credentials.MemoryStore
}

func newTestApp(t *testing.T, userID, input string) *testApp {
	t.Helper()
	ta := &testApp{
		out: &bytes.Buffer{},
		provider: &stubProvider{perm: models.PermissionFull, assets: []models.AssetRef{
			{ID: "2025/b.jpg", Filename: "b.jpg", Size: 10, ModTime: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
			{ID: "2025/a.png", Filename: "a.png", Size: 20, ModTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		}},
		tokens: &stubTokens{},
		blobs:  &stubBlobs{},
		creds:  credentials.NewMemoryStore(),
	}
	svc := services.NewUploadService(ta.provider, ta.tokens, ta.blobs, nil, logging.Discard())
	cfg := &config.Config{UserID: userID}
	ta.App = newApp(cfg, svc, ta.creds, logging.Discard(), rdr(input), ta.out)
	return ta
}

func TestLoadAndList(t *testing.T) {
	a := newTestApp(t, "u1", "")
	ctx := context.Background()

	require.NoError(t, a.List(ctx))
	assert.Contains(t, a.out.String(), "run 'load' first")

	require.NoError(t, a.Load(ctx))
	assert.Contains(t, a.out.String(), ".. Loading library...")
	assert.Contains(t, a.out.String(), "Loaded 2 photos\n")

	a.out.Reset()
	require.NoError(t, a.Toggle(ctx, []string{"2"}))
	require.NoError(t, a.List(ctx))
	assert.Contains(t, a.out.String(), "  1 [ ] 2025/b.jpg  2025-02-01 00:00  10 bytes")
	assert.Contains(t, a.out.String(), "  2 [x] 2025/a.png  2025-01-01 00:00  20 bytes")
}

func TestLoad_PermissionDenied(t *testing.T) {
	a := newTestApp(t, "u1", "")
	a.provider.perm = models.PermissionDenied

	err := a.Load(context.Background())
	require.ErrorIs(t, err, common.ErrPermissionDenied)
	assert.Contains(t, a.out.String(), "Photo permission denied")
}

func TestToggle(t *testing.T) {
	a := newTestApp(t, "u1", "")
	ctx := context.Background()
	require.NoError(t, a.Load(ctx))
	a.out.Reset()

	require.NoError(t, a.Toggle(ctx, []string{"1", "2025/a.png"}))
	assert.Equal(t, "selected 2025/b.jpg\nselected 2025/a.png\n", a.out.String())

	a.out.Reset()
	require.NoError(t, a.Toggle(ctx, []string{"1"}))
	assert.Equal(t, "deselected 2025/b.jpg\n", a.out.String())

	err := a.Toggle(ctx, []string{"99"})
	require.ErrorIs(t, err, common.ErrNotFound)
	assert.Contains(t, a.out.String(), "Unknown item: 99")

	require.ErrorIs(t, a.Toggle(ctx, nil), common.ErrInvalidInput)
}

func TestShowSelected(t *testing.T) {
	a := newTestApp(t, "u1", "")
	ctx := context.Background()
	require.NoError(t, a.ShowSelected(ctx))
	assert.Contains(t, a.out.String(), "No photos selected")

	require.NoError(t, a.Load(ctx))
	require.NoError(t, a.Toggle(ctx, []string{"2"}))
	a.out.Reset()
	require.NoError(t, a.ShowSelected(ctx))
	assert.Equal(t, " - 2025/a.png\n", a.out.String())
}

func TestUpload(t *testing.T) {
	a := newTestApp(t, "u1", "")
	ctx := context.Background()
	require.NoError(t, a.Load(ctx))
	require.NoError(t, a.Toggle(ctx, []string{"1", "2"}))
	a.out.Reset()

	require.NoError(t, a.Upload(ctx))
	assert.Equal(t, 2, a.blobs.n)
	assert.Contains(t, a.out.String(), ".. Uploading 1/2...")
	assert.Contains(t, a.out.String(), ".. Uploading 2/2...")
	assert.Contains(t, a.out.String(), "Uploaded 2 item(s) securely\n")
	assert.Equal(t, "(u1, 0 selected)", a.prompt())
}

func TestUpload_EmptySelection(t *testing.T) {
	a := newTestApp(t, "u1", "")

	err := a.Upload(context.Background())
	require.ErrorIs(t, err, common.ErrEmptySelection)
	assert.Contains(t, a.out.String(), "No photos selected")
	assert.Zero(t, a.blobs.n)
}

func TestUpload_Failure(t *testing.T) {
	a := newTestApp(t, "u1", "")
	a.tokens.fail = true
	ctx := context.Background()
	require.NoError(t, a.Load(ctx))
	require.NoError(t, a.Toggle(ctx, []string{"1"}))

	err := a.Upload(ctx)
	require.ErrorIs(t, err, common.ErrBackend)
	assert.Contains(t, a.out.String(), "Upload failed: b.jpg: backend error: token request failed: 401 Unauthorized")
	assert.Equal(t, "(u1, 1 selected)", a.prompt())
}

func TestUpload_PromptsForUserID(t *testing.T) {
	a := newTestApp(t, "", "carol\n")
	ctx := context.Background()
	require.NoError(t, a.Load(ctx))
	require.NoError(t, a.Toggle(ctx, []string{"2"}))

	require.NoError(t, a.Upload(ctx))
	assert.Equal(t, "(carol, 0 selected)", a.prompt())
}

func TestUpload_EmptyUserID(t *testing.T) {
	a := newTestApp(t, "", "\n")
	require.ErrorIs(t, a.Upload(context.Background()), common.ErrInvalidInput)
	assert.Equal(t, "(no user, 0 selected)", a.prompt())
}

func TestLoginLogoutStatus(t *testing.T) {
	withTerminal(t, false, nil)
	a := newTestApp(t, "u1", "tok-123\n\n")
	ctx := context.Background()

	require.NoError(t, a.Login(ctx))
	tok, ok := a.creds.Read()
	require.True(t, ok)
	assert.Equal(t, "tok-123", tok)

	require.NoError(t, a.Status(ctx))
	assert.Contains(t, a.out.String(), "token stored: true")
	assert.NotContains(t, a.out.String(), "tok-123")

	require.ErrorIs(t, a.Login(ctx), common.ErrInvalidInput)
	tok, _ = a.creds.Read()
	assert.Equal(t, "tok-123", tok)

	require.NoError(t, a.Logout(ctx))
	_, ok = a.creds.Read()
	assert.False(t, ok)
}

func TestHistory_Empty(t *testing.T) {
	a := newTestApp(t, "u1", "")
	require.NoError(t, a.History(context.Background()))
	assert.Contains(t, a.out.String(), "No uploads yet")
}

func TestHelp(t *testing.T) {
	a := newTestApp(t, "u1", "")
	require.NoError(t, a.Help(context.Background()))
	assert.Contains(t, a.out.String(), "toggle <n|id>")
}
