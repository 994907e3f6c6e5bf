// Package services contains the client application services. UploadService
// drives the upload pipeline: it lists the media library, keeps the user's
// selection and pushes every selected asset through the token exchange and
// the blob transfer.
package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/photosync/internal/client/library"
	"github.com/dmitrijs2005/photosync/internal/client/models"
	"github.com/dmitrijs2005/photosync/internal/client/repositories/uploads"
	"github.com/dmitrijs2005/photosync/internal/common"
	"github.com/dmitrijs2005/photosync/internal/logging"
)

// Status messages shown to the user.
const (
	MsgPermissionDenied = "Photo permission denied"
	MsgNoSelection      = "No photos selected"
	MsgLoading          = "Loading library..."
)

func msgLoaded(n int) string      { return fmt.Sprintf("Loaded %d photos", n) }
func msgUploaded(n int) string    { return fmt.Sprintf("Uploaded %d item(s) securely", n) }
func msgProgress(i, n int) string { return fmt.Sprintf("Uploading %d/%d...", i, n) }
func msgFailed(err error) string  { return "Upload failed: " + err.Error() }

// TokenRequester obtains a single-use upload token for one file.
type TokenRequester interface {
	RequestUploadToken(ctx context.Context, userID, filename string) (models.UploadTokenResponse, error)
}

// BlobUploader transfers bytes to the URL granted by a token.
type BlobUploader interface {
	Upload(ctx context.Context, data []byte, contentType string, token models.UploadTokenResponse) error
}

// Option customises an UploadService.
type Option func(*UploadService)

// WithLimit sets how many items LoadLibrary asks the provider for.
func WithLimit(n int) Option {
	return func(s *UploadService) { s.limit = n }
}

// WithClock replaces time.Now, used to check token expiry.
func WithClock(now func() time.Time) Option {
	return func(s *UploadService) { s.now = now }
}

// UploadService owns the selection and the session state. It runs one
// operation at a time and is not safe for concurrent use.
type UploadService struct {
	provider library.Provider
	tokens   TokenRequester
	blobs    BlobUploader
	ledger   uploads.Repository
	log      logging.Logger

	limit int
	now   func() time.Time

	assets    []models.AssetRef
	selection models.Selection
	state     models.SessionState

	observers map[int]func(models.SessionState)
	nextObs   int
}

// NewUploadService wires the pipeline. ledger may be nil.
func NewUploadService(provider library.Provider, tokens TokenRequester, blobs BlobUploader, ledger uploads.Repository, log logging.Logger, opts ...Option) *UploadService {
	s := &UploadService{
		provider:  provider,
		tokens:    tokens,
		blobs:     blobs,
		ledger:    ledger,
		log:       log.With("component", "upload"),
		limit:     library.DefaultLimit,
		now:       time.Now,
		observers: make(map[int]func(models.SessionState)),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Subscribe registers fn to receive a snapshot after every state change.
// fn runs synchronously and must not call mutating methods.
func (s *UploadService) Subscribe(fn func(models.SessionState)) (cancel func()) {
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	return func() { delete(s.observers, id) }
}

func (s *UploadService) State() models.SessionState {
	return s.state
}

// Assets returns the last listing, newest first.
func (s *UploadService) Assets() []models.AssetRef {
	return append([]models.AssetRef(nil), s.assets...)
}

// Selected returns the selected assets in listing order.
func (s *UploadService) Selected() []models.AssetRef {
	return s.selection.Filter(s.assets)
}

func (s *UploadService) IsSelected(id string) bool {
	return s.selection.Contains(id)
}

func (s *UploadService) update(fn func(st *models.SessionState)) {
	fn(&s.state)
	// Stale ids stay in the set but are not uploadable, so they are not counted.
	s.state.Selected = len(s.selection.Filter(s.assets))
	snapshot := s.state
	for _, obs := range s.observers {
		obs(snapshot)
	}
}

// LoadLibrary asks the provider for access and lists its newest items.
// A refusal returns common.ErrPermissionDenied and may be retried.
func (s *UploadService) LoadLibrary(ctx context.Context) error {
	s.update(func(st *models.SessionState) {
		st.Status = models.SessionLoading
		st.Message = MsgLoading
	})

	perm := s.provider.RequestPermission(ctx)
	s.log.Debug(ctx, "library permission", "state", perm.String())
	if !perm.Granted() {
		s.update(func(st *models.SessionState) {
			st.Status = models.SessionIdle
			st.Message = MsgPermissionDenied
		})
		return common.ErrPermissionDenied
	}

	assets, err := s.provider.FetchLatest(ctx, s.limit)
	if err != nil {
		s.log.Error(ctx, "list library", "error", err)
		s.update(func(st *models.SessionState) {
			st.Status = models.SessionIdle
			st.Message = "Loading failed: " + err.Error()
		})
		return fmt.Errorf("list library: %w", err)
	}

	s.assets = assets
	s.log.Info(ctx, "library loaded", "count", len(assets), "permission", perm.String())
	s.update(func(st *models.SessionState) {
		st.Status = models.SessionReady
		st.Message = msgLoaded(len(assets))
		st.Loaded = len(assets)
	})
	return nil
}

// ToggleSelection flips id in the selection and reports whether it is
// selected afterwards. Ids missing from the current listing are never added.
func (s *UploadService) ToggleSelection(id string) bool {
	if !s.selection.Contains(id) && !s.listed(id) {
		return false
	}
	selected := s.selection.Toggle(id)
	s.update(func(*models.SessionState) {})
	return selected
}

func (s *UploadService) listed(id string) bool {
	for _, a := range s.assets {
		if a.ID == id {
			return true
		}
	}
	return false
}

// UploadSelected uploads the selected assets one after another in listing
// order. The first failure stops the batch; assets uploaded before it stay
// uploaded. On full success the selection is cleared.
func (s *UploadService) UploadSelected(ctx context.Context, userID string) error {
	chosen := s.selection.Filter(s.assets)
	if len(chosen) == 0 {
		s.update(func(st *models.SessionState) { st.Message = MsgNoSelection })
		return common.ErrEmptySelection
	}

	log := s.log.With("user_id", userID, "batch", len(chosen))
	log.Info(ctx, "upload started")

	s.update(func(st *models.SessionState) {
		st.Status = models.SessionUploading
		st.Uploaded = 0
		st.Message = msgProgress(1, len(chosen))
	})

	for i, ref := range chosen {
		if i > 0 {
			s.update(func(st *models.SessionState) { st.Message = msgProgress(i+1, len(chosen)) })
		}

		out := s.uploadOne(ctx, log, userID, ref)
		if !out.OK() {
			log.Error(ctx, "upload aborted", "asset_id", ref.ID, "uploaded", i, "error", out.Err)
			s.update(func(st *models.SessionState) {
				st.Status = models.SessionFailed
				st.Message = msgFailed(out.Err)
			})
			return out.Err
		}

		s.update(func(st *models.SessionState) { st.Uploaded = i + 1 })
	}

	s.selection.Clear()
	log.Info(ctx, "upload finished")
	s.update(func(st *models.SessionState) {
		st.Status = models.SessionCompleted
		st.Message = msgUploaded(len(chosen))
	})
	return nil
}

func (s *UploadService) uploadOne(ctx context.Context, log logging.Logger, userID string, ref models.AssetRef) models.Outcome {
	out := models.Outcome{AssetID: ref.ID}
	name := ref.UploadName()

	if err := ctx.Err(); err != nil {
		out.Err = fmt.Errorf("%s: %w", name, err)
		return out
	}

	log.Debug(ctx, "loading asset", "asset_id", ref.ID, "filename", name)
	data, err := s.provider.LoadData(ctx, ref)
	if err != nil {
		if !errors.Is(err, common.ErrAssetRead) {
			err = fmt.Errorf("%w: %v", common.ErrAssetRead, err)
		}
		out.Err = fmt.Errorf("%s: %w", name, err)
		return out
	}

	token, err := s.tokens.RequestUploadToken(ctx, userID, name)
	if err != nil {
		out.Err = fmt.Errorf("%s: %w", name, err)
		return out
	}
	out.BlobName = token.BlobName
	log.Debug(ctx, "token granted", "asset_id", ref.ID, "blob_name", token.BlobName, "expires_at", token.ExpiresAt)

	if token.Expired(s.now()) {
		log.Warn(ctx, "upload token already expired", "blob_name", token.BlobName, "expires_at", token.ExpiresAt)
	}

	if err := s.blobs.Upload(ctx, data, ref.ContentType(), token); err != nil {
		out.Err = fmt.Errorf("%s: %w", name, err)
		return out
	}
	log.Info(ctx, "asset uploaded", "asset_id", ref.ID, "blob_name", token.BlobName, "size", len(data))

	s.record(ctx, log, ref, name, token.BlobName, data)
	return out
}

// record writes a ledger row. Failures are logged and otherwise ignored.
func (s *UploadService) record(ctx context.Context, log logging.Logger, ref models.AssetRef, name, blobName string, data []byte) {
	if s.ledger == nil {
		return
	}
	sum := sha256.Sum256(data)
	err := s.ledger.Add(ctx, models.UploadRecord{
		AssetID:    ref.ID,
		Filename:   name,
		BlobName:   blobName,
		Size:       int64(len(data)),
		SHA256:     hex.EncodeToString(sum[:]),
		UploadedAt: s.now(),
	})
	if err != nil {
		log.Warn(ctx, "record upload", "asset_id", ref.ID, "error", err)
	}
}

// History returns the most recent ledger entries.
func (s *UploadService) History(ctx context.Context, limit int) ([]models.UploadRecord, error) {
	if s.ledger == nil {
		return nil, nil
	}
	return s.ledger.List(ctx, limit)
}
