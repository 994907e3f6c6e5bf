package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/photosync/internal/common"
	"github.com/dmitrijs2005/photosync/internal/issuer/services"
	"github.com/dmitrijs2005/photosync/internal/logging"
)

const maxRequestBody = 64 << 10

// TokenIssuer grants one upload token per call.
type TokenIssuer interface {
	Issue(ctx context.Context, userID, filename string) (services.Grant, error)
}

type Handler struct {
	tokens TokenIssuer
	log    logging.Logger
}

func NewHandler(tokens TokenIssuer, log logging.Logger) *Handler {
	return &Handler{tokens: tokens, log: log}
}

type uploadTokenRequest struct {
	UserID   string `json:"user_id"`
	Filename string `json:"filename"`
}

type uploadTokenResponse struct {
	BlobName  string `json:"blob_name"`
	UploadURL string `json:"upload_url"`
	ExpiresAt string `json:"expires_at"`
}

// UploadToken handles POST /v1/mobile/upload-token.
func (h *Handler) UploadToken(w http.ResponseWriter, r *http.Request) {
	var req uploadTokenRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := dec.Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if authUser, ok := UserIDFromContext(r.Context()); ok {
		user, err := services.SanitizeComponent(req.UserID, "user_id")
		if err != nil {
			Error(w, http.StatusBadRequest, err.Error())
			return
		}
		if user != authUser {
			Error(w, http.StatusForbidden, "user_id does not match token")
			return
		}
	}

	grant, err := h.tokens.Issue(r.Context(), req.UserID, req.Filename)
	if err != nil {
		if errors.Is(err, common.ErrInvalidInput) {
			Error(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error(r.Context(), "issue upload token", "error", err)
		Error(w, http.StatusInternalServerError, "could not issue upload token")
		return
	}

	h.log.Info(r.Context(), "upload token issued", "blob", grant.BlobName, "expires_at", grant.ExpiresAt)

	JSON(w, http.StatusOK, uploadTokenResponse{
		BlobName:  grant.BlobName,
		UploadURL: grant.UploadURL,
		ExpiresAt: grant.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
