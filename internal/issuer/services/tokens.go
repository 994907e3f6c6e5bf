// Package services holds the issuer business logic: validating upload
// requests and granting presigned, short-lived upload URLs.
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/photosync/internal/common"
)

// Presigner grants a time-limited URL that allows a single PUT of key.
type Presigner interface {
	PresignPut(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// Grant is one issued upload token.
type Grant struct {
	BlobName  string
	UploadURL string
	ExpiresAt time.Time
}

type TokenService struct {
	presigner Presigner
	prefix    string
	ttl       time.Duration
	now       func() time.Time
}

// NewTokenService validates ttlMinutes (1..60) and builds the service.
func NewTokenService(presigner Presigner, prefix string, ttlMinutes int) (*TokenService, error) {
	if ttlMinutes < 1 || ttlMinutes > 60 {
		return nil, fmt.Errorf("%w: token ttl must be between 1 and 60 minutes", common.ErrInvalidInput)
	}
	return &TokenService{
		presigner: presigner,
		prefix:    strings.Trim(prefix, "/"),
		ttl:       time.Duration(ttlMinutes) * time.Minute,
		now:       time.Now,
	}, nil
}

// BlobName builds <prefix>/<user>/<YYYY>/<MM>/<DD>/<HHMMSS>-<filename>.
func (s *TokenService) BlobName(user, filename string, at time.Time) string {
	name := fmt.Sprintf("%s/%s-%s", user, at.UTC().Format("2006/01/02/150405"), filename)
	if s.prefix == "" {
		return name
	}
	return s.prefix + "/" + name
}

// Issue validates the request and presigns an upload for it. Validation
// failures wrap common.ErrInvalidInput.
func (s *TokenService) Issue(ctx context.Context, userID, filename string) (Grant, error) {
	user, err := SanitizeComponent(userID, "user_id")
	if err != nil {
		return Grant{}, err
	}
	name, err := SanitizeFilename(filename)
	if err != nil {
		return Grant{}, err
	}

	now := s.now().UTC()
	blob := s.BlobName(user, name, now)

	url, err := s.presigner.PresignPut(ctx, blob, s.ttl)
	if err != nil {
		return Grant{}, fmt.Errorf("presign %s: %w", blob, err)
	}

	return Grant{BlobName: blob, UploadURL: url, ExpiresAt: now.Add(s.ttl)}, nil
}
