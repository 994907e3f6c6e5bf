package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/photosync/internal/client/models"
	"github.com/dmitrijs2005/photosync/internal/common"
	"github.com/dmitrijs2005/photosync/internal/netx"
)

// maxTokenResponse bounds the token response body that is decoded.
const maxTokenResponse = 64 << 10

// CredentialReader yields the stored bearer token, if any.
type CredentialReader interface {
	Read() (string, bool)
}

// TokenClient requests per-file upload tokens from the backend.
type TokenClient struct {
	endpoint string
	http     *http.Client
	creds    CredentialReader
}

// NewTokenClient builds a client for the backend at baseURL. creds may be nil,
// in which case requests carry no Authorization header.
func NewTokenClient(baseURL string, httpClient *http.Client, creds CredentialReader) (*TokenClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid backend url %q: %w", baseURL, common.ErrInvalidInput)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &TokenClient{
		endpoint: u.String() + common.UploadTokenPath,
		http:     httpClient,
		creds:    creds,
	}, nil
}

// RequestUploadToken asks for a token to upload filename on behalf of userID.
// Any non-2xx status or malformed body is reported as common.ErrBackend.
func (c *TokenClient) RequestUploadToken(ctx context.Context, userID, filename string) (models.UploadTokenResponse, error) {
	var tok models.UploadTokenResponse

	body, err := json.Marshal(models.UploadTokenRequest{UserID: userID, Filename: filename})
	if err != nil {
		return tok, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return tok, err
	}
	req.Header.Set(common.ContentTypeHeader, common.ContentTypeJSON)
	if c.creds != nil {
		if bearer, ok := c.creds.Read(); ok && bearer != "" {
			req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+bearer)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return tok, fmt.Errorf("%w: request token: %v", common.ErrBackend, err)
	}
	defer netx.DrainAndClose(resp.Body)

	if !netx.IsSuccess(resp.StatusCode) {
		return tok, fmt.Errorf("%w: token request failed: %s", common.ErrBackend, netx.DescribeFailure(resp))
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxTokenResponse)).Decode(&tok); err != nil {
		return models.UploadTokenResponse{}, fmt.Errorf("%w: decode token response: %v", common.ErrBackend, err)
	}
	if err := validateToken(tok); err != nil {
		return models.UploadTokenResponse{}, fmt.Errorf("%w: %v", common.ErrBackend, err)
	}

	return tok, nil
}

func validateToken(tok models.UploadTokenResponse) error {
	if tok.BlobName == "" {
		return fmt.Errorf("token response without blob_name")
	}
	if tok.ExpiresAt.IsZero() {
		return fmt.Errorf("token response without expires_at")
	}
	u, err := url.Parse(tok.UploadURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("token response with invalid upload_url")
	}
	return nil
}
