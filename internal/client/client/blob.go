package client

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/photosync/internal/client/models"
	"github.com/dmitrijs2005/photosync/internal/common"
	"github.com/dmitrijs2005/photosync/internal/netx"
)

// BlobClient writes asset bytes to upload URLs granted by the backend.
type BlobClient struct {
	http *http.Client
}

func NewBlobClient(httpClient *http.Client) *BlobClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &BlobClient{http: httpClient}
}

// Upload PUTs data to token.UploadURL in one request. Any non-2xx status is
// reported as common.ErrUpload; the response body is otherwise ignored.
func (c *BlobClient) Upload(ctx context.Context, data []byte, contentType string, token models.UploadTokenResponse) error {
	if contentType == "" {
		contentType = common.ContentTypeBinary
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, token.UploadURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", common.ErrUpload, err)
	}
	req.ContentLength = int64(len(data))
	req.Header.Set(common.BlobTypeHeader, common.BlobTypeBlock)
	req.Header.Set(common.ContentTypeHeader, contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		// The URL carries a signature, keep it out of the error.
		return fmt.Errorf("%w: put %s: %v", common.ErrUpload, token.BlobName, unwrapURLError(err))
	}
	defer netx.DrainAndClose(resp.Body)

	if !netx.IsSuccess(resp.StatusCode) {
		return fmt.Errorf("%w: put %s: %s", common.ErrUpload, token.BlobName, netx.DescribeFailure(resp))
	}
	return nil
}
