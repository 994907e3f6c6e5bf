// Package netx holds HTTP response helpers shared by the token and blob clients.
package netx

import (
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody bounds how much of a failed response body ends up in an error.
const maxErrorBody = 512

// IsSuccess reports whether code is a 2xx status.
func IsSuccess(code int) bool {
	return code >= 200 && code <= 299
}

// DescribeFailure reads at most maxErrorBody bytes of resp.Body and returns
// a short description such as "403 Forbidden; body: AuthorizationFailure".
func DescribeFailure(resp *http.Response) string {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	body := strings.TrimSpace(string(b))
	if body == "" {
		return resp.Status
	}
	return fmt.Sprintf("%s; body: %s", resp.Status, body)
}

// DrainAndClose discards what is left of body so the connection can be reused.
func DrainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
