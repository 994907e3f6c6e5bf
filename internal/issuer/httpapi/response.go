// Package httpapi exposes the issuer over HTTP: the upload-token endpoint,
// a health probe and the middleware around them.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/photosync/internal/common"
)

type errorBody struct {
	Error string `json:"error"`
}

// JSON writes payload with the given status.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set(common.ContentTypeHeader, common.ContentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// Error writes {"error": message} with the given status.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, errorBody{Error: message})
}
