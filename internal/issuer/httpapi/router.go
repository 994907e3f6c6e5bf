package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/photosync/internal/common"
	"github.com/dmitrijs2005/photosync/internal/logging"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter wires the handler behind request ids, access logging, panic
// recovery and CORS. The token endpoint additionally requires a bearer token
// when jwtSecret is set.
func NewRouter(h *Handler, jwtSecret string, log logging.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(chimw.RealIP)
	r.Use(Logger(log))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", common.AuthorizationHeader, common.ContentTypeHeader, requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/health", h.Health)

	r.Group(func(r chi.Router) {
		r.Use(RequireBearer(jwtSecret))
		r.Post(common.UploadTokenPath, h.UploadToken)
	})

	return r
}
