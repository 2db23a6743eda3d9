package api

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/dcamara/simple-portfolio/pkg/portfolio"
)

// PortfolioHandler serves the public, unauthenticated surface: the
// aggregated portfolio data and the uploaded files themselves.
type PortfolioHandler struct {
	service portfolio.Service
	files   portfolio.FileStore
}

func NewPortfolioHandler(service portfolio.Service, files portfolio.FileStore) *PortfolioHandler {
	return &PortfolioHandler{service: service, files: files}
}

// Routes returns the router for public portfolio endpoints
func (h *PortfolioHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/data", h.GetData)
	return r
}

// GetData returns profile, certificates and publications in one call
func (h *PortfolioHandler) GetData(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.PortfolioData(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, data)
}

// ServeUpload streams a stored file. Mount under GET /uploads/*.
func (h *PortfolioHandler) ServeUpload(w http.ResponseWriter, r *http.Request) {
	ref := portfolio.RefPrefix + chi.URLParam(r, "*")

	rc, err := h.files.Open(r.Context(), ref)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, portfolio.ErrInvalidReference) {
			renderError(w, r, portfolio.ErrNotFound)
			return
		}
		renderError(w, r, &portfolio.StorageError{Op: "open upload", Err: err})
		return
	}
	defer rc.Close()

	if ctype := mime.TypeByExtension(path.Ext(ref)); ctype != "" {
		w.Header().Set("Content-Type", ctype)
	}
	if _, err := io.Copy(w, rc); err != nil {
		slog.Warn("upload stream interrupted", "ref", ref, "err", err)
	}
}
