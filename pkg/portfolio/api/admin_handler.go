package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/dcamara/simple-portfolio/pkg/portfolio"
)

// maxUploadBytes bounds multipart request bodies.
const maxUploadBytes = 32 << 20

// AdminHandler handles the token-protected editing surface. Routes must be
// mounted behind the credential gate's Verifier and Authenticator.
type AdminHandler struct {
	service portfolio.Service
}

func NewAdminHandler(service portfolio.Service) *AdminHandler {
	return &AdminHandler{service: service}
}

// Routes returns the router for admin endpoints
func (h *AdminHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/profile", h.GetProfile)
	r.Put("/profile", h.UpdateProfile)
	r.Post("/upload/profile-image", h.UploadProfileImage)
	r.Post("/upload/resume", h.UploadResume)

	r.Route("/certificates", func(r chi.Router) {
		r.Post("/", h.CreateCertificate)
		r.Put("/{id}", h.UpdateCertificate)
		r.Delete("/{id}", h.DeleteCertificate)
	})

	r.Route("/publications", func(r chi.Router) {
		r.Post("/", h.CreatePublication)
		r.Put("/{id}", h.UpdatePublication)
		r.Delete("/{id}", h.DeletePublication)
	})

	return r
}

// formFile extracts one uploaded file from an already-parsed multipart
// form. A missing field reports a ValidationError naming it.
func formFile(r *http.Request, field string) (*portfolio.FileUpload, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, &portfolio.ValidationError{Field: field, Reason: "no file provided"}
	}
	return &portfolio.FileUpload{Filename: header.Filename, Reader: file}, nil
}

// recordID parses the {id} route parameter. An unparseable id is simply an
// id that exists in no collection.
func recordID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, portfolio.ErrNotFound
	}
	return id, nil
}

// Profile

func (h *AdminHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.GetProfile(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, profile)
}

// UpdateProfileRequest represents a partial profile update. Absent fields
// are retained.
type UpdateProfileRequest struct {
	Name  *string           `json:"name"`
	Bio   *string           `json:"bio"`
	Links map[string]string `json:"links"`
}

func (h *AdminHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, &portfolio.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), portfolio.UpdateProfileRequest{
		Name:  req.Name,
		Bio:   req.Bio,
		Links: req.Links,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, profile)
}

// ProfileFileResponse confirms a profile file replacement.
type ProfileFileResponse struct {
	Message string             `json:"message"`
	Profile *portfolio.Profile `json:"profile"`
}

func (h *AdminHandler) UploadProfileImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		renderError(w, r, &portfolio.ValidationError{Field: "body", Reason: "malformed multipart form"})
		return
	}
	upload, err := formFile(r, "profileImage")
	if err != nil {
		renderError(w, r, err)
		return
	}

	profile, err := h.service.ReplaceProfileImage(r.Context(), *upload)
	if err != nil {
		renderError(w, r, err)
		return
	}

	slog.Info("profile image replaced", "ref", profile.ProfileImagePath)
	render.JSON(w, r, ProfileFileResponse{Message: "profile image updated", Profile: profile})
}

func (h *AdminHandler) UploadResume(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		renderError(w, r, &portfolio.ValidationError{Field: "body", Reason: "malformed multipart form"})
		return
	}
	upload, err := formFile(r, "resume")
	if err != nil {
		renderError(w, r, err)
		return
	}

	profile, err := h.service.ReplaceResume(r.Context(), *upload)
	if err != nil {
		renderError(w, r, err)
		return
	}

	slog.Info("resume replaced", "ref", profile.ResumePath)
	render.JSON(w, r, ProfileFileResponse{Message: "resume updated", Profile: profile})
}

// Certificates

func (h *AdminHandler) CreateCertificate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		renderError(w, r, &portfolio.ValidationError{Field: "body", Reason: "malformed multipart form"})
		return
	}

	req := portfolio.CreateCertificateRequest{
		Name:     r.FormValue("name"),
		Platform: r.FormValue("platform"),
		Date:     r.FormValue("date"),
		Category: r.FormValue("category"),
	}
	if pdf, err := formFile(r, "certificatePdf"); err == nil {
		req.PDF = pdf
	}
	if thumb, err := formFile(r, "certificateThumb"); err == nil {
		req.Thumbnail = thumb
	}

	cert, err := h.service.CreateCertificate(r.Context(), req)
	if err != nil {
		renderError(w, r, err)
		return
	}

	slog.Info("certificate created", "id", cert.ID)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, cert)
}

// UpdateCertificateRequest represents a metadata-only certificate update.
type UpdateCertificateRequest struct {
	Name     *string `json:"name"`
	Platform *string `json:"platform"`
	Date     *string `json:"date"`
	Category *string `json:"category"`
}

func (h *AdminHandler) UpdateCertificate(w http.ResponseWriter, r *http.Request) {
	id, err := recordID(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	var req UpdateCertificateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, &portfolio.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}

	cert, err := h.service.UpdateCertificate(r.Context(), id, portfolio.UpdateCertificateRequest{
		Name:     req.Name,
		Platform: req.Platform,
		Date:     req.Date,
		Category: req.Category,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, cert)
}

// DeleteResponse confirms a delete with the removed record's id.
type DeleteResponse struct {
	ID      uuid.UUID `json:"id"`
	Message string    `json:"message"`
}

func (h *AdminHandler) DeleteCertificate(w http.ResponseWriter, r *http.Request) {
	id, err := recordID(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	deletedID, err := h.service.DeleteCertificate(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	slog.Info("certificate deleted", "id", deletedID)
	render.JSON(w, r, DeleteResponse{ID: deletedID, Message: "certificate and associated files deleted"})
}

// Publications

func (h *AdminHandler) CreatePublication(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		renderError(w, r, &portfolio.ValidationError{Field: "body", Reason: "malformed multipart form"})
		return
	}

	req := portfolio.CreatePublicationRequest{
		Name:    r.FormValue("name"),
		Type:    portfolio.PublicationType(r.FormValue("type")),
		Year:    r.FormValue("year"),
		Summary: r.FormValue("summary"),
	}
	if file, err := formFile(r, "publicationFile"); err == nil {
		req.File = file
	}

	pub, err := h.service.CreatePublication(r.Context(), req)
	if err != nil {
		renderError(w, r, err)
		return
	}

	slog.Info("publication created", "id", pub.ID)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, pub)
}

// UpdatePublicationRequest represents a metadata-only publication update.
type UpdatePublicationRequest struct {
	Name    *string                    `json:"name"`
	Type    *portfolio.PublicationType `json:"type"`
	Year    *string                    `json:"year"`
	Summary *string                    `json:"summary"`
}

func (h *AdminHandler) UpdatePublication(w http.ResponseWriter, r *http.Request) {
	id, err := recordID(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	var req UpdatePublicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, &portfolio.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}

	pub, err := h.service.UpdatePublication(r.Context(), id, portfolio.UpdatePublicationRequest{
		Name:    req.Name,
		Type:    req.Type,
		Year:    req.Year,
		Summary: req.Summary,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, pub)
}

func (h *AdminHandler) DeletePublication(w http.ResponseWriter, r *http.Request) {
	id, err := recordID(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	deletedID, err := h.service.DeletePublication(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	slog.Info("publication deleted", "id", deletedID)
	render.JSON(w, r, DeleteResponse{ID: deletedID, Message: "publication and associated file deleted"})
}
