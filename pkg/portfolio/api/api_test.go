package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcamara/simple-portfolio/pkg/portfolio"
	"github.com/dcamara/simple-portfolio/pkg/portfolio/api"
	"github.com/dcamara/simple-portfolio/pkg/portfolio/auth"
	docmemory "github.com/dcamara/simple-portfolio/pkg/portfolio/docstore/memory"
	filememory "github.com/dcamara/simple-portfolio/pkg/portfolio/filestore/memory"
)

// setupRouter wires the full API surface the way the server binary does,
// backed by in-memory stores.
func setupRouter(t *testing.T) http.Handler {
	t.Helper()

	docs := docmemory.New()
	files := filememory.New()

	svc, err := portfolio.New(
		portfolio.WithDocumentStore(docs),
		portfolio.WithFileStore(files),
	)
	require.NoError(t, err)

	gate, err := auth.New(docs, auth.Config{Secret: "test-secret"})
	require.NoError(t, err)
	require.NoError(t, gate.SeedCredential(context.Background(), "admin", "hunter2"))

	authHandler := api.NewAuthHandler(gate)
	portfolioHandler := api.NewPortfolioHandler(svc, files)
	adminHandler := api.NewAdminHandler(svc)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes())
		r.Mount("/portfolio", portfolioHandler.Routes())
		r.Route("/admin", func(r chi.Router) {
			r.Use(gate.Verifier())
			r.Use(gate.Authenticator)
			r.Mount("/", adminHandler.Routes())
		})
	})
	r.Get("/uploads/*", portfolioHandler.ServeUpload)

	return r
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, router http.Handler) string {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "admin",
		"password": "hunter2",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.LoginResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// multipartBody builds a multipart form from string fields and named file
// parts, returning the body and its content type.
func multipartBody(t *testing.T, fields map[string]string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for field, filename := range files {
		fw, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte("content of " + filename))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func doMultipart(t *testing.T, router http.Handler, path, token string, fields map[string]string, files map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	body, ctype := multipartBody(t, fields, files)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", ctype)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLogin(t *testing.T) {
	router := setupRouter(t)

	t.Run("Success", func(t *testing.T) {
		token := login(t, router)
		assert.NotEmpty(t, token)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
			"username": "admin",
			"password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
			"username": "nobody",
			"password": "hunter2",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString("{"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAdminGating(t *testing.T) {
	router := setupRouter(t)

	t.Run("NoToken", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/admin/profile", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("GarbageToken", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/admin/profile", "not.a.token", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("ValidToken", func(t *testing.T) {
		token := login(t, router)
		w := doJSON(t, router, http.MethodGet, "/api/admin/profile", token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestProfileEndpoints(t *testing.T) {
	router := setupRouter(t)
	token := login(t, router)

	w := doJSON(t, router, http.MethodPut, "/api/admin/profile", token, map[string]interface{}{
		"name": "Ada",
		"bio":  "Engineer",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var profile portfolio.Profile
	require.NoError(t, json.NewDecoder(w.Body).Decode(&profile))
	assert.Equal(t, "Ada", profile.Name)
	assert.Equal(t, "Engineer", profile.Bio)

	// Public data reflects the update without authentication
	w = doJSON(t, router, http.MethodGet, "/api/portfolio/data", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var data portfolio.PortfolioData
	require.NoError(t, json.NewDecoder(w.Body).Decode(&data))
	assert.Equal(t, "Ada", data.Profile.Name)
}

func TestCertificateEndpoints(t *testing.T) {
	router := setupRouter(t)
	token := login(t, router)

	w := doMultipart(t, router, "/api/admin/certificates", token,
		map[string]string{
			"name":     "AWS Cert",
			"platform": "AWS",
			"date":     "2024-01-01",
			"category": "Cloud",
		},
		map[string]string{
			"certificatePdf":   "cert.pdf",
			"certificateThumb": "thumb.png",
		})
	require.Equal(t, http.StatusCreated, w.Code)

	var cert portfolio.Certificate
	require.NoError(t, json.NewDecoder(w.Body).Decode(&cert))
	assert.Equal(t, "AWS Cert", cert.Name)
	require.NotEmpty(t, cert.PDFPath)

	t.Run("ServeUpload", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, cert.PDFPath, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		body, err := io.ReadAll(w.Body)
		require.NoError(t, err)
		assert.Equal(t, "content of cert.pdf", string(body))
	})

	t.Run("ServeUploadMissing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/uploads/certificates/nope.pdf", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Update", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPut, "/api/admin/certificates/"+cert.ID.String(), token, map[string]string{
			"platform": "Azure",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var updated portfolio.Certificate
		require.NoError(t, json.NewDecoder(w.Body).Decode(&updated))
		assert.Equal(t, "Azure", updated.Platform)
		assert.Equal(t, cert.PDFPath, updated.PDFPath)
	})

	t.Run("UpdateUnknownID", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPut, "/api/admin/certificates/not-a-uuid", token, map[string]string{
			"platform": "Azure",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("CreateMissingFile", func(t *testing.T) {
		w := doMultipart(t, router, "/api/admin/certificates", token,
			map[string]string{"name": "Incomplete"},
			map[string]string{"certificatePdf": "cert.pdf"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Delete", func(t *testing.T) {
		w := doJSON(t, router, http.MethodDelete, "/api/admin/certificates/"+cert.ID.String(), token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp api.DeleteResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, cert.ID, resp.ID)

		// Gone from the public view and from storage
		w = doJSON(t, router, http.MethodGet, "/api/portfolio/data", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var data portfolio.PortfolioData
		require.NoError(t, json.NewDecoder(w.Body).Decode(&data))
		assert.Empty(t, data.Certificates)

		req := httptest.NewRequest(http.MethodGet, cert.PDFPath, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestPublicationEndpoints(t *testing.T) {
	router := setupRouter(t)
	token := login(t, router)

	w := doMultipart(t, router, "/api/admin/publications", token,
		map[string]string{
			"name": "On Distributed Consensus",
			"type": "thesis",
			"year": "2023",
		},
		map[string]string{"publicationFile": "thesis.pdf"})
	require.Equal(t, http.StatusCreated, w.Code)

	var pub portfolio.Publication
	require.NoError(t, json.NewDecoder(w.Body).Decode(&pub))
	assert.Equal(t, portfolio.PublicationThesis, pub.Type)

	t.Run("CreateInvalidType", func(t *testing.T) {
		w := doMultipart(t, router, "/api/admin/publications", token,
			map[string]string{"name": "Bad", "type": "novel"},
			map[string]string{"publicationFile": "f.pdf"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Delete", func(t *testing.T) {
		w := doJSON(t, router, http.MethodDelete, "/api/admin/publications/"+pub.ID.String(), token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("DeleteAgain", func(t *testing.T) {
		w := doJSON(t, router, http.MethodDelete, "/api/admin/publications/"+pub.ID.String(), token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUploadTraversalRejected(t *testing.T) {
	router := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/uploads/..%2f..%2fetc%2fpasswd", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfileUploadEndpoints(t *testing.T) {
	router := setupRouter(t)
	token := login(t, router)

	w := doMultipart(t, router, "/api/admin/upload/profile-image", token,
		nil, map[string]string{"profileImage": "me.png"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.ProfileFileResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotNil(t, resp.Profile)
	assert.NotEmpty(t, resp.Profile.ProfileImagePath)

	t.Run("MissingField", func(t *testing.T) {
		w := doMultipart(t, router, "/api/admin/upload/resume", token, nil, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
