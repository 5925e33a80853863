package handlers

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/komolbek/expostandai/internal/domain"
)

const maxUploadBytes = 10 << 20

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9.\-]`)

// Upload stores client files (logos, brand guidelines, previous stand
// photos) and returns their references for later inquiry submission.
func (a *App) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid multipart payload")
		return
	}
	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		files = r.MultipartForm.File["file"]
	}
	if len(files) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "no files provided")
		return
	}
	group := strings.TrimSpace(r.FormValue("inquiryId"))
	if group == "" {
		group = "temp"
	}

	var uploaded []domain.UploadedFile
	for _, header := range files {
		src, err := header.Open()
		if err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "unreadable file")
			return
		}
		data, err := io.ReadAll(io.LimitReader(src, maxUploadBytes+1))
		src.Close()
		if err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "unreadable file")
			return
		}
		if len(data) > maxUploadBytes {
			a.error(w, http.StatusRequestEntityTooLarge, "too_large", "file exceeds the 10MB limit")
			return
		}

		safeName := unsafeNameChars.ReplaceAllString(header.Filename, "_")
		key := fmt.Sprintf("uploads/%s/%d-%s", group, time.Now().UnixMilli(), safeName)
		storedKey, err := a.Files.Write(r.Context(), key, data)
		if err != nil {
			a.Log.Error().Err(err).Str("file", header.Filename).Msg("upload write failed")
			a.error(w, http.StatusInternalServerError, "internal", "failed to store file")
			return
		}

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = mime.TypeByExtension(path.Ext(safeName))
		}
		uploaded = append(uploaded, domain.UploadedFile{
			ID:   uuid.NewString(),
			Name: header.Filename,
			URL:  "/" + storedKey,
			Type: contentType,
			Size: int64(len(data)),
		})
	}

	a.json(w, http.StatusOK, map[string]any{"files": uploaded})
}

// ServeUpload streams a stored upload back to the client.
func (a *App) ServeUpload(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(r.URL.Path, "/")
	if !strings.HasPrefix(key, "uploads/") {
		a.error(w, http.StatusNotFound, "not_found", "file not found")
		return
	}
	data, err := a.Files.Read(r.Context(), key)
	if err != nil {
		a.error(w, http.StatusNotFound, "not_found", "file not found")
		return
	}
	if contentType := mime.TypeByExtension(path.Ext(key)); contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	_, _ = w.Write(data)
}
