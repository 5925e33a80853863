package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/komolbek/expostandai/internal/domain"
	"github.com/komolbek/expostandai/internal/middleware"
	"github.com/komolbek/expostandai/pkg/zip"
)

type inquirySubmitRequest struct {
	ContactInfo        domain.ContactInfo `json:"contactInfo"`
	InquiryData        domain.Inquiry     `json:"inquiryData"`
	GeneratedImages    []string           `json:"generatedImages,omitempty"`
	SelectedImageIndex *int               `json:"selectedImageIndex,omitempty"`
	ConversationLog    json.RawMessage    `json:"conversationLog,omitempty"`
}

// SubmitInquiry persists a completed inquiry and notifies staff.
func (a *App) SubmitInquiry(w http.ResponseWriter, r *http.Request) {
	var req inquirySubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if err := req.ContactInfo.Validate(); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	if err := req.InquiryData.Validate(); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	rec := &domain.InquiryRecord{
		Country:            middleware.CountryFromContext(r.Context()),
		Contact:            req.ContactInfo,
		Data:               req.InquiryData,
		GeneratedImages:    req.GeneratedImages,
		SelectedImageIndex: req.SelectedImageIndex,
		ConversationLog:    req.ConversationLog,
	}
	if err := a.Inquiries.Create(r.Context(), rec); err != nil {
		a.Log.Error().Err(err).Msg("inquiry insert failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to submit inquiry")
		return
	}

	if a.Notifier != nil {
		// Notification delivery must not delay the submission response.
		go func(rec *domain.InquiryRecord) {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			a.Notifier.InquirySubmitted(ctx, rec)
		}(rec)
	}

	a.json(w, http.StatusCreated, map[string]any{
		"success":   true,
		"inquiryId": rec.ID,
		"message":   "Заявка успешно отправлена",
	})
}

// ListInquiries returns a paginated admin view, optionally filtered by status.
func (a *App) ListInquiries(w http.ResponseWriter, r *http.Request) {
	status := domain.InquiryStatus(strings.TrimSpace(r.URL.Query().Get("status")))
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	records, total, err := a.Inquiries.List(r.Context(), status, page, perPage)
	if err != nil {
		a.Log.Error().Err(err).Msg("inquiry list failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to list inquiries")
		return
	}
	if records == nil {
		records = []domain.InquiryRecord{}
	}
	a.json(w, http.StatusOK, map[string]any{
		"inquiries": records,
		"total":     total,
		"page":      page,
		"per_page":  perPage,
	})
}

// GetInquiry returns one inquiry for the admin detail screen.
func (a *App) GetInquiry(w http.ResponseWriter, r *http.Request) {
	rec, err := a.Inquiries.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "inquiry not found")
			return
		}
		a.Log.Error().Err(err).Msg("inquiry fetch failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load inquiry")
		return
	}
	a.json(w, http.StatusOK, rec)
}

type inquiryUpdateRequest struct {
	Status      *domain.InquiryStatus `json:"status,omitempty"`
	AdminNotes  *string               `json:"admin_notes,omitempty"`
	QuotedPrice *float64              `json:"quoted_price,omitempty"`
}

// UpdateInquiry applies admin edits to the workflow fields.
func (a *App) UpdateInquiry(w http.ResponseWriter, r *http.Request) {
	var req inquiryUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Status == nil && req.AdminNotes == nil && req.QuotedPrice == nil {
		a.error(w, http.StatusBadRequest, "bad_request", "no valid fields to update")
		return
	}
	if req.Status != nil {
		switch *req.Status {
		case domain.StatusNew, domain.StatusQuoted, domain.StatusAccepted, domain.StatusRejected, domain.StatusArchived:
		default:
			a.error(w, http.StatusBadRequest, "bad_request", "unknown status")
			return
		}
	}

	rec, err := a.Inquiries.Update(r.Context(), chi.URLParam(r, "id"), domain.InquiryUpdate{
		Status:      req.Status,
		AdminNotes:  req.AdminNotes,
		QuotedPrice: req.QuotedPrice,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "inquiry not found")
			return
		}
		a.Log.Error().Err(err).Msg("inquiry update failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to update inquiry")
		return
	}
	a.json(w, http.StatusOK, rec)
}

// DownloadInquiryFiles bundles the brand uploads of one inquiry into a zip
// archive for the admin screen. Externally hosted files are skipped.
func (a *App) DownloadInquiryFiles(w http.ResponseWriter, r *http.Request) {
	rec, err := a.Inquiries.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "inquiry not found")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to load inquiry")
		return
	}

	var assets []zip.Asset
	files := append([]domain.UploadedFile{}, rec.Data.BrandFiles...)
	files = append(files, rec.Data.PreviousStandFiles...)
	for _, f := range files {
		if strings.HasPrefix(f.URL, "http://") || strings.HasPrefix(f.URL, "https://") {
			continue
		}
		data, err := a.Files.Read(r.Context(), strings.TrimPrefix(f.URL, "/"))
		if err != nil {
			a.Log.Warn().Err(err).Str("file", f.Name).Msg("skipping unreadable upload")
			continue
		}
		assets = append(assets, zip.Asset{Filename: f.Name, MIME: f.Type, Data: data})
	}
	if len(assets) == 0 {
		a.error(w, http.StatusNotFound, "not_found", "no stored files for this inquiry")
		return
	}

	archive, err := zip.Archive(assets)
	if err != nil {
		a.Log.Error().Err(err).Msg("archive build failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to build archive")
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "inquiry-"+rec.ID+"-files.zip"))
	_, _ = w.Write(archive)
}
