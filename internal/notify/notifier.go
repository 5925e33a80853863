// Package notify fans out staff notifications for newly submitted inquiries
// over email and Telegram. Delivery is best effort: a failed channel is
// logged and never blocks the submission flow.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/komolbek/expostandai/internal/domain"
	"github.com/komolbek/expostandai/internal/infra"
)

// Service aggregates the configured notification channels.
type Service struct {
	email      *EmailSender
	telegram   *TelegramSender
	adminEmail string
	baseURL    string
	logger     infra.Logger
}

func NewService(email *EmailSender, telegram *TelegramSender, adminEmail, publicBaseURL string, logger infra.Logger) *Service {
	return &Service{
		email:      email,
		telegram:   telegram,
		adminEmail: strings.TrimSpace(adminEmail),
		baseURL:    strings.TrimRight(publicBaseURL, "/"),
		logger:     logger,
	}
}

// InquirySubmitted notifies staff about a new inquiry on every configured
// channel. Channels without credentials are skipped silently.
func (s *Service) InquirySubmitted(ctx context.Context, rec *domain.InquiryRecord) {
	adminURL := fmt.Sprintf("%s/admin/inquiries/%s", s.baseURL, rec.ID)

	if s.email != nil && s.email.HasCredentials() && s.adminEmail != "" {
		err := s.email.Send(ctx, s.adminEmail, newInquirySubject(rec), newInquiryEmailHTML(rec, adminURL))
		if err != nil {
			s.logger.Error().Err(err).Str("inquiry_id", rec.ID).Msg("email notification failed")
		}
	}

	if s.telegram != nil && s.telegram.HasCredentials() {
		if err := s.telegram.Send(newInquiryTelegramMessage(rec, adminURL)); err != nil {
			s.logger.Error().Err(err).Str("inquiry_id", rec.ID).Msg("telegram notification failed")
		}
	}
}
