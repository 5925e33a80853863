package domain

import "context"

// InquiryUpdate carries the admin-editable fields. Nil means "leave as is".
type InquiryUpdate struct {
	Status      *InquiryStatus
	AdminNotes  *string
	QuotedPrice *float64
}

type InquiryRepository interface {
	Create(ctx context.Context, rec *InquiryRecord) error
	GetByID(ctx context.Context, id string) (*InquiryRecord, error)
	List(ctx context.Context, status InquiryStatus, page, perPage int) ([]InquiryRecord, int, error)
	Update(ctx context.Context, id string, update InquiryUpdate) (*InquiryRecord, error)
}

type PromoCodeRepository interface {
	Create(ctx context.Context, code *PromoCode) error
	GetByCode(ctx context.Context, code string) (*PromoCode, error)
	List(ctx context.Context) ([]PromoCode, error)
	SetActive(ctx context.Context, id string, active bool) error
}

type AdminRepository interface {
	GetByEmail(ctx context.Context, email string) (*AdminUser, error)
	Create(ctx context.Context, admin *AdminUser) error
}
