package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidInquiry    = errors.New("invalid inquiry")
	ErrQuotaExceeded     = errors.New("quota exceeded")
	ErrProviderFailure   = errors.New("provider failure")
	ErrAllVariantsFailed = errors.New("all image generation attempts failed")
)
