package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/komolbek/expostandai/internal/domain"
	"github.com/komolbek/expostandai/internal/infra"
	"github.com/komolbek/expostandai/internal/sqlinline"
)

// PromoCodeRepositoryPG implements domain.PromoCodeRepository backed by
// PostgreSQL.
type PromoCodeRepositoryPG struct {
	db infra.SQLExecutor
}

func NewPromoCodeRepository(db infra.SQLExecutor) *PromoCodeRepositoryPG {
	return &PromoCodeRepositoryPG{db: db}
}

func (r *PromoCodeRepositoryPG) Create(ctx context.Context, code *domain.PromoCode) error {
	row := r.db.QueryRow(ctx, sqlinline.QInsertPromoCode, code.Code, code.DiscountPercent, code.ExpiresAt)
	if err := row.Scan(&code.ID, &code.CreatedAt); err != nil {
		return fmt.Errorf("insert promo code: %w", err)
	}
	code.Active = true
	return nil
}

func (r *PromoCodeRepositoryPG) GetByCode(ctx context.Context, code string) (*domain.PromoCode, error) {
	return scanPromoCode(r.db.QueryRow(ctx, sqlinline.QSelectPromoCodeByCode, code))
}

func (r *PromoCodeRepositoryPG) List(ctx context.Context) ([]domain.PromoCode, error) {
	rows, err := r.db.Query(ctx, sqlinline.QSelectPromoCodes)
	if err != nil {
		return nil, fmt.Errorf("list promo codes: %w", err)
	}
	defer rows.Close()

	var codes []domain.PromoCode
	for rows.Next() {
		code, err := scanPromoCode(rows)
		if err != nil {
			return nil, err
		}
		codes = append(codes, *code)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list promo codes: %w", err)
	}
	return codes, nil
}

func (r *PromoCodeRepositoryPG) SetActive(ctx context.Context, id string, active bool) error {
	var updatedID string
	if err := r.db.QueryRow(ctx, sqlinline.QUpdatePromoCodeActive, id, active).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update promo code: %w", err)
	}
	return nil
}

func scanPromoCode(row pgx.Row) (*domain.PromoCode, error) {
	var code domain.PromoCode
	err := row.Scan(&code.ID, &code.Code, &code.DiscountPercent, &code.Active, &code.ExpiresAt, &code.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan promo code: %w", err)
	}
	return &code, nil
}

var _ domain.PromoCodeRepository = (*PromoCodeRepositoryPG)(nil)
