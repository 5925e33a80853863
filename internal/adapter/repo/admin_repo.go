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

// AdminRepositoryPG implements domain.AdminRepository backed by PostgreSQL.
type AdminRepositoryPG struct {
	db infra.SQLExecutor
}

func NewAdminRepository(db infra.SQLExecutor) *AdminRepositoryPG {
	return &AdminRepositoryPG{db: db}
}

func (r *AdminRepositoryPG) GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	var admin domain.AdminUser
	row := r.db.QueryRow(ctx, sqlinline.QSelectAdminByEmail, email)
	if err := row.Scan(&admin.ID, &admin.Email, &admin.PasswordHash, &admin.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select admin: %w", err)
	}
	return &admin, nil
}

func (r *AdminRepositoryPG) Create(ctx context.Context, admin *domain.AdminUser) error {
	if err := r.db.QueryRow(ctx, sqlinline.QInsertAdmin, admin.Email, admin.PasswordHash).Scan(&admin.ID); err != nil {
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}

var _ domain.AdminRepository = (*AdminRepositoryPG)(nil)
