package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/komolbek/expostandai/internal/domain"
	"github.com/komolbek/expostandai/internal/infra"
	"github.com/komolbek/expostandai/internal/sqlinline"
)

// InquiryRepositoryPG implements domain.InquiryRepository backed by
// PostgreSQL. The inquiry payload itself is stored as jsonb; workflow fields
// the admin screens filter and edit live in dedicated columns.
type InquiryRepositoryPG struct {
	db infra.SQLExecutor
}

func NewInquiryRepository(db infra.SQLExecutor) *InquiryRepositoryPG {
	return &InquiryRepositoryPG{db: db}
}

func (r *InquiryRepositoryPG) Create(ctx context.Context, rec *domain.InquiryRecord) error {
	data, err := json.Marshal(rec.Data)
	if err != nil {
		return fmt.Errorf("encode inquiry data: %w", err)
	}
	images, err := json.Marshal(rec.GeneratedImages)
	if err != nil {
		return fmt.Errorf("encode generated images: %w", err)
	}
	var conversation []byte
	if len(rec.ConversationLog) > 0 {
		conversation = rec.ConversationLog
	}

	row := r.db.QueryRow(ctx, sqlinline.QInsertInquiry,
		rec.Country,
		rec.Contact.Name,
		rec.Contact.Phone,
		rec.Contact.Email,
		data,
		images,
		rec.SelectedImageIndex,
		conversation,
	)
	if err := row.Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return fmt.Errorf("insert inquiry: %w", err)
	}
	rec.Status = domain.StatusNew
	return nil
}

func (r *InquiryRepositoryPG) GetByID(ctx context.Context, id string) (*domain.InquiryRecord, error) {
	row := r.db.QueryRow(ctx, sqlinline.QSelectInquiryByID, id)
	return scanInquiry(row)
}

func (r *InquiryRepositoryPG) List(ctx context.Context, status domain.InquiryStatus, page, perPage int) ([]domain.InquiryRecord, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	var total int
	if err := r.db.QueryRow(ctx, sqlinline.QCountInquiries, string(status)).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count inquiries: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlinline.QSelectInquiries, string(status), perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, fmt.Errorf("list inquiries: %w", err)
	}
	defer rows.Close()

	var records []domain.InquiryRecord
	for rows.Next() {
		rec, err := scanInquiry(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list inquiries: %w", err)
	}
	return records, total, nil
}

func (r *InquiryRepositoryPG) Update(ctx context.Context, id string, update domain.InquiryUpdate) (*domain.InquiryRecord, error) {
	var status *string
	if update.Status != nil {
		s := string(*update.Status)
		status = &s
	}
	var updatedID string
	row := r.db.QueryRow(ctx, sqlinline.QUpdateInquiry, id, status, update.AdminNotes, update.QuotedPrice)
	if err := row.Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update inquiry: %w", err)
	}
	return r.GetByID(ctx, updatedID)
}

func scanInquiry(row pgx.Row) (*domain.InquiryRecord, error) {
	var (
		rec          domain.InquiryRecord
		status       string
		data         []byte
		images       []byte
		conversation []byte
	)
	err := row.Scan(
		&rec.ID, &status, &rec.Country,
		&rec.Contact.Name, &rec.Contact.Phone, &rec.Contact.Email,
		&data, &images, &rec.SelectedImageIndex, &conversation,
		&rec.QuotedPrice, &rec.AdminNotes,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan inquiry: %w", err)
	}
	rec.Status = domain.InquiryStatus(status)
	if err := json.Unmarshal(data, &rec.Data); err != nil {
		return nil, fmt.Errorf("decode inquiry data: %w", err)
	}
	if err := json.Unmarshal(images, &rec.GeneratedImages); err != nil {
		return nil, fmt.Errorf("decode generated images: %w", err)
	}
	if len(conversation) > 0 {
		rec.ConversationLog = json.RawMessage(conversation)
	}
	return &rec, nil
}

var _ domain.InquiryRepository = (*InquiryRepositoryPG)(nil)
