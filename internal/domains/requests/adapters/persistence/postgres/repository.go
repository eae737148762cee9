package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/shareit/internal/domains/requests/domain"
	"github.com/Apurer/shareit/internal/domains/requests/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists item requests in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&itemRequestRecord{})
	}
	return repo
}

type itemRequestRecord struct {
	ID          int64     `gorm:"primaryKey;column:id"`
	AuthorID    int64     `gorm:"column:author_id;index"`
	Description string    `gorm:"column:description"`
	Created     time.Time `gorm:"column:created;index"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (itemRequestRecord) TableName() string { return "item_requests" }

func (r *Repository) Create(ctx context.Context, request *domain.ItemRequest) (*domain.ItemRequest, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if request == nil {
		return nil, errors.New("item request is nil")
	}
	record := itemRequestRecord{
		AuthorID:    request.AuthorID,
		Description: request.Description,
		Created:     request.Created,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ItemRequest, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record itemRequestRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ListByAuthor(ctx context.Context, authorID int64) ([]*domain.ItemRequest, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []itemRequestRecord
	if err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created ASC, id ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

func (r *Repository) ListAll(ctx context.Context) ([]*domain.ItemRequest, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []itemRequestRecord
	if err := r.db.WithContext(ctx).Order("created ASC, id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres item request repository not configured")
	}
	return nil
}

func (r itemRequestRecord) toDomain() *domain.ItemRequest {
	return &domain.ItemRequest{
		ID:          r.ID,
		AuthorID:    r.AuthorID,
		Description: r.Description,
		Created:     r.Created,
	}
}

func toDomainList(records []itemRequestRecord) []*domain.ItemRequest {
	requests := make([]*domain.ItemRequest, 0, len(records))
	for i := range records {
		requests = append(requests, records[i].toDomain())
	}
	return requests
}
