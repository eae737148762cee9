package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/shareit/internal/domains/items/domain"
	"github.com/Apurer/shareit/internal/domains/items/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists items in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&itemRecord{})
	}
	return repo
}

// itemRecord maps the item aggregate to a relational table.
type itemRecord struct {
	ID          int64     `gorm:"primaryKey;column:id"`
	OwnerID     int64     `gorm:"column:owner_id;index"`
	Name        string    `gorm:"column:name"`
	Description string    `gorm:"column:description"`
	Available   bool      `gorm:"column:available;index"`
	RequestID   *int64    `gorm:"column:request_id;index"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (itemRecord) TableName() string { return "items" }

func (r *Repository) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errors.New("item is nil")
	}
	record := toRecord(item)
	record.ID = 0
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) Update(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errors.New("item is nil")
	}
	record := toRecord(item)
	result := r.db.WithContext(ctx).Model(&itemRecord{}).
		Where("id = ?", record.ID).
		Updates(map[string]any{
			"name":        record.Name,
			"description": record.Description,
			"available":   record.Available,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, record.ID)
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record itemRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&itemRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []itemRecord
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

// Search matches available items by case-insensitive substring on name or
// description.
func (r *Repository) Search(ctx context.Context, text string) ([]*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	pattern := "%" + text + "%"
	var records []itemRecord
	if err := r.db.WithContext(ctx).
		Where("available = ?", true).
		Where(r.db.Where("name ILIKE ?", pattern).Or("description ILIKE ?", pattern)).
		Order("id").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

func (r *Repository) ListByRequestIDs(ctx context.Context, requestIDs []int64) ([]*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if len(requestIDs) == 0 {
		return []*domain.Item{}, nil
	}
	var records []itemRecord
	if err := r.db.WithContext(ctx).Where("request_id IN ?", requestIDs).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres item repository not configured")
	}
	return nil
}

func toRecord(item *domain.Item) itemRecord {
	return itemRecord{
		ID:          item.ID,
		OwnerID:     item.OwnerID,
		Name:        item.Name,
		Description: item.Description,
		Available:   item.Available,
		RequestID:   item.RequestID,
	}
}

func (r itemRecord) toDomain() *domain.Item {
	return &domain.Item{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		Name:        r.Name,
		Description: r.Description,
		Available:   r.Available,
		RequestID:   r.RequestID,
	}
}

func toDomainList(records []itemRecord) []*domain.Item {
	items := make([]*domain.Item, 0, len(records))
	for i := range records {
		items = append(items, records[i].toDomain())
	}
	return items
}
