package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/shareit/internal/domains/bookings/domain"
	"github.com/Apurer/shareit/internal/domains/bookings/ports"
	platformpostgres "github.com/Apurer/shareit/internal/platform/postgres"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists bookings in PostgreSQL using GORM. The composite
// unique index on (item_id, booker_id) is the authoritative duplicate guard;
// the transactional pre-check only gives concurrent creators a clean error
// before the constraint fires.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&bookingRecord{})
	}
	return repo
}

// bookingRecord maps the booking aggregate to a relational table.
type bookingRecord struct {
	ID        int64         `gorm:"primaryKey;column:id"`
	ItemID    int64         `gorm:"column:item_id;uniqueIndex:idx_bookings_booker_item"`
	BookerID  int64         `gorm:"column:booker_id;uniqueIndex:idx_bookings_booker_item"`
	Created   time.Time     `gorm:"column:created;index"`
	Start     time.Time     `gorm:"column:start_date;index"`
	End       time.Time     `gorm:"column:end_date;index"`
	Status    domain.Status `gorm:"column:status;index"`
	CreatedAt time.Time     `gorm:"column:created_at"`
	UpdatedAt time.Time     `gorm:"column:updated_at"`
}

func (bookingRecord) TableName() string { return "bookings" }

func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, errors.New("booking is nil")
	}
	record := toRecord(booking)
	record.ID = 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&bookingRecord{}).
			Where("item_id = ? AND booker_id = ?", record.ItemID, record.BookerID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ports.ErrDuplicate
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		if platformpostgres.IsUniqueViolation(err) {
			return nil, ports.ErrDuplicate
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) Update(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, errors.New("booking is nil")
	}
	result := r.db.WithContext(ctx).Model(&bookingRecord{}).
		Where("id = ?", booking.ID).
		Updates(map[string]any{
			"status":     booking.Status,
			"start_date": booking.Start,
			"end_date":   booking.End,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, booking.ID)
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record bookingRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) List(ctx context.Context, query ports.Query) ([]*domain.Booking, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	tx := r.db.WithContext(ctx).Model(&bookingRecord{})
	if query.BookerID != nil {
		tx = tx.Where("booker_id = ?", *query.BookerID)
	}
	if query.ItemIDs != nil {
		if len(query.ItemIDs) == 0 {
			return []*domain.Booking{}, nil
		}
		tx = tx.Where("item_id IN ?", query.ItemIDs)
	}
	if query.Status != nil {
		tx = tx.Where("status = ?", *query.Status)
	}
	if query.CurrentAt != nil {
		tx = tx.Where("start_date <= ? AND end_date >= ?", *query.CurrentAt, *query.CurrentAt)
	}
	if query.EndBefore != nil {
		tx = tx.Where("end_date < ?", *query.EndBefore)
	}
	if query.StartAfter != nil {
		tx = tx.Where("start_date > ?", *query.StartAfter)
	}
	if query.Offset > 0 {
		tx = tx.Offset(query.Offset)
	}
	if query.Limit > 0 {
		tx = tx.Limit(query.Limit)
	}
	var records []bookingRecord
	if err := tx.Order("created DESC, id DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

func (r *Repository) ListByItemIDs(ctx context.Context, itemIDs []int64) ([]*domain.Booking, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if len(itemIDs) == 0 {
		return []*domain.Booking{}, nil
	}
	var records []bookingRecord
	if err := r.db.WithContext(ctx).
		Where("item_id IN ?", itemIDs).
		Order("start_date ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

func (r *Repository) ExistsFinished(ctx context.Context, bookerID, itemID int64, before time.Time) (bool, error) {
	if err := r.ensureDB(); err != nil {
		return false, err
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&bookingRecord{}).
		Where("booker_id = ? AND item_id = ? AND end_date < ?", bookerID, itemID, before).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres booking repository not configured")
	}
	return nil
}

func toRecord(booking *domain.Booking) bookingRecord {
	return bookingRecord{
		ID:       booking.ID,
		ItemID:   booking.ItemID,
		BookerID: booking.BookerID,
		Created:  booking.Created,
		Start:    booking.Start,
		End:      booking.End,
		Status:   booking.Status,
	}
}

func (r bookingRecord) toDomain() *domain.Booking {
	return &domain.Booking{
		ID:       r.ID,
		ItemID:   r.ItemID,
		BookerID: r.BookerID,
		Created:  r.Created,
		Start:    r.Start,
		End:      r.End,
		Status:   r.Status,
	}
}

func toDomainList(records []bookingRecord) []*domain.Booking {
	bookings := make([]*domain.Booking, 0, len(records))
	for i := range records {
		bookings = append(bookings, records[i].toDomain())
	}
	return bookings
}
