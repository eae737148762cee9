package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the schema for all bounded contexts. Intended to replace
// adapter-level automigrate in deployments that manage the schema centrally.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&userRecord{},
		&itemRecord{},
		&bookingRecord{},
		&commentRecord{},
		&itemRequestRecord{},
	)
}

// User schema mirrors the users Postgres adapter. The unique index on email
// backs the duplicate-email conflict check.
type userRecord struct {
	ID         int64     `gorm:"primaryKey;column:id"`
	Email      string    `gorm:"column:email;uniqueIndex"`
	Name       string    `gorm:"column:name"`
	Registered time.Time `gorm:"column:registered"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Item schema mirrors the items Postgres adapter.
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

// Booking schema mirrors the bookings Postgres adapter. The composite unique
// index enforces one booking per (booker, item) pair under concurrency.
type bookingRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	ItemID    int64     `gorm:"column:item_id;index;uniqueIndex:idx_bookings_booker_item"`
	BookerID  int64     `gorm:"column:booker_id;uniqueIndex:idx_bookings_booker_item"`
	Created   time.Time `gorm:"column:created;index"`
	Start     time.Time `gorm:"column:start_date"`
	End       time.Time `gorm:"column:end_date"`
	Status    string    `gorm:"column:status;type:varchar(32);index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (bookingRecord) TableName() string { return "bookings" }

// Comment schema mirrors the items Postgres adapter.
type commentRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Text      string    `gorm:"column:text"`
	ItemID    int64     `gorm:"column:item_id;index"`
	AuthorID  int64     `gorm:"column:author_id;index"`
	Created   time.Time `gorm:"column:created;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (commentRecord) TableName() string { return "comments" }

// ItemRequest schema mirrors the requests Postgres adapter.
type itemRequestRecord struct {
	ID          int64     `gorm:"primaryKey;column:id"`
	AuthorID    int64     `gorm:"column:author_id;index"`
	Description string    `gorm:"column:description"`
	Created     time.Time `gorm:"column:created;index"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (itemRequestRecord) TableName() string { return "item_requests" }
