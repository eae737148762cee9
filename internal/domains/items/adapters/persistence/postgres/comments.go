package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/shareit/internal/domains/items/domain"
	"github.com/Apurer/shareit/internal/domains/items/ports"
)

var _ ports.CommentRepository = (*CommentRepository)(nil)

// CommentRepository persists item comments in PostgreSQL using GORM.
type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	repo := &CommentRepository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&commentRecord{})
	}
	return repo
}

// commentRecord maps a comment to a relational table.
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

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("postgres comment repository not configured")
	}
	if comment == nil {
		return nil, errors.New("comment is nil")
	}
	record := commentRecord{
		Text:     comment.Text,
		ItemID:   comment.ItemID,
		AuthorID: comment.AuthorID,
		Created:  comment.Created,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *CommentRepository) ListByItemIDs(ctx context.Context, itemIDs []int64) ([]*domain.Comment, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("postgres comment repository not configured")
	}
	if len(itemIDs) == 0 {
		return []*domain.Comment{}, nil
	}
	var records []commentRecord
	if err := r.db.WithContext(ctx).
		Where("item_id IN ?", itemIDs).
		Order("created DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	comments := make([]*domain.Comment, 0, len(records))
	for i := range records {
		comments = append(comments, records[i].toDomain())
	}
	return comments, nil
}

func (r commentRecord) toDomain() *domain.Comment {
	return &domain.Comment{
		ID:       r.ID,
		Text:     r.Text,
		ItemID:   r.ItemID,
		AuthorID: r.AuthorID,
		Created:  r.Created,
	}
}
