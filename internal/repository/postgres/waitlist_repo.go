package postgres

import (
	"context"

	"github.com/deedsapp/deeds-server/internal/domain"
	"gorm.io/gorm"
)

type waitlistRepository struct {
	db *gorm.DB
}

func NewWaitlistRepository(db *gorm.DB) *waitlistRepository {
	return &waitlistRepository{db: db}
}

func (r *waitlistRepository) Create(ctx context.Context, entry *domain.WaitlistEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *waitlistRepository) GetByEmail(ctx context.Context, email string) (*domain.WaitlistEntry, error) {
	var entry domain.WaitlistEntry
	err := r.db.WithContext(ctx).First(&entry, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
