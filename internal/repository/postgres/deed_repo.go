package postgres

import (
	"context"

	"github.com/deedsapp/deeds-server/internal/domain"
	"gorm.io/gorm"
)

type deedRepository struct {
	db *gorm.DB
}

func NewDeedRepository(db *gorm.DB) *deedRepository {
	return &deedRepository{db: db}
}

func (r *deedRepository) Create(ctx context.Context, deed *domain.Deed) error {
	return r.db.WithContext(ctx).Create(deed).Error
}

func (r *deedRepository) GetByID(ctx context.Context, id int64) (*domain.Deed, error) {
	var deed domain.Deed
	err := r.db.WithContext(ctx).First(&deed, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &deed, nil
}

func (r *deedRepository) ListByStatus(ctx context.Context, status domain.DeedStatus) ([]*domain.Deed, error) {
	var deeds []*domain.Deed
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&deeds).Error
	if err != nil {
		return nil, err
	}
	return deeds, nil
}

func (r *deedRepository) VerifyAndCredit(ctx context.Context, id int64) (bool, error) {
	var flipped bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Conditional flip: only one concurrent caller can move the deed out
		// of pending, so the credit below happens exactly once.
		res := tx.Model(&domain.Deed{}).
			Where("id = ? AND status = ?", id, domain.DeedPending).
			Update("status", domain.DeedVerified)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		flipped = true

		var memberID int64
		err := tx.Model(&domain.Deed{}).
			Where("id = ?", id).
			Pluck("member_id", &memberID).Error
		if err != nil {
			return err
		}

		return tx.Model(&domain.Member{}).
			Where("id = ?", memberID).
			UpdateColumn("credits", gorm.Expr("credits + ?", 1)).Error
	})
	if err != nil {
		return false, err
	}
	return flipped, nil
}
