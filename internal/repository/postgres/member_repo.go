package postgres

import (
	"context"

	"github.com/deedsapp/deeds-server/internal/domain"
	"gorm.io/gorm"
)

type memberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *memberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Create(ctx context.Context, member *domain.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *memberRepository) GetByID(ctx context.Context, id int64) (*domain.Member, error) {
	var member domain.Member
	err := r.db.WithContext(ctx).First(&member, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) GetByEmail(ctx context.Context, email string) (*domain.Member, error) {
	var member domain.Member
	err := r.db.WithContext(ctx).First(&member, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) UpdateCredential(ctx context.Context, id int64, credential domain.Credential) error {
	return r.db.WithContext(ctx).Model(&domain.Member{}).
		Where("id = ?", id).
		Update("password_hash", credential).Error
}

func (r *memberRepository) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	var entries []domain.LeaderboardEntry
	// Ties break by id ascending, which is creation order.
	err := r.db.WithContext(ctx).Model(&domain.Member{}).
		Select("name", "credits").
		Order("credits DESC, id ASC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
