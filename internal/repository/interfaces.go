package repository

import (
	"context"

	"github.com/deedsapp/deeds-server/internal/domain"
)

type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) error
	GetByID(ctx context.Context, id int64) (*domain.Member, error)
	GetByEmail(ctx context.Context, email string) (*domain.Member, error)
	UpdateCredential(ctx context.Context, id int64, credential domain.Credential) error
	Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByToken(ctx context.Context, token string) (*domain.Session, error)
	DeleteByToken(ctx context.Context, token string) error
}

type DeedRepository interface {
	Create(ctx context.Context, deed *domain.Deed) error
	GetByID(ctx context.Context, id int64) (*domain.Deed, error)
	ListByStatus(ctx context.Context, status domain.DeedStatus) ([]*domain.Deed, error)
	// VerifyAndCredit flips the deed to verified only if it is still pending
	// and, in the same transaction, credits the owning member. It reports
	// whether the flip happened; false means the deed was already verified.
	VerifyAndCredit(ctx context.Context, id int64) (bool, error)
}

type WaitlistRepository interface {
	Create(ctx context.Context, entry *domain.WaitlistEntry) error
	GetByEmail(ctx context.Context, email string) (*domain.WaitlistEntry, error)
}

type Repositories struct {
	Member   MemberRepository
	Session  SessionRepository
	Deed     DeedRepository
	Waitlist WaitlistRepository
}
