package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/deedsapp/deeds-server/internal/domain"
	"github.com/deedsapp/deeds-server/internal/repository"
	"gorm.io/gorm"
)

// tokenBytes of randomness per session token; hex-encoded to twice as many
// characters.
const tokenBytes = 32

type SessionService struct {
	sessionRepo repository.SessionRepository
	memberRepo  repository.MemberRepository
	ttl         time.Duration
}

func NewSessionService(sessionRepo repository.SessionRepository, memberRepo repository.MemberRepository, ttl time.Duration) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		memberRepo:  memberRepo,
		ttl:         ttl,
	}
}

func generateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func (s *SessionService) Create(ctx context.Context, memberID int64) (*domain.Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &domain.Session{
		Token:     token,
		MemberID:  memberID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// Resolve joins a token to its member. A nil member with a nil error means
// the caller is unauthenticated; expired sessions are purged on the way out.
func (s *SessionService) Resolve(ctx context.Context, token string) (*domain.Member, *domain.Session, error) {
	if token == "" {
		return nil, nil, nil
	}

	session, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	if session.Expired(time.Now()) {
		if err := s.sessionRepo.DeleteByToken(ctx, token); err != nil {
			return nil, nil, err
		}
		return nil, nil, nil
	}

	member, err := s.memberRepo.GetByID(ctx, session.MemberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	return member, session, nil
}

// Destroy removes a session. Destroying an absent token is a no-op.
func (s *SessionService) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessionRepo.DeleteByToken(ctx, token)
}
