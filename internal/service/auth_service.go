package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/deedsapp/deeds-server/internal/domain"
	"github.com/deedsapp/deeds-server/internal/repository"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

const minPasswordLen = 8

type AuthService struct {
	memberRepo   repository.MemberRepository
	loginLimiter *rate.Limiter
}

func NewAuthService(memberRepo repository.MemberRepository) *AuthService {
	return &AuthService{
		memberRepo: memberRepo,
		// 10 attempts per second with a burst of 30, shared across callers
		loginLimiter: rate.NewLimiter(rate.Every(100*time.Millisecond), 30),
	}
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

// HashPassword returns the stored form of a password: an unsalted SHA-256
// hex digest. The digest must stay deterministic and fixed-shape because
// legacy plaintext detection keys off it.
func HashPassword(password string) domain.Credential {
	sum := sha256.Sum256([]byte(password))
	return domain.Credential(hex.EncodeToString(sum[:]))
}

func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*domain.Member, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if name == "" || email == "" || input.Password == "" {
		return nil, domain.Validationf("Name, email, and password are required.")
	}
	if len(input.Password) < minPasswordLen {
		return nil, domain.Validationf("Passwords must be at least %d characters long.", minPasswordLen)
	}

	// Check if email is already registered
	existing, err := s.memberRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailExists
	}

	member := &domain.Member{
		Name:         name,
		Email:        email,
		PasswordHash: HashPassword(input.Password),
		CreatedAt:    time.Now(),
	}

	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}

	return member, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*domain.Member, error) {
	if !s.loginLimiter.Allow() {
		return nil, domain.ErrLoginThrottled
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, domain.Validationf("Email and password are required.")
	}

	member, err := s.memberRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}

	digest := HashPassword(input.Password)
	if strings.EqualFold(string(member.PasswordHash), string(digest)) {
		return member, nil
	}

	// One-time upgrade path for accounts stored before hashing: if the
	// record is not a digest, compare it to the raw password and rewrite it
	// hashed on success. Once migrated this branch never matches again.
	if !member.PasswordHash.Hashed() && string(member.PasswordHash) == input.Password {
		if err := s.memberRepo.UpdateCredential(ctx, member.ID, digest); err != nil {
			return nil, err
		}
		member.PasswordHash = digest
		return member, nil
	}

	return nil, domain.ErrIncorrectPassword
}
