package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/deedsapp/deeds-server/internal/domain"
	"github.com/deedsapp/deeds-server/internal/repository"
	"gorm.io/gorm"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type WaitlistService struct {
	waitlistRepo repository.WaitlistRepository
}

func NewWaitlistService(waitlistRepo repository.WaitlistRepository) *WaitlistService {
	return &WaitlistService{waitlistRepo: waitlistRepo}
}

// Join adds an email to the waitlist. Joining twice is a quiet no-op.
func (s *WaitlistService) Join(ctx context.Context, email, name string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return domain.Validationf("Please add your email so we know where to reach you.")
	}
	if !emailPattern.MatchString(email) {
		return domain.Validationf("That email doesn't look quite right. Try again?")
	}

	existing, err := s.waitlistRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing != nil {
		return nil
	}

	return s.waitlistRepo.Create(ctx, &domain.WaitlistEntry{
		Email:     email,
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now(),
	})
}
