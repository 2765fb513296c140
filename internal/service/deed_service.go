package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/deedsapp/deeds-server/internal/domain"
	"github.com/deedsapp/deeds-server/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const defaultLeaderboardLimit = 10

type DeedService struct {
	deedRepo   repository.DeedRepository
	memberRepo repository.MemberRepository
}

func NewDeedService(deedRepo repository.DeedRepository, memberRepo repository.MemberRepository) *DeedService {
	return &DeedService{
		deedRepo:   deedRepo,
		memberRepo: memberRepo,
	}
}

type SubmitDeedInput struct {
	MemberID    int64
	Title       string
	ProofURL    string
	Description string
	DeedDate    string
	Duration    string
	Impact      string
	Partners    string
}

func (s *DeedService) Submit(ctx context.Context, input SubmitDeedInput) (*domain.Deed, error) {
	if _, err := s.memberRepo.GetByID(ctx, input.MemberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	proofURL := strings.TrimSpace(input.ProofURL)
	if title == "" || proofURL == "" {
		return nil, domain.Validationf("A title and proof link are required.")
	}

	deed := &domain.Deed{
		MemberID:    input.MemberID,
		Title:       title,
		ProofURL:    proofURL,
		Description: strings.TrimSpace(input.Description),
		Partners:    domain.NormalizePartners(input.Partners),
		Status:      domain.DeedPending,
		CreatedAt:   time.Now(),
	}

	if v := strings.TrimSpace(input.Duration); v != "" {
		duration, ok := domain.ParseDuration(v)
		if !ok {
			return nil, domain.Validationf("%q is not a recognized duration.", v)
		}
		deed.Duration = duration
	}

	if v := strings.TrimSpace(input.Impact); v != "" {
		impact, ok := domain.ParseImpactArea(v)
		if !ok {
			return nil, domain.Validationf("%q is not a recognized impact area.", v)
		}
		deed.ImpactArea = impact
	}

	if v := strings.TrimSpace(input.DeedDate); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, domain.Validationf("Deed dates must use the YYYY-MM-DD format.")
		}
		date := datatypes.Date(parsed)
		deed.DeedDate = &date
	}

	if err := s.deedRepo.Create(ctx, deed); err != nil {
		return nil, err
	}

	return deed, nil
}

// Verify moves a pending deed to verified and credits its owner. The
// returned flag reports whether this call performed the transition; a deed
// that was already verified returns false with no error, and no credit is
// awarded twice.
func (s *DeedService) Verify(ctx context.Context, deedID int64) (bool, error) {
	if _, err := s.deedRepo.GetByID(ctx, deedID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, domain.ErrDeedNotFound
		}
		return false, err
	}

	return s.deedRepo.VerifyAndCredit(ctx, deedID)
}

func (s *DeedService) PendingQueue(ctx context.Context) ([]*domain.Deed, error) {
	return s.deedRepo.ListByStatus(ctx, domain.DeedPending)
}

func (s *DeedService) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}
	return s.memberRepo.Leaderboard(ctx, limit)
}
