package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/deedsapp/deeds-server/internal/domain"
	"github.com/deedsapp/deeds-server/internal/repository/postgres"
	"github.com/deedsapp/deeds-server/internal/service"
	"github.com/deedsapp/deeds-server/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeedService_Submit(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	deedService := service.NewDeedService(repos.Deed, repos.Member)
	ctx := context.Background()

	member, _ := testutil.NewMemberBuilder().Build(t, testDB.DB)

	tests := []struct {
		name        string
		input       service.SubmitDeedInput
		wantErr     error
		wantValiErr bool
		checkDeed   func(*testing.T, *domain.Deed)
	}{
		{
			name: "minimal submission",
			input: service.SubmitDeedInput{
				MemberID: member.ID,
				Title:    "Taught a coding class",
				ProofURL: "https://example.com/class",
			},
			checkDeed: func(t *testing.T, d *domain.Deed) {
				assert.Equal(t, domain.DeedPending, d.Status)
				assert.NotZero(t, d.ID)
			},
		},
		{
			name: "optional fields normalized",
			input: service.SubmitDeedInput{
				MemberID: member.ID,
				Title:    "  Food drive  ",
				ProofURL: " https://example.com/drive ",
				DeedDate: "2026-08-30",
				Duration: "half DAY",
				Impact:   "food ACCESS",
				Partners: "Food Bank;Shelter,\nLibrary",
			},
			checkDeed: func(t *testing.T, d *domain.Deed) {
				assert.Equal(t, "Food drive", d.Title)
				assert.Equal(t, "https://example.com/drive", d.ProofURL)
				assert.Equal(t, domain.DurationHalfDay, d.Duration)
				assert.Equal(t, domain.ImpactFoodAccess, d.ImpactArea)
				assert.Equal(t, "Food Bank, Shelter, Library", d.Partners)
				require.NotNil(t, d.DeedDate)
			},
		},
		{
			name: "unknown member",
			input: service.SubmitDeedInput{
				MemberID: 999999,
				Title:    "Ghost deed",
				ProofURL: "https://example.com/ghost",
			},
			wantErr: domain.ErrMemberNotFound,
		},
		{
			name: "missing title",
			input: service.SubmitDeedInput{
				MemberID: member.ID,
				Title:    "   ",
				ProofURL: "https://example.com/x",
			},
			wantValiErr: true,
		},
		{
			name: "missing proof link",
			input: service.SubmitDeedInput{
				MemberID: member.ID,
				Title:    "No proof",
			},
			wantValiErr: true,
		},
		{
			name: "unrecognized duration",
			input: service.SubmitDeedInput{
				MemberID: member.ID,
				Title:    "Quick help",
				ProofURL: "https://example.com/q",
				Duration: "lunch break",
			},
			wantValiErr: true,
		},
		{
			name: "unrecognized impact area",
			input: service.SubmitDeedInput{
				MemberID: member.ID,
				Title:    "Quick help",
				ProofURL: "https://example.com/q",
				Impact:   "Cryptocurrency",
			},
			wantValiErr: true,
		},
		{
			name: "malformed deed date",
			input: service.SubmitDeedInput{
				MemberID: member.ID,
				Title:    "Quick help",
				ProofURL: "https://example.com/q",
				DeedDate: "30/08/2026",
			},
			wantValiErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deed, err := deedService.Submit(ctx, tt.input)

			if tt.wantValiErr {
				assert.True(t, domain.IsValidation(err), "expected a validation error, got %v", err)
				return
			}
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			if tt.checkDeed != nil {
				tt.checkDeed(t, deed)
			}
		})
	}
}

func TestDeedService_Verify(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	deedService := service.NewDeedService(repos.Deed, repos.Member)
	ctx := context.Background()

	t.Run("unknown deed", func(t *testing.T) {
		_, err := deedService.Verify(ctx, 424242)
		assert.ErrorIs(t, err, domain.ErrDeedNotFound)
	})

	t.Run("verify then re-verify", func(t *testing.T) {
		member, _ := testutil.NewMemberBuilder().Build(t, testDB.DB)
		deed := testutil.NewDeedBuilder(member.ID).Build(t, testDB.DB)

		verified, err := deedService.Verify(ctx, deed.ID)
		require.NoError(t, err)
		assert.True(t, verified, "first call performs the transition")

		verified, err = deedService.Verify(ctx, deed.ID)
		require.NoError(t, err)
		assert.False(t, verified, "second call is a no-op success")

		owner, err := repos.Member.GetByID(ctx, member.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, owner.Credits, "exactly one credit awarded")
	})
}

func TestDeedService_Verify_ConcurrentCallsCreditOnce(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	deedService := service.NewDeedService(repos.Deed, repos.Member)
	ctx := context.Background()

	member, _ := testutil.NewMemberBuilder().Build(t, testDB.DB)
	deed := testutil.NewDeedBuilder(member.ID).Build(t, testDB.DB)

	const callers = 10
	results := make([]bool, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = deedService.Verify(ctx, deed.ID)
		}(i)
	}
	wg.Wait()

	transitions := 0
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i], "re-verification is never an error")
		if results[i] {
			transitions++
		}
	}
	assert.Equal(t, 1, transitions, "exactly one caller observes the transition")

	owner, err := repos.Member.GetByID(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, owner.Credits, "credits increased by exactly one")
}

func TestDeedService_Leaderboard(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	deedService := service.NewDeedService(repos.Deed, repos.Member)
	ctx := context.Background()

	first, _ := testutil.NewMemberBuilder().WithName("First").WithCredits(2).Build(t, testDB.DB)
	second, _ := testutil.NewMemberBuilder().WithName("Second").WithCredits(5).Build(t, testDB.DB)
	third, _ := testutil.NewMemberBuilder().WithName("Third").WithCredits(2).Build(t, testDB.DB)
	_ = first
	_ = second
	_ = third

	leaders, err := deedService.Leaderboard(ctx, 0)
	require.NoError(t, err)
	require.Len(t, leaders, 3)

	assert.Equal(t, "Second", leaders[0].Name)
	assert.Equal(t, 5, leaders[0].Credits)
	// Equal credits rank in creation order
	assert.Equal(t, "First", leaders[1].Name)
	assert.Equal(t, "Third", leaders[2].Name)

	t.Run("limit applies", func(t *testing.T) {
		for i := 0; i < 12; i++ {
			testutil.NewMemberBuilder().WithCredits(10 + i).Build(t, testDB.DB)
		}

		leaders, err := deedService.Leaderboard(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, leaders, 10, "default limit is 10")
	})
}

func TestDeedService_PendingQueue(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	deedService := service.NewDeedService(repos.Deed, repos.Member)
	ctx := context.Background()

	member, _ := testutil.NewMemberBuilder().Build(t, testDB.DB)
	pending := testutil.NewDeedBuilder(member.ID).WithTitle("Pending deed").Build(t, testDB.DB)
	testutil.NewDeedBuilder(member.ID).
		WithTitle("Done deed").
		WithStatus(domain.DeedVerified).
		Build(t, testDB.DB)

	queue, err := deedService.PendingQueue(ctx)
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, pending.ID, queue[0].ID)
	assert.Equal(t, domain.DeedPending, queue[0].Status)
}
