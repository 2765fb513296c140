package postgres_test

import (
	"context"
	"testing"

	"github.com/deedsapp/deeds-server/internal/domain"
	"github.com/deedsapp/deeds-server/internal/repository/postgres"
	"github.com/deedsapp/deeds-server/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestDeedRepository_VerifyAndCredit(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	ctx := context.Background()

	t.Run("pending deed flips and credits", func(t *testing.T) {
		member, _ := testutil.NewMemberBuilder().Build(t, testDB.DB)
		deed := testutil.NewDeedBuilder(member.ID).Build(t, testDB.DB)

		flipped, err := repos.Deed.VerifyAndCredit(ctx, deed.ID)
		require.NoError(t, err)
		assert.True(t, flipped)

		stored, err := repos.Deed.GetByID(ctx, deed.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.DeedVerified, stored.Status)

		owner, err := repos.Member.GetByID(ctx, member.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, owner.Credits)
	})

	t.Run("verified deed is left alone", func(t *testing.T) {
		member, _ := testutil.NewMemberBuilder().WithCredits(3).Build(t, testDB.DB)
		deed := testutil.NewDeedBuilder(member.ID).
			WithStatus(domain.DeedVerified).
			Build(t, testDB.DB)

		flipped, err := repos.Deed.VerifyAndCredit(ctx, deed.ID)
		require.NoError(t, err)
		assert.False(t, flipped)

		owner, err := repos.Member.GetByID(ctx, member.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, owner.Credits, "no credit without a transition")
	})

	t.Run("missing deed flips nothing", func(t *testing.T) {
		flipped, err := repos.Deed.VerifyAndCredit(ctx, 987654)
		require.NoError(t, err)
		assert.False(t, flipped)
	})
}

func TestDeedRepository_ListByStatus(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	ctx := context.Background()

	member, _ := testutil.NewMemberBuilder().Build(t, testDB.DB)
	first := testutil.NewDeedBuilder(member.ID).WithTitle("first").Build(t, testDB.DB)
	second := testutil.NewDeedBuilder(member.ID).WithTitle("second").Build(t, testDB.DB)
	testutil.NewDeedBuilder(member.ID).WithStatus(domain.DeedVerified).Build(t, testDB.DB)

	deeds, err := repos.Deed.ListByStatus(ctx, domain.DeedPending)
	require.NoError(t, err)
	require.Len(t, deeds, 2)
	assert.Equal(t, first.ID, deeds[0].ID, "oldest first")
	assert.Equal(t, second.ID, deeds[1].ID)
}

func TestMemberRepository_UpdateCredential(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	ctx := context.Background()

	member, _ := testutil.NewMemberBuilder().WithLegacyPassword("plain-old-secret").Build(t, testDB.DB)

	digest := domain.Credential("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	require.NoError(t, repos.Member.UpdateCredential(ctx, member.ID, digest))

	stored, err := repos.Member.GetByID(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, digest, stored.PasswordHash)
}

func TestMemberRepository_GetByEmail_NotFound(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	ctx := context.Background()

	_, err := repos.Member.GetByEmail(ctx, "ghost@x.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
