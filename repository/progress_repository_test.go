package repository

import (
	"context"
	"testing"

	"concierge/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressRepository_GetOrCreateForUpdate(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	tx, err := testDB.DB.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	repo := newProgressRepositoryWithTx(tx)

	progress, err := repo.GetOrCreateForUpdate(ctx, 100, 555)
	require.NoError(t, err)
	assert.Equal(t, int64(0), progress.TotalXP)
	assert.Equal(t, 0, progress.Level)

	progress.TotalXP = 20
	progress.Level = 1
	require.NoError(t, repo.Update(ctx, progress))
	require.NoError(t, tx.Commit(ctx))

	loaded, err := NewProgressRepository(testDB.DB).Get(ctx, 100, 555)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, int64(20), loaded.TotalXP)
	assert.Equal(t, 1, loaded.Level)
}

func TestProgressRepository_GetMissingReturnsNil(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewProgressRepository(testDB.DB)
	progress, err := repo.Get(context.Background(), 100, 999)
	require.NoError(t, err)
	assert.Nil(t, progress)
}

func TestProgressRepository_Top(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	repo := NewProgressRepository(testDB.DB)
	for _, entry := range []struct {
		discordID int64
		xp        int64
	}{
		{1, 50},
		{2, 1500},
		{3, 300},
		{4, 300},
	} {
		progress := testutil.CreateTestProgress(200, entry.discordID, entry.xp)
		tx, err := testDB.DB.Begin(ctx)
		require.NoError(t, err)
		txRepo := newProgressRepositoryWithTx(tx)
		created, err := txRepo.GetOrCreateForUpdate(ctx, 200, entry.discordID)
		require.NoError(t, err)
		created.TotalXP = progress.TotalXP
		created.Level = progress.Level
		require.NoError(t, txRepo.Update(ctx, created))
		require.NoError(t, tx.Commit(ctx))
	}

	top, err := repo.Top(ctx, 200, 3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, int64(2), top[0].DiscordID)
	// Equal totals break ties by discord id
	assert.Equal(t, int64(3), top[1].DiscordID)
	assert.Equal(t, int64(4), top[2].DiscordID)
}

func TestProgressRepository_DeleteByGuild(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	repo := NewProgressRepository(testDB.DB)

	tx, err := testDB.DB.Begin(ctx)
	require.NoError(t, err)
	txRepo := newProgressRepositoryWithTx(tx)
	_, err = txRepo.GetOrCreateForUpdate(ctx, 300, 1)
	require.NoError(t, err)
	_, err = txRepo.GetOrCreateForUpdate(ctx, 301, 1)
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))

	require.NoError(t, repo.DeleteByGuild(ctx, 300))

	gone, err := repo.Get(ctx, 300, 1)
	require.NoError(t, err)
	assert.Nil(t, gone)

	kept, err := repo.Get(ctx, 301, 1)
	require.NoError(t, err)
	assert.NotNil(t, kept)
}
