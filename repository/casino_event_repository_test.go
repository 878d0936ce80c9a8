package repository

import (
	"context"
	"testing"

	"concierge/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCasinoEventRepository_CreateAndGet(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	repo := NewCasinoEventRepository(testDB.DB)

	event := testutil.CreateTestCasinoEvent(1000, 100)
	require.NoError(t, repo.Create(ctx, event))
	assert.False(t, event.CreatedAt.IsZero())

	loaded, err := repo.GetByMessageID(ctx, 1000)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, event.Label, loaded.Label)
	assert.Equal(t, event.EntryCost, loaded.EntryCost)
	assert.Empty(t, loaded.Assignments)

	missing, err := repo.GetByMessageID(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCasinoEventRepository_AssignSlot(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	repo := NewCasinoEventRepository(testDB.DB)

	event := testutil.CreateTestCasinoEvent(2000, 100)
	require.NoError(t, repo.Create(ctx, event))

	assigned, err := repo.AssignSlot(ctx, 2000, 42, 777)
	require.NoError(t, err)
	assert.True(t, assigned)

	// Second claimant loses the race for the same slot
	assigned, err = repo.AssignSlot(ctx, 2000, 42, 888)
	require.NoError(t, err)
	assert.False(t, assigned)

	loaded, err := repo.GetByMessageID(ctx, 2000)
	require.NoError(t, err)
	assert.Equal(t, int64(777), loaded.Assignments[42])
	assert.Len(t, loaded.Assignments, 1)
}

func TestCasinoEventRepository_DeleteCascadesPending(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	eventRepo := NewCasinoEventRepository(testDB.DB)
	pendingRepo := NewPendingValidationRepository(testDB.DB)

	event := testutil.CreateTestCasinoEvent(3000, 100)
	require.NoError(t, eventRepo.Create(ctx, event))

	pending := testutil.CreateTestPendingValidation(4000, 3000, 7, 777, 100)
	require.NoError(t, pendingRepo.Create(ctx, pending))

	deleted, err := eventRepo.Delete(ctx, 3000)
	require.NoError(t, err)
	assert.True(t, deleted)

	// Pending claims die with their event
	taken, err := pendingRepo.Take(ctx, 4000)
	require.NoError(t, err)
	assert.Nil(t, taken)

	// Deleting again reports nothing happened
	deleted, err = eventRepo.Delete(ctx, 3000)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestCasinoEventRepository_ListByGuild(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	repo := NewCasinoEventRepository(testDB.DB)

	first := testutil.CreateTestCasinoEvent(5000, 100)
	second := testutil.CreateTestCasinoEvent(5001, 100)
	other := testutil.CreateTestCasinoEvent(5002, 200)
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, other))

	_, err := repo.AssignSlot(ctx, 5000, 1, 777)
	require.NoError(t, err)

	events, err := repo.ListByGuild(ctx, 100)
	require.NoError(t, err)
	require.Len(t, events, 2)

	byID := map[int64]int{}
	for i, e := range events {
		byID[e.MessageID] = i
	}
	assert.Len(t, events[byID[5000]].Assignments, 1)
	assert.Empty(t, events[byID[5001]].Assignments)
}
