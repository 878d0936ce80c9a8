package repository

import (
	"context"
	"testing"

	"concierge/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingValidationRepository_TakeIsOneShot(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	eventRepo := NewCasinoEventRepository(testDB.DB)
	pendingRepo := NewPendingValidationRepository(testDB.DB)

	event := testutil.CreateTestCasinoEvent(1000, 100)
	require.NoError(t, eventRepo.Create(ctx, event))

	pending := testutil.CreateTestPendingValidation(2000, 1000, 13, 777, 100)
	require.NoError(t, pendingRepo.Create(ctx, pending))

	// First decision wins
	taken, err := pendingRepo.Take(ctx, 2000)
	require.NoError(t, err)
	require.NotNil(t, taken)
	assert.Equal(t, int64(1000), taken.EventMessageID)
	assert.Equal(t, 13, taken.Slot)
	assert.Equal(t, int64(777), taken.DiscordID)

	// Second decision finds nothing to resolve
	taken, err = pendingRepo.Take(ctx, 2000)
	require.NoError(t, err)
	assert.Nil(t, taken)
}

func TestPendingValidationRepository_CreateRequiresEvent(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	pendingRepo := NewPendingValidationRepository(testDB.DB)

	pending := testutil.CreateTestPendingValidation(3000, 9999, 1, 777, 100)
	err := pendingRepo.Create(ctx, pending)
	require.Error(t, err)
}
