package service

import (
	"context"
	"testing"

	"concierge/events"
	"concierge/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupLevelingMocks(t *testing.T) (*MockUnitOfWork, *MockUnitOfWorkFactory, *MockGuildConfigRepository, *MockProgressRepository) {
	t.Setenv("ENVIRONMENT", "test")

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockConfigRepo := new(MockGuildConfigRepository)
	mockProgressRepo := new(MockProgressRepository)

	mockUoW.SetRepositories(mockConfigRepo, mockProgressRepo, nil, nil)
	mockFactory.On("Create").Return(mockUoW)

	return mockUoW, mockFactory, mockConfigRepo, mockProgressRepo
}

func TestLevelingService_AwardMessageXP(t *testing.T) {
	ctx := context.Background()
	mockUoW, mockFactory, mockConfigRepo, mockProgressRepo := setupLevelingMocks(t)

	service := NewLevelingService(mockFactory)

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockConfigRepo.On("GetOrCreate", ctx, int64(100)).Return(models.NewGuildConfig(100), nil)
	mockProgressRepo.On("GetOrCreateForUpdate", ctx, int64(100), int64(555)).Return(&models.MemberProgress{
		GuildID:   100,
		DiscordID: 555,
		TotalXP:   7,
		Level:     0,
	}, nil)
	mockProgressRepo.On("Update", ctx, mock.MatchedBy(func(p *models.MemberProgress) bool {
		return p.TotalXP == 8 && p.Level == 0
	})).Return(nil)

	progress, err := service.AwardMessageXP(ctx, 100, 555, 9000)

	require.NoError(t, err)
	require.NotNil(t, progress)
	assert.Equal(t, int64(8), progress.TotalXP)
	assert.Equal(t, 0, progress.Level)
	assert.Empty(t, mockUoW.PublishedEvents())

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockProgressRepo.AssertExpectations(t)
}

func TestLevelingService_AwardMessageXP_LevelUpPublishesEvent(t *testing.T) {
	ctx := context.Background()
	mockUoW, mockFactory, mockConfigRepo, mockProgressRepo := setupLevelingMocks(t)

	service := NewLevelingService(mockFactory)

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockConfigRepo.On("GetOrCreate", ctx, int64(100)).Return(models.NewGuildConfig(100), nil)
	// One XP away from the level 1 threshold
	mockProgressRepo.On("GetOrCreateForUpdate", ctx, int64(100), int64(555)).Return(&models.MemberProgress{
		GuildID:   100,
		DiscordID: 555,
		TotalXP:   14,
		Level:     0,
	}, nil)
	mockProgressRepo.On("Update", ctx, mock.MatchedBy(func(p *models.MemberProgress) bool {
		return p.TotalXP == 15 && p.Level == 1
	})).Return(nil)

	progress, err := service.AwardMessageXP(ctx, 100, 555, 9000)

	require.NoError(t, err)
	assert.Equal(t, 1, progress.Level)

	published := mockUoW.PublishedEvents()
	require.Len(t, published, 1)
	levelUp, ok := published[0].(events.LevelUpEvent)
	require.True(t, ok)
	assert.Equal(t, int64(100), levelUp.GuildID)
	assert.Equal(t, int64(555), levelUp.UserID)
	assert.Equal(t, 0, levelUp.OldLevel)
	assert.Equal(t, 1, levelUp.NewLevel)
	assert.Equal(t, int64(9000), levelUp.FallbackChannelID)
}

func TestLevelingService_AwardMessageXP_Disabled(t *testing.T) {
	ctx := context.Background()
	mockUoW, mockFactory, mockConfigRepo, _ := setupLevelingMocks(t)

	service := NewLevelingService(mockFactory)

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	disabled := models.NewGuildConfig(100)
	disabled.LevelingActive = false
	mockConfigRepo.On("GetOrCreate", ctx, int64(100)).Return(disabled, nil)

	progress, err := service.AwardMessageXP(ctx, 100, 555, 9000)

	require.NoError(t, err)
	assert.Nil(t, progress)
	mockUoW.AssertNotCalled(t, "Commit")
}

func TestLevelingService_AwardMessageXP_StopsAtMaxLevel(t *testing.T) {
	ctx := context.Background()
	mockUoW, mockFactory, mockConfigRepo, mockProgressRepo := setupLevelingMocks(t)

	service := NewLevelingService(mockFactory)

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockConfigRepo.On("GetOrCreate", ctx, int64(100)).Return(models.NewGuildConfig(100), nil)
	mockProgressRepo.On("GetOrCreateForUpdate", ctx, int64(100), int64(555)).Return(&models.MemberProgress{
		GuildID:   100,
		DiscordID: 555,
		TotalXP:   1500,
		Level:     models.MaxLevel,
	}, nil)

	progress, err := service.AwardMessageXP(ctx, 100, 555, 9000)

	require.NoError(t, err)
	assert.Equal(t, int64(1500), progress.TotalXP)
	assert.Equal(t, models.MaxLevel, progress.Level)
	assert.Empty(t, mockUoW.PublishedEvents())
	mockProgressRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
}

func TestLevelingService_GetProgress_MissingMemberIsZeroed(t *testing.T) {
	ctx := context.Background()
	mockUoW, mockFactory, _, mockProgressRepo := setupLevelingMocks(t)

	service := NewLevelingService(mockFactory)

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockProgressRepo.On("Get", ctx, int64(100), int64(555)).Return(nil, nil)

	progress, err := service.GetProgress(ctx, 100, 555)

	require.NoError(t, err)
	require.NotNil(t, progress)
	assert.Equal(t, int64(0), progress.TotalXP)
	assert.Equal(t, 0, progress.Level)
}
