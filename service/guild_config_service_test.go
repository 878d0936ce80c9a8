package service

import (
	"context"
	"testing"

	"concierge/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupConfigMocks() (*MockUnitOfWork, *MockUnitOfWorkFactory, *MockGuildConfigRepository, *MockProgressRepository) {
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockConfigRepo := new(MockGuildConfigRepository)
	mockProgressRepo := new(MockProgressRepository)

	mockUoW.SetRepositories(mockConfigRepo, mockProgressRepo, nil, nil)
	mockFactory.On("Create").Return(mockUoW)

	return mockUoW, mockFactory, mockConfigRepo, mockProgressRepo
}

func TestGuildConfigService_SetLevelUpChannel(t *testing.T) {
	ctx := context.Background()
	mockUoW, mockFactory, mockConfigRepo, _ := setupConfigMocks()

	service := NewGuildConfigService(mockFactory)

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockConfigRepo.On("GetOrCreate", ctx, int64(100)).Return(models.NewGuildConfig(100), nil)
	mockConfigRepo.On("Update", ctx, mock.MatchedBy(func(c *models.GuildConfig) bool {
		return c.LevelUpChannelID != nil && *c.LevelUpChannelID == 5001
	})).Return(nil)

	channel := int64(5001)
	err := service.SetLevelUpChannel(ctx, 100, &channel)

	require.NoError(t, err)
	mockConfigRepo.AssertExpectations(t)
}

func TestGuildConfigService_SetInviteLink(t *testing.T) {
	ctx := context.Background()
	mockUoW, mockFactory, mockConfigRepo, _ := setupConfigMocks()

	service := NewGuildConfigService(mockFactory)

	// A malformed link never reaches the repository
	err := service.SetInviteLink(ctx, 100, "not a link")
	assert.ErrorIs(t, err, ErrInvalidInviteLink)
	mockFactory.AssertNotCalled(t, "Create")

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockConfigRepo.On("GetOrCreate", ctx, int64(100)).Return(models.NewGuildConfig(100), nil)
	mockConfigRepo.On("Update", ctx, mock.MatchedBy(func(c *models.GuildConfig) bool {
		return c.InviteLink != nil && *c.InviteLink == "https://discord.gg/abc123"
	})).Return(nil)

	err = service.SetInviteLink(ctx, 100, "https://discord.gg/abc123")
	require.NoError(t, err)
}

func TestGuildConfigService_SetLevelRole(t *testing.T) {
	ctx := context.Background()
	mockUoW, mockFactory, mockConfigRepo, _ := setupConfigMocks()

	service := NewGuildConfigService(mockFactory)

	// Levels outside the progression are rejected up front
	err := service.SetLevelRole(ctx, 100, 0, 9001)
	assert.ErrorIs(t, err, ErrInvalidLevel)
	err = service.SetLevelRole(ctx, 100, models.MaxLevel+1, 9001)
	assert.ErrorIs(t, err, ErrInvalidLevel)
	mockFactory.AssertNotCalled(t, "Create")

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockConfigRepo.On("GetOrCreate", ctx, int64(100)).Return(models.NewGuildConfig(100), nil)
	mockConfigRepo.On("SetLevelRole", ctx, int64(100), 3, int64(9001)).Return(nil)

	err = service.SetLevelRole(ctx, 100, 3, 9001)
	require.NoError(t, err)
	mockConfigRepo.AssertExpectations(t)
}

func TestGuildConfigService_RemoveLevelRole(t *testing.T) {
	ctx := context.Background()
	mockUoW, mockFactory, mockConfigRepo, _ := setupConfigMocks()

	service := NewGuildConfigService(mockFactory)

	err := service.RemoveLevelRole(ctx, 100, 0)
	assert.ErrorIs(t, err, ErrInvalidLevel)
	err = service.RemoveLevelRole(ctx, 100, models.MaxLevel+1)
	assert.ErrorIs(t, err, ErrInvalidLevel)
	mockFactory.AssertNotCalled(t, "Create")

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockConfigRepo.On("RemoveLevelRole", ctx, int64(100), 3).Return(nil)

	err = service.RemoveLevelRole(ctx, 100, 3)
	require.NoError(t, err)
	mockConfigRepo.AssertExpectations(t)
}

func TestGuildConfigService_RemoveGuild(t *testing.T) {
	ctx := context.Background()
	mockUoW, mockFactory, mockConfigRepo, mockProgressRepo := setupConfigMocks()

	service := NewGuildConfigService(mockFactory)

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockConfigRepo.On("Delete", ctx, int64(100)).Return(nil)
	mockProgressRepo.On("DeleteByGuild", ctx, int64(100)).Return(nil)

	err := service.RemoveGuild(ctx, 100)

	require.NoError(t, err)
	mockConfigRepo.AssertExpectations(t)
	mockProgressRepo.AssertExpectations(t)
}
