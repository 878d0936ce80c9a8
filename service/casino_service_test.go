package service

import (
	"context"
	"testing"

	"concierge/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCasinoMocks() (*MockUnitOfWork, *MockUnitOfWorkFactory, *MockGuildConfigRepository, *MockCasinoEventRepository, *MockPendingValidationRepository) {
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockConfigRepo := new(MockGuildConfigRepository)
	mockEventRepo := new(MockCasinoEventRepository)
	mockPendingRepo := new(MockPendingValidationRepository)

	mockUoW.SetRepositories(mockConfigRepo, nil, mockEventRepo, mockPendingRepo)
	mockFactory.On("Create").Return(mockUoW)

	return mockUoW, mockFactory, mockConfigRepo, mockEventRepo, mockPendingRepo
}

func openEvent(messageID, guildID int64) *models.CasinoEvent {
	return &models.CasinoEvent{
		MessageID:   messageID,
		ChannelID:   messageID + 1,
		GuildID:     guildID,
		HostID:      42,
		Label:       "Saturday Slots",
		EntryCost:   500,
		Assignments: make(map[int]int64),
	}
}

func TestCasinoService_ListEvents(t *testing.T) {
	ctx := context.Background()
	mockUoW, mockFactory, _, mockEventRepo, _ := setupCasinoMocks()

	service := NewCasinoService(mockFactory)

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	events := []*models.CasinoEvent{openEvent(1000, 100), openEvent(2000, 100)}
	mockEventRepo.On("ListByGuild", ctx, int64(100)).Return(events, nil)

	listed, err := service.ListEvents(ctx, 100)

	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, int64(1000), listed[0].MessageID)
	assert.Equal(t, int64(2000), listed[1].MessageID)
	mockEventRepo.AssertExpectations(t)
}

func TestCasinoService_ClaimSlot_DirectAssignment(t *testing.T) {
	ctx := context.Background()
	mockUoW, mockFactory, mockConfigRepo, mockEventRepo, _ := setupCasinoMocks()

	service := NewCasinoService(mockFactory)

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	event := openEvent(1000, 100)
	claimed := openEvent(1000, 100)
	claimed.Assignments[42] = 777

	mockEventRepo.On("GetByMessageID", ctx, int64(1000)).Return(event, nil).Once()
	mockConfigRepo.On("GetOrCreate", ctx, int64(100)).Return(models.NewGuildConfig(100), nil)
	mockEventRepo.On("AssignSlot", ctx, int64(1000), 42, int64(777)).Return(true, nil)
	mockEventRepo.On("GetByMessageID", ctx, int64(1000)).Return(claimed, nil).Once()

	result, err := service.ClaimSlot(ctx, 1000, 777, 42)

	require.NoError(t, err)
	assert.False(t, result.RequiresApproval)
	assert.Equal(t, 42, result.Slot)
	assert.Equal(t, int64(777), result.Event.Assignments[42])

	mockUoW.AssertExpectations(t)
	mockEventRepo.AssertExpectations(t)
}

func TestCasinoService_ClaimSlot_ParkedForValidation(t *testing.T) {
	ctx := context.Background()
	mockUoW, mockFactory, mockConfigRepo, mockEventRepo, _ := setupCasinoMocks()

	service := NewCasinoService(mockFactory)

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockEventRepo.On("GetByMessageID", ctx, int64(1000)).Return(openEvent(1000, 100), nil)

	validationChannel := int64(8888)
	config := models.NewGuildConfig(100)
	config.CasinoValidationChannelID = &validationChannel
	mockConfigRepo.On("GetOrCreate", ctx, int64(100)).Return(config, nil)

	result, err := service.ClaimSlot(ctx, 1000, 777, 42)

	require.NoError(t, err)
	assert.True(t, result.RequiresApproval)
	assert.Equal(t, 42, result.Slot)
	// Nothing is assigned until staff approve
	mockEventRepo.AssertNotCalled(t, "AssignSlot", ctx, int64(1000), 42, int64(777))
}

func TestCasinoService_ClaimSlot_Validation(t *testing.T) {
	ctx := context.Background()
	mockUoW, mockFactory, _, mockEventRepo, _ := setupCasinoMocks()

	service := NewCasinoService(mockFactory)

	// Out-of-range slots are rejected before any transaction
	_, err := service.ClaimSlot(ctx, 1000, 777, 0)
	assert.ErrorIs(t, err, ErrInvalidSlot)
	_, err = service.ClaimSlot(ctx, 1000, 777, 101)
	assert.ErrorIs(t, err, ErrInvalidSlot)
	mockFactory.AssertNotCalled(t, "Create")

	// Claims on a closed event are rejected
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockEventRepo.On("GetByMessageID", ctx, int64(1000)).Return(nil, nil).Once()
	_, err = service.ClaimSlot(ctx, 1000, 777, 42)
	assert.ErrorIs(t, err, ErrEventClosed)

	// Claims on a taken slot are rejected
	event := openEvent(1000, 100)
	event.Assignments[42] = 888
	mockEventRepo.On("GetByMessageID", ctx, int64(1000)).Return(event, nil).Once()
	_, err = service.ClaimSlot(ctx, 1000, 777, 42)
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestCasinoService_ResolvePending_Approve(t *testing.T) {
	ctx := context.Background()
	mockUoW, mockFactory, _, mockEventRepo, mockPendingRepo := setupCasinoMocks()

	service := NewCasinoService(mockFactory)

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	pending := &models.PendingValidation{
		ValidationMessageID: 2000,
		EventMessageID:      1000,
		Slot:                13,
		DiscordID:           777,
		GuildID:             100,
	}
	approved := openEvent(1000, 100)
	approved.Assignments[13] = 777

	mockPendingRepo.On("Take", ctx, int64(2000)).Return(pending, nil)
	mockEventRepo.On("GetByMessageID", ctx, int64(1000)).Return(openEvent(1000, 100), nil).Once()
	mockEventRepo.On("AssignSlot", ctx, int64(1000), 13, int64(777)).Return(true, nil)
	mockEventRepo.On("GetByMessageID", ctx, int64(1000)).Return(approved, nil).Once()

	resolution, err := service.ResolvePending(ctx, 2000, true)

	require.NoError(t, err)
	assert.True(t, resolution.Approved)
	assert.Equal(t, pending, resolution.Pending)
	assert.Equal(t, int64(777), resolution.Event.Assignments[13])
}

func TestCasinoService_ResolvePending_Reject(t *testing.T) {
	ctx := context.Background()
	mockUoW, mockFactory, _, mockEventRepo, mockPendingRepo := setupCasinoMocks()

	service := NewCasinoService(mockFactory)

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	pending := &models.PendingValidation{
		ValidationMessageID: 2000,
		EventMessageID:      1000,
		Slot:                13,
		DiscordID:           777,
	}
	mockPendingRepo.On("Take", ctx, int64(2000)).Return(pending, nil)

	resolution, err := service.ResolvePending(ctx, 2000, false)

	require.NoError(t, err)
	assert.False(t, resolution.Approved)
	assert.Nil(t, resolution.Event)
	mockEventRepo.AssertNotCalled(t, "AssignSlot", ctx, int64(1000), 13, int64(777))
}

func TestCasinoService_ResolvePending_SecondDecisionIsRejected(t *testing.T) {
	ctx := context.Background()
	mockUoW, mockFactory, _, _, mockPendingRepo := setupCasinoMocks()

	service := NewCasinoService(mockFactory)

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	// The request was already taken by an earlier decision
	mockPendingRepo.On("Take", ctx, int64(2000)).Return(nil, nil)

	_, err := service.ResolvePending(ctx, 2000, true)
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
}

func TestCasinoService_ResolvePending_SlotRacedAway(t *testing.T) {
	ctx := context.Background()
	mockUoW, mockFactory, _, mockEventRepo, mockPendingRepo := setupCasinoMocks()

	service := NewCasinoService(mockFactory)

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	pending := &models.PendingValidation{
		ValidationMessageID: 2000,
		EventMessageID:      1000,
		Slot:                13,
		DiscordID:           777,
	}
	mockPendingRepo.On("Take", ctx, int64(2000)).Return(pending, nil)
	mockEventRepo.On("GetByMessageID", ctx, int64(1000)).Return(openEvent(1000, 100), nil)
	// Someone else got slot 13 while the claim sat in review
	mockEventRepo.On("AssignSlot", ctx, int64(1000), 13, int64(777)).Return(false, nil)

	_, err := service.ResolvePending(ctx, 2000, true)
	assert.ErrorIs(t, err, ErrSlotTaken)
	mockUoW.AssertNotCalled(t, "Commit")
}

func TestCasinoService_CloseEvent(t *testing.T) {
	ctx := context.Background()
	mockUoW, mockFactory, _, mockEventRepo, _ := setupCasinoMocks()

	service := NewCasinoService(mockFactory)

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	event := openEvent(1000, 100)
	event.Assignments[7] = 777
	mockEventRepo.On("GetByMessageID", ctx, int64(1000)).Return(event, nil)
	mockEventRepo.On("Delete", ctx, int64(1000)).Return(true, nil)

	closed, err := service.CloseEvent(ctx, 1000)

	require.NoError(t, err)
	assert.Equal(t, int64(777), closed.Assignments[7])
}

func TestCasinoService_CloseEvent_AlreadyClosed(t *testing.T) {
	ctx := context.Background()
	mockUoW, mockFactory, _, mockEventRepo, _ := setupCasinoMocks()

	service := NewCasinoService(mockFactory)

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockEventRepo.On("GetByMessageID", ctx, int64(1000)).Return(nil, nil)

	_, err := service.CloseEvent(ctx, 1000)
	assert.ErrorIs(t, err, ErrEventClosed)
}
