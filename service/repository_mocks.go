package service

import (
	"context"

	"concierge/events"
	"concierge/models"

	"github.com/stretchr/testify/mock"
)

// MockGuildConfigRepository is a mock implementation of GuildConfigRepository
type MockGuildConfigRepository struct {
	mock.Mock
}

func (m *MockGuildConfigRepository) GetOrCreate(ctx context.Context, guildID int64) (*models.GuildConfig, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GuildConfig), args.Error(1)
}

func (m *MockGuildConfigRepository) Update(ctx context.Context, config *models.GuildConfig) error {
	args := m.Called(ctx, config)
	return args.Error(0)
}

func (m *MockGuildConfigRepository) SetLevelRole(ctx context.Context, guildID int64, level int, roleID int64) error {
	args := m.Called(ctx, guildID, level, roleID)
	return args.Error(0)
}

func (m *MockGuildConfigRepository) RemoveLevelRole(ctx context.Context, guildID int64, level int) error {
	args := m.Called(ctx, guildID, level)
	return args.Error(0)
}

func (m *MockGuildConfigRepository) Delete(ctx context.Context, guildID int64) error {
	args := m.Called(ctx, guildID)
	return args.Error(0)
}

// MockProgressRepository is a mock implementation of ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) Get(ctx context.Context, guildID, discordID int64) (*models.MemberProgress, error) {
	args := m.Called(ctx, guildID, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MemberProgress), args.Error(1)
}

func (m *MockProgressRepository) GetOrCreateForUpdate(ctx context.Context, guildID, discordID int64) (*models.MemberProgress, error) {
	args := m.Called(ctx, guildID, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MemberProgress), args.Error(1)
}

func (m *MockProgressRepository) Update(ctx context.Context, progress *models.MemberProgress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

func (m *MockProgressRepository) Top(ctx context.Context, guildID int64, limit int) ([]*models.MemberProgress, error) {
	args := m.Called(ctx, guildID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MemberProgress), args.Error(1)
}

func (m *MockProgressRepository) DeleteByGuild(ctx context.Context, guildID int64) error {
	args := m.Called(ctx, guildID)
	return args.Error(0)
}

// MockCasinoEventRepository is a mock implementation of CasinoEventRepository
type MockCasinoEventRepository struct {
	mock.Mock
}

func (m *MockCasinoEventRepository) Create(ctx context.Context, event *models.CasinoEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockCasinoEventRepository) GetByMessageID(ctx context.Context, messageID int64) (*models.CasinoEvent, error) {
	args := m.Called(ctx, messageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CasinoEvent), args.Error(1)
}

func (m *MockCasinoEventRepository) AssignSlot(ctx context.Context, eventMessageID int64, slot int, discordID int64) (bool, error) {
	args := m.Called(ctx, eventMessageID, slot, discordID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCasinoEventRepository) Delete(ctx context.Context, messageID int64) (bool, error) {
	args := m.Called(ctx, messageID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCasinoEventRepository) ListByGuild(ctx context.Context, guildID int64) ([]*models.CasinoEvent, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CasinoEvent), args.Error(1)
}

// MockPendingValidationRepository is a mock implementation of PendingValidationRepository
type MockPendingValidationRepository struct {
	mock.Mock
}

func (m *MockPendingValidationRepository) Create(ctx context.Context, pending *models.PendingValidation) error {
	args := m.Called(ctx, pending)
	return args.Error(0)
}

func (m *MockPendingValidationRepository) Take(ctx context.Context, validationMessageID int64) (*models.PendingValidation, error) {
	args := m.Called(ctx, validationMessageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PendingValidation), args.Error(1)
}

// RecordingPublisher captures published events for assertions
type RecordingPublisher struct {
	Events []events.Event
}

func (p *RecordingPublisher) Publish(event events.Event) {
	p.Events = append(p.Events, event)
}

// MockUnitOfWork is a mock implementation of UnitOfWork. Begin, Commit and
// Rollback go through testify expectations; the repository getters return
// whatever SetRepositories stored, since services fetch them unconditionally.
type MockUnitOfWork struct {
	mock.Mock

	guildConfigRepo GuildConfigRepository
	progressRepo    ProgressRepository
	casinoEventRepo CasinoEventRepository
	pendingRepo     PendingValidationRepository
	publisher       *RecordingPublisher
}

// SetRepositories wires the repository mocks this unit of work hands out
func (m *MockUnitOfWork) SetRepositories(
	guildConfigRepo GuildConfigRepository,
	progressRepo ProgressRepository,
	casinoEventRepo CasinoEventRepository,
	pendingRepo PendingValidationRepository,
) {
	m.guildConfigRepo = guildConfigRepo
	m.progressRepo = progressRepo
	m.casinoEventRepo = casinoEventRepo
	m.pendingRepo = pendingRepo
	m.publisher = &RecordingPublisher{}
}

// PublishedEvents returns the events published through this unit of work
func (m *MockUnitOfWork) PublishedEvents() []events.Event {
	if m.publisher == nil {
		return nil
	}
	return m.publisher.Events
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) GuildConfigRepository() GuildConfigRepository {
	return m.guildConfigRepo
}

func (m *MockUnitOfWork) ProgressRepository() ProgressRepository {
	return m.progressRepo
}

func (m *MockUnitOfWork) CasinoEventRepository() CasinoEventRepository {
	return m.casinoEventRepo
}

func (m *MockUnitOfWork) PendingValidationRepository() PendingValidationRepository {
	return m.pendingRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	if m.publisher == nil {
		m.publisher = &RecordingPublisher{}
	}
	return m.publisher
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
