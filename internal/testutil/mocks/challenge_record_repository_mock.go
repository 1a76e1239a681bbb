package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/cootshk/LiChess-Bot/internal/models"
)

// MockChallengeRecordRepository is a mock implementation of repository.ChallengeRecordRepository
type MockChallengeRecordRepository struct {
	mock.Mock
}

func (m *MockChallengeRecordRepository) Insert(ctx context.Context, rec models.ChallengeRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockChallengeRecordRepository) Get(ctx context.Context, id string) (*models.ChallengeRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChallengeRecord), args.Error(1)
}

func (m *MockChallengeRecordRepository) GetByChallengeID(ctx context.Context, challengeID string) (*models.ChallengeRecord, error) {
	args := m.Called(ctx, challengeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChallengeRecord), args.Error(1)
}

func (m *MockChallengeRecordRepository) GetByGameID(ctx context.Context, gameID string) (*models.ChallengeRecord, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChallengeRecord), args.Error(1)
}

func (m *MockChallengeRecordRepository) List(ctx context.Context, filter models.ChallengeRecordFilter) ([]models.ChallengeRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChallengeRecord), args.Error(1)
}

func (m *MockChallengeRecordRepository) Count(ctx context.Context, filter models.ChallengeRecordFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockChallengeRecordRepository) UpdateStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockChallengeRecordRepository) AttachGame(ctx context.Context, id, gameID string) error {
	args := m.Called(ctx, id, gameID)
	return args.Error(0)
}
