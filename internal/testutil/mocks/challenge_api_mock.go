package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/cootshk/LiChess-Bot/internal/lichess"
)

// MockChallengeAPI is a mock implementation of lichess.ChallengeAPI
type MockChallengeAPI struct {
	mock.Mock
}

func (m *MockChallengeAPI) List(ctx context.Context) (in, out []lichess.Challenge, err error) {
	args := m.Called(ctx)
	if args.Get(0) != nil {
		in = args.Get(0).([]lichess.Challenge)
	}
	if args.Get(1) != nil {
		out = args.Get(1).([]lichess.Challenge)
	}
	return in, out, args.Error(2)
}

func (m *MockChallengeAPI) ChallengeUser(ctx context.Context, username string, setup *lichess.GameSetup, rated, persistent bool, acceptToken, message string) (*lichess.Challenge, error) {
	args := m.Called(ctx, username, setup, rated, persistent, acceptToken, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*lichess.Challenge), args.Error(1)
}

func (m *MockChallengeAPI) ChallengeAI(ctx context.Context, level int, setup *lichess.GameSetup) (string, error) {
	args := m.Called(ctx, level, setup)
	return args.String(0), args.Error(1)
}

func (m *MockChallengeAPI) OpenChallenge(ctx context.Context, rated bool, setup *lichess.GameSetup, users []string, name string) (*lichess.OpenChallenge, error) {
	args := m.Called(ctx, rated, setup, users, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*lichess.OpenChallenge), args.Error(1)
}

func (m *MockChallengeAPI) Accept(ctx context.Context, challengeID string) error {
	args := m.Called(ctx, challengeID)
	return args.Error(0)
}

func (m *MockChallengeAPI) Decline(ctx context.Context, challengeID, reason string) error {
	args := m.Called(ctx, challengeID, reason)
	return args.Error(0)
}

func (m *MockChallengeAPI) Cancel(ctx context.Context, challengeID, opponentToken string) error {
	args := m.Called(ctx, challengeID, opponentToken)
	return args.Error(0)
}
