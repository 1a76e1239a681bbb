package services_test

import (
	"context"
	"database/sql"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cootshk/LiChess-Bot/internal/errors"
	"github.com/cootshk/LiChess-Bot/internal/lichess"
	"github.com/cootshk/LiChess-Bot/internal/models"
	"github.com/cootshk/LiChess-Bot/internal/services"
	"github.com/cootshk/LiChess-Bot/internal/testutil/mocks"
)

func realTimeSetup(t *testing.T) *lichess.GameSetup {
	t.Helper()
	setup, err := lichess.NewGameSetup(lichess.ColorRandom, lichess.VariantStandard, "", lichess.RealTime(180, 0), lichess.GameRules{})
	require.NoError(t, err)
	return setup
}

func TestChallengePlayer(t *testing.T) {
	api := new(mocks.MockChallengeAPI)
	repo := new(mocks.MockChallengeRecordRepository)
	svc := services.NewPlayService(api, repo)
	setup := realTimeSetup(t)

	api.On("ChallengeUser", mock.Anything, "rival", setup, true, true, "", "").
		Return(&lichess.Challenge{ID: "hTd8vRq2", Status: "created"}, nil)
	repo.On("Insert", mock.Anything, mock.MatchedBy(func(rec models.ChallengeRecord) bool {
		return rec.ChallengeID == "hTd8vRq2" && rec.Kind == models.KindDirect && rec.Opponent == "rival"
	})).Return(nil)

	rec, err := svc.ChallengePlayer(context.Background(), "rival", setup, true)
	require.NoError(t, err)
	assert.Equal(t, "hTd8vRq2", rec.ChallengeID)
	assert.Equal(t, models.StatusCreated, rec.Status)
	assert.Equal(t, "180+0", rec.TimeControl)
	assert.NotEmpty(t, rec.ID)

	api.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestChallengePlayer_APIFailure(t *testing.T) {
	api := new(mocks.MockChallengeAPI)
	repo := new(mocks.MockChallengeRecordRepository)
	svc := services.NewPlayService(api, repo)
	setup := realTimeSetup(t)

	api.On("ChallengeUser", mock.Anything, "rival", setup, false, true, "", "").
		Return(nil, errors.NewRateLimitedError())

	_, err := svc.ChallengePlayer(context.Background(), "rival", setup, false)
	require.Error(t, err)
	assert.True(t, errors.IsRateLimited(err))

	// No record for a challenge the server never created.
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestChallengePlayer_InsertFailure(t *testing.T) {
	api := new(mocks.MockChallengeAPI)
	repo := new(mocks.MockChallengeRecordRepository)
	svc := services.NewPlayService(api, repo)
	setup := realTimeSetup(t)

	api.On("ChallengeUser", mock.Anything, "rival", setup, false, true, "", "").
		Return(&lichess.Challenge{ID: "hTd8vRq2"}, nil)
	repo.On("Insert", mock.Anything, mock.Anything).Return(stderrors.New("disk full"))

	_, err := svc.ChallengePlayer(context.Background(), "rival", setup, false)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInternal, errors.CodeOf(err))
}

func TestPlayAI(t *testing.T) {
	api := new(mocks.MockChallengeAPI)
	repo := new(mocks.MockChallengeRecordRepository)
	svc := services.NewPlayService(api, repo)
	setup := realTimeSetup(t)

	api.On("ChallengeAI", mock.Anything, 5, setup).Return("aiGame01", nil)
	repo.On("Insert", mock.Anything, mock.MatchedBy(func(rec models.ChallengeRecord) bool {
		return rec.GameID == "aiGame01" && rec.Kind == models.KindAI && rec.Status == models.StatusAccepted
	})).Return(nil)

	rec, err := svc.PlayAI(context.Background(), 5, setup)
	require.NoError(t, err)
	assert.Equal(t, "aiGame01", rec.GameID)
	assert.Equal(t, "ai", rec.Opponent)

	api.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestCreateOpenChallenge(t *testing.T) {
	api := new(mocks.MockChallengeAPI)
	repo := new(mocks.MockChallengeRecordRepository)
	svc := services.NewPlayService(api, repo)
	setup := realTimeSetup(t)
	users := []string{"alice", "bob"}

	api.On("OpenChallenge", mock.Anything, false, setup, users, "").
		Return(&lichess.OpenChallenge{ID: "openCh01"}, nil)
	repo.On("Insert", mock.Anything, mock.MatchedBy(func(rec models.ChallengeRecord) bool {
		return rec.ChallengeID == "openCh01" && rec.Kind == models.KindOpen
	})).Return(nil)

	rec, err := svc.CreateOpenChallenge(context.Background(), false, setup, users)
	require.NoError(t, err)
	assert.Equal(t, "openCh01", rec.ChallengeID)

	api.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestAcceptIncoming(t *testing.T) {
	api := new(mocks.MockChallengeAPI)
	repo := new(mocks.MockChallengeRecordRepository)
	svc := services.NewPlayService(api, repo)

	incoming := lichess.Challenge{
		ID:          "in111111",
		Challenger:  lichess.ChallengePlayer{Name: "rival"},
		Color:       "white",
		Variant:     lichess.ChallengeVariant{Key: "standard"},
		TimeControl: lichess.ChallengeClock{Type: "clock", Show: "3+0"},
		Rated:       true,
	}

	api.On("Accept", mock.Anything, "in111111").Return(nil)
	repo.On("Insert", mock.Anything, mock.MatchedBy(func(rec models.ChallengeRecord) bool {
		return rec.ChallengeID == "in111111" &&
			rec.Kind == models.KindIncoming &&
			rec.Opponent == "rival" &&
			rec.Status == models.StatusAccepted
	})).Return(nil)

	rec, err := svc.AcceptIncoming(context.Background(), incoming)
	require.NoError(t, err)
	assert.Equal(t, "3+0", rec.TimeControl)
	assert.True(t, rec.Rated)

	api.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestDeclineIncoming(t *testing.T) {
	api := new(mocks.MockChallengeAPI)
	repo := new(mocks.MockChallengeRecordRepository)
	svc := services.NewPlayService(api, repo)

	api.On("Decline", mock.Anything, "in111111", "declineNoBot").Return(nil)

	require.NoError(t, svc.DeclineIncoming(context.Background(), "in111111", "declineNoBot"))
	api.AssertExpectations(t)
}

func TestCancelOutgoing(t *testing.T) {
	api := new(mocks.MockChallengeAPI)
	repo := new(mocks.MockChallengeRecordRepository)
	svc := services.NewPlayService(api, repo)

	api.On("Cancel", mock.Anything, "out11111", "").Return(nil)
	repo.On("GetByChallengeID", mock.Anything, "out11111").
		Return(&models.ChallengeRecord{ID: "rec-1", ChallengeID: "out11111"}, nil)
	repo.On("UpdateStatus", mock.Anything, "rec-1", models.StatusCancelled).Return(nil)

	require.NoError(t, svc.CancelOutgoing(context.Background(), "out11111"))
	api.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestCancelOutgoing_Unrecorded(t *testing.T) {
	api := new(mocks.MockChallengeAPI)
	repo := new(mocks.MockChallengeRecordRepository)
	svc := services.NewPlayService(api, repo)

	api.On("Cancel", mock.Anything, "out11111", "").Return(nil)
	repo.On("GetByChallengeID", mock.Anything, "out11111").Return(nil, sql.ErrNoRows)

	require.NoError(t, svc.CancelOutgoing(context.Background(), "out11111"))
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestMarkGameFinished(t *testing.T) {
	api := new(mocks.MockChallengeAPI)
	repo := new(mocks.MockChallengeRecordRepository)
	svc := services.NewPlayService(api, repo)

	repo.On("GetByGameID", mock.Anything, "aiGame01").
		Return(&models.ChallengeRecord{ID: "rec-1", GameID: "aiGame01"}, nil)
	repo.On("UpdateStatus", mock.Anything, "rec-1", models.StatusFinished).Return(nil)

	require.NoError(t, svc.MarkGameFinished(context.Background(), "aiGame01"))
	repo.AssertExpectations(t)
}

func TestMarkGameFinished_Unknown(t *testing.T) {
	api := new(mocks.MockChallengeAPI)
	repo := new(mocks.MockChallengeRecordRepository)
	svc := services.NewPlayService(api, repo)

	repo.On("GetByGameID", mock.Anything, "missing1").Return(nil, sql.ErrNoRows)

	err := svc.MarkGameFinished(context.Background(), "missing1")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestHistory(t *testing.T) {
	api := new(mocks.MockChallengeAPI)
	repo := new(mocks.MockChallengeRecordRepository)
	svc := services.NewPlayService(api, repo)
	filter := models.ChallengeRecordFilter{Kind: models.KindDirect, Limit: 10}

	repo.On("List", mock.Anything, filter).Return([]models.ChallengeRecord{
		{ID: "rec-1"}, {ID: "rec-2"},
	}, nil)
	repo.On("Count", mock.Anything, filter).Return(12, nil)

	records, total, err := svc.History(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, 12, total)
}
