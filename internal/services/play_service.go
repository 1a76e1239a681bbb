package services

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/cootshk/LiChess-Bot/internal/errors"
	"github.com/cootshk/LiChess-Bot/internal/lichess"
	"github.com/cootshk/LiChess-Bot/internal/logger"
	"github.com/cootshk/LiChess-Bot/internal/models"
	"github.com/cootshk/LiChess-Bot/internal/repository"
)

// PlayService creates challenges through the API client and keeps a
// local record of each one, so the bot's history survives restarts.
// Network failures propagate classified; the record is only written
// after the server accepted the request.
type PlayService interface {
	ChallengePlayer(ctx context.Context, username string, setup *lichess.GameSetup, rated bool) (*models.ChallengeRecord, error)
	PlayAI(ctx context.Context, level int, setup *lichess.GameSetup) (*models.ChallengeRecord, error)
	CreateOpenChallenge(ctx context.Context, rated bool, setup *lichess.GameSetup, users []string) (*models.ChallengeRecord, error)
	AcceptIncoming(ctx context.Context, challenge lichess.Challenge) (*models.ChallengeRecord, error)
	DeclineIncoming(ctx context.Context, challengeID, reason string) error
	CancelOutgoing(ctx context.Context, challengeID string) error
	MarkGameFinished(ctx context.Context, gameID string) error
	History(ctx context.Context, filter models.ChallengeRecordFilter) ([]models.ChallengeRecord, int, error)
}

type playService struct {
	challenges lichess.ChallengeAPI
	repo       repository.ChallengeRecordRepository
}

// NewPlayService creates a new PlayService
func NewPlayService(challenges lichess.ChallengeAPI, repo repository.ChallengeRecordRepository) PlayService {
	return &playService{
		challenges: challenges,
		repo:       repo,
	}
}

func (s *playService) ChallengePlayer(ctx context.Context, username string, setup *lichess.GameSetup, rated bool) (*models.ChallengeRecord, error) {
	log := logger.FromContext(ctx)
	log.Debug("challenging player %s (rated=%t)", username, rated)

	challenge, err := s.challenges.ChallengeUser(ctx, username, setup, rated, true, "", "")
	if err != nil {
		return nil, err
	}

	rec := recordFromSetup(setup, models.KindDirect, rated)
	rec.ChallengeID = challenge.ID
	rec.Opponent = username
	if err := s.repo.Insert(ctx, rec); err != nil {
		log.Error("failed to record challenge %s: %v", challenge.ID, err)
		return nil, errors.NewInternalError(err)
	}
	return &rec, nil
}

func (s *playService) PlayAI(ctx context.Context, level int, setup *lichess.GameSetup) (*models.ChallengeRecord, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting AI game at level %d", level)

	gameID, err := s.challenges.ChallengeAI(ctx, level, setup)
	if err != nil {
		return nil, err
	}

	// An AI challenge yields a game immediately; there is no pending
	// challenge phase to track.
	rec := recordFromSetup(setup, models.KindAI, false)
	rec.GameID = gameID
	rec.Opponent = "ai"
	rec.Status = models.StatusAccepted
	if err := s.repo.Insert(ctx, rec); err != nil {
		log.Error("failed to record AI game %s: %v", gameID, err)
		return nil, errors.NewInternalError(err)
	}
	return &rec, nil
}

func (s *playService) CreateOpenChallenge(ctx context.Context, rated bool, setup *lichess.GameSetup, users []string) (*models.ChallengeRecord, error) {
	log := logger.FromContext(ctx)
	log.Debug("opening challenge (rated=%t, users=%d)", rated, len(users))

	open, err := s.challenges.OpenChallenge(ctx, rated, setup, users, "")
	if err != nil {
		return nil, err
	}

	rec := recordFromSetup(setup, models.KindOpen, rated)
	rec.ChallengeID = open.ID
	if err := s.repo.Insert(ctx, rec); err != nil {
		log.Error("failed to record open challenge %s: %v", open.ID, err)
		return nil, errors.NewInternalError(err)
	}
	return &rec, nil
}

func (s *playService) AcceptIncoming(ctx context.Context, challenge lichess.Challenge) (*models.ChallengeRecord, error) {
	log := logger.FromContext(ctx)

	if err := s.challenges.Accept(ctx, challenge.ID); err != nil {
		return nil, err
	}

	rec := models.ChallengeRecord{
		ID:          uuid.NewString(),
		ChallengeID: challenge.ID,
		Kind:        models.KindIncoming,
		Opponent:    challenge.Challenger.Name,
		Color:       challenge.Color,
		Variant:     challenge.Variant.Key,
		TimeControl: challenge.TimeControl.Show,
		Rated:       challenge.Rated,
		Status:      models.StatusAccepted,
	}
	if err := s.repo.Insert(ctx, rec); err != nil {
		log.Error("failed to record accepted challenge %s: %v", challenge.ID, err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("accepted challenge %s from %s", challenge.ID, challenge.Challenger.Name)
	return &rec, nil
}

func (s *playService) DeclineIncoming(ctx context.Context, challengeID, reason string) error {
	return s.challenges.Decline(ctx, challengeID, reason)
}

func (s *playService) CancelOutgoing(ctx context.Context, challengeID string) error {
	log := logger.FromContext(ctx)

	if err := s.challenges.Cancel(ctx, challengeID, ""); err != nil {
		return err
	}

	rec, err := s.repo.GetByChallengeID(ctx, challengeID)
	if err != nil {
		if err == sql.ErrNoRows {
			// Cancelled a challenge this bot never recorded; nothing to update.
			return nil
		}
		return errors.NewInternalError(err)
	}
	if err := s.repo.UpdateStatus(ctx, rec.ID, models.StatusCancelled); err != nil {
		log.Error("failed to mark %s cancelled: %v", rec.ID, err)
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *playService) MarkGameFinished(ctx context.Context, gameID string) error {
	log := logger.FromContext(ctx)

	rec, err := s.repo.GetByGameID(ctx, gameID)
	if err != nil {
		if err == sql.ErrNoRows {
			return errors.NewNotFoundError("game record", gameID)
		}
		return errors.NewInternalError(err)
	}
	if err := s.repo.UpdateStatus(ctx, rec.ID, models.StatusFinished); err != nil {
		log.Error("failed to mark game %s finished: %v", gameID, err)
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *playService) History(ctx context.Context, filter models.ChallengeRecordFilter) ([]models.ChallengeRecord, int, error) {
	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, errors.NewInternalError(err)
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, errors.NewInternalError(err)
	}
	return records, total, nil
}

func recordFromSetup(setup *lichess.GameSetup, kind string, rated bool) models.ChallengeRecord {
	variant, _ := setup.Position()
	return models.ChallengeRecord{
		ID:          uuid.NewString(),
		Kind:        kind,
		Color:       string(setup.Color()),
		Variant:     string(variant),
		TimeControl: setup.TimeControl().String(),
		Rated:       rated,
		Status:      models.StatusCreated,
	}
}
