package repository

import (
	"context"

	"github.com/cootshk/LiChess-Bot/internal/models"
)

// ChallengeRecordRepository persists the bot's challenge history.
type ChallengeRecordRepository interface {
	Insert(ctx context.Context, rec models.ChallengeRecord) error
	Get(ctx context.Context, id string) (*models.ChallengeRecord, error)
	GetByChallengeID(ctx context.Context, challengeID string) (*models.ChallengeRecord, error)
	GetByGameID(ctx context.Context, gameID string) (*models.ChallengeRecord, error)
	List(ctx context.Context, filter models.ChallengeRecordFilter) ([]models.ChallengeRecord, error)
	Count(ctx context.Context, filter models.ChallengeRecordFilter) (int, error)
	UpdateStatus(ctx context.Context, id, status string) error
	AttachGame(ctx context.Context, id, gameID string) error
}
