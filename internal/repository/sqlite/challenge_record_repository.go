package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/cootshk/LiChess-Bot/internal/logger"
	"github.com/cootshk/LiChess-Bot/internal/models"
	"github.com/cootshk/LiChess-Bot/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

const recordColumns = `id, challenge_id, game_id, kind, opponent, color, variant, time_control, rated, status, created_at, updated_at`

type challengeRecordRepository struct {
	db *sql.DB
}

// NewChallengeRecordRepository creates a ChallengeRecordRepository implementation
func NewChallengeRecordRepository(db *sql.DB) repository.ChallengeRecordRepository {
	return &challengeRecordRepository{db: db}
}

func (r *challengeRecordRepository) Insert(ctx context.Context, rec models.ChallengeRecord) error {
	log := logger.FromContext(ctx).WithPrefix("challenge_repo")
	log.Debug("inserting record: id=%s kind=%s opponent=%s", rec.ID, rec.Kind, rec.Opponent)

	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO challenge_records (
    id, challenge_id, game_id, kind, opponent, color, variant, time_control, rated, status, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, rec.ID, rec.ChallengeID, rec.GameID, rec.Kind, rec.Opponent, rec.Color, rec.Variant, rec.TimeControl, rec.Rated, rec.Status, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		log.Error("failed to insert record: %v", err)
		return err
	}
	return nil
}

func (r *challengeRecordRepository) Get(ctx context.Context, id string) (*models.ChallengeRecord, error) {
	return r.getWhere(ctx, `id = ?`, id)
}

func (r *challengeRecordRepository) GetByChallengeID(ctx context.Context, challengeID string) (*models.ChallengeRecord, error) {
	return r.getWhere(ctx, `challenge_id = ?`, challengeID)
}

func (r *challengeRecordRepository) GetByGameID(ctx context.Context, gameID string) (*models.ChallengeRecord, error) {
	return r.getWhere(ctx, `game_id = ?`, gameID)
}

func (r *challengeRecordRepository) getWhere(ctx context.Context, where string, arg any) (*models.ChallengeRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("challenge_repo")

	var rec models.ChallengeRecord
	err := r.db.QueryRowContext(ctx, `
SELECT `+recordColumns+`
FROM challenge_records
WHERE `+where+`
`, arg).Scan(&rec.ID, &rec.ChallengeID, &rec.GameID, &rec.Kind, &rec.Opponent, &rec.Color, &rec.Variant, &rec.TimeControl, &rec.Rated, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("record not found: %v", arg)
		} else {
			log.Error("failed to get record: %v", err)
		}
		return nil, err
	}
	return &rec, nil
}

func (r *challengeRecordRepository) List(ctx context.Context, filter models.ChallengeRecordFilter) ([]models.ChallengeRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("challenge_repo")
	log.Debug("listing records: kind=%s status=%s opponent=%s", filter.Kind, filter.Status, filter.Opponent)

	query := filtered(sqlBuilder.Select(
		"id", "challenge_id", "game_id", "kind", "opponent", "color", "variant",
		"time_control", "rated", "status", "created_at", "updated_at",
	).From("challenge_records"), filter)

	query = query.OrderBy("created_at DESC")

	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list records: %v", err)
		return nil, err
	}
	defer rows.Close()

	var records []models.ChallengeRecord
	for rows.Next() {
		var rec models.ChallengeRecord
		if err := rows.Scan(&rec.ID, &rec.ChallengeID, &rec.GameID, &rec.Kind, &rec.Opponent, &rec.Color, &rec.Variant, &rec.TimeControl, &rec.Rated, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			log.Error("failed to scan record row: %v", err)
			return nil, err
		}
		records = append(records, rec)
	}
	log.Debug("found %d records", len(records))
	return records, rows.Err()
}

func (r *challengeRecordRepository) Count(ctx context.Context, filter models.ChallengeRecordFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("challenge_repo")

	query := filtered(sqlBuilder.Select("COUNT(*)").From("challenge_records"), filter)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count records: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *challengeRecordRepository) UpdateStatus(ctx context.Context, id, status string) error {
	log := logger.FromContext(ctx).WithPrefix("challenge_repo")
	log.Debug("updating record status: id=%s status=%s", id, status)

	res, err := r.db.ExecContext(ctx, `
UPDATE challenge_records SET status = ?, updated_at = ? WHERE id = ?
`, status, time.Now().UTC(), id)
	if err != nil {
		log.Error("failed to update status: %v", err)
		return err
	}
	return requireRow(res)
}

func (r *challengeRecordRepository) AttachGame(ctx context.Context, id, gameID string) error {
	log := logger.FromContext(ctx).WithPrefix("challenge_repo")
	log.Debug("attaching game: id=%s game_id=%s", id, gameID)

	res, err := r.db.ExecContext(ctx, `
UPDATE challenge_records SET game_id = ?, updated_at = ? WHERE id = ?
`, gameID, time.Now().UTC(), id)
	if err != nil {
		log.Error("failed to attach game: %v", err)
		return err
	}
	return requireRow(res)
}

// filtered applies the dynamic WHERE clauses shared by List and Count.
func filtered(query squirrel.SelectBuilder, filter models.ChallengeRecordFilter) squirrel.SelectBuilder {
	if filter.Kind != "" {
		query = query.Where(squirrel.Eq{"kind": filter.Kind})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.Opponent != "" {
		query = query.Where(squirrel.Eq{"opponent": filter.Opponent})
	}
	return query
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
