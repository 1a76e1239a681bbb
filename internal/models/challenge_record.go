package models

import "time"

// Challenge record kinds.
const (
	KindDirect   = "direct"
	KindAI       = "ai"
	KindOpen     = "open"
	KindIncoming = "incoming"
)

// Challenge record statuses. The server owns the real lifecycle; these
// mirror what the bot observed last.
const (
	StatusCreated   = "created"
	StatusAccepted  = "accepted"
	StatusDeclined  = "declined"
	StatusCancelled = "cancelled"
	StatusExpired   = "expired"
	StatusFinished  = "finished"
)

// ChallengeRecord is the bot's local note of a challenge it issued or
// answered, kept so the history survives restarts.
type ChallengeRecord struct {
	ID          string    `json:"id"` // local uuid, not the server's id
	ChallengeID string    `json:"challenge_id"`
	GameID      string    `json:"game_id"`
	Kind        string    `json:"kind"`
	Opponent    string    `json:"opponent"`
	Color       string    `json:"color"`
	Variant     string    `json:"variant"`
	TimeControl string    `json:"time_control"` // "180+2" or "7d"
	Rated       bool      `json:"rated"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ChallengeRecordFilter narrows List queries. Zero values match all.
type ChallengeRecordFilter struct {
	Kind     string
	Status   string
	Opponent string
	Limit    int
	Offset   int
}
