package lichess

import "context"

// The client interfaces exist so callers can be tested against mock
// implementations instead of a live endpoint.

// AccountAPI covers account-scoped operations.
type AccountAPI interface {
	AccountInfo(ctx context.Context) (*Account, error)
	Email(ctx context.Context) (string, error)
	CurrentGameID(ctx context.Context) (string, error)
	Username() string
}

// GameAPI covers game-scoped operations.
type GameAPI interface {
	MakeMove(ctx context.Context, gameID, move string, offerDraw bool) error
	Abort(ctx context.Context, gameID string) error
	Resign(ctx context.Context, gameID string) error
	Chat(ctx context.Context, gameID string) ([]ChatMessage, error)
	IsStreaming(ctx context.Context, gameID string) (bool, error)
}

// ChallengeAPI covers the challenge lifecycle.
type ChallengeAPI interface {
	List(ctx context.Context) (in, out []Challenge, err error)
	ChallengeUser(ctx context.Context, username string, setup *GameSetup, rated, persistent bool, acceptToken, message string) (*Challenge, error)
	ChallengeAI(ctx context.Context, level int, setup *GameSetup) (string, error)
	OpenChallenge(ctx context.Context, rated bool, setup *GameSetup, users []string, name string) (*OpenChallenge, error)
	Accept(ctx context.Context, challengeID string) error
	Decline(ctx context.Context, challengeID, reason string) error
	Cancel(ctx context.Context, challengeID, opponentToken string) error
}

// Ensure the concrete clients implement the interfaces
var (
	_ AccountAPI   = (*AccountClient)(nil)
	_ GameAPI      = (*GameClient)(nil)
	_ ChallengeAPI = (*ChallengeClient)(nil)
)
