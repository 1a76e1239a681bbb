package lichess

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/cootshk/LiChess-Bot/internal/errors"
	"github.com/cootshk/LiChess-Bot/internal/logger"
)

// GameClient drives a single game to completion: moves, draw offers,
// abort and resignation. It borrows the account client's credentials
// and holds no state of its own, so it is safe for concurrent use.
//
// Retrieving full board state is deliberately absent; the board arrives
// over the long-lived game stream, which is a separate transport.
type GameClient struct {
	account *AccountClient
	log     *logger.Logger
}

// NewGameClient creates a GameClient on top of an account client.
func NewGameClient(account *AccountClient) *GameClient {
	return &GameClient{
		account: account,
		log:     logger.Default().WithPrefix("game"),
	}
}

// MakeMove submits a move in UCI form (e.g. "e2e4"). offerDraw both
// proposes a draw and accepts a pending one. Move legality is the
// server's business: an illegal move comes back as BAD_REQUEST with
// the server's reason.
func (c *GameClient) MakeMove(ctx context.Context, gameID, move string, offerDraw bool) error {
	params := url.Values{}
	params.Set("offeringDraw", fmt.Sprintf("%t", offerDraw))

	path := fmt.Sprintf("/api/bot/%s/move/%s", gameID, move)
	if _, err := c.account.do(ctx, http.MethodPost, path, params); err != nil {
		return err
	}
	c.log.Debug("played %s in game %s (draw offer: %t)", move, gameID, offerDraw)
	return nil
}

// Abort aborts a game that has not really started yet. Past the
// abortable window the server answers BAD_REQUEST.
func (c *GameClient) Abort(ctx context.Context, gameID string) error {
	path := fmt.Sprintf("/api/bot/%s/abort", gameID)
	if _, err := c.account.do(ctx, http.MethodPost, path, nil); err != nil {
		return err
	}
	c.log.Info("aborted game %s", gameID)
	return nil
}

// Resign resigns a game. A game that already ended answers BAD_REQUEST.
func (c *GameClient) Resign(ctx context.Context, gameID string) error {
	path := fmt.Sprintf("/api/bot/game/%s/resign", gameID)
	if _, err := c.account.do(ctx, http.MethodPost, path, nil); err != nil {
		return err
	}
	c.log.Info("resigned game %s", gameID)
	return nil
}

// Chat fetches the game's chat transcript as an ordered message list.
func (c *GameClient) Chat(ctx context.Context, gameID string) ([]ChatMessage, error) {
	path := fmt.Sprintf("/api/bot/%s/chat", gameID)
	body, err := c.account.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var messages []ChatMessage
	if err := json.Unmarshal(body, &messages); err != nil {
		return nil, errors.NewAPIError(200, fmt.Sprintf("decode chat: %v", err))
	}
	return messages, nil
}

// IsStreaming probes whether the board-state stream for the game is
// available. With an empty gameID the account's current game is probed.
// A missing game reports false rather than an error; everything else
// propagates classified.
func (c *GameClient) IsStreaming(ctx context.Context, gameID string) (bool, error) {
	if gameID == "" {
		var err error
		gameID, err = c.account.CurrentGameID(ctx)
		if err != nil {
			return false, err
		}
	}
	err := c.account.probe(ctx, fmt.Sprintf("/api/bot/game/stream/%s", gameID))
	if err != nil {
		if errors.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
