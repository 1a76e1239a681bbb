package lichess

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/cootshk/LiChess-Bot/internal/errors"
	"github.com/cootshk/LiChess-Bot/internal/logger"
)

// DefaultChallengeMessage is sent with a direct challenge when the
// caller supplies no message or no accept token. The server substitutes
// the placeholders, not this client.
const DefaultChallengeMessage = "Your game with {opponent} is ready: {game}."

// DeclineReasons is the closed set of decline codes the server
// recognizes. Anything else fails locally.
var DeclineReasons = map[string]bool{
	"registerToSendChallenges":               true,
	"youCannotChallengeX":                    true,
	"xDoesNotAcceptChallenges":               true,
	"yourXRatingIsTooFarFromY":               true,
	"cannotChallengeDueToProvisionalXRating": true,
	"xOnlyAcceptsChallengesFromFriends":      true,
	"declineGeneric":                         true,
	"declineLater":                           true,
	"declineTooFast":                         true,
	"declineTooSlow":                         true,
	"declineTimeControl":                     true,
	"declineRated":                           true,
	"declineCasual":                          true,
	"declineStandard":                        true,
	"declineVariant":                         true,
	"declineNoBot":                           true,
	"declineOnlyBot":                         true,
}

// ChallengeClient manages the challenge lifecycle: listing, creating
// direct, AI and open challenges, and answering incoming ones. It
// borrows the account client's credentials and is safe for concurrent
// use.
type ChallengeClient struct {
	account *AccountClient
	log     *logger.Logger
}

// NewChallengeClient creates a ChallengeClient on top of an account client.
func NewChallengeClient(account *AccountClient) *ChallengeClient {
	return &ChallengeClient{
		account: account,
		log:     logger.Default().WithPrefix("challenge"),
	}
}

// List returns the pending challenges, incoming and outgoing.
func (c *ChallengeClient) List(ctx context.Context) (in, out []Challenge, err error) {
	body, err := c.account.do(ctx, http.MethodGet, "/api/challenge", nil)
	if err != nil {
		return nil, nil, err
	}
	var payload struct {
		In  []Challenge `json:"in"`
		Out []Challenge `json:"out"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, nil, errors.NewAPIError(200, fmt.Sprintf("decode challenges: %v", err))
	}
	return payload.In, payload.Out, nil
}

// ChallengeUser challenges a named player with the given setup. When
// persistent is set the challenge survives the caller disconnecting.
// acceptToken lets the server auto-accept on behalf of the opponent;
// message accompanies it and falls back to DefaultChallengeMessage when
// either is unset.
func (c *ChallengeClient) ChallengeUser(ctx context.Context, username string, setup *GameSetup, rated, persistent bool, acceptToken, message string) (*Challenge, error) {
	if acceptToken == "" || message == "" {
		message = DefaultChallengeMessage
	}

	params := setupParams(setup)
	params.Set("rated", strconv.FormatBool(rated))
	params.Set("keepAliveStream", strconv.FormatBool(persistent))
	params.Set("message", message)
	if acceptToken != "" {
		params.Set("acceptByToken", acceptToken)
	}

	body, err := c.account.do(ctx, http.MethodPost, "/api/challenge/"+username, params)
	if err != nil {
		return nil, err
	}
	challenge, err := decodeChallenge(body)
	if err != nil {
		return nil, err
	}
	c.log.Info("challenged %s: id=%s", username, challenge.ID)
	return challenge, nil
}

// ChallengeAI starts a game against the server AI at the given strength
// level and returns the new game's id. The level must be within [1, 8];
// anything else fails before a request is built.
func (c *ChallengeClient) ChallengeAI(ctx context.Context, level int, setup *GameSetup) (string, error) {
	if level < 1 || level > 8 {
		return "", errors.NewInvalidConfigurationError("level", fmt.Sprintf("%d is outside [1, 8]", level))
	}

	params := setupParams(setup)
	params.Set("level", strconv.Itoa(level))

	body, err := c.account.do(ctx, http.MethodPost, "/api/challenge/ai", params)
	if err != nil {
		return "", err
	}
	var game struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &game); err != nil {
		return "", errors.NewAPIError(200, fmt.Sprintf("decode AI game: %v", err))
	}
	c.log.Info("started AI game: id=%s level=%d", game.ID, level)
	return game.ID, nil
}

// OpenChallenge creates a challenge anyone may accept. A non-empty
// users list restricts acceptance to those players. An empty name
// defaults to "Challenge from <account username>".
func (c *ChallengeClient) OpenChallenge(ctx context.Context, rated bool, setup *GameSetup, users []string, name string) (*OpenChallenge, error) {
	if name == "" {
		name = "Challenge from " + c.account.Username()
	}

	params := setupParams(setup)
	params.Del("color") // open challenges assign colors via the join URLs
	params.Set("rated", strconv.FormatBool(rated))
	params.Set("name", name)
	if len(users) > 0 {
		params.Set("users", strings.Join(users, ","))
	}

	body, err := c.account.do(ctx, http.MethodPost, "/api/challenge/open", params)
	if err != nil {
		return nil, err
	}
	var open OpenChallenge
	if err := json.Unmarshal(body, &open); err != nil {
		return nil, errors.NewAPIError(200, fmt.Sprintf("decode open challenge: %v", err))
	}
	c.log.Info("opened challenge: id=%s", open.ID)
	return &open, nil
}

// Accept accepts an incoming challenge.
func (c *ChallengeClient) Accept(ctx context.Context, challengeID string) error {
	path := fmt.Sprintf("/api/challenge/%s/accept", challengeID)
	if _, err := c.account.do(ctx, http.MethodPost, path, nil); err != nil {
		return err
	}
	c.log.Info("accepted challenge %s", challengeID)
	return nil
}

// Decline declines an incoming challenge with a reason code from
// DeclineReasons. An empty reason declines generically; an unknown one
// fails without any network call.
func (c *ChallengeClient) Decline(ctx context.Context, challengeID, reason string) error {
	if reason == "" {
		reason = "declineGeneric"
	}
	if !DeclineReasons[reason] {
		return errors.NewInvalidConfigurationError("reason", fmt.Sprintf("%q is not a recognized decline reason", reason))
	}

	params := url.Values{}
	params.Set("reason", reason)

	path := fmt.Sprintf("/api/challenge/%s/decline", challengeID)
	if _, err := c.account.do(ctx, http.MethodPost, path, params); err != nil {
		return err
	}
	c.log.Info("declined challenge %s (%s)", challengeID, reason)
	return nil
}

// Cancel cancels an outgoing challenge, or an unstarted game when both
// sides agree. opponentToken lets the opponent's side agree in the same
// call; when unset the parameter is omitted entirely, not sent empty.
func (c *ChallengeClient) Cancel(ctx context.Context, challengeID, opponentToken string) error {
	var params url.Values
	if opponentToken != "" {
		params = url.Values{}
		params.Set("opponentToken", opponentToken)
	}

	path := fmt.Sprintf("/api/challenge/%s/cancel", challengeID)
	if _, err := c.account.do(ctx, http.MethodPost, path, params); err != nil {
		return err
	}
	c.log.Info("cancelled challenge %s", challengeID)
	return nil
}

// setupParams encodes a GameSetup as request parameters. Exactly one
// time-control branch is sent: days for correspondence, clock.limit and
// clock.increment for real-time.
func setupParams(setup *GameSetup) url.Values {
	params := url.Values{}

	variant, fen := setup.Position()
	params.Set("variant", string(variant))
	if fen != "" {
		params.Set("fen", fen)
	}
	params.Set("color", string(setup.Color()))
	if rules := setup.RulesToken(); rules != "" {
		params.Set("rules", rules)
	}

	control := setup.TimeControl()
	if control.IsCorrespondence() {
		params.Set("days", strconv.Itoa(control.Days()))
	} else {
		initial, increment := control.Clock()
		params.Set("clock.limit", strconv.Itoa(initial))
		params.Set("clock.increment", strconv.Itoa(increment))
	}
	return params
}

// decodeChallenge handles both shapes the server has used for challenge
// creation responses: the challenge object at the top level and the
// older {"challenge": {...}} wrapper.
func decodeChallenge(body []byte) (*Challenge, error) {
	var wrapper struct {
		Challenge *Challenge `json:"challenge"`
	}
	if err := json.Unmarshal(body, &wrapper); err == nil && wrapper.Challenge != nil {
		return wrapper.Challenge, nil
	}
	var challenge Challenge
	if err := json.Unmarshal(body, &challenge); err != nil {
		return nil, errors.NewAPIError(200, fmt.Sprintf("decode challenge: %v", err))
	}
	return &challenge, nil
}
