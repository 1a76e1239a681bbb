package lichess

// Account is the authenticated account's public information, as
// returned by GET /api/account. Only the fields the bot acts on are
// mapped; the raw payload carries much more.
type Account struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Title    string `json:"title"`
	Online   bool   `json:"online"`
	// Playing is the URL of the game currently in progress, e.g.
	// "https://lichess.org/abcd1234/white". Empty when idle.
	Playing string `json:"playing"`
}

// IsBot reports whether the account carries the BOT title.
func (a *Account) IsBot() bool {
	return a.Title == "BOT"
}

// ChallengePlayer identifies one side of a challenge.
type ChallengePlayer struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Title  string `json:"title"`
	Rating int    `json:"rating"`
	Online bool   `json:"online"`
}

// ChallengeClock describes a challenge's time control as the server
// reports it.
type ChallengeClock struct {
	Type        string `json:"type"` // "clock", "correspondence" or "unlimited"
	Limit       int    `json:"limit"`
	Increment   int    `json:"increment"`
	DaysPerTurn int    `json:"daysPerTurn"`
	Show        string `json:"show"`
}

// ChallengeVariant is the variant block of a challenge payload.
type ChallengeVariant struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Short string `json:"short"`
}

// Challenge is a proposal to start a game, incoming or outgoing
// relative to the account.
type Challenge struct {
	ID            string           `json:"id"`
	URL           string           `json:"url"`
	Status        string           `json:"status"` // created, accepted, declined, canceled, offline
	Challenger    ChallengePlayer  `json:"challenger"`
	DestUser      ChallengePlayer  `json:"destUser"`
	Variant       ChallengeVariant `json:"variant"`
	Rated         bool             `json:"rated"`
	Speed         string           `json:"speed"`
	TimeControl   ChallengeClock   `json:"timeControl"`
	Color         string           `json:"color"`
	Direction     string           `json:"direction"` // "in" or "out"
	DeclineReason string           `json:"declineReason"`
}

// OpenChallenge is the payload returned when creating an open
// challenge: a shared id plus per-color join URLs.
type OpenChallenge struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	URLWhite string `json:"urlWhite"`
	URLBlack string `json:"urlBlack"`
	Status   string `json:"status"`
	Rated    bool   `json:"rated"`
}

// ChatMessage is one line of a game's chat transcript, in order.
type ChatMessage struct {
	Text string `json:"text"`
	User string `json:"user"`
	Room string `json:"room"` // "player" or "spectator"
}
