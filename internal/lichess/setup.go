package lichess

import (
	"fmt"
	"strings"

	"github.com/corentings/chess/v2"

	"github.com/cootshk/LiChess-Bot/internal/errors"
)

// Color is the side the account asks to play in a challenge.
type Color string

const (
	ColorWhite  Color = "white"
	ColorBlack  Color = "black"
	ColorRandom Color = "random"
)

// Variant is a Lichess variant key.
type Variant string

const (
	VariantStandard      Variant = "standard"
	VariantChess960      Variant = "chess960"
	VariantCrazyhouse    Variant = "crazyhouse"
	VariantAntichess     Variant = "antichess"
	VariantAtomic        Variant = "atomic"
	VariantHorde         Variant = "horde"
	VariantKingOfTheHill Variant = "kingOfTheHill"
	VariantRacingKings   Variant = "racingKings"
	VariantThreeCheck    Variant = "threeCheck"
	VariantFromPosition  Variant = "fromPosition"
)

var variants = map[Variant]bool{
	VariantStandard:      true,
	VariantChess960:      true,
	VariantCrazyhouse:    true,
	VariantAntichess:     true,
	VariantAtomic:        true,
	VariantHorde:         true,
	VariantKingOfTheHill: true,
	VariantRacingKings:   true,
	VariantThreeCheck:    true,
	VariantFromPosition:  true,
}

// Correspondence games allow only these per-move windows.
var correspondenceDays = map[int]bool{1: true, 2: true, 3: true, 5: true, 7: true, 10: true, 14: true}

// TimeControl is a tagged value: either a correspondence window in days
// or a real-time clock in seconds. Only the fields of the active branch
// are meaningful.
type TimeControl struct {
	correspondence bool
	days           int
	initial        int
	increment      int
}

// Correspondence returns a days-per-move time control.
func Correspondence(days int) TimeControl {
	return TimeControl{correspondence: true, days: days}
}

// RealTime returns a live-clock time control with an initial allotment
// and a per-move increment, both in seconds.
func RealTime(initial, increment int) TimeControl {
	return TimeControl{initial: initial, increment: increment}
}

// IsCorrespondence reports which branch of the time control is active.
func (tc TimeControl) IsCorrespondence() bool {
	return tc.correspondence
}

// Days returns the per-move window of a correspondence control.
func (tc TimeControl) Days() int {
	return tc.days
}

// Clock returns the initial and increment seconds of a real-time control.
func (tc TimeControl) Clock() (initial, increment int) {
	return tc.initial, tc.increment
}

func (tc TimeControl) String() string {
	if tc.correspondence {
		return fmt.Sprintf("%dd", tc.days)
	}
	return fmt.Sprintf("%d+%d", tc.initial, tc.increment)
}

// GameRules holds the four end-of-game permissions a challenge may
// revoke from its game.
type GameRules struct {
	NoAbort    bool
	NoRematch  bool
	NoGiveTime bool
	NoClaimWin bool
}

// Token encodes the enabled rules as the server's comma-joined list, in
// fixed order with no empty tokens. All-false rules yield "".
func (r GameRules) Token() string {
	var enabled []string
	if r.NoAbort {
		enabled = append(enabled, "noAbort")
	}
	if r.NoRematch {
		enabled = append(enabled, "noRematch")
	}
	if r.NoGiveTime {
		enabled = append(enabled, "noGiveTime")
	}
	if r.NoClaimWin {
		enabled = append(enabled, "noClaimWin")
	}
	return strings.Join(enabled, ",")
}

// GameSetup is a validated, immutable description of a desired game.
// Construct one with NewGameSetup; the zero value is not usable.
type GameSetup struct {
	color   Color
	variant Variant
	fen     string
	control TimeControl
	rules   GameRules
}

// NewGameSetup validates and builds a GameSetup. Every out-of-range
// argument fails here with INVALID_CONFIGURATION, before any request
// is ever built from the setup.
func NewGameSetup(color Color, variant Variant, fen string, control TimeControl, rules GameRules) (*GameSetup, error) {
	switch color {
	case ColorWhite, ColorBlack, ColorRandom:
	default:
		return nil, errors.NewInvalidConfigurationError("color", fmt.Sprintf("%q is not white, black or random", color))
	}

	if !variants[variant] {
		return nil, errors.NewInvalidConfigurationError("variant", fmt.Sprintf("%q is not a known variant", variant))
	}

	if control.IsCorrespondence() {
		if !correspondenceDays[control.Days()] {
			return nil, errors.NewInvalidConfigurationError("days", fmt.Sprintf("%d is not one of 1, 2, 3, 5, 7, 10, 14", control.Days()))
		}
	} else {
		initial, increment := control.Clock()
		if initial < 1 || initial > 10800 {
			return nil, errors.NewInvalidConfigurationError("initial seconds", fmt.Sprintf("%d is outside [1, 10800]", initial))
		}
		if increment < 0 || increment > 60 {
			return nil, errors.NewInvalidConfigurationError("increment seconds", fmt.Sprintf("%d is outside [0, 60]", increment))
		}
	}

	// Variant positions (crazyhouse pockets, 960 castling rights) do not
	// parse with the standard FEN reader, so only standard-rules FENs are
	// checked locally. The server validates the rest.
	if fen != "" && (variant == VariantStandard || variant == VariantFromPosition) {
		if _, err := chess.FEN(fen); err != nil {
			return nil, errors.NewInvalidConfigurationError("fen", err.Error())
		}
	}

	return &GameSetup{
		color:   color,
		variant: variant,
		fen:     fen,
		control: control,
		rules:   rules,
	}, nil
}

// DefaultGameSetup returns a fresh setup matching the server defaults:
// random color, standard variant, seven-day correspondence, no rules
// revoked. A new value is built per call so no caller ever shares one.
func DefaultGameSetup() *GameSetup {
	setup, err := NewGameSetup(ColorRandom, VariantStandard, "", Correspondence(7), GameRules{})
	if err != nil {
		// The arguments above are all in range.
		panic(err)
	}
	return setup
}

// Color returns the requested side.
func (s *GameSetup) Color() Color {
	return s.color
}

// Position returns the variant and starting position of the setup. The
// FEN is empty for the variant's usual initial position.
func (s *GameSetup) Position() (Variant, string) {
	return s.variant, s.fen
}

// TimeControl returns the setup's time control.
func (s *GameSetup) TimeControl() TimeControl {
	return s.control
}

// RulesToken returns the comma-joined end-rule list for request bodies.
func (s *GameSetup) RulesToken() string {
	return s.rules.Token()
}
