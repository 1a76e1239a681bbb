package lichess_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cootshk/LiChess-Bot/internal/errors"
	"github.com/cootshk/LiChess-Bot/internal/lichess"
)

func TestNewGameSetup_CorrespondenceDays(t *testing.T) {
	for _, days := range []int{1, 2, 3, 5, 7, 10, 14} {
		setup, err := lichess.NewGameSetup(lichess.ColorRandom, lichess.VariantStandard, "", lichess.Correspondence(days), lichess.GameRules{})
		require.NoError(t, err, "days=%d", days)

		control := setup.TimeControl()
		assert.True(t, control.IsCorrespondence())
		assert.Equal(t, days, control.Days())

		initial, increment := control.Clock()
		assert.Zero(t, initial)
		assert.Zero(t, increment)
	}

	for _, days := range []int{0, 4, 6, 15, -1} {
		_, err := lichess.NewGameSetup(lichess.ColorRandom, lichess.VariantStandard, "", lichess.Correspondence(days), lichess.GameRules{})
		require.Error(t, err, "days=%d", days)
		assert.Equal(t, errors.ErrCodeInvalidConfiguration, errors.CodeOf(err))
	}
}

func TestNewGameSetup_RealTimeBounds(t *testing.T) {
	tests := []struct {
		name      string
		initial   int
		increment int
		wantErr   bool
	}{
		{name: "minimum clock", initial: 1, increment: 0},
		{name: "maximum clock", initial: 10800, increment: 60},
		{name: "blitz", initial: 180, increment: 2},
		{name: "zero initial", initial: 0, increment: 0, wantErr: true},
		{name: "initial too large", initial: 10801, increment: 0, wantErr: true},
		{name: "negative increment", initial: 60, increment: -1, wantErr: true},
		{name: "increment too large", initial: 60, increment: 61, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup, err := lichess.NewGameSetup(lichess.ColorWhite, lichess.VariantStandard, "", lichess.RealTime(tt.initial, tt.increment), lichess.GameRules{})
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errors.ErrCodeInvalidConfiguration, errors.CodeOf(err))
				return
			}
			require.NoError(t, err)

			control := setup.TimeControl()
			assert.False(t, control.IsCorrespondence())
			initial, increment := control.Clock()
			assert.Equal(t, tt.initial, initial)
			assert.Equal(t, tt.increment, increment)
		})
	}
}

func TestNewGameSetup_ColorAndVariant(t *testing.T) {
	_, err := lichess.NewGameSetup("green", lichess.VariantStandard, "", lichess.Correspondence(7), lichess.GameRules{})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidConfiguration, errors.CodeOf(err))

	_, err = lichess.NewGameSetup(lichess.ColorWhite, "fischerRandom", "", lichess.Correspondence(7), lichess.GameRules{})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidConfiguration, errors.CodeOf(err))

	for _, variant := range []lichess.Variant{
		lichess.VariantStandard, lichess.VariantChess960, lichess.VariantCrazyhouse,
		lichess.VariantAntichess, lichess.VariantAtomic, lichess.VariantHorde,
		lichess.VariantKingOfTheHill, lichess.VariantRacingKings,
		lichess.VariantThreeCheck, lichess.VariantFromPosition,
	} {
		_, err := lichess.NewGameSetup(lichess.ColorBlack, variant, "", lichess.Correspondence(7), lichess.GameRules{})
		assert.NoError(t, err, "variant=%s", variant)
	}
}

func TestNewGameSetup_FEN(t *testing.T) {
	const ruyLopez = "r1bqkbnr/pppp1ppp/2n5/1B2p3/4P3/5N2/PPPP1PPP/RNBQK2R b KQkq - 3 3"

	setup, err := lichess.NewGameSetup(lichess.ColorWhite, lichess.VariantFromPosition, ruyLopez, lichess.RealTime(300, 3), lichess.GameRules{})
	require.NoError(t, err)

	variant, fen := setup.Position()
	assert.Equal(t, lichess.VariantFromPosition, variant)
	assert.Equal(t, ruyLopez, fen)

	_, err = lichess.NewGameSetup(lichess.ColorWhite, lichess.VariantFromPosition, "not a position", lichess.RealTime(300, 3), lichess.GameRules{})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidConfiguration, errors.CodeOf(err))
}

func TestGameRules_Token(t *testing.T) {
	tests := []struct {
		name  string
		rules lichess.GameRules
		want  string
	}{
		{
			name:  "none",
			rules: lichess.GameRules{},
			want:  "",
		},
		{
			name:  "all",
			rules: lichess.GameRules{NoAbort: true, NoRematch: true, NoGiveTime: true, NoClaimWin: true},
			want:  "noAbort,noRematch,noGiveTime,noClaimWin",
		},
		{
			name:  "alternating",
			rules: lichess.GameRules{NoAbort: true, NoGiveTime: true},
			want:  "noAbort,noGiveTime",
		},
		{
			name:  "single last",
			rules: lichess.GameRules{NoClaimWin: true},
			want:  "noClaimWin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rules.Token())

			setup, err := lichess.NewGameSetup(lichess.ColorRandom, lichess.VariantStandard, "", lichess.Correspondence(7), tt.rules)
			require.NoError(t, err)
			assert.Equal(t, tt.want, setup.RulesToken())
		})
	}
}

func TestDefaultGameSetup(t *testing.T) {
	setup := lichess.DefaultGameSetup()

	assert.Equal(t, lichess.ColorRandom, setup.Color())
	variant, fen := setup.Position()
	assert.Equal(t, lichess.VariantStandard, variant)
	assert.Empty(t, fen)
	assert.True(t, setup.TimeControl().IsCorrespondence())
	assert.Equal(t, 7, setup.TimeControl().Days())

	// Each call builds a fresh value; no caller shares a default.
	assert.NotSame(t, setup, lichess.DefaultGameSetup())
}

func TestTimeControl_String(t *testing.T) {
	assert.Equal(t, "7d", lichess.Correspondence(7).String())
	assert.Equal(t, "180+2", lichess.RealTime(180, 2).String())
}
