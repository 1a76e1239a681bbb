package lichess_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cootshk/LiChess-Bot/internal/errors"
	"github.com/cootshk/LiChess-Bot/internal/lichess"
	"github.com/cootshk/LiChess-Bot/internal/testutil"
)

func newAccountClient(t *testing.T, f *testutil.FakeLichess) *lichess.AccountClient {
	t.Helper()
	client, err := lichess.NewAccountClient(context.Background(), "lip_token", f.URL(), lichess.WithHTTPClient(f.Client()))
	require.NoError(t, err)
	return client
}

func TestNewAccountClient_Succeeds(t *testing.T) {
	f := testutil.NewFakeLichess(t)
	client := newAccountClient(t, f)

	assert.Equal(t, "testbot", client.Username())

	// Construction validates the token and upgrades the account.
	requests := f.Requests()
	require.Len(t, requests, 2)
	assert.Equal(t, "/api/account", requests[0].Path)
	assert.Equal(t, http.MethodPost, requests[1].Method)
	assert.Equal(t, "/api/bot/account/upgrade", requests[1].Path)
}

func TestNewAccountClient_RejectsInsecureEndpoint(t *testing.T) {
	for _, endpoint := range []string{"http://lichess.org", "ftp://lichess.org", "lichess.org", "https://"} {
		_, err := lichess.NewAccountClient(context.Background(), "lip_token", endpoint)
		require.Error(t, err, "endpoint=%q", endpoint)
		assert.Equal(t, errors.ErrCodeInvalidEndpoint, errors.CodeOf(err), "endpoint=%q", endpoint)
	}
}

func TestNewAccountClient_InvalidToken(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := lichess.NewAccountClient(context.Background(), "bad", server.URL, lichess.WithHTTPClient(server.Client()))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidToken, errors.CodeOf(err))
}

func TestNewAccountClient_RateLimited(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := lichess.NewAccountClient(context.Background(), "lip_token", server.URL, lichess.WithHTTPClient(server.Client()))
	require.Error(t, err)
	assert.True(t, errors.IsRateLimited(err))
}

func TestNewAccountClient_UpgradeFailure(t *testing.T) {
	f := testutil.NewFakeLichess(t)
	f.SetUpgradeResponse(http.StatusUnauthorized, "")

	_, err := lichess.NewAccountClient(context.Background(), "lip_token", f.URL(), lichess.WithHTTPClient(f.Client()))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeNotABotToken, errors.CodeOf(err))
}

func TestNewAccountClient_AlreadyABot(t *testing.T) {
	f := testutil.NewFakeLichess(t)
	f.SetUpgradeResponse(http.StatusBadRequest, "This account is already a bot")

	// The one 400 the endpoint returns means the title is already BOT.
	_, err := lichess.NewAccountClient(context.Background(), "lip_token", f.URL(), lichess.WithHTTPClient(f.Client()))
	assert.NoError(t, err)
}

func TestAccountInfo(t *testing.T) {
	f := testutil.NewFakeLichess(t)
	client := newAccountClient(t, f)

	account, err := client.AccountInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "testbot", account.Username)
	assert.True(t, account.IsBot())
}

func TestEmail(t *testing.T) {
	f := testutil.NewFakeLichess(t)
	f.Handle(http.MethodGet, "/api/account/email", func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteJSON(w, http.StatusOK, map[string]string{"email": "bot@example.com"})
	})
	client := newAccountClient(t, f)

	email, err := client.Email(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "bot@example.com", email)
}

func TestCurrentGameID(t *testing.T) {
	f := testutil.NewFakeLichess(t)
	client := newAccountClient(t, f)

	// Idle account
	_, err := client.CurrentGameID(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeNoActiveGame, errors.CodeOf(err))

	// The playing URL carries the endpoint prefix and a color suffix;
	// both are stripped.
	f.SetPlaying("q7ZvsdUF", "white")
	id, err := client.CurrentGameID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "q7ZvsdUF", id)

	f.SetPlaying("aB3dEfGh", "black")
	id, err = client.CurrentGameID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "aB3dEfGh", id)
}
