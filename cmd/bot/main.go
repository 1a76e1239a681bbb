package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cootshk/LiChess-Bot/internal/config"
	"github.com/cootshk/LiChess-Bot/internal/db"
	"github.com/cootshk/LiChess-Bot/internal/errors"
	"github.com/cootshk/LiChess-Bot/internal/keystore"
	"github.com/cootshk/LiChess-Bot/internal/lichess"
	"github.com/cootshk/LiChess-Bot/internal/logger"
	"github.com/cootshk/LiChess-Bot/internal/models"
	"github.com/cootshk/LiChess-Bot/internal/repository/sqlite"
	"github.com/cootshk/LiChess-Bot/internal/services"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("LiChess Bot Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("endpoint=%s", cfg.Endpoint)
	log.Debug("keystore_path=%s", cfg.KeystorePath)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("http_timeout_seconds=%d", cfg.HTTPTimeoutSeconds)

	// Load credentials, prompting on first run
	token, err := loadToken(cfg.KeystorePath)
	if err != nil {
		log.Error("failed to load credentials: %v", err)
		os.Exit(1)
	}

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Authenticate and upgrade the account; a bad token stops here.
	account, err := lichess.NewAccountClient(ctx, token, cfg.Endpoint,
		lichess.WithTimeout(time.Duration(cfg.HTTPTimeoutSeconds)*time.Second),
	)
	if err != nil {
		log.Error("failed to initialize lichess client: %v", err)
		os.Exit(1)
	}

	challengeClient := lichess.NewChallengeClient(account)
	gameClient := lichess.NewGameClient(account)

	recordRepo := sqlite.NewChallengeRecordRepository(database.DB)
	playService := services.NewPlayService(challengeClient, recordRepo)

	log.Info("logged in as %s", account.Username())

	if gameID, err := account.CurrentGameID(ctx); err != nil {
		if errors.CodeOf(err) != errors.ErrCodeNoActiveGame {
			log.Warn("failed to resolve current game: %v", err)
		}
	} else {
		streaming, err := gameClient.IsStreaming(ctx, gameID)
		if err != nil {
			log.Warn("stream probe for %s failed: %v", gameID, err)
		}
		log.Info("game in progress: %s (streaming=%t)", gameID, streaming)
	}

	if in, out, err := challengeClient.List(ctx); err != nil {
		log.Warn("failed to list challenges: %v", err)
	} else {
		log.Info("challenges pending: %d incoming, %d outgoing", len(in), len(out))
	}

	if _, total, err := playService.History(ctx, models.ChallengeRecordFilter{}); err != nil {
		log.Warn("failed to read challenge history: %v", err)
	} else {
		log.Info("recorded challenges: %d", total)
	}

	// Wait for shutdown signal. The front end driving games and
	// challenges hangs off the clients built above.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, shutting down", sig)
	cancel()

	log.Info("===========================================")
	log.Info("LiChess Bot Stopped")
	log.Info("===========================================")
}

// loadToken reads the bot token from the keystore, asking for it on
// stdin and persisting it when the file does not have one yet.
func loadToken(path string) (string, error) {
	ks, err := keystore.Load(path)
	if err != nil {
		return "", err
	}
	if token, ok := ks.Token(keystore.ServiceLichess); ok {
		return token, nil
	}

	fmt.Print("Enter your lichess token: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	token := strings.TrimSpace(line)
	if token == "" {
		return "", fmt.Errorf("no token provided")
	}

	ks.SetToken(keystore.ServiceLichess, token)
	if err := ks.Save(); err != nil {
		return "", err
	}
	return token, nil
}
