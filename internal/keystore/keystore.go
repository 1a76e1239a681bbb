// Package keystore persists API credentials in a small JSON key-value
// file, one entry per service. The lichess clients never touch this
// package; they receive the token as an opaque string at construction.
package keystore

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cootshk/LiChess-Bot/internal/logger"
)

// ServiceLichess is the entry key for the Lichess API token.
const ServiceLichess = "lichess"

// Entry holds the credentials stored for one service.
type Entry struct {
	Token string `json:"token"`
}

// Keystore is an in-memory view of the credential file. It is not safe
// for concurrent mutation; the bootstrap layer loads and saves it on a
// single goroutine.
type Keystore struct {
	path    string
	entries map[string]Entry
}

// Load reads the credential file at path. A missing file yields an
// empty store so first-run bootstrap can fill and save it.
func Load(path string) (*Keystore, error) {
	log := logger.Default().WithPrefix("keystore")

	ks := &Keystore{
		path:    path,
		entries: make(map[string]Entry),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.Debug("no credential file at %s, starting empty", path)
		return ks, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read keystore: %w", err)
	}

	if err := json.Unmarshal(data, &ks.entries); err != nil {
		return nil, fmt.Errorf("parse keystore %s: %w", path, err)
	}
	log.Debug("loaded %d credential entries from %s", len(ks.entries), path)
	return ks, nil
}

// Token returns the stored token for a service.
func (k *Keystore) Token(service string) (string, bool) {
	entry, ok := k.entries[service]
	if !ok || entry.Token == "" {
		return "", false
	}
	return entry.Token, true
}

// SetToken stores a token for a service. Call Save to persist it.
func (k *Keystore) SetToken(service, token string) {
	k.entries[service] = Entry{Token: token}
}

// Save writes the store back to its file, readable by the owner only
// since it holds bearer tokens.
func (k *Keystore) Save() error {
	data, err := json.MarshalIndent(k.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode keystore: %w", err)
	}
	if err := os.WriteFile(k.path, data, 0o600); err != nil {
		return fmt.Errorf("write keystore: %w", err)
	}
	logger.Default().WithPrefix("keystore").Debug("saved %s", k.path)
	return nil
}
