// Package ledger keeps the best score per game type in a single JSON record.
//
// The public surface never fails: HighScore reads as 0 and RecordScore skips
// the write when storage is missing, unreadable or corrupt. Load and Save
// return typed errors so callers that care can tell "no score yet" from
// "storage broken".
package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/AbdelPr0/terminal-arcade/internal/logging"
)

var (
	// ErrUnavailable means the record could not be read or written.
	ErrUnavailable = errors.New("ledger: storage unavailable")
	// ErrCorrupt means the record exists but does not decode.
	ErrCorrupt = errors.New("ledger: record corrupt")
)

// Scores maps a game type to its best score.
type Scores map[string]int

// Backend stores the raw record. Read returns an error wrapping
// fs.ErrNotExist when nothing has been stored yet.
type Backend interface {
	Read() ([]byte, error)
	Write(data []byte) error
}

// Ledger reconciles session scores with the persisted best.
// It is safe for concurrent use.
type Ledger struct {
	mu      sync.Mutex
	backend Backend
	logger  *log.Logger
}

// New creates a ledger over a backend. A nil logger discards output.
func New(backend Backend, logger *log.Logger) *Ledger {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Ledger{backend: backend, logger: logger}
}

// Load reads the whole record. A record that was never written loads as
// empty without error.
func (l *Ledger) Load() (Scores, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load()
}

func (l *Ledger) load() (Scores, error) {
	data, err := l.backend.Read()
	if errors.Is(err, fs.ErrNotExist) {
		return Scores{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	scores := Scores{}
	if err := json.Unmarshal(data, &scores); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if scores == nil { // "null"
		scores = Scores{}
	}
	for game, v := range scores {
		if v < 0 {
			return nil, fmt.Errorf("%w: negative score %d for %q", ErrCorrupt, v, game)
		}
	}
	return scores, nil
}

// Save replaces the whole record.
func (l *Ledger) Save(scores Scores) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.save(scores)
}

func (l *Ledger) save(scores Scores) error {
	data, err := json.Marshal(scores)
	if err != nil {
		return fmt.Errorf("ledger: encode: %w", err)
	}
	if err := l.backend.Write(data); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

// Best returns the stored best for a game type, 0 when absent.
func (l *Ledger) Best(game string) (int, error) {
	scores, err := l.Load()
	if err != nil {
		return 0, err
	}
	return scores[game], nil
}

// Record stores score if it beats the stored best and reports whether it
// did. A corrupt record is left alone rather than overwritten.
func (l *Ledger) Record(game string, score int) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	scores, err := l.load()
	if err != nil {
		return false, err
	}
	if score <= scores[game] {
		return false, nil
	}
	scores[game] = score
	if err := l.save(scores); err != nil {
		return false, err
	}
	return true, nil
}

// HighScore returns the stored best for a game type. Storage failures read
// as 0.
func (l *Ledger) HighScore(game string) int {
	best, err := l.Best(game)
	if err != nil {
		l.logger.Debug("high score unavailable", "game", game, "err", err)
		return 0
	}
	return best
}

// RecordScore stores score if it beats the stored best. Storage failures
// are logged and otherwise ignored.
func (l *Ledger) RecordScore(game string, score int) bool {
	saved, err := l.Record(game, score)
	if err != nil {
		l.logger.Debug("high score not recorded", "game", game, "score", score, "err", err)
		return false
	}
	if saved {
		l.logger.Debug("new high score", "game", game, "score", score)
	}
	return saved
}

// All returns every stored best. Storage failures read as an empty set.
func (l *Ledger) All() Scores {
	scores, err := l.Load()
	if err != nil {
		l.logger.Debug("high scores unavailable", "err", err)
		return Scores{}
	}
	return scores
}
