// Package state persists the pause record and the duration preference.
//
// Both live as single-value flat files in a shared temp directory. There is
// no locking: every operation reads or writes one whole file, and readers
// treat unparsable or stale content as absence. Concurrent invocations of
// the CLI interleave safely under those rules.
package state

import (
	"os"
	"path/filepath"
	"time"

	"github.com/asheshgoplani/tailbar/internal/config"
	"github.com/asheshgoplani/tailbar/internal/logging"
)

var storeLog = logging.ForComponent(logging.CompStore)

const (
	// PauseFileName holds one RFC 3339 timestamp: the pause expiry.
	PauseFileName = "tailscale_pause_state"

	// DurationFileName holds one small integer: the duration ladder index.
	DurationFileName = "tailscale_pause_duration"
)

// Store is the file-backed session state. First access creates the files;
// any invocation may mutate or delete them.
type Store struct {
	Dir          string
	Durations    []int
	DefaultIndex int

	now func() time.Time
}

// NewStore builds a Store from pause settings. An empty StateDir falls back
// to the system temp directory, matching where the status bar, click
// handlers, and the detached resume timer all expect to find the files.
func NewStore(cfg config.PauseSettings) *Store {
	dir := cfg.StateDir
	if dir == "" {
		dir = os.TempDir()
	}
	durations := cfg.Durations
	if len(durations) == 0 {
		durations = config.DefaultDurations
	}
	idx := cfg.DefaultIndex
	if idx < 0 || idx >= len(durations) {
		idx = 0
	}
	return &Store{
		Dir:          dir,
		Durations:    durations,
		DefaultIndex: idx,
		now:          time.Now,
	}
}

func (s *Store) pausePath() string {
	return filepath.Join(s.Dir, PauseFileName)
}

func (s *Store) durationPath() string {
	return filepath.Join(s.Dir, DurationFileName)
}
