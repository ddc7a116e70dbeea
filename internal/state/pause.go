package state

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

// PauseUntil reads the pause record. It reports the stored expiry and true
// only for a live pause. Corrupt or lapsed records are deleted on read:
// the file either holds a valid future timestamp or does not exist.
func (s *Store) PauseUntil() (time.Time, bool) {
	data, err := os.ReadFile(s.pausePath())
	if err != nil {
		return time.Time{}, false
	}

	until, err := time.Parse(time.RFC3339, strings.TrimSpace(string(data)))
	if err != nil {
		storeLog.Warn("pause_record_corrupt", slog.String("error", err.Error()))
		_ = os.Remove(s.pausePath())
		return time.Time{}, false
	}

	if !s.now().Before(until) {
		// Lazy expiry: reporting never needs a background sweep.
		_ = os.Remove(s.pausePath())
		return time.Time{}, false
	}
	return until, true
}

// PeekPause reads the pause record without expiring it: an already-lapsed
// expiry is still returned so the caller can act on it. Only corrupt
// records are deleted. The auto-resume timer relies on this to tell a
// missing record apart from one whose deadline has passed.
func (s *Store) PeekPause() (time.Time, bool) {
	data, err := os.ReadFile(s.pausePath())
	if err != nil {
		return time.Time{}, false
	}

	until, err := time.Parse(time.RFC3339, strings.TrimSpace(string(data)))
	if err != nil {
		storeLog.Warn("pause_record_corrupt", slog.String("error", err.Error()))
		_ = os.Remove(s.pausePath())
		return time.Time{}, false
	}
	return until, true
}

// PauseRemaining reports how long the current pause has left, truncated to
// whole seconds for display.
func (s *Store) PauseRemaining() (time.Duration, bool) {
	until, ok := s.PauseUntil()
	if !ok {
		return 0, false
	}
	return until.Sub(s.now()).Truncate(time.Second), true
}

// WritePause records a pause expiring at until. Last writer wins. The
// fractional-second form preserves sub-second precision; readers accept
// either form.
func (s *Store) WritePause(until time.Time) error {
	if err := os.WriteFile(s.pausePath(), []byte(until.Format(time.RFC3339Nano)+"\n"), 0o644); err != nil {
		return err
	}
	storeLog.Info("pause_written", slog.Time("until", until))
	return nil
}

// ConsumeExpiredPause deletes an expired pause record and reports whether
// it did. Only a record whose stored expiry has passed authorizes an
// auto-resume; absent, corrupt, and still-future records all report false.
// A still-future record means a newer pause superseded the one the caller
// was armed for (or the clock moved), and that newer timer is authoritative.
func (s *Store) ConsumeExpiredPause() bool {
	data, err := os.ReadFile(s.pausePath())
	if err != nil {
		return false
	}

	until, err := time.Parse(time.RFC3339, strings.TrimSpace(string(data)))
	if err != nil {
		storeLog.Warn("pause_record_corrupt", slog.String("error", err.Error()))
		_ = os.Remove(s.pausePath())
		return false
	}

	if s.now().Before(until) {
		return false
	}

	_ = os.Remove(s.pausePath())
	storeLog.Info("pause_consumed", slog.Time("until", until))
	return true
}

// ClearPause removes the pause record. Removing an absent record is not an
// error; a concurrent invocation may already have consumed it.
func (s *Store) ClearPause() error {
	err := os.Remove(s.pausePath())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
