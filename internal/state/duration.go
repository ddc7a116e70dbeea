package state

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Adjust directions accepted by AdjustDuration.
const (
	AdjustUp   = "up"
	AdjustDown = "down"
)

// Duration returns the preferred pause length in minutes and its index in
// the ladder. A missing or corrupt preference file yields the default;
// out-of-range stored values are clamped, not rejected.
func (s *Store) Duration() (minutes, index int) {
	index = s.DefaultIndex

	data, err := os.ReadFile(s.durationPath())
	if err == nil {
		if parsed, perr := strconv.Atoi(strings.TrimSpace(string(data))); perr == nil {
			index = parsed
		}
	}

	index = s.clampIndex(index)
	return s.Durations[index], index
}

// SetDurationIndex persists a clamped ladder index and returns the minute
// value it selects.
func (s *Store) SetDurationIndex(index int) (int, error) {
	index = s.clampIndex(index)
	if err := os.WriteFile(s.durationPath(), []byte(strconv.Itoa(index)+"\n"), 0o644); err != nil {
		return 0, err
	}
	return s.Durations[index], nil
}

// AdjustDuration moves the preference one step up or down the ladder,
// clamped at the ends (no wraparound). The changed result lets callers
// suppress redundant UI churn at the boundaries.
func (s *Store) AdjustDuration(direction string) (minutes int, changed bool, err error) {
	before, index := s.Duration()

	switch direction {
	case AdjustUp:
		index++
	case AdjustDown:
		index--
	default:
		return before, false, fmt.Errorf("unknown adjust direction: %q", direction)
	}

	minutes, err = s.SetDurationIndex(index)
	if err != nil {
		return before, false, err
	}
	return minutes, minutes != before, nil
}

func (s *Store) clampIndex(index int) int {
	if index < 0 {
		return 0
	}
	if index >= len(s.Durations) {
		return len(s.Durations) - 1
	}
	return index
}
