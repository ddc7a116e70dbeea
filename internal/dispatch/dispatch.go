// Package dispatch maps click and scroll inputs, plus the currently
// resolved session state, onto agent and store transitions.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/asheshgoplani/tailbar/internal/logging"
	"github.com/asheshgoplani/tailbar/internal/state"
	"github.com/asheshgoplani/tailbar/internal/status"
)

var actionLog = logging.ForComponent(logging.CompAction)

// Click buttons accepted by Click.
const (
	ButtonLeft   = "left"
	ButtonRight  = "right"
	ButtonMiddle = "middle"
)

// AgentActions is the mutating side of the tailscale client.
type AgentActions interface {
	Up(ctx context.Context) error
	Down(ctx context.Context) error
}

// Armer starts the auto-resume timer for a freshly written pause record.
type Armer interface {
	Arm(until time.Time)
}

// Dispatcher executes transitions. Failed actions are not retried; the next
// status resolution simply reflects whatever state resulted.
type Dispatcher struct {
	Agent     AgentActions
	Store     *state.Store
	Scheduler Armer

	// CopyFn writes text to the clipboard, best-effort. Failure is silent.
	CopyFn func(text string) error

	now func() time.Time
}

// New builds a Dispatcher with the real clock.
func New(agent AgentActions, store *state.Store, scheduler Armer, copyFn func(string) error) *Dispatcher {
	return &Dispatcher{
		Agent:     agent,
		Store:     store,
		Scheduler: scheduler,
		CopyFn:    copyFn,
		now:       time.Now,
	}
}

// Click applies one click action against the current session state.
func (d *Dispatcher) Click(ctx context.Context, button string, current status.State) error {
	switch button {
	case ButtonLeft:
		switch current.Kind {
		case status.KindConnected:
			return d.stop(ctx)
		case status.KindPaused:
			// Resume: clear the record so the armed timer no-ops,
			// then reconnect.
			return d.start(ctx)
		default:
			return d.start(ctx)
		}

	case ButtonRight:
		switch current.Kind {
		case status.KindConnected:
			return d.pause(ctx)
		case status.KindPaused:
			return d.stop(ctx)
		default:
			return d.start(ctx)
		}

	case ButtonMiddle:
		d.copyAddress(current)
		return nil

	default:
		return fmt.Errorf("unknown button: %q", button)
	}
}

// Scroll adjusts the pause duration preference. No agent call.
func (d *Dispatcher) Scroll(direction string) (minutes int, changed bool, err error) {
	minutes, changed, err = d.Store.AdjustDuration(direction)
	if err == nil && changed {
		actionLog.Info("duration_adjusted", slog.Int("minutes", minutes))
	}
	return minutes, changed, err
}

// start clears any pause record, then connects.
func (d *Dispatcher) start(ctx context.Context) error {
	if err := d.Store.ClearPause(); err != nil {
		actionLog.Warn("clear_pause_failed", slog.String("error", err.Error()))
	}
	return d.Agent.Up(ctx)
}

// stop clears any pause record, then disconnects.
func (d *Dispatcher) stop(ctx context.Context) error {
	if err := d.Store.ClearPause(); err != nil {
		actionLog.Warn("clear_pause_failed", slog.String("error", err.Error()))
	}
	return d.Agent.Down(ctx)
}

// pause disconnects for the preferred duration. The record is written and
// the timer armed only after the disconnect succeeds; a failed disconnect
// leaves the system in whatever state it produced, with no pause recorded.
func (d *Dispatcher) pause(ctx context.Context) error {
	minutes, _ := d.Store.Duration()

	if err := d.Agent.Down(ctx); err != nil {
		actionLog.Warn("pause_disconnect_failed", slog.String("error", err.Error()))
		return err
	}

	until := d.now().Add(time.Duration(minutes) * time.Minute)
	if err := d.Store.WritePause(until); err != nil {
		return err
	}

	d.Scheduler.Arm(until)
	actionLog.Info("paused", slog.Int("minutes", minutes), slog.Time("until", until))
	return nil
}

// copyAddress puts the machine's tailnet address on the clipboard. Works
// the same in every state; silently does nothing when no address or no
// clipboard backend is available.
func (d *Dispatcher) copyAddress(current status.State) {
	if d.CopyFn == nil || current.TailscaleIP == "" {
		return
	}
	if err := d.CopyFn(current.TailscaleIP); err != nil {
		actionLog.Debug("copy_failed", slog.String("error", err.Error()))
		return
	}
	actionLog.Info("copied_address", slog.String("ip", current.TailscaleIP))
}
