// Package resume arms and fires the auto-resume timer for a paused
// connection. The timer is a separate detached process so it survives the
// short-lived CLI invocation that created it; it cannot be cancelled
// directly and is instead neutralized by deleting the pause record before
// it fires.
package resume

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/asheshgoplani/tailbar/internal/logging"
	"github.com/asheshgoplani/tailbar/internal/state"
)

var resumeLog = logging.ForComponent(logging.CompResume)

// Agent is the connect side of the tailscale client.
type Agent interface {
	Up(ctx context.Context) error
}

// Scheduler owns the Idle → Armed transition. Armed means a detached timer
// process is running, tied to one specific pause expiry.
type Scheduler struct {
	Store *state.Store
	Agent Agent

	// Exe is the path to this binary, re-executed as the detached timer.
	Exe string

	spawn func(exe string) error
}

// NewScheduler builds a Scheduler that re-executes the current binary.
func NewScheduler(store *state.Store, agent Agent) *Scheduler {
	exe, err := os.Executable()
	if err != nil {
		exe = ""
	}
	return &Scheduler{
		Store: store,
		Agent: agent,
		Exe:   exe,
		spawn: spawnDetached,
	}
}

// Arm launches the auto-resume timer for the pause expiring at until. It
// prefers a detached process; if detachment fails it falls back to a
// goroutine running the same re-validated firing logic. The fallback never
// blocks the caller's exit path: if the process dies first, the lazy expiry
// in the store still keeps reporting honest.
func (s *Scheduler) Arm(until time.Time) {
	if s.Exe != "" {
		err := s.spawn(s.Exe)
		if err == nil {
			resumeLog.Info("armed_detached", slog.Time("until", until))
			return
		}
		resumeLog.Warn("detach_failed", slog.String("error", err.Error()))
	}

	resumeLog.Info("armed_in_process", slog.Time("until", until))
	go func() {
		_ = s.WaitAndFire(context.Background())
	}()
}

// spawnDetached starts exe in auto-resume mode in its own session, with no
// inherited stdio, so it keeps running after this invocation exits.
func spawnDetached(exe string) error {
	cmd := exec.Command(exe, "auto-resume")
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

// WaitAndFire sleeps until the stored pause expiry, then fires. It reads
// the deadline from the record rather than trusting time-elapsed-from-launch.
// The peek keeps an already-lapsed record intact so a late start (or a
// re-run after a missed fire) still reaches Fire and reconnects.
func (s *Scheduler) WaitAndFire(ctx context.Context) error {
	until, ok := s.Store.PeekPause()
	if !ok {
		resumeLog.Debug("wait_no_pause_record")
		return nil
	}

	if delay := time.Until(until); delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return s.Fire(ctx)
}

// Fire re-validates the pause record and resumes the agent only if the
// record's stored expiry has actually passed. Absent record: a manual
// resume or stop already happened. Future expiry: a newer pause superseded
// this timer, or the clock was adjusted. Either way, no-op. Duplicate
// fires are idempotent: the second one finds no record.
func (s *Scheduler) Fire(ctx context.Context) error {
	if !s.Store.ConsumeExpiredPause() {
		resumeLog.Debug("fire_noop")
		return nil
	}

	resumeLog.Info("auto_resume")
	if err := s.Agent.Up(ctx); err != nil {
		resumeLog.Warn("auto_resume_failed", slog.String("error", err.Error()))
		return err
	}
	return nil
}
