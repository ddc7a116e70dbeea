// Package status derives the session state from the agent and the pause
// record, and renders it as a Waybar JSON record.
package status

import (
	"context"
	"time"

	"github.com/asheshgoplani/tailbar/internal/tailscale"
)

// Kind is the closed set of session states.
type Kind string

const (
	KindConnected Kind = "connected"
	KindPaused    Kind = "paused"
	KindStopped   Kind = "stopped"
	KindError     Kind = "error"
	KindUnknown   Kind = "unknown"
)

// State is derived fresh on every invocation and never persisted.
type State struct {
	Kind        Kind
	MachineName string
	TailscaleIP string
	OnlinePeers int

	// Remaining is set only for KindPaused.
	Remaining time.Duration

	// Backend carries the raw backend state for KindUnknown.
	Backend string

	// Err carries the failure message for KindError.
	Err string
}

// Agent is the status-query side of the tailscale client.
type Agent interface {
	Status(ctx context.Context) (*tailscale.Status, error)
}

// PauseReader is the pause side of the state store.
type PauseReader interface {
	PauseRemaining() (time.Duration, bool)
}

// Resolve combines one agent query with one pause-record read. An unexpired
// pause wins over whatever the agent reports: pause is a user-intent
// overlay, not a reflection of agent state. An agent error collapses the
// whole resolution to KindError.
func Resolve(ctx context.Context, agent Agent, pauses PauseReader) State {
	agentStatus, err := agent.Status(ctx)
	if err != nil {
		return State{Kind: KindError, MachineName: "unknown", Err: err.Error()}
	}

	if remaining, ok := pauses.PauseRemaining(); ok {
		return State{
			Kind:        KindPaused,
			MachineName: agentStatus.MachineName,
			TailscaleIP: agentStatus.TailscaleIP,
			Remaining:   remaining,
		}
	}

	switch agentStatus.BackendState {
	case tailscale.BackendRunning:
		return State{
			Kind:        KindConnected,
			MachineName: agentStatus.MachineName,
			TailscaleIP: agentStatus.TailscaleIP,
			OnlinePeers: agentStatus.OnlinePeers,
		}
	case tailscale.BackendStopped:
		return State{Kind: KindStopped, MachineName: agentStatus.MachineName}
	default:
		return State{
			Kind:        KindUnknown,
			MachineName: agentStatus.MachineName,
			Backend:     agentStatus.BackendState,
		}
	}
}
