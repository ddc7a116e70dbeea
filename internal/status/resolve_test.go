package status

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/asheshgoplani/tailbar/internal/tailscale"
)

type fakeAgent struct {
	status *tailscale.Status
	err    error
}

func (f *fakeAgent) Status(context.Context) (*tailscale.Status, error) {
	return f.status, f.err
}

type fakePauses struct {
	remaining time.Duration
	paused    bool
}

func (f *fakePauses) PauseRemaining() (time.Duration, bool) {
	return f.remaining, f.paused
}

func runningStatus() *tailscale.Status {
	return &tailscale.Status{
		BackendState: tailscale.BackendRunning,
		MachineName:  "workstation",
		TailscaleIP:  "100.64.0.5",
		OnlinePeers:  2,
	}
}

func TestResolve_Connected(t *testing.T) {
	state := Resolve(context.Background(), &fakeAgent{status: runningStatus()}, &fakePauses{})

	assert.Equal(t, KindConnected, state.Kind)
	assert.Equal(t, "workstation", state.MachineName)
	assert.Equal(t, "100.64.0.5", state.TailscaleIP)
	assert.Equal(t, 2, state.OnlinePeers)
}

func TestResolve_PauseOverridesBackendState(t *testing.T) {
	// Even a running agent reports Paused while an unexpired record
	// exists: the record is user intent, not agent state.
	pauses := &fakePauses{remaining: 3 * time.Minute, paused: true}
	state := Resolve(context.Background(), &fakeAgent{status: runningStatus()}, pauses)

	assert.Equal(t, KindPaused, state.Kind)
	assert.Equal(t, 3*time.Minute, state.Remaining)
	assert.Equal(t, "workstation", state.MachineName)
}

func TestResolve_Stopped(t *testing.T) {
	agent := &fakeAgent{status: &tailscale.Status{
		BackendState: tailscale.BackendStopped,
		MachineName:  "workstation",
	}}
	state := Resolve(context.Background(), agent, &fakePauses{})

	assert.Equal(t, KindStopped, state.Kind)
}

func TestResolve_UnknownBackendPassthrough(t *testing.T) {
	agent := &fakeAgent{status: &tailscale.Status{
		BackendState: "NeedsLogin",
		MachineName:  "workstation",
	}}
	state := Resolve(context.Background(), agent, &fakePauses{})

	assert.Equal(t, KindUnknown, state.Kind)
	assert.Equal(t, "NeedsLogin", state.Backend)
}

func TestResolve_AgentErrorWinsOverPause(t *testing.T) {
	agent := &fakeAgent{err: fmt.Errorf("tailscale status: executable not found")}
	pauses := &fakePauses{remaining: time.Minute, paused: true}

	state := Resolve(context.Background(), agent, pauses)

	assert.Equal(t, KindError, state.Kind)
	assert.Contains(t, state.Err, "executable not found")
}
