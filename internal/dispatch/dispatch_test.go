package dispatch

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asheshgoplani/tailbar/internal/config"
	"github.com/asheshgoplani/tailbar/internal/state"
	"github.com/asheshgoplani/tailbar/internal/status"
)

type fakeAgent struct {
	calls   []string
	errUp   error
	errDown error
}

func (f *fakeAgent) Up(context.Context) error {
	f.calls = append(f.calls, "up")
	return f.errUp
}

func (f *fakeAgent) Down(context.Context) error {
	f.calls = append(f.calls, "down")
	return f.errDown
}

type fakeArmer struct {
	armed []time.Time
}

func (f *fakeArmer) Arm(until time.Time) {
	f.armed = append(f.armed, until)
}

func newTestDispatcher(t *testing.T) (*Dispatcher, *fakeAgent, *fakeArmer, *state.Store) {
	t.Helper()
	store := state.NewStore(config.PauseSettings{
		StateDir:     t.TempDir(),
		Durations:    config.DefaultDurations,
		DefaultIndex: 1,
	})
	agent := &fakeAgent{}
	armer := &fakeArmer{}
	d := New(agent, store, armer, nil)
	return d, agent, armer, store
}

func connectedState() status.State {
	return status.State{Kind: status.KindConnected, TailscaleIP: "100.64.0.5"}
}

func TestLeftClick_ConnectedStops(t *testing.T) {
	d, agent, _, _ := newTestDispatcher(t)

	require.NoError(t, d.Click(context.Background(), ButtonLeft, connectedState()))
	assert.Equal(t, []string{"down"}, agent.calls)
}

func TestLeftClick_PausedResumes(t *testing.T) {
	d, agent, _, store := newTestDispatcher(t)
	require.NoError(t, store.WritePause(time.Now().Add(time.Hour)))

	require.NoError(t, d.Click(context.Background(), ButtonLeft, status.State{Kind: status.KindPaused}))

	assert.Equal(t, []string{"up"}, agent.calls)
	_, ok := store.PauseUntil()
	assert.False(t, ok, "resume must clear the pause record")
}

func TestLeftClick_StoppedStarts(t *testing.T) {
	d, agent, _, _ := newTestDispatcher(t)

	require.NoError(t, d.Click(context.Background(), ButtonLeft, status.State{Kind: status.KindStopped}))
	assert.Equal(t, []string{"up"}, agent.calls)
}

func TestLeftClick_ErrorStateTriesConnect(t *testing.T) {
	d, agent, _, _ := newTestDispatcher(t)

	require.NoError(t, d.Click(context.Background(), ButtonLeft, status.State{Kind: status.KindError}))
	assert.Equal(t, []string{"up"}, agent.calls)
}

func TestRightClick_ConnectedPauses(t *testing.T) {
	d, agent, armer, store := newTestDispatcher(t)
	base := time.Now()
	d.now = func() time.Time { return base }

	require.NoError(t, d.Click(context.Background(), ButtonRight, connectedState()))

	assert.Equal(t, []string{"down"}, agent.calls)
	require.Len(t, armer.armed, 1)
	assert.True(t, armer.armed[0].Equal(base.Add(5*time.Minute)), "default preference is 5 minutes")

	until, ok := store.PauseUntil()
	require.True(t, ok)
	assert.WithinDuration(t, base.Add(5*time.Minute), until, time.Second)
}

func TestRightClick_PauseUsesAdjustedPreference(t *testing.T) {
	d, _, armer, store := newTestDispatcher(t)
	_, err := store.SetDurationIndex(4) // 30 minutes
	require.NoError(t, err)
	base := time.Now()
	d.now = func() time.Time { return base }

	require.NoError(t, d.Click(context.Background(), ButtonRight, connectedState()))

	require.Len(t, armer.armed, 1)
	assert.True(t, armer.armed[0].Equal(base.Add(30*time.Minute)))
}

func TestRightClick_PauseFailedDisconnectWritesNothing(t *testing.T) {
	d, agent, armer, store := newTestDispatcher(t)
	agent.errDown = fmt.Errorf("exit status 1")

	err := d.Click(context.Background(), ButtonRight, connectedState())
	assert.Error(t, err)

	_, ok := store.PauseUntil()
	assert.False(t, ok, "failed disconnect must not leave a pause record")
	assert.Empty(t, armer.armed, "failed disconnect must not arm a timer")
}

func TestRightClick_PausedStopsAndClears(t *testing.T) {
	d, agent, _, store := newTestDispatcher(t)
	require.NoError(t, store.WritePause(time.Now().Add(time.Hour)))

	require.NoError(t, d.Click(context.Background(), ButtonRight, status.State{Kind: status.KindPaused}))

	assert.Equal(t, []string{"down"}, agent.calls)
	_, ok := store.PauseUntil()
	assert.False(t, ok)
}

func TestRightClick_StoppedStarts(t *testing.T) {
	d, agent, _, _ := newTestDispatcher(t)

	require.NoError(t, d.Click(context.Background(), ButtonRight, status.State{Kind: status.KindStopped}))
	assert.Equal(t, []string{"up"}, agent.calls)
}

func TestMiddleClick_CopiesAddress(t *testing.T) {
	d, agent, _, _ := newTestDispatcher(t)
	var copied []string
	d.CopyFn = func(text string) error {
		copied = append(copied, text)
		return nil
	}

	require.NoError(t, d.Click(context.Background(), ButtonMiddle, connectedState()))

	assert.Equal(t, []string{"100.64.0.5"}, copied)
	assert.Empty(t, agent.calls, "middle click never touches the agent")
}

func TestMiddleClick_CopyFailureIsSilent(t *testing.T) {
	d, _, _, _ := newTestDispatcher(t)
	d.CopyFn = func(string) error { return fmt.Errorf("no clipboard") }

	assert.NoError(t, d.Click(context.Background(), ButtonMiddle, connectedState()))
}

func TestMiddleClick_NoAddressIsSilent(t *testing.T) {
	d, _, _, _ := newTestDispatcher(t)
	d.CopyFn = func(string) error {
		t.Fatal("must not copy without an address")
		return nil
	}

	assert.NoError(t, d.Click(context.Background(), ButtonMiddle, status.State{Kind: status.KindStopped}))
}

func TestScroll_AdjustsOnly(t *testing.T) {
	d, agent, _, _ := newTestDispatcher(t)

	minutes, changed, err := d.Scroll(state.AdjustUp)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 10, minutes)
	assert.Empty(t, agent.calls, "scroll never touches the agent")
}

func TestClick_UnknownButton(t *testing.T) {
	d, _, _, _ := newTestDispatcher(t)

	assert.Error(t, d.Click(context.Background(), "quadruple", connectedState()))
}
