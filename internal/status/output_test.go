package status

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Connected(t *testing.T) {
	out := Render(State{
		Kind:        KindConnected,
		MachineName: "workstation",
		TailscaleIP: "100.64.0.5",
		OnlinePeers: 2,
	}, "TS", 5)

	assert.Equal(t, "🟢 TS", out.Text)
	assert.Equal(t, "connected", out.Class)
	assert.Contains(t, out.Tooltip, "100.64.0.5")
	assert.Contains(t, out.Tooltip, "Online Peers: 2")
	assert.Contains(t, out.Tooltip, "Pause 5min")
}

func TestRender_Paused(t *testing.T) {
	out := Render(State{
		Kind:        KindPaused,
		MachineName: "workstation",
		Remaining:   3 * time.Minute,
	}, "TS", 5)

	assert.Equal(t, "⏸️ TS", out.Text)
	assert.Equal(t, "paused", out.Class)
	assert.Contains(t, out.Tooltip, "3m 0s remaining")
}

func TestRender_Stopped(t *testing.T) {
	out := Render(State{Kind: KindStopped, MachineName: "workstation"}, "TS", 5)

	assert.Equal(t, "🔴 TS", out.Text)
	assert.Equal(t, "disconnected", out.Class)
	assert.Contains(t, out.Tooltip, "Left Click: Connect")
}

func TestRender_Error(t *testing.T) {
	out := Render(State{Kind: KindError, Err: "command timed out"}, "TS", 5)

	assert.Equal(t, "error", out.Class)
	assert.Contains(t, out.Tooltip, "State: Error")
	assert.Contains(t, out.Tooltip, "Error: command timed out")
}

func TestRender_UnknownBackend(t *testing.T) {
	out := Render(State{Kind: KindUnknown, Backend: "NeedsLogin"}, "TS", 5)

	assert.Equal(t, "error", out.Class)
	assert.Contains(t, out.Tooltip, "State: NeedsLogin")
	assert.Contains(t, out.Tooltip, "Error: Unknown error")
}

func TestRender_AlwaysValidJSON(t *testing.T) {
	states := []State{
		{Kind: KindConnected, MachineName: "m"},
		{Kind: KindPaused, Remaining: time.Second},
		{Kind: KindStopped},
		{Kind: KindError, Err: "boom"},
		{Kind: KindUnknown, Backend: "Starting"},
	}
	for _, state := range states {
		data, err := json.Marshal(Render(state, "TS", 5))
		require.NoError(t, err)

		var decoded map[string]string
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.NotEmpty(t, decoded["text"])
		assert.NotEmpty(t, decoded["class"])
	}
}

func TestFallback(t *testing.T) {
	out := Fallback("TS", "unexpected panic")

	assert.Equal(t, "❌ TS", out.Text)
	assert.Equal(t, "error", out.Class)
	assert.Contains(t, out.Tooltip, "unexpected panic")
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{3 * time.Minute, "3m 0s remaining"},
		{90 * time.Second, "1m 30s remaining"},
		{59 * time.Second, "0m 59s remaining"},
		{0, "0m 0s remaining"},
		{-time.Second, "0m 0s remaining"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatRemaining(tt.d))
	}
}
