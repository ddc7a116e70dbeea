package status

import (
	"fmt"
	"strings"
	"time"
)

// Output is the record Waybar consumes. This is the only contract the bar
// depends on; it must always be valid JSON, even on internal failure.
type Output struct {
	Text    string `json:"text"`
	Tooltip string `json:"tooltip"`
	Class   string `json:"class"`
}

// Render formats a resolved state for Waybar. label is the short text shown
// next to the glyph; pauseMinutes is the current duration preference, shown
// in the right-click hint.
func Render(state State, label string, pauseMinutes int) Output {
	switch state.Kind {
	case KindConnected:
		return Output{
			Text:  "🟢 " + label,
			Class: "connected",
			Tooltip: joinLines(
				"Tailscale Connected",
				"Machine: "+state.MachineName,
				"IP: "+orNA(state.TailscaleIP),
				fmt.Sprintf("Online Peers: %d", state.OnlinePeers),
				"",
				"Left Click: Disconnect",
				fmt.Sprintf("Right Click: Pause %dmin", pauseMinutes),
				"Middle Click: Copy IP",
				"Scroll: Adjust pause duration",
			),
		}

	case KindPaused:
		return Output{
			Text:  "⏸️ " + label,
			Class: "paused",
			Tooltip: joinLines(
				"Tailscale Paused",
				"Machine: "+state.MachineName,
				FormatRemaining(state.Remaining),
				"",
				"Left Click: Resume",
				"Right Click: Stop",
				"Middle Click: Copy IP",
				"Scroll: Adjust pause duration",
			),
		}

	case KindStopped:
		return Output{
			Text:  "🔴 " + label,
			Class: "disconnected",
			Tooltip: joinLines(
				"Tailscale Disconnected",
				"Machine: "+state.MachineName,
				"",
				"Left Click: Connect",
				"Right Click: Connect",
				"Scroll: Adjust pause duration",
			),
		}

	default:
		// KindError and KindUnknown both render as the error class; an
		// unrecognized backend state is not actionable from the bar.
		stateName := state.Backend
		if stateName == "" {
			stateName = "Error"
		}
		detail := state.Err
		if detail == "" {
			detail = "Unknown error"
		}
		return Output{
			Text:  "🔴 " + label,
			Class: "error",
			Tooltip: joinLines(
				"Tailscale Error",
				"State: "+stateName,
				"Error: "+detail,
				"",
				"Left Click: Try Connect",
			),
		}
	}
}

// Fallback is the minimal record emitted when an unexpected condition
// escapes all local handling. The bar must still get valid JSON.
func Fallback(label, message string) Output {
	return Output{
		Text:    "❌ " + label,
		Tooltip: "Module Error: " + message,
		Class:   "error",
	}
}

// FormatRemaining renders a pause remainder as "Xm Ys remaining", truncated
// to whole minutes and seconds.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d / time.Minute)
	seconds := int(d%time.Minute) / int(time.Second)
	return fmt.Sprintf("%dm %ds remaining", minutes, seconds)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func joinLines(lines ...string) string {
	return strings.Join(lines, "\n")
}
