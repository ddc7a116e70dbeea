// Package clipboard writes text to the system clipboard through an ordered
// chain of platform backends. Callers treat failure as best-effort: a
// middle-click that cannot copy stays silent.
package clipboard

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/asheshgoplani/tailbar/internal/platform"
)

// copyTimeout bounds each clipboard backend invocation.
const copyTimeout = 2 * time.Second

// CopyResult contains metadata about a successful clipboard copy operation.
type CopyResult struct {
	Method   string // How the content was copied (e.g., "wl-copy", "xclip", "osc52")
	ByteSize int    // Number of bytes copied
}

// Copy copies text to the system clipboard using platform-appropriate
// methods. The fallback chain is: native clipboard tool → OSC 52 escape
// sequence.
func Copy(text string) (*CopyResult, error) {
	if text == "" {
		return nil, fmt.Errorf("no content to copy")
	}

	method, err := copyNative(text)
	if err == nil {
		return &CopyResult{Method: method, ByteSize: len(text)}, nil
	}

	if err := copyOSC52(text); err != nil {
		return nil, fmt.Errorf("no clipboard method available (install wl-copy, xclip, xsel, or pbcopy): %w", err)
	}
	return &CopyResult{Method: "osc52", ByteSize: len(text)}, nil
}

// copyNative attempts to copy using a platform-native clipboard command.
// Returns the method name on success.
func copyNative(text string) (string, error) {
	p := platform.Detect()

	switch p {
	case platform.PlatformMacOS:
		return "pbcopy", runClipCmd("pbcopy", nil, text)

	case platform.PlatformWSL1, platform.PlatformWSL2:
		return "clip.exe", runClipCmd("clip.exe", nil, text)

	case platform.PlatformLinux:
		// Wayland takes priority over X11
		if os.Getenv("WAYLAND_DISPLAY") != "" {
			if path, err := exec.LookPath("wl-copy"); err == nil {
				return "wl-copy", runClipCmd(path, nil, text)
			}
		}
		// X11: try xclip first, then xsel
		if path, err := exec.LookPath("xclip"); err == nil {
			return "xclip", runClipCmd(path, []string{"-selection", "clipboard"}, text)
		}
		if path, err := exec.LookPath("xsel"); err == nil {
			return "xsel", runClipCmd(path, []string{"--clipboard", "--input"}, text)
		}
		return "", fmt.Errorf("no clipboard command found on Linux")

	default:
		return "", fmt.Errorf("unsupported platform: %s", p)
	}
}

// runClipCmd executes a clipboard command, piping text to its stdin and
// bounding the call so a wedged backend cannot stall the status bar.
func runClipCmd(name string, args []string, text string) error {
	ctx, cancel := context.WithTimeout(context.Background(), copyTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

// copyOSC52 copies text using the OSC 52 terminal escape sequence.
// Inside tmux, wraps the sequence in a DCS passthrough.
func copyOSC52(text string) error {
	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	seq := generateOSC52(encoded, os.Getenv("TMUX") != "")

	// Write to /dev/tty to bypass any stdout redirection
	tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("cannot open /dev/tty: %w", err)
	}
	defer tty.Close()

	_, err = tty.WriteString(seq)
	return err
}

// generateOSC52 builds the OSC 52 escape sequence.
// If inTmux is true, wraps it in a DCS passthrough for tmux compatibility.
func generateOSC52(base64Content string, inTmux bool) string {
	osc := "\x1b]52;c;" + base64Content + "\x07"
	if inTmux {
		// tmux DCS passthrough: \ePtmux;\e{OSC}\e\\
		return "\x1bPtmux;\x1b" + osc + "\x1b\\"
	}
	return osc
}
