package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/asheshgoplani/tailbar/internal/config"
	"github.com/asheshgoplani/tailbar/internal/logging"
	"github.com/asheshgoplani/tailbar/internal/status"
)

var clickLog = logging.ForComponent(logging.CompAction)

// handleClick dispatches one click action, then prints a fresh status
// record so the bar updates without waiting for the next tick.
func handleClick(cfg *config.UserConfig, args []string) {
	fs := flag.NewFlagSet("click", flag.ExitOnError)
	pretty := fs.Bool("pretty", false, "Indent the JSON output")

	fs.Usage = func() {
		fmt.Println("Usage: tailbar click <left|right|middle>")
		fmt.Println()
		fmt.Println("Dispatch a click action against the current session state:")
		fmt.Println("  left    toggle the connection (resume when paused)")
		fmt.Println("  right   pause when connected, stop when paused, else connect")
		fmt.Println("  middle  copy the machine's tailnet address")
	}

	if err := fs.Parse(normalizeArgs(fs, args)); err != nil {
		os.Exit(1)
	}
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(1)
	}
	button := fs.Arg(0)

	a := newApp(cfg)
	current := status.Resolve(context.Background(), a.client, a.store)

	if err := a.disp.Click(context.Background(), button, current); err != nil {
		// Not retried and not surfaced as a distinct record: the next
		// resolution reflects whatever state the failure left behind.
		clickLog.Warn("click_failed",
			slog.String("button", button),
			slog.String("error", err.Error()))
	} else if button != "middle" {
		// Give the agent a moment to settle before re-querying.
		time.Sleep(time.Second)
	}

	emitStatus(a, *pretty || stdoutIsTerminal())
}
