package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/asheshgoplani/tailbar/internal/config"
	"github.com/asheshgoplani/tailbar/internal/logging"
	"github.com/asheshgoplani/tailbar/internal/state"
)

var scrollLog = logging.ForComponent(logging.CompAction)

// handleScroll adjusts the pause duration preference, then prints a fresh
// status record. Scrolling never touches the agent. Only an unknown
// direction is a usage error; a store failure is logged and the record is
// still emitted so the bar keeps rendering.
func handleScroll(cfg *config.UserConfig, args []string) {
	fs := flag.NewFlagSet("scroll", flag.ExitOnError)
	pretty := fs.Bool("pretty", false, "Indent the JSON output")

	fs.Usage = func() {
		fmt.Println("Usage: tailbar scroll <up|down>")
		fmt.Println()
		fmt.Println("Move the pause duration preference one step up or down the")
		fmt.Println("ladder. The new value applies to the next pause action.")
	}

	if err := fs.Parse(normalizeArgs(fs, args)); err != nil {
		os.Exit(1)
	}
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(1)
	}
	direction := fs.Arg(0)
	if direction != state.AdjustUp && direction != state.AdjustDown {
		fs.Usage()
		os.Exit(1)
	}

	a := newApp(cfg)
	if _, _, err := a.disp.Scroll(direction); err != nil {
		scrollLog.Warn("scroll_failed",
			slog.String("direction", direction),
			slog.String("error", err.Error()))
	}

	emitStatus(a, *pretty || stdoutIsTerminal())
}
