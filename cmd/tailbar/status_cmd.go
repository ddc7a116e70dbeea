package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/asheshgoplani/tailbar/internal/config"
	"github.com/asheshgoplani/tailbar/internal/status"
)

// handleStatus resolves the session state and prints the Waybar record.
func handleStatus(cfg *config.UserConfig, args []string) {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	pretty := fs.Bool("pretty", false, "Indent the JSON output")

	fs.Usage = func() {
		fmt.Println("Usage: tailbar status [--pretty]")
		fmt.Println()
		fmt.Println("Print the current session state as a Waybar JSON record.")
	}

	if err := fs.Parse(normalizeArgs(fs, args)); err != nil {
		os.Exit(1)
	}

	emitStatus(newApp(cfg), *pretty || stdoutIsTerminal())
}

// emitStatus performs one resolve-and-render pass. Whatever goes wrong,
// exactly one valid JSON record reaches stdout and the exit status stays
// zero: the bar renders an error cell instead of breaking.
func emitStatus(a *app, pretty bool) {
	defer func() {
		if r := recover(); r != nil {
			writeRecord(status.Fallback(a.cfg.Output.Label, fmt.Sprint(r)), pretty)
		}
	}()

	resolved := status.Resolve(context.Background(), a.client, a.store)
	minutes, _ := a.store.Duration()
	writeRecord(status.Render(resolved, a.cfg.Output.Label, minutes), pretty)
}
