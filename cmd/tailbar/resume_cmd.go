package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/asheshgoplani/tailbar/internal/config"
)

// handleAutoResume is the internal entry point the detached timer process
// runs. It sleeps until the stored pause expiry, re-validates the record,
// and reconnects only if that stored expiry has actually passed. Not
// user-facing; it prints nothing.
func handleAutoResume(cfg *config.UserConfig, args []string) {
	fs := flag.NewFlagSet("auto-resume", flag.ExitOnError)
	now := fs.Bool("now", false, "Skip the wait and fire immediately")

	fs.Usage = func() {
		fmt.Println("Usage: tailbar auto-resume [--now]")
		fmt.Println()
		fmt.Println("Internal: wait out the current pause and resume the connection.")
	}

	if err := fs.Parse(normalizeArgs(fs, args)); err != nil {
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a := newApp(cfg)
	if *now {
		if err := a.sched.Fire(ctx); err != nil {
			os.Exit(1)
		}
		return
	}
	if err := a.sched.WaitAndFire(ctx); err != nil {
		os.Exit(1)
	}
}
