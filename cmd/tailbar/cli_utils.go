package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/asheshgoplani/tailbar/internal/clipboard"
	"github.com/asheshgoplani/tailbar/internal/config"
	"github.com/asheshgoplani/tailbar/internal/dispatch"
	"github.com/asheshgoplani/tailbar/internal/resume"
	"github.com/asheshgoplani/tailbar/internal/state"
	"github.com/asheshgoplani/tailbar/internal/status"
	"github.com/asheshgoplani/tailbar/internal/tailscale"
)

// app wires the components for one invocation.
type app struct {
	cfg    *config.UserConfig
	client *tailscale.Client
	store  *state.Store
	sched  *resume.Scheduler
	disp   *dispatch.Dispatcher
}

func newApp(cfg *config.UserConfig) *app {
	client := tailscale.NewClient(cfg.Agent)
	store := state.NewStore(cfg.Pause)
	sched := resume.NewScheduler(store, client)
	disp := dispatch.New(client, store, sched, func(text string) error {
		_, err := clipboard.Copy(text)
		return err
	})
	return &app{cfg: cfg, client: client, store: store, sched: sched, disp: disp}
}

// writeRecord prints one Waybar JSON record. The record must always be
// valid JSON; if marshaling itself fails there is nothing sensible left to
// report, so a hand-built minimal error record goes out instead.
func writeRecord(out status.Output, pretty bool) {
	var data []byte
	var err error
	if pretty {
		data, err = json.MarshalIndent(out, "", "  ")
	} else {
		data, err = json.Marshal(out)
	}
	if err != nil {
		fmt.Println(`{"text":"❌","tooltip":"Module Error: output encoding failed","class":"error"}`)
		return
	}
	fmt.Println(string(data))
}

// stdoutIsTerminal reports whether a human, not Waybar, is reading us.
func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// normalizeArgs reorders args so flags come before positional arguments.
// Go's flag package stops parsing at the first non-flag argument, which
// means "click left --pretty" silently ignores --pretty. This function
// moves all flags to the front so they get parsed correctly.
func normalizeArgs(fs *flag.FlagSet, args []string) []string {
	// Build set of known boolean flags (don't need a value argument)
	boolFlags := make(map[string]bool)
	fs.VisitAll(func(f *flag.Flag) {
		if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && bf.IsBoolFlag() {
			boolFlags[f.Name] = true
		}
	})

	var flags, positional []string
	for i := 0; i < len(args); i++ {
		arg := args[i]

		// "--" terminates flag processing
		if arg == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}

		if strings.HasPrefix(arg, "-") && arg != "-" {
			flags = append(flags, arg)

			name := strings.TrimLeft(arg, "-")

			// Handle --flag=value (value is part of the arg, nothing to move)
			if strings.Contains(name, "=") {
				continue
			}

			// If it's not a bool flag, the next arg is its value
			if !boolFlags[name] && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		} else {
			positional = append(positional, arg)
		}
	}
	return append(flags, positional...)
}
