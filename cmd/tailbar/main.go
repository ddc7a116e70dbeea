package main

import (
	"fmt"
	"os"

	"github.com/asheshgoplani/tailbar/internal/config"
	"github.com/asheshgoplani/tailbar/internal/logging"
)

const Version = "0.3.0"

func main() {
	cfg := loadConfig()
	defer logging.Close()

	args := os.Args[1:]
	if len(args) > 0 {
		switch args[0] {
		case "version", "--version", "-v":
			fmt.Printf("tailbar v%s\n", Version)
			return
		case "help", "--help", "-h":
			printHelp()
			return
		case "status":
			handleStatus(cfg, args[1:])
			return
		case "click":
			handleClick(cfg, args[1:])
			return
		case "scroll":
			handleScroll(cfg, args[1:])
			return
		case "auto-resume":
			handleAutoResume(cfg, args[1:])
			return
		case "config":
			handleConfig(args[1:])
			return
		default:
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", args[0])
			printHelp()
			os.Exit(1)
		}
	}

	// No arguments: Waybar's periodic status tick.
	handleStatus(cfg, nil)
}

// loadConfig reads the user config and wires logging from it. A broken
// config must never take the bar down: complain on stderr, run on defaults.
func loadConfig() *config.UserConfig {
	cfg, err := config.LoadUserConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "tailbar: %v (using defaults)\n", err)
	}

	logDir := cfg.Logs.Dir
	if cfg.Logs.Debug && logDir == "" {
		if dir, derr := config.GetTailbarDir(); derr == nil {
			logDir = dir
			_ = os.MkdirAll(logDir, 0o700)
		}
	}
	logging.Init(logging.Config{
		LogDir: logDir,
		Level:  cfg.Logs.Level,
		Format: cfg.Logs.Format,
		Debug:  cfg.Logs.Debug,
	})
	return cfg
}

func printHelp() {
	fmt.Printf("tailbar v%s - Waybar Tailscale module\n\n", Version)
	fmt.Println("Usage: tailbar [command]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  status                Print the Waybar JSON record (default)")
	fmt.Println("  click <left|right|middle>")
	fmt.Println("                        Handle a click action, then print status")
	fmt.Println("  scroll <up|down>      Adjust the pause duration, then print status")
	fmt.Println("  config path           Print the config file location")
	fmt.Println("  config init           Write a commented example config")
	fmt.Println("  version               Print version")
	fmt.Println("  help                  Show this help")
	fmt.Println()
	fmt.Println("Waybar config example:")
	fmt.Println(`  "custom/tailscale": {`)
	fmt.Println(`    "exec": "tailbar",`)
	fmt.Println(`    "return-type": "json",`)
	fmt.Println(`    "interval": 5,`)
	fmt.Println(`    "on-click": "tailbar click left",`)
	fmt.Println(`    "on-click-right": "tailbar click right",`)
	fmt.Println(`    "on-click-middle": "tailbar click middle",`)
	fmt.Println(`    "on-scroll-up": "tailbar scroll up",`)
	fmt.Println(`    "on-scroll-down": "tailbar scroll down"`)
	fmt.Println(`  }`)
}
