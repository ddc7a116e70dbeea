package main

import (
	"fmt"
	"os"

	"github.com/asheshgoplani/tailbar/internal/config"
)

// handleConfig manages the config file.
func handleConfig(args []string) {
	if len(args) == 0 {
		printConfigHelp()
		os.Exit(1)
	}

	switch args[0] {
	case "path":
		path, err := config.GetUserConfigPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(path)

	case "init":
		path, err := config.WriteExampleConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", path)

	default:
		printConfigHelp()
		os.Exit(1)
	}
}

func printConfigHelp() {
	fmt.Println("Usage: tailbar config <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  path   Print the config file location")
	fmt.Println("  init   Write a commented example config")
}
