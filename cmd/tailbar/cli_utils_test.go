package main

import (
	"flag"
	"reflect"
	"testing"
)

func TestNormalizeArgs(t *testing.T) {
	tests := []struct {
		name     string
		setup    func() *flag.FlagSet // create FlagSet with flags
		args     []string
		expected []string
	}{
		{
			name: "flags already before positional args",
			setup: func() *flag.FlagSet {
				fs := flag.NewFlagSet("test", flag.ContinueOnError)
				fs.Bool("pretty", false, "")
				return fs
			},
			args:     []string{"--pretty", "left"},
			expected: []string{"--pretty", "left"},
		},
		{
			name: "bool flag after positional arg",
			setup: func() *flag.FlagSet {
				fs := flag.NewFlagSet("test", flag.ContinueOnError)
				fs.Bool("pretty", false, "")
				return fs
			},
			args:     []string{"left", "--pretty"},
			expected: []string{"--pretty", "left"},
		},
		{
			name: "string flag after positional arg",
			setup: func() *flag.FlagSet {
				fs := flag.NewFlagSet("test", flag.ContinueOnError)
				fs.String("label", "", "")
				return fs
			},
			args:     []string{"up", "--label", "VPN"},
			expected: []string{"--label", "VPN", "up"},
		},
		{
			name: "flag with equals syntax",
			setup: func() *flag.FlagSet {
				fs := flag.NewFlagSet("test", flag.ContinueOnError)
				fs.String("label", "", "")
				return fs
			},
			args:     []string{"up", "--label=VPN"},
			expected: []string{"--label=VPN", "up"},
		},
		{
			name: "double dash terminates flag processing",
			setup: func() *flag.FlagSet {
				fs := flag.NewFlagSet("test", flag.ContinueOnError)
				fs.Bool("pretty", false, "")
				return fs
			},
			args:     []string{"--", "--pretty"},
			expected: []string{"--pretty"},
		},
		{
			name: "no args",
			setup: func() *flag.FlagSet {
				return flag.NewFlagSet("test", flag.ContinueOnError)
			},
			args:     nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeArgs(tt.setup(), tt.args)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("normalizeArgs(%v) = %v, want %v", tt.args, got, tt.expected)
			}
		})
	}
}
