package tailscale

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"time"

	"github.com/asheshgoplani/tailbar/internal/config"
	"github.com/asheshgoplani/tailbar/internal/logging"
)

var agentLog = logging.ForComponent(logging.CompAgent)

// Backend states reported by the tailscale daemon.
const (
	BackendRunning = "Running"
	BackendStopped = "Stopped"
)

// Status is the normalized result of a status query.
type Status struct {
	BackendState string
	MachineName  string
	TailscaleIP  string
	OnlinePeers  int
}

// runnerFunc executes an external command and returns its combined stdout.
// Injectable so tests never spawn real processes.
type runnerFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// Client invokes the tailscale CLI. All calls are bounded by explicit
// timeouts; a timeout is treated identically to a command failure.
type Client struct {
	Command       string
	UseSudo       bool
	StatusTimeout time.Duration
	ActionTimeout time.Duration

	run runnerFunc
}

// NewClient builds a Client from agent settings.
func NewClient(cfg config.AgentSettings) *Client {
	return &Client{
		Command:       cfg.Command,
		UseSudo:       cfg.UseSudo,
		StatusTimeout: time.Duration(cfg.StatusTimeoutSecs) * time.Second,
		ActionTimeout: time.Duration(cfg.ActionTimeoutSecs) * time.Second,
		run:           runCommand,
	}
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.Output()
}

// Status queries the agent, preferring the structured JSON form. Malformed
// JSON falls back to the line-oriented query; only a failed command surfaces
// as an error.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	ctx, cancel := context.WithTimeout(ctx, c.StatusTimeout)
	defer cancel()

	out, err := c.run(ctx, c.Command, "status", "--json")
	if err != nil {
		agentLog.Debug("status_query_failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("tailscale status: %w", err)
	}

	status, err := parseStatusJSON(out)
	if err == nil {
		return status, nil
	}
	agentLog.Debug("status_json_malformed", slog.String("error", err.Error()))

	// Malformed structured output: recover via the line-oriented query.
	lines, lineErr := c.run(ctx, c.Command, "status")
	if lineErr != nil {
		return nil, fmt.Errorf("tailscale status fallback: %w", lineErr)
	}
	return parseStatusLines(lines), nil
}

// Up starts the tailscale connection. Success iff the command exits zero.
func (c *Client) Up(ctx context.Context) error {
	return c.action(ctx, "up")
}

// Down stops the tailscale connection.
func (c *Client) Down(ctx context.Context) error {
	return c.action(ctx, "down")
}

func (c *Client) action(ctx context.Context, verb string) error {
	ctx, cancel := context.WithTimeout(ctx, c.ActionTimeout)
	defer cancel()

	name := c.Command
	args := []string{verb}
	if c.UseSudo {
		name = "sudo"
		args = []string{c.Command, verb}
	}

	if _, err := c.run(ctx, name, args...); err != nil {
		agentLog.Warn("action_failed",
			slog.String("verb", verb),
			slog.String("error", err.Error()))
		return fmt.Errorf("tailscale %s: %w", verb, err)
	}
	agentLog.Info("action_ok", slog.String("verb", verb))
	return nil
}
