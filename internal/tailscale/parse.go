package tailscale

import (
	"encoding/json"
	"fmt"
	"strings"
)

// statusJSON mirrors the subset of `tailscale status --json` we consume.
type statusJSON struct {
	BackendState string              `json:"BackendState"`
	TailscaleIPs []string            `json:"TailscaleIPs"`
	Self         *selfJSON           `json:"Self"`
	Peer         map[string]peerJSON `json:"Peer"`
}

type selfJSON struct {
	DNSName  string `json:"DNSName"`
	HostName string `json:"HostName"`
}

type peerJSON struct {
	Online bool `json:"Online"`
}

func parseStatusJSON(data []byte) (*Status, error) {
	var raw statusJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode status json: %w", err)
	}
	if raw.BackendState == "" {
		return nil, fmt.Errorf("status json missing BackendState")
	}

	status := &Status{
		BackendState: raw.BackendState,
		MachineName:  machineNameFromSelf(raw.Self),
	}
	if len(raw.TailscaleIPs) > 0 {
		status.TailscaleIP = raw.TailscaleIPs[0]
	}
	for _, peer := range raw.Peer {
		if peer.Online {
			status.OnlinePeers++
		}
	}
	return status, nil
}

// machineNameFromSelf prefers the first DNS label, then the hostname.
func machineNameFromSelf(self *selfJSON) string {
	if self == nil {
		return "unknown"
	}
	if self.DNSName != "" {
		if name, _, _ := strings.Cut(self.DNSName, "."); name != "" {
			return name
		}
	}
	if self.HostName != "" {
		return self.HostName
	}
	return "unknown"
}

// parseStatusLines extracts what it can from the line-oriented `tailscale
// status` output. The first line describes the current machine:
//
//	100.64.0.5   hostname   user@   linux   -
//
// This path is best-effort; it exists only to survive malformed JSON.
func parseStatusLines(out []byte) *Status {
	status := &Status{
		BackendState: BackendRunning,
		MachineName:  "unknown",
	}

	text := strings.TrimSpace(string(out))
	if text == "" {
		return status
	}
	lines := strings.Split(text, "\n")
	first := strings.TrimSpace(lines[0])

	if strings.Contains(strings.ToLower(first), "stopped") {
		status.BackendState = BackendStopped
		return status
	}

	fields := strings.Fields(first)
	for i, tok := range fields {
		if i == 0 && isTailnetAddr(tok) {
			status.TailscaleIP = tok
			continue
		}
		// The machine name is the first token that is not the
		// machine's own tailnet address.
		if !isTailnetAddr(tok) {
			status.MachineName = tok
			break
		}
	}
	return status
}

// isTailnetAddr reports whether a token looks like an address from the
// tailnet's 100.64.0.0/10 space rather than a machine name.
func isTailnetAddr(tok string) bool {
	return strings.HasPrefix(tok, "100.")
}
