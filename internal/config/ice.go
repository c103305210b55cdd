package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/pion/webrtc/v4"
)

const envICEServersJSON = "ICE_SERVERS_JSON"

// ICEServerEntry is one ice_servers item in the YAML file.
type ICEServerEntry struct {
	URLs       []string `mapstructure:"urls" json:"urls"`
	Username   string   `mapstructure:"username" json:"username,omitempty"`
	Credential string   `mapstructure:"credential" json:"credential,omitempty"`
}

func (c *Config) resolveICEServers(rawJSON string) error {
	entries := c.ICEServerEntries
	if raw := strings.TrimSpace(rawJSON); raw != "" {
		entries = nil
		if err := json.Unmarshal([]byte(raw), &entries); err != nil {
			return fmt.Errorf("%s: %w", envICEServersJSON, err)
		}
	}
	servers, err := BuildICEServers(entries)
	if err != nil {
		return err
	}
	c.ICEServers = servers
	return nil
}

// BuildICEServers trims and validates entries. TURN servers need credentials.
func BuildICEServers(entries []ICEServerEntry) ([]webrtc.ICEServer, error) {
	out := make([]webrtc.ICEServer, 0, len(entries))
	for i, e := range entries {
		urls := make([]string, 0, len(e.URLs))
		for _, u := range e.URLs {
			if u = strings.TrimSpace(u); u != "" {
				urls = append(urls, u)
			}
		}
		server := webrtc.ICEServer{URLs: urls, Username: strings.TrimSpace(e.Username)}
		if strings.TrimSpace(e.Credential) != "" {
			server.Credential = e.Credential
		}
		if err := validateICEServer(server); err != nil {
			return nil, fmt.Errorf("ice_servers[%d]: %w", i, err)
		}
		out = append(out, server)
	}
	return out, nil
}

func validateICEServer(s webrtc.ICEServer) error {
	if len(s.URLs) == 0 {
		return errors.New("no urls")
	}
	needsAuth := false
	for _, u := range s.URLs {
		lower := strings.ToLower(u)
		switch {
		case strings.HasPrefix(lower, "stun:"), strings.HasPrefix(lower, "stuns:"):
		case strings.HasPrefix(lower, "turn:"), strings.HasPrefix(lower, "turns:"):
			needsAuth = true
		default:
			return fmt.Errorf("unsupported url scheme %q", u)
		}
	}
	if needsAuth {
		cred, _ := s.Credential.(string)
		if s.Username == "" || cred == "" {
			return errors.New("turn server requires username and credential")
		}
	}
	return nil
}
