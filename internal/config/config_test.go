package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pion/webrtc/v4"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_Defaults(t *testing.T) {
	req := require.New(t)
	t.Setenv("PORT", "")
	t.Setenv(envICEServersJSON, "")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	req.NoError(err)

	req.Equal(3000, cfg.Port)
	req.Equal("release", cfg.Mode)
	req.Equal(54*time.Second, cfg.PingPeriod)
	req.Equal(60*time.Second, cfg.PongWait())
	req.Equal(10*time.Second, cfg.WriteWait)
	req.Equal(int64(65536), cfg.ReadLimit)
	req.Equal("kick", cfg.SlowPeerPolicy)
	req.Equal(DevSecret, cfg.Secret)
	req.Equal([]webrtc.ICEServer{
		{URLs: []string{"stun:stun.l.google.com:19302"}},
		{URLs: []string{"stun:stun1.l.google.com:19302"}},
	}, cfg.ICEServers)
}

func TestLoadFile_PortFromEnv(t *testing.T) {
	t.Setenv("PORT", "4100")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, 4100, cfg.Port)
}

func TestLoadFile_YAML(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "config.test.yaml")
	yaml := `
mode: debug
port: 8081
ping_period: 30s
slow_peer_policy: drop
ice_servers:
  - urls: ["stun:stun.example.org:3478"]
  - urls: ["turn:turn.example.org:3478"]
    username: bob
    credential: secret
`
	req.NoError(os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := LoadFile(path)
	req.NoError(err)

	req.Equal("debug", cfg.Mode)
	req.Equal(8081, cfg.Port)
	req.Equal(30*time.Second, cfg.PingPeriod)
	req.Equal("drop", cfg.SlowPeerPolicy)
	req.Len(cfg.ICEServers, 2)
	req.Equal("bob", cfg.ICEServers[1].Username)
	req.Equal("secret", cfg.ICEServers[1].Credential)
}

func TestLoadFile_ICEServersFromEnv(t *testing.T) {
	t.Setenv(envICEServersJSON, `[{"urls":["stun:env.example.org:3478"]}]`)

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, []webrtc.ICEServer{{URLs: []string{"stun:env.example.org:3478"}}}, cfg.ICEServers)
}

func TestLoadFile_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "70000")

	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestBuildICEServers(t *testing.T) {
	cases := []struct {
		name    string
		entries []ICEServerEntry
		wantErr bool
	}{
		{name: "stun", entries: []ICEServerEntry{{URLs: []string{" stun:a.example:3478 "}}}},
		{name: "turn with creds", entries: []ICEServerEntry{{URLs: []string{"turns:a.example:5349"}, Username: "u", Credential: "p"}}},
		{name: "turn without creds", entries: []ICEServerEntry{{URLs: []string{"turn:a.example:3478"}}}, wantErr: true},
		{name: "no urls", entries: []ICEServerEntry{{URLs: []string{"  "}}}, wantErr: true},
		{name: "bad scheme", entries: []ICEServerEntry{{URLs: []string{"http://a.example"}}}, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BuildICEServers(tc.entries)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}
