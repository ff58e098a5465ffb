package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the root configuration for dqts, stored in ~/.dqts/config.json.
// The file supports single-line // comments for documentation purposes.
type Config struct {
	Backend BackendConfig `json:"backend"`
	Auth    AuthConfig    `json:"auth"`
	Submit  SubmitConfig  `json:"submit"`
}

// BackendConfig holds the DQ HR backend connection settings.
type BackendConfig struct {
	// BaseURL is the root of the DQ backend REST API.
	BaseURL string `json:"base_url"`
	// TaskDescription is attached to every created or updated entry.
	TaskDescription string `json:"task_description"`
}

// AuthConfig holds the OAuth2 device code flow settings.
type AuthConfig struct {
	// IssuerURL is the identity provider's issuer base for the tenant.
	IssuerURL string `json:"issuer_url"`
	// ClientID is the registered app (client) ID for the device code flow.
	ClientID string `json:"client_id"`
}

// SubmitConfig tunes the submit-for-approval workflow.
type SubmitConfig struct {
	// SettleDelaySeconds is how long to wait after the pre-submit save
	// before re-reading the week. The backend lists freshly created
	// entries with a short lag.
	SettleDelaySeconds int `json:"settle_delay_seconds"`
}

const (
	// DefaultBaseURL points at the production DQ APPS backend.
	DefaultBaseURL = "https://api.dq-apps.com"
	// DefaultIssuerURL is the shared DQ sign-in tenant.
	DefaultIssuerURL = "https://login.dq-apps.com/common"
	// DefaultClientID is the public dqts app registration.
	DefaultClientID = "dqts-cli"
	// DefaultSettleDelaySeconds tolerates the backend's read-after-write lag.
	DefaultSettleDelaySeconds = 2
)

// defaultConfig returns a Config pre-filled with sensible defaults.
func defaultConfig() Config {
	return Config{
		Backend: BackendConfig{
			BaseURL:         DefaultBaseURL,
			TaskDescription: "",
		},
		Auth: AuthConfig{
			IssuerURL: DefaultIssuerURL,
			ClientID:  DefaultClientID,
		},
		Submit: SubmitConfig{
			SettleDelaySeconds: DefaultSettleDelaySeconds,
		},
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing,
// allowing human-readable documentation inside the file.
const configTemplate = `// dqts configuration – ~/.dqts/config.json
//
// All settings are optional; the built-in defaults shown below target the
// production DQ APPS deployment. Edit this file to point dqts elsewhere.
{
  // ── DQ HR backend ────────────────────────────────────────────────────────
  "backend": {
    // Root of the DQ backend REST API.
    "base_url": "https://api.dq-apps.com",

    // Description attached to every created or updated timesheet entry.
    // Leave empty to omit.
    "task_description": ""
  },

  // ── Sign-in (OAuth2 device code flow) ────────────────────────────────────
  "auth": {
    // Identity provider issuer for your tenant.
    "issuer_url": "https://login.dq-apps.com/common",

    // App (client) ID registered for the CLI.
    "client_id": "dqts-cli"
  },

  // ── Submit for approval ──────────────────────────────────────────────────
  "submit": {
    // Seconds to wait after the pre-submit save before re-reading the week.
    "settle_delay_seconds": 2
  }
}
`

// configFilePath returns the path to ~/.dqts/config.json.
func configFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".dqts", "config.json"), nil
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads ~/.dqts/config.json, writing the annotated template on first
// run. Missing fields fall back to the defaults.
func Load() (Config, error) {
	cfg := defaultConfig()

	path, err := configFilePath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if werr := writeTemplate(path); werr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not write default config: %v\n", werr)
		}
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(stripLineComments(data), &cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	if cfg.Backend.BaseURL == "" {
		cfg.Backend.BaseURL = DefaultBaseURL
	}
	if cfg.Auth.IssuerURL == "" {
		cfg.Auth.IssuerURL = DefaultIssuerURL
	}
	if cfg.Auth.ClientID == "" {
		cfg.Auth.ClientID = DefaultClientID
	}
	if cfg.Submit.SettleDelaySeconds < 0 {
		cfg.Submit.SettleDelaySeconds = 0
	}
	return cfg, nil
}

func writeTemplate(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(configTemplate), 0o600)
}
