package browser

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultDebugHost is the host probed for an already-running instance.
	DefaultDebugHost = "localhost"

	// DefaultDebugPort is the remote debugging port used when none is configured.
	DefaultDebugPort = 9222
)

// Proxy configures an upstream proxy for launched browser instances.
type Proxy struct {
	// Server is the proxy address, e.g. "http://myproxy.com:3128"
	Server string `yaml:"server"`

	// Bypass is an optional comma-separated list of hosts to bypass
	Bypass string `yaml:"bypass,omitempty"`

	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
}

// ContextConfig configures a browsing context spawned from an instance.
type ContextConfig struct {
	// ViewportWidth and ViewportHeight set the initial viewport size.
	// Both must be positive for the viewport to be applied.
	ViewportWidth  int `yaml:"viewport_width,omitempty"`
	ViewportHeight int `yaml:"viewport_height,omitempty"`

	// UserAgent overrides the browser's default user agent when set
	UserAgent string `yaml:"user_agent,omitempty"`

	// Locale sets the context locale, e.g. "en-US"
	Locale string `yaml:"locale,omitempty"`

	// IgnoreHTTPSErrors disables TLS certificate validation in the context
	IgnoreHTTPSErrors bool `yaml:"ignore_https_errors,omitempty"`
}

// Config describes how a Browser should obtain its instance. It is a plain
// value: build it once, hand it to New, and don't mutate it afterwards.
//
// Connection mode is selected from the fields in strict priority order:
//
//  1. CDPURL set: attach to a remote instance over CDP
//  2. WSSURL set: attach to a remote instance over WebSocket
//  3. ExecutablePath set: reuse a locally running instance on the debug
//     port, or start one from that executable
//  4. otherwise: launch a fresh instance with generated arguments
type Config struct {
	// Headless runs the browser without a visible window
	Headless bool `yaml:"headless"`

	// DisableSecurity relaxes same-origin policy and site isolation.
	// Useful for automation against trusted targets; never enable it for
	// general browsing.
	DisableSecurity bool `yaml:"disable_security"`

	// ExtraArgs are appended to the generated launch arguments
	ExtraArgs []string `yaml:"extra_args,omitempty"`

	// ExecutablePath points at a browser binary to reuse or start,
	// e.g. "/usr/bin/google-chrome"
	ExecutablePath string `yaml:"executable_path,omitempty"`

	// WSSURL attaches to a remote instance over WebSocket when set
	WSSURL string `yaml:"wss_url,omitempty"`

	// CDPURL attaches to a remote instance over CDP when set,
	// e.g. "http://localhost:9222"
	CDPURL string `yaml:"cdp_url,omitempty"`

	// Proxy routes instance traffic through a proxy server when set
	Proxy *Proxy `yaml:"proxy,omitempty"`

	// KeepAlive leaves the underlying instance running on Close
	KeepAlive bool `yaml:"keep_alive"`

	// DebugHost and DebugPort locate the local debugging endpoint used by
	// the reuse-or-launch path. Zero values fall back to localhost:9222.
	DebugHost string `yaml:"debug_host,omitempty"`
	DebugPort int    `yaml:"debug_port,omitempty"`

	// DefaultContext configures contexts created without an explicit
	// ContextConfig
	DefaultContext ContextConfig `yaml:"default_context,omitempty"`
}

// DefaultConfig returns the configuration used when the caller provides
// nothing: a headed browser with security relaxation enabled, matching the
// expectations of automation workloads.
func DefaultConfig() Config {
	return Config{
		Headless:        false,
		DisableSecurity: true,
		DebugHost:       DefaultDebugHost,
		DebugPort:       DefaultDebugPort,
	}
}

// applyDefaults fills zero-valued fields that have non-zero defaults.
func (c *Config) applyDefaults() {
	if c.DebugHost == "" {
		c.DebugHost = DefaultDebugHost
	}
	if c.DebugPort == 0 {
		c.DebugPort = DefaultDebugPort
	}
}

// debugEndpoint returns the HTTP endpoint of the local debugging port.
func (c Config) debugEndpoint() string {
	return fmt.Sprintf("http://%s:%d", c.DebugHost, c.DebugPort)
}

// versionURL returns the readiness probe URL for the local debugging port.
func (c Config) versionURL() string {
	return c.debugEndpoint() + "/json/version"
}

// LoadConfig reads a Config from a YAML file and applies defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config from %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config from %s: %w", path, err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// Save writes the Config to a YAML file, creating or truncating it.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config to %s: %w", path, err)
	}

	return nil
}
