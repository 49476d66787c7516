package config

import (
	"flag"
	"fmt"
	"io"
	"net/url"
	"time"

	"dario.cat/mergo"
)

// DefaultClientServerURL is the API origin used when none is configured.
const DefaultClientServerURL = "http://localhost:8080"

// ClientConfig holds the CLI client settings.
type ClientConfig struct {
	// ServerURL is the API origin (e.g. "https://qrk.example.com").
	// Env: QRK_SERVER
	ServerURL string `env:"QRK_SERVER"`

	// Token is the bearer token sent on owner-scoped requests.
	// Env: QRK_TOKEN
	Token string `env:"QRK_TOKEN"`

	// RequestTimeout is the default timeout for outbound requests.
	// Env: QRK_TIMEOUT
	RequestTimeout time.Duration `env:"QRK_TIMEOUT"`
}

// GetClientConfig merges client settings from environment variables, the
// global flags at the head of args, and defaults, in that order of
// precedence. It returns the arguments left after the global flags, which
// start with the subcommand name.
//
// Flags:
//
//	-server API origin
//	-token bearer token
//	-timeout request timeout
func GetClientConfig(args []string) (*ClientConfig, []string, error) {
	envCfg := &ClientConfig{}
	if err := parseEnv(envCfg); err != nil {
		return nil, nil, err
	}

	fs := flag.NewFlagSet("qrk-client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	flagsCfg := &ClientConfig{}
	fs.StringVar(&flagsCfg.ServerURL, "server", "", "API origin")
	fs.StringVar(&flagsCfg.Token, "token", "", "Bearer token")
	fs.DurationVar(&flagsCfg.RequestTimeout, "timeout", 0, "Request timeout")
	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg := new(ClientConfig)
	for _, src := range []*ClientConfig{envCfg, flagsCfg, {ServerURL: DefaultClientServerURL, RequestTimeout: DefaultRequestTimeout}} {
		if err := mergo.Merge(cfg, src); err != nil {
			return nil, nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return cfg, fs.Args(), cfg.validate()
}

func (cfg *ClientConfig) validate() error {
	u, err := url.Parse(cfg.ServerURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%w: server url %q must be absolute", ErrInvalidClientConfigs, cfg.ServerURL)
	}
	if cfg.RequestTimeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidClientConfigs)
	}

	return nil
}
