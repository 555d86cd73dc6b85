package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	envClientID     = "REDDIT_CLIENT_ID"
	envClientSecret = "REDDIT_CLIENT_SECRET"
	envUserAgent    = "REDDIT_USER_AGENT"
	envSocketPath   = "REDDIT_MCP_SOCKET"
	envHTTPAddr     = "REDDIT_MCP_HTTP_ADDR"
	envHTTPToken    = "REDDIT_MCP_TOKEN"
	envLogLevel     = "LOG_LEVEL"
	envLogFormat    = "LOG_FORMAT"
)

type Config struct {
	// Reddit API credentials. All three are required to construct the
	// client; the server still serves without them, answering every tool
	// call with the not-initialized message.
	ClientID     string
	ClientSecret string
	UserAgent    string

	// Transport settings.
	SocketPath string
	HTTPAddr   string
	HTTPToken  string

	LogLevel  string
	LogFormat string
}

// Load reads configuration from the environment. The returned Config is
// always usable for serving; the error reports missing Reddit credentials
// and names every absent variable.
func Load() (*Config, error) {
	cfg := &Config{
		ClientID:     os.Getenv(envClientID),
		ClientSecret: os.Getenv(envClientSecret),
		UserAgent:    os.Getenv(envUserAgent),
		SocketPath:   os.Getenv(envSocketPath),
		HTTPAddr:     os.Getenv(envHTTPAddr),
		HTTPToken:    os.Getenv(envHTTPToken),
		LogLevel:     envOr(envLogLevel, "info"),
		LogFormat:    envOr(envLogFormat, "text"),
	}

	var missing []string
	if cfg.ClientID == "" {
		missing = append(missing, envClientID)
	}
	if cfg.ClientSecret == "" {
		missing = append(missing, envClientSecret)
	}
	if cfg.UserAgent == "" {
		missing = append(missing, envUserAgent)
	}
	if len(missing) > 0 {
		return cfg, fmt.Errorf("missing required Reddit API configuration: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// HasCredentials reports whether all three Reddit credential values are set.
func (c *Config) HasCredentials() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.UserAgent != ""
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
