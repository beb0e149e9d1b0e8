package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ksk-aiko/ResumeWebsite/internal/walker"
)

// EnvPrefix prefixes environment overrides, e.g. RESUMESITE_PUBLIC_DIR.
const EnvPrefix = "RESUMESITE_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (RESUMESITE_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: RESUMESITE_PUBLIC_DIR -> public_dir,
	// RESUMESITE_SERVER__PORT -> server.port.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	// Lists from the file or env replace the defaults instead of
	// overwriting them element by element.
	for key, list := range map[string]*[]string{"include": &cfg.Include, "exclude": &cfg.Exclude} {
		if k.Exists(key) {
			*list = nil
		}
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validLogFormats is the set of recognized log_format values.
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.PublicDir == "" {
		return fmt.Errorf("public_dir is required")
	}

	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}

	if c.Origin != "" {
		u, err := url.Parse(c.Origin)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid origin %q: must be an http(s) URL", c.Origin)
		}
	}

	if c.LogFormat != "" && !validLogFormats[c.LogFormat] {
		return fmt.Errorf("invalid log_format %q: must be one of json, console", c.LogFormat)
	}

	if err := (walker.PageFilter{Include: c.Include, Exclude: c.Exclude}).Validate(); err != nil {
		return err
	}

	if c.Partials.MaxConcurrency < 0 {
		return fmt.Errorf("partials.max_concurrency must be non-negative")
	}

	if c.Portfolio.Path == "" {
		return fmt.Errorf("portfolio.path is required")
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 0 and 65535")
	}

	if c.Server.TimeoutSeconds < 0 {
		return fmt.Errorf("server.timeout_seconds must be non-negative")
	}

	return nil
}
