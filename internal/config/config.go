// Package config contains the loader and model for reopenwarn settings.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	envparse "github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultPath is the config file looked up when none is given.
	DefaultPath = "reopenwarn.yaml"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "REOPENWARN_"

	defaultBaseURL   = "https://stackoverflow.com"
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "reopenwarn/1.0"
)

// DefaultSites is the network of sites the tool is allowed to talk to.
var DefaultSites = []string{
	"askubuntu.com",
	"mathoverflow.net",
	"onstartups.com",
	"serverfault.com",
	"stackapps.com",
	"stackexchange.com",
	"stackoverflow.com",
	"superuser.com",
}

// Config holds runtime settings.
type Config struct {
	// BaseURL is the site used when a bare post id is given.
	BaseURL string `yaml:"baseUrl,omitempty" env:"BASE_URL"`
	// Sites lists allowed host suffixes.
	Sites []string `yaml:"sites,omitempty" env:"SITES"`
	// Timeout bounds each HTTP request.
	Timeout time.Duration `yaml:"timeout,omitempty" env:"TIMEOUT"`
	// UserAgent is sent with requests.
	UserAgent string `yaml:"userAgent,omitempty" env:"USER_AGENT"`
	// Cookie is an optional session cookie so the site sees a logged-in viewer.
	Cookie string `yaml:"cookie,omitempty" env:"COOKIE"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"logLevel,omitempty" env:"LOG_LEVEL"`
	// EnvFiles lists .env files loaded before environment overrides.
	EnvFiles []string `yaml:"envFiles,omitempty"`
}

// LoadOptions controls where Load reads settings from.
type LoadOptions struct {
	// Path is the YAML file. Empty means DefaultPath, which may be absent.
	Path string
	// EnvFiles are extra .env files, applied after those named in the YAML file.
	EnvFiles []string
	// Environ overrides the process environment, mostly for tests.
	Environ Vars
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		BaseURL:   defaultBaseURL,
		Sites:     append([]string(nil), DefaultSites...),
		Timeout:   defaultTimeout,
		UserAgent: defaultUserAgent,
		LogLevel:  "info",
	}
}

// Load layers defaults, the YAML file, .env files and REOPENWARN_* variables.
func Load(opts LoadOptions) (*Config, error) {
	cfg := Default()

	path := opts.Path
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	baseDir := "."
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %q: %w", path, err)
		}
		baseDir = filepath.Dir(path)
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}

	fileVars, err := LoadEnvFiles(baseDir, cfg.EnvFiles)
	if err != nil {
		return nil, err
	}
	extraVars, err := LoadEnvFiles(".", opts.EnvFiles)
	if err != nil {
		return nil, err
	}

	environ := opts.Environ
	if environ == nil {
		environ = FromOS()
	}
	merged := Merge(fileVars, extraVars, environ)

	if err := envparse.ParseWithOptions(cfg, envparse.Options{
		Prefix:      EnvPrefix,
		Environment: merged,
	}); err != nil {
		return nil, fmt.Errorf("parse %s* environment: %w", EnvPrefix, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate normalizes the site list and checks the base URL against it.
func (c *Config) Validate() error {
	sites := make([]string, 0, len(c.Sites))
	for _, s := range c.Sites {
		s = strings.ToLower(strings.Trim(strings.TrimSpace(s), "."))
		if s != "" {
			sites = append(sites, s)
		}
	}
	if len(sites) == 0 {
		return fmt.Errorf("site allow-list is empty")
	}
	c.Sites = sites

	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}

	base, err := c.SiteBaseURL(c.BaseURL)
	if err != nil {
		return fmt.Errorf("base url: %w", err)
	}
	c.BaseURL = base
	return nil
}

// SiteBaseURL checks raw against the allow-list and returns its scheme://host.
func (c *Config) SiteBaseURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid url %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported url scheme %q", u.Scheme)
	}
	if !c.SiteAllowed(u.Hostname()) {
		return "", fmt.Errorf("host %q is not an allowed site", u.Hostname())
	}
	return u.Scheme + "://" + u.Host, nil
}

// SiteAllowed reports whether host is an allowed site or one of its subdomains.
func (c *Config) SiteAllowed(host string) bool {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	for _, site := range c.Sites {
		if host == site || strings.HasSuffix(host, "."+site) {
			return true
		}
	}
	return false
}

// Target is a post on a specific site.
type Target struct {
	BaseURL string
	PostID  string
}

var (
	numericID   = regexp.MustCompile(`^[0-9]+$`)
	postPathRef = regexp.MustCompile(`^/(?:questions|q|posts)/([0-9]+)(?:/|$)`)
)

// ResolveTarget accepts a bare post id or a question/post URL on an allowed site.
func (c *Config) ResolveTarget(arg string) (Target, error) {
	arg = strings.TrimSpace(arg)
	if numericID.MatchString(arg) {
		return Target{BaseURL: c.BaseURL, PostID: arg}, nil
	}

	base, err := c.SiteBaseURL(arg)
	if err != nil {
		return Target{}, fmt.Errorf("expected a post id or question url: %w", err)
	}
	u, _ := url.Parse(arg)
	m := postPathRef.FindStringSubmatch(u.Path)
	if m == nil {
		return Target{}, fmt.Errorf("no post id in url path %q", u.Path)
	}
	return Target{BaseURL: base, PostID: m[1]}, nil
}
