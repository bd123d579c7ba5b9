package correlations

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/correlations/model"
	"github.com/viant/correlations/service/meta"
	"github.com/viant/correlations/service/projection"
)

// Config is a serialisable representation of the service configuration. It
// can be loaded from JSON or YAML with LoadConfig; ${env.KEY} expressions are
// expanded before decoding.
type Config struct {
	Backend    BackendConfig    `json:"backend" yaml:"backend"`
	Registry   RegistryConfig   `json:"registry" yaml:"registry"`
	Resolution ResolutionConfig `json:"resolution" yaml:"resolution"`
	// ReadOnly disables create, update and delete.
	ReadOnly bool `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`
}

// BackendConfig points at the remote API. An empty URL selects the in-memory
// backend.
type BackendConfig struct {
	URL         string             `json:"url,omitempty" yaml:"url,omitempty"`
	TimeoutMs   int                `json:"timeoutMs,omitempty" yaml:"timeoutMs,omitempty"`
	OrgID       string             `json:"orgId,omitempty" yaml:"orgId,omitempty"`
	Credentials *CredentialsConfig `json:"credentials,omitempty" yaml:"credentials,omitempty"`
}

// CredentialsConfig locates a scy-managed secret.
type CredentialsConfig struct {
	URL  string `json:"url" yaml:"url"`
	Key  string `json:"key,omitempty" yaml:"key,omitempty"`
	Kind string `json:"kind,omitempty" yaml:"kind,omitempty"`
}

// RegistryConfig lists provisioning documents and inline descriptors.
type RegistryConfig struct {
	URLs        []string            `json:"urls,omitempty" yaml:"urls,omitempty"`
	DataSources []*model.DataSource `json:"datasources,omitempty" yaml:"datasources,omitempty"`
}

type ResolutionConfig struct {
	Policy string `json:"policy,omitempty" yaml:"policy,omitempty"`
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() *Config {
	return &Config{
		Backend:    BackendConfig{TimeoutMs: 30000},
		Resolution: ResolutionConfig{Policy: string(projection.Strict)},
	}
}

// Timeout returns the per-request timeout.
func (c *BackendConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// Validate returns an error describing the first invalid setting, or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Backend.TimeoutMs < 0 {
		return fmt.Errorf("backend.timeoutMs must be >= 0")
	}
	if c.Backend.URL != "" {
		u, err := url.Parse(c.Backend.URL)
		if err != nil {
			return fmt.Errorf("invalid backend.url: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("backend.url: unsupported scheme %q", u.Scheme)
		}
	}
	if c.Backend.Credentials != nil && c.Backend.Credentials.URL == "" {
		return fmt.Errorf("backend.credentials.url was empty")
	}
	if _, err := projection.ParsePolicy(c.Resolution.Policy); err != nil {
		return fmt.Errorf("resolution.policy: %w", err)
	}
	for i, ds := range c.Registry.DataSources {
		if ds == nil || ds.UID == "" {
			return fmt.Errorf("registry.datasources[%d]: missing uid", i)
		}
	}
	return nil
}

// LoadConfig reads a configuration document over DefaultConfig and validates
// it. URL may use any afs scheme.
func LoadConfig(ctx context.Context, URL string, options ...storage.Option) (*Config, error) {
	ret := DefaultConfig()
	if err := meta.New(afs.New(), "", options...).Load(ctx, URL, ret); err != nil {
		return nil, err
	}
	if err := ret.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", URL, err)
	}
	return ret, nil
}
