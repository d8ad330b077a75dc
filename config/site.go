package config

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/viper"
)

//go:embed site.example.yaml
var exampleSite []byte

// SiteConfig is the connection and analytics configuration the site front-end
// needs. The real file is supplied per deployment; site.example.yaml documents
// its shape.
type SiteConfig struct {
	Supabase  SupabaseConfig   `mapstructure:"supabase" json:"supabase"`
	Analytics *AnalyticsConfig `mapstructure:"analytics" json:"analytics,omitempty"`
}

type SupabaseConfig struct {
	URL     string `mapstructure:"url" json:"url"`
	AnonKey string `mapstructure:"anonKey" json:"anonKey"`
}

// AnalyticsConfig is optional as a whole and per key
type AnalyticsConfig struct {
	GATrackingID *string `mapstructure:"gaTrackingId" json:"gaTrackingId,omitempty"`
	SentryDSN    *string `mapstructure:"sentryDsn" json:"sentryDsn,omitempty"`
}

// siteKeys are the only keys a site configuration may carry
var siteKeys = []string{
	"supabase.url",
	"supabase.anonKey",
	"analytics.gaTrackingId",
	"analytics.sentryDsn",
}

// SecretResolver looks up a secret by name
type SecretResolver interface {
	Resolve(ctx context.Context, name string) (string, error)
}

const secretPrefix = "ssm:"

// ExampleSite returns the embedded template parsed into a SiteConfig.
// Environment overrides are not applied.
func ExampleSite() *SiteConfig {
	v := newSiteViper()
	if err := v.ReadConfig(bytes.NewReader(exampleSite)); err != nil {
		panic(fmt.Sprintf("failed to parse embedded site template: %v", err))
	}
	site, err := decodeSite(v)
	if err != nil {
		panic(fmt.Sprintf("failed to decode embedded site template: %v", err))
	}
	return site
}

// ExampleSiteTemplate returns the raw template bytes
func ExampleSiteTemplate() []byte {
	return bytes.Clone(exampleSite)
}

// WriteExampleSite scaffolds a site config file from the template. It refuses
// to overwrite an existing file.
func WriteExampleSite(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("site config already exists at %s", path)
	}
	if err := os.WriteFile(path, exampleSite, 0o600); err != nil {
		return fmt.Errorf("failed to write site config: %w", err)
	}
	return nil
}

// LoadSite reads the site configuration at path. SUPABASE_URL,
// SUPABASE_ANONKEY, ANALYTICS_GATRACKINGID and ANALYTICS_SENTRYDSN override
// the file. Values prefixed with "ssm:" are resolved through secrets, which
// may be nil when no such values are used.
func LoadSite(ctx context.Context, path string, secrets SecretResolver) (*SiteConfig, error) {
	v := newSiteViper()
	bindSiteEnv(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read site config %s: %w", path, err)
	}

	site, err := decodeSite(v)
	if err != nil {
		return nil, err
	}
	if err := site.resolveSecrets(ctx, secrets); err != nil {
		return nil, err
	}
	if err := site.Validate(); err != nil {
		return nil, err
	}
	return site, nil
}

func newSiteViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	return v
}

func bindSiteEnv(v *viper.Viper) {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range siteKeys {
		// BindEnv only errors without a key
		_ = v.BindEnv(key)
	}
}

func decodeSite(v *viper.Viper) (*SiteConfig, error) {
	for _, key := range v.AllKeys() {
		if !knownSiteKey(key) {
			return nil, fmt.Errorf("unknown site config key %q", key)
		}
	}

	var site SiteConfig
	if err := v.Unmarshal(&site); err != nil {
		return nil, fmt.Errorf("unable to decode site config: %w", err)
	}
	if site.Analytics != nil && site.Analytics.GATrackingID == nil && site.Analytics.SentryDSN == nil {
		site.Analytics = nil
	}
	return &site, nil
}

// viper lowercases keys
func knownSiteKey(key string) bool {
	for _, k := range siteKeys {
		if strings.EqualFold(k, key) {
			return true
		}
	}
	return false
}

// Validate checks the required keys
func (s *SiteConfig) Validate() error {
	if s.Supabase.URL == "" {
		return errors.New("supabase.url is required")
	}
	u, err := url.Parse(s.Supabase.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("supabase.url must be an absolute URL, got %q", s.Supabase.URL)
	}
	if s.Supabase.AnonKey == "" {
		return errors.New("supabase.anonKey is required")
	}
	return nil
}

// Keys returns the dotted keys that hold a value
func (s *SiteConfig) Keys() []string {
	keys := []string{}
	if s.Supabase.URL != "" {
		keys = append(keys, "supabase.url")
	}
	if s.Supabase.AnonKey != "" {
		keys = append(keys, "supabase.anonKey")
	}
	if s.Analytics != nil {
		if s.Analytics.GATrackingID != nil {
			keys = append(keys, "analytics.gaTrackingId")
		}
		if s.Analytics.SentryDSN != nil {
			keys = append(keys, "analytics.sentryDsn")
		}
	}
	return keys
}

// GATrackingID returns the tracking id or "" when analytics is off
func (s *SiteConfig) GATrackingID() string {
	if s == nil || s.Analytics == nil || s.Analytics.GATrackingID == nil {
		return ""
	}
	return *s.Analytics.GATrackingID
}

func (s *SiteConfig) SentryDSN() string {
	if s == nil || s.Analytics == nil || s.Analytics.SentryDSN == nil {
		return ""
	}
	return *s.Analytics.SentryDSN
}

func (s *SiteConfig) resolveSecrets(ctx context.Context, secrets SecretResolver) error {
	fields := []*string{&s.Supabase.URL, &s.Supabase.AnonKey}
	if s.Analytics != nil {
		fields = append(fields, s.Analytics.GATrackingID, s.Analytics.SentryDSN)
	}

	for _, field := range fields {
		if field == nil || !strings.HasPrefix(*field, secretPrefix) {
			continue
		}
		if secrets == nil {
			return fmt.Errorf("site config references %s but no secret resolver is configured", *field)
		}
		value, err := secrets.Resolve(ctx, strings.TrimPrefix(*field, secretPrefix))
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", *field, err)
		}
		*field = value
	}
	return nil
}

// UsesSecrets reports whether the file at path references any ssm: value.
// Lets callers skip building an AWS client when nothing needs it.
func UsesSecrets(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return bytes.Contains(data, []byte(secretPrefix))
}
