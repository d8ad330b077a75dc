package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type fakeResolver map[string]string

func (f fakeResolver) Resolve(_ context.Context, name string) (string, error) {
	v, ok := f[name]
	if !ok {
		return "", errors.New("parameter not found")
	}
	return v, nil
}

func writeSite(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "site.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExampleSite_Shape(t *testing.T) {
	var raw map[string]any
	if err := yaml.Unmarshal(ExampleSiteTemplate(), &raw); err != nil {
		t.Fatalf("template is not valid YAML: %v", err)
	}
	if len(raw) != 1 {
		t.Errorf("expected only the supabase top-level key, got %v", raw)
	}
	supabase, ok := raw["supabase"].(map[string]any)
	if !ok {
		t.Fatalf("expected supabase section, got %v", raw)
	}
	var keys []string
	for k := range supabase {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if strings.Join(keys, ",") != "anonKey,url" {
		t.Errorf("unexpected supabase keys %v", keys)
	}

	site := ExampleSite()
	if err := site.Validate(); err != nil {
		t.Errorf("expected template to validate, got %v", err)
	}
	if site.Analytics != nil {
		t.Errorf("expected analytics to be absent by default, got %+v", site.Analytics)
	}
	if got := strings.Join(site.Keys(), ","); got != "supabase.url,supabase.anonKey" {
		t.Errorf("unexpected keys %s", got)
	}
}

func TestExampleSiteIgnoresEnvironment(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://env.supabase.co")
	t.Setenv("ANALYTICS_GATRACKINGID", "G-ENV")

	site := ExampleSite()
	if site.Supabase.URL != "https://your-project-ref.supabase.co" {
		t.Errorf("Supabase.URL = %q, want the template value", site.Supabase.URL)
	}
	if site.Analytics != nil {
		t.Errorf("Analytics = %+v, want nil", site.Analytics)
	}
}

func TestLoadSite(t *testing.T) {
	path := writeSite(t, `
supabase:
  url: https://abc.supabase.co
  anonKey: anon
analytics:
  gaTrackingId: G-123
`)

	site, err := LoadSite(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if site.Supabase.URL != "https://abc.supabase.co" || site.Supabase.AnonKey != "anon" {
		t.Errorf("unexpected supabase config %+v", site.Supabase)
	}
	if site.GATrackingID() != "G-123" {
		t.Errorf("expected tracking id, got %q", site.GATrackingID())
	}
	if site.SentryDSN() != "" {
		t.Errorf("expected no sentry dsn, got %q", site.SentryDSN())
	}
	want := "supabase.url,supabase.anonKey,analytics.gaTrackingId"
	if got := strings.Join(site.Keys(), ","); got != want {
		t.Errorf("expected keys %s, got %s", want, got)
	}
}

func TestLoadSite_EnvOverride(t *testing.T) {
	path := writeSite(t, "supabase:\n  url: https://abc.supabase.co\n  anonKey: anon\n")
	t.Setenv("SUPABASE_ANONKEY", "from-env")
	t.Setenv("ANALYTICS_SENTRYDSN", "https://key@o0.ingest.sentry.io/1")

	site, err := LoadSite(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if site.Supabase.AnonKey != "from-env" {
		t.Errorf("expected env override, got %q", site.Supabase.AnonKey)
	}
	if site.SentryDSN() != "https://key@o0.ingest.sentry.io/1" {
		t.Errorf("expected sentry dsn from env, got %q", site.SentryDSN())
	}
}

func TestLoadSite_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown key", "supabase:\n  url: https://abc.supabase.co\n  anonKey: anon\n  serviceRoleKey: nope\n"},
		{"missing anon key", "supabase:\n  url: https://abc.supabase.co\n"},
		{"relative url", "supabase:\n  url: abc\n  anonKey: anon\n"},
		{"secret without resolver", "supabase:\n  url: https://abc.supabase.co\n  anonKey: ssm:/site/anon\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadSite(context.Background(), writeSite(t, tt.body), nil); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadSite_ResolvesSecrets(t *testing.T) {
	path := writeSite(t, "supabase:\n  url: https://abc.supabase.co\n  anonKey: ssm:/site/anon\n")
	if !UsesSecrets(path) {
		t.Fatal("expected file to reference secrets")
	}

	site, err := LoadSite(context.Background(), path, fakeResolver{"/site/anon": "resolved"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if site.Supabase.AnonKey != "resolved" {
		t.Errorf("expected resolved secret, got %q", site.Supabase.AnonKey)
	}
}

func TestWriteExampleSite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	if err := WriteExampleSite(path); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := WriteExampleSite(path); err == nil {
		t.Error("expected refusing to overwrite")
	}
	if _, err := LoadSite(context.Background(), path, nil); err != nil {
		t.Errorf("expected scaffolded file to load, got %v", err)
	}
}
