package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/rpupo63/portfolio-site/config"
	"github.com/rpupo63/portfolio-site/models"
)

func TestSetupLogging(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	tests := []struct {
		level, format string
		want          zerolog.Level
		wantErr       bool
	}{
		{"debug", "console", zerolog.DebugLevel, false},
		{"WARN", "json", zerolog.WarnLevel, false},
		{"", "", zerolog.InfoLevel, false},
		{"loud", "json", 0, true},
		{"info", "xml", 0, true},
	}
	for _, tt := range tests {
		err := setupLogging(tt.level, tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("setupLogging(%q, %q) error = %v, wantErr %v", tt.level, tt.format, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && zerolog.GlobalLevel() != tt.want {
			t.Errorf("setupLogging(%q, %q) level = %v, want %v", tt.level, tt.format, zerolog.GlobalLevel(), tt.want)
		}
	}
}

func TestFooterData(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	cv := &models.CV{Profile: models.Profile{
		Name:  "Ana Lima",
		Links: map[string]string{"LinkedIn": "https://linkedin.com/in/ana", "GitHub": "https://github.com/ana"},
	}}

	got := footerData(&config.Config{OwnerEmail: "ana@example.com"}, cv, now)
	if len(got.Contact) != 1 || got.Contact[0].URL != "mailto:ana@example.com" {
		t.Errorf("Contact = %+v", got.Contact)
	}
	if len(got.Elsewhere) != 2 || got.Elsewhere[0].Label != "GitHub" || got.Elsewhere[1].Label != "LinkedIn" {
		t.Errorf("Elsewhere = %+v, want sorted by label", got.Elsewhere)
	}
	if got.Copyright != "© 2025 Ana Lima" {
		t.Errorf("Copyright = %q", got.Copyright)
	}

	bare := footerData(&config.Config{}, nil, now)
	if len(bare.Contact) != 0 || len(bare.Elsewhere) != 0 || len(bare.Site) == 0 {
		t.Errorf("bare footer = %+v", bare)
	}
	if !strings.HasSuffix(bare.Copyright, defaultSiteTitle) {
		t.Errorf("Copyright = %q, want default title", bare.Copyright)
	}
}

func TestNewDispatcherWithoutCredentials(t *testing.T) {
	d := newDispatcher(&config.Config{OwnerEmail: "ana@example.com"})
	if got := d.Channels(); len(got) != 0 {
		t.Errorf("Channels() = %v, want none", got)
	}
}

func TestLoadSiteWithoutSecrets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	data := "supabase:\n  url: https://abc.supabase.co\n  anonKey: anon\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	site, err := loadSite(context.Background(), path)
	if err != nil {
		t.Fatalf("loadSite: %v", err)
	}
	if site.Supabase.AnonKey != "anon" || site.GATrackingID() != "" {
		t.Errorf("site = %+v", site)
	}
}

func TestConfigInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	t.Setenv("SITE_CONFIG_PATH", path)
	t.Setenv("LOG_LEVEL", "error")
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"config", "init"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("site config not written: %v", err)
	}
	if !strings.Contains(out.String(), path) {
		t.Errorf("output = %q, want it to name %s", out.String(), path)
	}

	rootCmd.SetArgs([]string{"config", "init"})
	if err := rootCmd.ExecuteContext(context.Background()); err == nil {
		t.Error("second config init overwrote the existing file")
	}
}

func TestConfigCheckWarnsOnExampleValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	if err := config.WriteExampleSite(path); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LOG_LEVEL", "error")
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"config", "check", "--path", path})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		configPath = ""
	})

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("config check: %v", err)
	}
	if !strings.Contains(out.String(), "warning: [supabase.url supabase.anonKey]") {
		t.Errorf("output = %q, want a warning naming both supabase keys", out.String())
	}
}

func TestPlaceholderKeys(t *testing.T) {
	site := &config.SiteConfig{Supabase: config.SupabaseConfig{
		URL:     "https://abc.supabase.co",
		AnonKey: config.ExampleSite().Supabase.AnonKey,
	}}
	if got := placeholderKeys(site); len(got) != 1 || got[0] != "supabase.anonKey" {
		t.Errorf("placeholderKeys() = %v, want [supabase.anonKey]", got)
	}

	site.Supabase.AnonKey = "real-anon"
	if got := placeholderKeys(site); len(got) != 0 {
		t.Errorf("placeholderKeys() = %v, want none", got)
	}
}
