package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, home, body string) string {
	t.Helper()
	dir := filepath.Join(home, ".config", "credfetch")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll() failed: %v", err)
	}
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	return path
}

func defaultsFor(home string) Config {
	want := DefaultConfig()
	want.CookieFile = filepath.Join(home, ".config", "credfetch", "cookies.json")
	return want
}

func TestDefaultConfig(t *testing.T) {
	got := DefaultConfig()

	if got.Timeout != 0 {
		t.Fatalf("Timeout = %s, want 0 (none)", got.Timeout)
	}
	if got.Log.Mode != "development" {
		t.Fatalf("Log.Mode = %q, want development", got.Log.Mode)
	}
	if got.TLS != nil {
		t.Fatal("TLS should be unset by default")
	}
}

func TestLoadReturnsDefaultsWhenConfigMissing(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got := Load("")
	want := defaultsFor(home)

	if got.CookieFile != want.CookieFile || got.Log != want.Log || got.Timeout != want.Timeout {
		t.Fatalf("Load() = %#v, want defaults %#v", got, want)
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	writeConfig(t, home, `base_url: https://app.example.com
cookie_file: /tmp/jar.json
timeout: 42s
proxy: socks5://127.0.0.1:1080
no_proxy: localhost,.internal
tls:
  ca_file: /etc/ssl/ca.pem
  insecure_skip_verify: true
log:
  mode: production
  level: warn
`)

	got := Load("")

	if got.BaseURL != "https://app.example.com" {
		t.Fatalf("BaseURL = %q", got.BaseURL)
	}
	if got.CookieFile != "/tmp/jar.json" {
		t.Fatalf("CookieFile = %q", got.CookieFile)
	}
	if got.Timeout != 42*time.Second {
		t.Fatalf("Timeout = %s, want 42s", got.Timeout)
	}
	if got.TLS == nil || got.TLS.CAFile != "/etc/ssl/ca.pem" || !got.TLS.InsecureSkipVerify {
		t.Fatalf("TLS = %#v", got.TLS)
	}
	if got.Log.Mode != "production" || got.Log.Level != "warn" {
		t.Fatalf("Log = %#v", got.Log)
	}

	tr := got.Transport()
	if tr.ProxyURL != "socks5://127.0.0.1:1080" || tr.NoProxy != "localhost,.internal" || tr.TLS != got.TLS {
		t.Fatalf("Transport() = %#v", tr)
	}
}

func TestLoadExplicitPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "other.yaml")
	if err := os.WriteFile(path, []byte("base_url: http://localhost:8080\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got := Load(path)
	if got.BaseURL != "http://localhost:8080" {
		t.Fatalf("BaseURL = %q, want http://localhost:8080", got.BaseURL)
	}
}

func TestLoadMergesPartialConfigWithDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeConfig(t, home, "base_url: https://a.example\n")

	got := Load("")
	want := defaultsFor(home)
	want.BaseURL = "https://a.example"

	if got.BaseURL != want.BaseURL || got.CookieFile != want.CookieFile || got.Log != want.Log {
		t.Fatalf("Load() = %#v, want %#v", got, want)
	}
}

func TestLoadInvalidYAMLKeepsDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeConfig(t, home, "base_url: https://half.example\nlog: [\n")

	got := Load("")
	if got.BaseURL != "" {
		t.Fatalf("invalid file leaked BaseURL %q", got.BaseURL)
	}
	if got.Log.Mode != "development" {
		t.Fatalf("Log.Mode = %q, want development", got.Log.Mode)
	}
}
