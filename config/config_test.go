package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ponytojas/go-roomalyzer/internal/models"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Source.Kind != SourceThingSpeak {
		t.Fatalf("source kind = %q", cfg.Source.Kind)
	}
	if cfg.ThingSpeak.Timeout != 1000*time.Second {
		t.Fatalf("timeout = %s", cfg.ThingSpeak.Timeout)
	}
	if cfg.Window.Width != 24*time.Hour || cfg.Window.Offset != 15*time.Hour {
		t.Fatalf("window = %+v", cfg.Window)
	}
	if cfg.Dehumidifier.Separator != "," {
		t.Fatalf("separator = %q", cfg.Dehumidifier.Separator)
	}
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", `
thingspeak:
  url: http://example.invalid/feeds.json
window:
  width: 12h
  offset: 0h
dehumidifier:
  separator: ";"
`)
	t.Setenv("SERVER_ADDR", ":9999")

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ThingSpeak.URL != "http://example.invalid/feeds.json" {
		t.Fatalf("url = %q", cfg.ThingSpeak.URL)
	}
	if cfg.Window.Width != 12*time.Hour || cfg.Window.Offset != 0 {
		t.Fatalf("window = %+v", cfg.Window)
	}
	if cfg.Dehumidifier.Separator != ";" {
		t.Fatalf("separator = %q", cfg.Dehumidifier.Separator)
	}
	if cfg.Server.Addr != ":9999" {
		t.Fatalf("addr = %q", cfg.Server.Addr)
	}
}

func TestLoadConfigRejectsUnknownSource(t *testing.T) {
	t.Setenv("SOURCE_KIND", "carrier-pigeon")
	if _, err := LoadConfig(t.TempDir()); err == nil {
		t.Fatal("expected error for unknown source kind")
	}
}

func TestLoadThresholds(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "constants.toml", "[humidity_levels]\nhigh = 65\nlow = 35.5\n")

	th, err := LoadThresholds(p)
	if err != nil {
		t.Fatalf("LoadThresholds: %v", err)
	}
	if th.High != 65 || th.Low != 35.5 {
		t.Fatalf("thresholds = %+v", th)
	}
}

func TestLoadThresholdsErrors(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"missing file": filepath.Join(dir, "nope.toml"),
		"missing key":  writeFile(t, dir, "partial.toml", "[humidity_levels]\nhigh = 65\n"),
		"bad syntax":   writeFile(t, dir, "broken.toml", "[humidity_levels\nhigh = \n"),
	}
	for name, path := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadThresholds(path)
			if !errors.Is(err, models.ErrConfig) {
				t.Fatalf("expected ErrConfig, got %v", err)
			}
		})
	}
}

func TestGetMQTTBrokerURL(t *testing.T) {
	cases := []struct {
		broker string
		want   string
	}{
		{"tcp://broker.local", "tcp://broker.local:1883"},
		{"ssl://broker.local:8883", "ssl://broker.local:8883"},
		{"http://broker.local", "tcp://broker.local:1883"},
		{"https://broker.local", "ssl://broker.local:1883"},
		{"broker.local", "tcp://broker.local:1883"},
	}
	for _, tc := range cases {
		cfg := GetDefaultConfig()
		cfg.MQTT.Broker = tc.broker
		if got := cfg.GetMQTTBrokerURL(); got != tc.want {
			t.Errorf("%s: got %s, want %s", tc.broker, got, tc.want)
		}
	}
}
