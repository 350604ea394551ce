package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return configPath
}

func TestLoad_ValidConfig(t *testing.T) {
	content := `
lights:
  default_port: 9123
  request_timeout: 5
discovery:
  addresses: "192.168.1.10, 192.168.1.11"
  device_count: "2"
  timeout: 5
api:
  host: "0.0.0.0"
  port: 8090
logging:
  level: debug
  format: text
`
	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Discovery.Addresses != "192.168.1.10, 192.168.1.11" {
		t.Errorf("Discovery.Addresses = %q", cfg.Discovery.Addresses)
	}
	if cfg.Lights.DefaultPort != 9123 {
		t.Errorf("Lights.DefaultPort = %d, want 9123", cfg.Lights.DefaultPort)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{}\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Lights.DefaultPort != 9123 {
		t.Errorf("default Lights.DefaultPort = %d, want 9123", cfg.Lights.DefaultPort)
	}
	if cfg.Discovery.Timeout != 5 {
		t.Errorf("default Discovery.Timeout = %d, want 5", cfg.Discovery.Timeout)
	}
	if cfg.API.Port != 8090 {
		t.Errorf("default API.Port = %d, want 8090", cfg.API.Port)
	}
	if cfg.MQTT.Enabled {
		t.Error("MQTT should be disabled by default")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "invalid: [yaml: content"))
	if err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LUMEN_DISCOVERY_ADDRESSES", "10.0.0.5")
	t.Setenv("LUMEN_DISCOVERY_DEVICE_COUNT", "3")
	t.Setenv("LUMEN_MQTT_HOST", "broker.local")

	cfg, err := Load(writeConfig(t, "{}\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Discovery.Addresses != "10.0.0.5" {
		t.Errorf("Discovery.Addresses = %q, want %q", cfg.Discovery.Addresses, "10.0.0.5")
	}
	if count, _ := cfg.GetDeviceCount(); count != 3 {
		t.Errorf("GetDeviceCount() = %d, want 3", count)
	}
	if cfg.MQTT.Broker.Host != "broker.local" {
		t.Errorf("MQTT.Broker.Host = %q, want %q", cfg.MQTT.Broker.Host, "broker.local")
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config { return defaultConfig() }

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid defaults",
			mutate: func(*Config) {},
		},
		{
			name:    "bad device count",
			mutate:  func(c *Config) { c.Discovery.DeviceCount = "two" },
			wantErr: "device_count",
		},
		{
			name:    "zero device count",
			mutate:  func(c *Config) { c.Discovery.DeviceCount = "0" },
			wantErr: "device_count",
		},
		{
			name:    "bad api port",
			mutate:  func(c *Config) { c.API.Port = 70000 },
			wantErr: "api.port",
		},
		{
			name:    "bad qos",
			mutate:  func(c *Config) { c.MQTT.QoS = 3 },
			wantErr: "mqtt.qos",
		},
		{
			name:    "zero discovery timeout",
			mutate:  func(c *Config) { c.Discovery.Timeout = 0 },
			wantErr: "discovery.timeout",
		},
		{
			name:    "influxdb enabled without url",
			mutate:  func(c *Config) { c.InfluxDB.Enabled = true; c.InfluxDB.Bucket = "lumen" },
			wantErr: "influxdb.url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_DurationHelpers(t *testing.T) {
	cfg := defaultConfig()
	if got := cfg.GetDiscoveryTimeout(); got != 5*time.Second {
		t.Errorf("GetDiscoveryTimeout() = %v, want 5s", got)
	}
	if got := cfg.GetRequestTimeout(); got != 5*time.Second {
		t.Errorf("GetRequestTimeout() = %v, want 5s", got)
	}
	if got := cfg.GetReadTimeout(); got != 30*time.Second {
		t.Errorf("GetReadTimeout() = %v, want 30s", got)
	}
}
