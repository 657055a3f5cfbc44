// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Run     RunConfig     `yaml:"run"`
	DVM     DVMConfig     `yaml:"dvm"`
	TempLog TempLogConfig `yaml:"templog"`
	MQTT    *MQTTConfig   `yaml:"mqtt,omitempty"`
}

// ---- OUTPUT ----

type OutputConfig struct {
	// File is the output filename root; the run start time and the .csv
	// extension are appended at startup.
	File string `yaml:"file"`
}

// ---- RUN ----

type RunConfig struct {
	Records int `yaml:"records"`
	Samples int `yaml:"samples"`
}

// ---- INSTRUMENTS ----

type DVMConfig struct {
	Port      string `yaml:"port"`
	TimeoutMs int    `yaml:"timeout_ms"`
	Range     string `yaml:"range"`
}

type TempLogConfig struct {
	Port      string `yaml:"port"`
	TimeoutMs int    `yaml:"timeout_ms"`
	Enabled   bool   `yaml:"enabled"`
}

// ---- MQTT (optional live feed) ----

type MQTTConfig struct {
	Server   string `yaml:"server"`
	ClientID string `yaml:"client_id"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Topic    string `yaml:"topic"`
}

// Default mirrors the historical bench setup.
func Default() *Config {
	return &Config{
		Output: OutputConfig{File: "DMMLogger"},
		Run:    RunConfig{Records: 500, Samples: 3},
		DVM: DVMConfig{
			Port:      "/dev/ttyUSB0",
			TimeoutMs: 500,
			Range:     "VOLT:DC 10,DEF",
		},
		TempLog: TempLogConfig{
			Port:      "/dev/ttyUSB1",
			TimeoutMs: 500,
			Enabled:   true,
		},
	}
}

// Load reads the YAML file at path over the defaults. An empty path yields
// the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func (d DVMConfig) Timeout() time.Duration {
	return time.Duration(d.TimeoutMs) * time.Millisecond
}

func (t TempLogConfig) Timeout() time.Duration {
	return time.Duration(t.TimeoutMs) * time.Millisecond
}
