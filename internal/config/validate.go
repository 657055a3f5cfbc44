// internal/config/validate.go
package config

import "errors"

// Validate checks configuration correctness after flag overrides have been
// applied. It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil")
	}

	if cfg.Output.File == "" {
		return errors.New("config: output file root required")
	}

	if cfg.Run.Records <= 0 {
		return errors.New("config: run records must be > 0")
	}
	if cfg.Run.Samples <= 0 {
		return errors.New("config: run samples must be > 0")
	}

	if cfg.DVM.Port == "" {
		return errors.New("config: dvm port required")
	}
	if cfg.DVM.TimeoutMs <= 0 {
		return errors.New("config: dvm timeout must be > 0")
	}

	if cfg.TempLog.Enabled {
		if cfg.TempLog.Port == "" {
			return errors.New("config: templog port required when enabled")
		}
		if cfg.TempLog.TimeoutMs <= 0 {
			return errors.New("config: templog timeout must be > 0")
		}
	}

	if cfg.MQTT != nil {
		if cfg.MQTT.Server == "" {
			return errors.New("config: mqtt server required")
		}
		if cfg.MQTT.Topic == "" {
			return errors.New("config: mqtt topic required")
		}
	}

	return nil
}
