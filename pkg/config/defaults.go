package config

import "strings"

// ApplyDefaults sets default values for any unspecified configuration
// fields.
//
// Default Strategy:
//   - Zero values (0, "", false) are replaced with defaults
//   - Explicit values are preserved
func ApplyDefaults(cfg *Config) {
	applyCodecDefaults(&cfg.Codec)
	applyBufferDefaults(&cfg.Buffer)
	applyLoggingDefaults(&cfg.Logging)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyMetricsDefaults(&cfg.Metrics)
}

// applyCodecDefaults sets the default CDR dialect and byte order.
func applyCodecDefaults(cfg *CodecConfig) {
	if cfg.Version == "" {
		cfg.Version = "XCDRv2"
	}

	if cfg.Endianness == "" {
		cfg.Endianness = "default-host"
	}
}

// applyBufferDefaults sets growable-buffer sizing defaults.
func applyBufferDefaults(cfg *BufferConfig) {
	if cfg.InitialSize == 0 {
		cfg.InitialSize = 4096
	}
	// HardCap defaults to 0 (unbounded growth)
}

// applyLoggingDefaults sets logging defaults and normalizes values.
func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Output == "" {
		cfg.Output = "stdout"
	}
}

// applyTelemetryDefaults sets OpenTelemetry defaults.
func applyTelemetryDefaults(cfg *TelemetryConfig) {
	// Enabled defaults to false (opt-in)

	if cfg.Endpoint == "" {
		cfg.Endpoint = "localhost:4317"
	}

	// Insecure defaults to false; local development must opt in
	// explicitly rather than silently skipping TLS.

	if cfg.SampleRate == 0 {
		cfg.SampleRate = 1.0
	}
}

// applyMetricsDefaults sets the default metrics port.
func applyMetricsDefaults(cfg *MetricsConfig) {
	if cfg.Enabled && cfg.Port == 0 {
		cfg.Port = 9090
	}
}

// GetDefaultConfig returns a Config struct with all default values
// applied.
func GetDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
