// Package config loads and validates the server's YAML configuration,
// following the load/override/validate/log sequence used throughout
// this codebase's ambient tooling.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"addrspaced/internal/logger"
)

type FileLoggerConfig struct {
	Path       string `yaml:"path"`
	MaxSize    int    `yaml:"maxSize"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAge     int    `yaml:"maxAge"`
	Compress   bool   `yaml:"compress"`
}

type LoggerConfig struct {
	Active   bool             `yaml:"active"`
	Level    string           `yaml:"level"`
	Encoding string           `yaml:"encoding"`
	Mode     string           `yaml:"mode"`
	File     FileLoggerConfig `yaml:"file"`
}

// ServerConfig carries the address-space traversal server's operational
// limits from spec.md §6. A value of 0 means "unlimited".
type ServerConfig struct {
	MaxReferencesPerNode                     uint32 `yaml:"maxReferencesPerNode"`
	MaxNodesPerBrowse                        uint32 `yaml:"maxNodesPerBrowse"`
	MaxNodesPerTranslateBrowsePathsToNodeIds uint32 `yaml:"maxNodesPerTranslateBrowsePathsToNodeIds"`
	MaxNodesPerRegisterNodes                 uint32 `yaml:"maxNodesPerRegisterNodes"`
	ContinuationPointCap                      int    `yaml:"continuationPointCap"`
}

type TracingConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Exporter string `yaml:"exporter"`
	Endpoint string `yaml:"endpoint"`
}

type TelemetryConfig struct {
	Tracing TracingConfig `yaml:"tracing"`
}

type TransportConfig struct {
	Bind string `yaml:"bind"`
}

type Config struct {
	Logger    LoggerConfig    `yaml:"logger"`
	Server    ServerConfig    `yaml:"server"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Transport TransportConfig `yaml:"transport"`
}

// LoadConfig reads and parses the YAML configuration at path. It
// performs only syntactic parsing; call ValidateConfig afterward.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyEnvOverrides applies environment variable overrides on top of a
// loaded configuration. Supported overrides:
//
//	SERVER_MAX_REFERENCES_PER_NODE -> cfg.Server.MaxReferencesPerNode
//	SERVER_MAX_NODES_PER_BROWSE    -> cfg.Server.MaxNodesPerBrowse
//	SERVER_CP_CAP                  -> cfg.Server.ContinuationPointCap
//	LOGGER_LEVEL                   -> cfg.Logger.Level
//	LOGGER_MODE                    -> cfg.Logger.Mode
//	TRACE_ENABLED                  -> cfg.Telemetry.Tracing.Enabled
//	TRACE_EXPORTER                 -> cfg.Telemetry.Tracing.Exporter
//	TRACE_ENDPOINT                 -> cfg.Telemetry.Tracing.Endpoint
//	TRANSPORT_BIND                 -> cfg.Transport.Bind
func (cfg *Config) ApplyEnvOverrides() {
	if v := os.Getenv("SERVER_MAX_REFERENCES_PER_NODE"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			cfg.Server.MaxReferencesPerNode = uint32(n)
		}
	}
	if v := os.Getenv("SERVER_MAX_NODES_PER_BROWSE"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			cfg.Server.MaxNodesPerBrowse = uint32(n)
		}
	}
	if v := os.Getenv("SERVER_CP_CAP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.ContinuationPointCap = n
		}
	}
	if v := os.Getenv("LOGGER_LEVEL"); v != "" {
		cfg.Logger.Level = v
	}
	if v := os.Getenv("LOGGER_MODE"); v != "" {
		cfg.Logger.Mode = v
	}
	if v := os.Getenv("TRACE_ENABLED"); v != "" {
		v = strings.ToLower(v)
		cfg.Telemetry.Tracing.Enabled = v == "true" || v == "1" || v == "yes"
	}
	if v := os.Getenv("TRACE_EXPORTER"); v != "" {
		cfg.Telemetry.Tracing.Exporter = v
	}
	if v := os.Getenv("TRACE_ENDPOINT"); v != "" {
		cfg.Telemetry.Tracing.Endpoint = v
	}
	if v := os.Getenv("TRANSPORT_BIND"); v != "" {
		cfg.Transport.Bind = v
	}
}

// ValidateConfig performs structural validation of the loaded
// configuration, accumulating every problem found into a single error.
func (cfg *Config) ValidateConfig() error {
	var errs []string

	switch cfg.Logger.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("invalid logger.level: %s", cfg.Logger.Level))
	}
	switch cfg.Logger.Encoding {
	case "console", "json":
	default:
		errs = append(errs, fmt.Sprintf("invalid logger.encoding: %s", cfg.Logger.Encoding))
	}
	switch cfg.Logger.Mode {
	case "stdout":
	case "file":
		if cfg.Logger.File.Path == "" {
			errs = append(errs, "logger.file.path is required when mode=file")
		}
		if cfg.Logger.File.MaxSize < 0 || cfg.Logger.File.MaxBackups < 0 || cfg.Logger.File.MaxAge < 0 {
			errs = append(errs, "logger.file.* values must be non-negative")
		}
	default:
		errs = append(errs, fmt.Sprintf("invalid logger.mode: %s", cfg.Logger.Mode))
	}

	if cfg.Server.ContinuationPointCap < 0 {
		errs = append(errs, "server.continuationPointCap must be >= 0")
	}

	if cfg.Telemetry.Tracing.Enabled {
		switch cfg.Telemetry.Tracing.Exporter {
		case "stdout", "otlp":
		default:
			errs = append(errs, fmt.Sprintf("invalid telemetry.tracing.exporter: %s", cfg.Telemetry.Tracing.Exporter))
		}
		if cfg.Telemetry.Tracing.Exporter == "otlp" && cfg.Telemetry.Tracing.Endpoint == "" {
			errs = append(errs, "telemetry.tracing.endpoint is required when exporter=otlp")
		}
	}

	if cfg.Transport.Bind == "" {
		errs = append(errs, "transport.bind is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// LogConfig emits the loaded configuration at DEBUG level.
func (cfg *Config) LogConfig(lgr logger.Logger) {
	lgr.Debug("loaded configuration",
		logger.F("logger.level", cfg.Logger.Level),
		logger.F("logger.encoding", cfg.Logger.Encoding),
		logger.F("logger.mode", cfg.Logger.Mode),

		logger.F("server.maxReferencesPerNode", cfg.Server.MaxReferencesPerNode),
		logger.F("server.maxNodesPerBrowse", cfg.Server.MaxNodesPerBrowse),
		logger.F("server.maxNodesPerTranslateBrowsePathsToNodeIds", cfg.Server.MaxNodesPerTranslateBrowsePathsToNodeIds),
		logger.F("server.maxNodesPerRegisterNodes", cfg.Server.MaxNodesPerRegisterNodes),
		logger.F("server.continuationPointCap", cfg.Server.ContinuationPointCap),

		logger.F("telemetry.tracing.enabled", cfg.Telemetry.Tracing.Enabled),
		logger.F("telemetry.tracing.exporter", cfg.Telemetry.Tracing.Exporter),
		logger.F("telemetry.tracing.endpoint", cfg.Telemetry.Tracing.Endpoint),

		logger.F("transport.bind", cfg.Transport.Bind),
	)
}
