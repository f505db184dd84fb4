// Package config loads the engine's optional YAML configuration file. Every
// field is optional; a zero value means "use the spec.md constant" for that
// parameter.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tjol/gopolycubes/internal/errs"
)

// Config holds the tunables an operator may override. See SPEC_FULL.md §4.J.
type Config struct {
	// Workers overrides PARALLEL_TASKS (default: runtime.GOMAXPROCS(0)).
	Workers int `yaml:"workers"`
	// Chunk overrides CHUNK, the streaming-path threshold (default: 2522522).
	Chunk int `yaml:"chunk"`
	// SerialChunkBase overrides the numerator of SERIAL_CHUNK = base/N
	// (default: 3200).
	SerialChunkBase int `yaml:"serial_chunk_base"`
	// LogLevel is one of "debug", "info", "warn", "error" (default: "info").
	LogLevel string `yaml:"log_level"`
	// LogFormat is one of "text" or "json" (default: "text").
	LogFormat string `yaml:"log_format"`
}

// Load reads and parses the YAML config at path. A missing or malformed file
// is reported as errs.ArgumentError, matching the CLI's exit-2 usage-error
// convention.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errs.ArgumentError{Msg: fmt.Sprintf("reading config %s: %v", path, err)}
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, errs.ArgumentError{Msg: fmt.Sprintf("parsing config %s: %v", path, err)}
	}

	if c.Workers < 0 {
		return Config{}, errs.ArgumentError{Msg: "workers must be >= 0"}
	}
	if c.Chunk < 0 {
		return Config{}, errs.ArgumentError{Msg: "chunk must be >= 0"}
	}
	if c.SerialChunkBase < 0 {
		return Config{}, errs.ArgumentError{Msg: "serial_chunk_base must be >= 0"}
	}

	return c, nil
}
