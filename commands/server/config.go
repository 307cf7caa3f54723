package server

import (
	"io/ioutil"
	"os"

	"github.com/iov-one/nftsale/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the daemon settings. It is read from a YAML file and each
// value can be overwritten with a command line flag.
type Config struct {
	// Bind is the address the ABCI server listens on.
	Bind string `yaml:"bind"`
	// HTTP is the address of the read only query API. Empty disables it.
	HTTP string `yaml:"http"`
	// DataDir is where the application state is kept, relative paths are
	// resolved against the home directory. Empty keeps state in memory.
	DataDir string `yaml:"data_dir"`
	// Debug makes error responses carry the full error details.
	Debug bool `yaml:"debug"`
	// LogLevel is one of debug, info, error or none.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Bind:     "tcp://localhost:26658",
		HTTP:     "localhost:8080",
		DataDir:  "sale.db",
		LogLevel: "info",
	}
}

// LoadConfig reads the YAML configuration file. A missing file results in
// the default configuration.
func LoadConfig(path string) (Config, error) {
	conf := DefaultConfig()
	raw, err := ioutil.ReadFile(path)
	switch {
	case err == nil:
	case os.IsNotExist(err):
		return conf, nil
	default:
		return conf, errors.Wrapf(errors.ErrInput, "read config: %s", err)
	}
	if err := yaml.Unmarshal(raw, &conf); err != nil {
		return conf, errors.Wrapf(errors.ErrInput, "parse config %q: %s", path, err)
	}
	return conf, conf.Validate()
}

// Validate returns an error if the configuration cannot be used.
func (c Config) Validate() error {
	var errs error
	if c.Bind == "" {
		errs = errors.AppendField(errs, "Bind", errors.ErrEmpty)
	}
	switch c.LogLevel {
	case "debug", "info", "error", "none":
	default:
		errs = errors.AppendField(errs, "LogLevel", errors.Wrapf(errors.ErrInput, "unknown level %q", c.LogLevel))
	}
	return errs
}
