package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/tedil/go-biomart/pkg/biomart"
	"github.com/tedil/go-biomart/pkg/errors"
)

// envServer overrides the configured server URL when set.
const envServer = "BIOMART_URL"

// Config is the optional TOML configuration read from
// ~/.config/biomart/config.toml.
//
// Example:
//
//	server = "https://www.ensembl.org/biomart/martservice"
//	timeout_seconds = 60
//	default_mart = "ENSEMBL_MART_ENSEMBL"
//	default_dataset = "hsapiens_gene_ensembl"
type Config struct {
	Server         string `toml:"server"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	DefaultMart    string `toml:"default_mart"`
	DefaultDataset string `toml:"default_dataset"`
}

// loadConfig reads the config file if it exists. A missing file yields an
// empty config; a file that exists but cannot be parsed is an error.
func loadConfig() (*Config, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}
	return loadConfigFile(filepath.Join(dir, "config.toml"))
}

func loadConfigFile(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "reading %s", path)
	}
	return &cfg, nil
}

// resolveServer picks the martservice URL: flag, then environment, then
// config file, then the library default.
func (cfg *Config) resolveServer(flag string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv(envServer); env != "" {
		return env
	}
	if cfg.Server != "" {
		return cfg.Server
	}
	return biomart.DefaultServerURL
}

// resolveMart fills an empty mart argument from the config default.
func (cfg *Config) resolveMart(arg string) (string, error) {
	if arg != "" {
		return arg, nil
	}
	if cfg.DefaultMart != "" {
		return cfg.DefaultMart, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "mart name required (argument or default_mart in config)")
}

// resolveDataset fills an empty dataset argument from the config default.
func (cfg *Config) resolveDataset(arg string) (string, error) {
	if arg != "" {
		return arg, nil
	}
	if cfg.DefaultDataset != "" {
		return cfg.DefaultDataset, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "dataset name required (argument or default_dataset in config)")
}
