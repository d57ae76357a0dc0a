// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

var (
	// RootSettingsFile is the path checked for a user settings file
	RootSettingsFile = filepath.Join(appDir(), "settings.yaml")

	// DefaultDB is the path of the sequence database when none is
	// configured
	DefaultDB = filepath.Join(appDir(), "seqdb")
)

// Config is the root-level settings struct and is a mix
// of settings available in settings.yaml and those
// available from the command line
type Config struct {
	// path to the sequence DB directory
	DB string `mapstructure:"db"`

	// file to write rotating logs to, or empty for stderr only
	LogFile string `mapstructure:"log-file"`

	// whether to log JSON lines rather than console output
	JSONLog bool `mapstructure:"json-log"`

	// whether to log at debug level
	Verbose bool `mapstructure:"verbose"`

	// number of decoded sequences held in the DB read cache
	CacheSize int `mapstructure:"cache-size"`
}

// New returns a new Config struct populated by
// Viper settings (either from the local settings.yaml)
// and/or command line arguments
func New() *Config {
	viper.SetDefault("db", DefaultDB)
	viper.SetDefault("cache-size", 128)

	c := &Config{}
	if err := viper.Unmarshal(c); err != nil {
		log.Fatalf("unable to decode into struct, %v", err)
	}

	return c
}

// appDir is the directory holding the DB and settings file. It falls
// back to a relative directory when no home directory is resolvable.
func appDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".packed-dna"
	}
	return filepath.Join(home, ".packed-dna")
}
