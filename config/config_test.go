// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestNewDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	c := New()

	if c.DB != DefaultDB {
		t.Errorf("Config.DB = %v, want %v", c.DB, DefaultDB)
	}
	if !strings.HasSuffix(c.DB, "seqdb") {
		t.Errorf("Config.DB = %v, want a path ending in seqdb", c.DB)
	}
	if c.CacheSize != 128 {
		t.Errorf("Config.CacheSize = %v, want 128", c.CacheSize)
	}
	if c.LogFile != "" {
		t.Errorf("Config.LogFile = %v, want empty", c.LogFile)
	}
	if c.Verbose {
		t.Error("Config.Verbose = true, want false")
	}
	if c.JSONLog {
		t.Error("Config.JSONLog = true, want false")
	}
}

func TestNewOverrides(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("db", "/tmp/other-seqdb")
	viper.Set("cache-size", 4)
	viper.Set("verbose", true)
	viper.Set("log-file", "/tmp/packed-dna.log")

	c := New()

	if c.DB != "/tmp/other-seqdb" {
		t.Errorf("Config.DB = %v, want /tmp/other-seqdb", c.DB)
	}
	if c.CacheSize != 4 {
		t.Errorf("Config.CacheSize = %v, want 4", c.CacheSize)
	}
	if !c.Verbose {
		t.Error("Config.Verbose = false, want true")
	}
	if c.LogFile != "/tmp/packed-dna.log" {
		t.Errorf("Config.LogFile = %v, want /tmp/packed-dna.log", c.LogFile)
	}
}
