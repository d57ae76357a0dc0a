// Package cmd is for command line interactions with the packed-dna application
package cmd

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mustafa-guler/packed-dna/config"
	"github.com/mustafa-guler/packed-dna/internal/logging"
	"github.com/mustafa-guler/packed-dna/internal/seqdb"
)

// stderr is for logging to Stderr (without an annoying timestamp)
var stderr = log.New(os.Stderr, "", 0)

// logger is rebuilt from settings before each command runs.
var logger = zap.NewNop()

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use: "packed-dna",
	Short: `Pack DNA sequences to two bits per base. Count and transform
sequences and keep a local database of them by name`,
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zapcore.InfoLevel
		if viper.GetBool("verbose") {
			level = zapcore.DebugLevel
		}
		logger = logging.New(level, viper.GetString("log-file"), viper.GetBool("json-log"))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

// set flags
func init() {
	cobra.OnInitialize(initSettings)

	// settings is an optional parameter for a settings file (that overrides the defaults)
	RootCmd.PersistentFlags().StringP("settings", "s", config.RootSettingsFile, "Settings file <YAML>")
	RootCmd.PersistentFlags().StringP("db", "d", "", "Path to the sequence database directory")
	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "Whether to log debug output")
	RootCmd.PersistentFlags().String("log", "", "File to write rotating logs to")
	RootCmd.PersistentFlags().Bool("json-log", false, "Whether to log JSON lines rather than console output")
	viper.BindPFlag("settings", RootCmd.PersistentFlags().Lookup("settings"))
	viper.BindPFlag("db", RootCmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag("verbose", RootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("log-file", RootCmd.PersistentFlags().Lookup("log"))
	viper.BindPFlag("json-log", RootCmd.PersistentFlags().Lookup("json-log"))
}

// initSettings reads the optional settings file into viper. A missing
// file is fine, the defaults and flags cover every setting.
func initSettings() {
	settings := viper.GetString("settings")
	if settings == "" {
		return
	}

	viper.SetConfigFile(settings)
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return
		}
		stderr.Fatalf("failed to read settings from %s: %v", settings, err)
	}
}

// openDB opens the sequence database configured for this run and
// returns it with a context carrying the logger. Callers own the close.
func openDB(cmd *cobra.Command) (*seqdb.DB, context.Context) {
	c := config.New()

	db, err := seqdb.Open(c.DB, c.CacheSize)
	if err != nil {
		stderr.Fatalln(err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return db, logging.NewContext(ctx, logger)
}
