package main

import (
	"fmt"
	"io"
	"os"

	"github.com/martinemde/aip/browser"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:          "aip",
	Short:        "AIP node tools",
	Long:         "aip parses, validates, formats and browses AIP node documents.",
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "Config file (YAML)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().Bool("debug", false, "Debug output")
	rootCmd.PersistentFlags().String("extension", browser.DefaultExtension, "File extension appended to node targets")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("extension", rootCmd.PersistentFlags().Lookup("extension"))
}

func initConfig() {
	viper.SetEnvPrefix("AIP")
	viper.AutomaticEnv()
	viper.SetDefault("max_content_lines", browser.DefaultMaxContentLines)

	if cfg := viper.GetString("config"); cfg != "" {
		viper.SetConfigFile(cfg)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: reading config %s: %v\n", cfg, err)
		}
	}
}

// newLogger builds the console logger for a command. Warnings only by
// default, info with --verbose, everything with --debug.
func newLogger(w io.Writer) zerolog.Logger {
	level := zerolog.WarnLevel
	switch {
	case viper.GetBool("debug"):
		level = zerolog.DebugLevel
	case viper.GetBool("verbose"):
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(level).
		With().Timestamp().Logger()
}
