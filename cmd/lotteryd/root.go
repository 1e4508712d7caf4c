package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pushchain/tl-lottery/app"
	"github.com/pushchain/tl-lottery/config"
)

const (
	flagHome      = "home"
	flagLogLevel  = "log-level"
	flagLogFormat = "log-format"

	envPrefix = "LOTTERYD"
)

// DefaultNodeHome is ~/.lotteryd.
var DefaultNodeHome = func() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + app.Name
	}
	return filepath.Join(home, "."+app.Name)
}()

func NewRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:           app.Name,
		Short:         "TL commit-reveal lottery node",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return v.BindPFlags(cmd.Flags())
		},
	}

	rootCmd.PersistentFlags().String(flagHome, DefaultNodeHome, "node home directory")
	rootCmd.PersistentFlags().Int(flagLogLevel, -1, "log level override (0=debug ... 5=panic)")
	rootCmd.PersistentFlags().String(flagLogFormat, "", "log format override (json or console)")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	InitRootCmd(rootCmd, v)

	return rootCmd
}

// loadConfig reads the node config from the home directory and applies flag
// and LOTTERYD_* environment overrides.
func loadConfig(v *viper.Viper) (config.Config, string, error) {
	home := v.GetString(flagHome)

	cfg, err := config.Load(home)
	if err != nil {
		return config.Config{}, home, err
	}
	if cfg.NodeHome == "" {
		cfg.NodeHome = home
	}
	if lvl := v.GetInt(flagLogLevel); lvl >= 0 {
		if lvl > 5 {
			return config.Config{}, home, fmt.Errorf("log level must be between 0 and 5")
		}
		cfg.LogLevel = lvl
	}
	switch format := v.GetString(flagLogFormat); format {
	case "":
	case "json", "console":
		cfg.LogFormat = format
	default:
		return config.Config{}, home, fmt.Errorf("log format must be 'json' or 'console'")
	}
	return cfg, home, nil
}
