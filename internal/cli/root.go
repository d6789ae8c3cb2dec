// Package cli wires the policyfit commands: clean (batch extraction),
// check (profile evaluation), config and version.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/seonghoon-dev/policyfit/internal/logger"
	"github.com/seonghoon-dev/policyfit/internal/model"
)

var (
	cfgFile string
	verbose bool
	jsonLog bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "policyfit",
	Short: "policyfit - structured eligibility extraction for policy text",
	Long: `policyfit turns free-form Korean policy descriptions into comparable
eligibility constraints (age, income, assets, vehicle) and evaluates
applicant profiles against them with an explainable pass/fail/skip
breakdown.

The extractors are deterministic phrase-pattern scanners, not a language
model: ambiguous or compound phrasing is surfaced as advisory notes
rather than guessed at.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("policyfit v0.3.1")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.policyfit/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonLog, "json-log", false, "emit logs as JSON")

	_ = viper.BindPFlag("log.debug", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("log.json", rootCmd.PersistentFlags().Lookup("json-log"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and POLICYFIT_* environment variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.policyfit")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("POLICYFIT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig merges file/env settings over the defaults.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the diagnostics sink for a command run.
func newLogger(cfg *model.Config) (*zap.Logger, error) {
	return logger.New(cfg.Log.JSON, cfg.Log.Debug || verbose)
}
