package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/StephanieJJ/jupiter-audit/core"
	"github.com/StephanieJJ/jupiter-audit/internal/contract"
	"github.com/StephanieJJ/jupiter-audit/internal/loader"
	"github.com/StephanieJJ/jupiter-audit/schema"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// fileLoader reads the CSV and XLSX exports named on the command line.
var fileLoader = loader.NewFileLoader()

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "jupiter",
	Short:              "Audit CRM exports for data quality and business risk.",
	Long:               `Jupiter reads contacts, companies and tickets exports and tells you how healthy your CRM data is and what to fix first.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in the .env file, config file and ENV variables if set.
func initConfig() {
	// A .env file is optional; it only seeds JUPITER_* variables.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		contract.LogWarn("Cannot read .env file", err)
	}

	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Set config file name and paths
		viper.SetConfigName(".jupiter") // Name of config file (without extension)
		viper.SetConfigType("yaml")     // We'll use YAML format
		viper.AddConfigPath(".")        // Look in the current directory
		viper.AddConfigPath("$HOME")    // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("JUPITER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("cold-days", schema.DefaultColdDays)
	viper.SetDefault("critical-hours", schema.DefaultCriticalHours)
	viper.SetDefault("top-industries", schema.DefaultTopIndustries)
	viper.SetDefault("max-rows", 0)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("color", "yes")
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(_ context.Context, _ *cobra.Command, _ []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Run all validation and complex parsing.
	// This function populates the global 'cfg' from 'input'.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	fileLoader.Sheet = viper.GetString("sheet")
	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// runExecutor adapts a core executor to a cobra Run function.
func runExecutor(action string, execute core.ExecutorFunc) func(*cobra.Command, []string) {
	return func(_ *cobra.Command, _ []string) {
		if err := execute(rootCtx, cfg, fileLoader); err != nil {
			contract.LogFatal(action, err)
		}
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
