// Package root contains the root command for the application
package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/fiobank/cmd/common"
	"fjacquet/fiobank/internal/config"
	"fjacquet/fiobank/internal/container"
	"fjacquet/fiobank/internal/logging"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	ConfigFile string
	Token      string
	Decimal    bool
	Format     string
	Delimiter  string
	Output     string
	LogLevel   string
}

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// AppContainer is built from configuration before any subcommand runs
	AppContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "fiobank",
		Short: "A CLI tool to download Fio banka account statements.",
		Long: `fiobank downloads account information and transactions from the Fio banka API
and prints them as JSON, YAML or CSV.

The API token is read from --token, FIO_TOKEN or api.token in config.yaml.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	// Common flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default: config.yaml in $HOME/.fiobank, .fiobank or .)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Token, "token", "", "Fio API token")
	Cmd.PersistentFlags().BoolVar(&SharedFlags.Decimal, "decimal", true, "Parse amounts as exact decimals")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Format, "format", "f", config.FormatJSON, "Output format: json, yaml or csv")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Delimiter, "csv-delimiter", ",", "CSV delimiter")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (default: stdout)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level: debug, info, warn or error")
}

func setup(cmd *cobra.Command, args []string) error {
	config.LoadEnv()

	cfg, err := config.LoadConfig(SharedFlags.ConfigFile)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return err
	}
	AppContainer = c
	Log = c.GetLogger()
	Log.Debug("Configuration loaded",
		logging.Field{Key: logging.FieldFormat, Value: cfg.Output.Format},
		logging.Field{Key: logging.FieldOutput, Value: SharedFlags.Output})
	return nil
}

// applyFlags overrides configuration with flags set on the command line.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("token") {
		cfg.API.Token = SharedFlags.Token
	}
	if flags.Changed("decimal") {
		cfg.API.Decimal = SharedFlags.Decimal
	}
	if flags.Changed("format") {
		cfg.Output.Format = SharedFlags.Format
	}
	if flags.Changed("csv-delimiter") {
		cfg.Output.Delimiter = SharedFlags.Delimiter
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = SharedFlags.LogLevel
	}
}

// Printer returns the output printer for the loaded configuration.
func Printer() common.Printer {
	return common.NewPrinter(AppContainer.GetConfig())
}
