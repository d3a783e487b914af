// Command market serves the commodity market over HTTP and settles payments from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go-commodity-market/config"
)

// Version is set at build time.
var Version = "dev"

var (
	// flagCatalog overrides MARKET_CATALOG
	flagCatalog string

	// flagLogLevel overrides MARKET_LOG_LEVEL
	flagLogLevel string

	// env is loaded once by PersistentPreRunE
	env config.Env
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "market",
	Short:         "Market values commodity baskets and settles payments against loans",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		env, err = config.ParseEnv()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("catalog") {
			env.Catalog = flagCatalog
		}
		if cmd.Flags().Changed("log-level") {
			env.LogLevel = flagLogLevel
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagCatalog, "catalog", "", "commodity catalog file or SQLite database (default: $MARKET_CATALOG)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "debug, info, warn or error (default: $MARKET_LOG_LEVEL)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(payCmd)
}
