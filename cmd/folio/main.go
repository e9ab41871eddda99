package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/eringen/folio"
)

// version is set at build time via ldflags.
var version = "dev"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Photography portfolio and blog API",
	Long: `folio serves the JSON API behind a photography portfolio: the public
gallery, blog and about page, and a token protected admin surface.

Configuration is read from an optional YAML file, then from FOLIO_*
environment variables (a .env file in the working directory is loaded first).`,
	SilenceUsage: true,
}

func main() {
	// A missing .env is normal in production.
	_ = godotenv.Load()

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to a YAML config file")
	rootCmd.AddCommand(serveCmd(), adminCmd(), versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (folio.Config, error) {
	return folio.LoadConfig(cfgFile)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the folio version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "folio %s\n", version)
		},
	}
}
