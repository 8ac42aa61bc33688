// Package cmd defines and implements the CLI commands for the blogmap executable.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/kitsunelab/blogmap/internal/logging"
)

var cfgFile string

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blogmap",
		Short: "Scrapes a blog's sitemap and maps every post's outbound links.",
		Long: `blogmap fetches a blog's XML sitemap, retrieves each listed post with
bounded concurrency and a politeness delay, extracts the page title and
outbound hyperlinks, and writes the aggregated results to a CSV file.`,

		// Build the logger after config is loaded but before the subcommand runs.
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			logger, err := logging.New(viper.GetBool("logging.development"))
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			zap.ReplaceGlobals(logger)
			return nil
		},
	}

	cobra.OnInitialize(initConfig)

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	cmd.AddCommand(newScrapeCmd())

	return cmd
}

// initConfig initializes Viper: defaults, search paths, and env overrides.
func initConfig() {
	viper.SetConfigName("config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.blogmap")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	viper.SetDefault("scrape.sitemap_url", "")
	viper.SetDefault("scrape.output_path", "scraped_links.csv")
	viper.SetDefault("scrape.concurrency", 10)
	viper.SetDefault("scrape.request_timeout", "20s")
	viper.SetDefault("scrape.delay_min", "500ms")
	viper.SetDefault("scrape.delay_max", "1500ms")
	viper.SetDefault("scrape.user_agent",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	viper.SetDefault("ops.listen_addr", "")
	viper.SetDefault("logging.development", true)

	viper.SetEnvPrefix("BLOGMAP") // e.g. BLOGMAP_SCRAPE_CONCURRENCY=5
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "error reading config file: %v\n", err)
		}
	}
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
