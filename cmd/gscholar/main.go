// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the gscholar CLI: scraping Google
// Scholar search results and author profiles into structured citation
// records, exporting formatted references, and maintaining a local
// citation database.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the gscholar CLI.
var rootCmd = &cobra.Command{
	Use:   "gscholar",
	Short: "Scrape citation metadata from Google Scholar",
	Long: `gscholar retrieves citation metadata (title, authors, venue, year,
citation counts) from Google Scholar search results and author profiles,
for use in bibliography tooling.

Scholar has no API; gscholar paginates through the rendered HTML pages,
tolerating markup drift and partial pages, and stops cleanly when the
service starts refusing automated access. Results can be printed, saved
to a YAML file, or upserted into a local SQLite citation database.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./gscholar.yaml or ~/.config/gscholar/config.yaml)")
	rootCmd.PersistentFlags().String("cookies", "", "JSON cookie file loaded before and saved after scraping")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("gscholar")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "gscholar"))
		}
	}

	viper.SetEnvPrefix("GSCHOLAR")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
