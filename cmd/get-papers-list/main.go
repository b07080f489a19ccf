// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the get-papers-list CLI. It searches
// PubMed, keeps authors with non-academic affiliations, and writes a CSV
// report.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pubmed-papers/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when it is set, otherwise the secret value
// for key, otherwise "".
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the get-papers-list command. It takes the PubMed query as its
// single positional argument. There are no subcommands, so any single word,
// "version" included, is a query; the build version is under --version.
var rootCmd = &cobra.Command{
	Use:   "get-papers-list <query>",
	Short: "Find PubMed papers with authors from non-academic institutions",
	Long: `get-papers-list searches PubMed for a query, fetches the top 10 matching
papers, and writes a CSV report listing each paper with the authors whose
affiliation does not mention a university.

The query accepts full PubMed syntax, e.g.:

  get-papers-list "CRISPR[Title] AND 2023[PDAT]" -f crispr.csv`,
	Version:      version,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			debugf(cmd, "loaded secrets: %v", keys)
		}
		for _, name := range secrets.Unknown(s) {
			fmt.Fprintf(os.Stderr, "warning: ignoring unrecognized secret %s\n", name)
		}
		return nil
	},
	RunE: runQuery,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./get-papers-list.yaml or ~/.config/get-papers-list/get-papers-list.yaml)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "print debug information to stderr")

	rootCmd.Flags().StringP("file", "f", "results.csv", "filename to save the results to")
	rootCmd.Flags().String("format", "csv", "report format: csv, json, or yaml")
	rootCmd.Flags().String("db", "", "also export the results to this SQLite database")
	rootCmd.Flags().Bool("preview", false, "print the results as a table before saving")
	rootCmd.Flags().String("email", "", "contact email sent to NCBI")
	rootCmd.Flags().String("api-key", "", "NCBI API key")

	bindFlag("output.file", "file")
	bindFlag("output.format", "format")
	bindFlag("output.db", "db")
	bindFlag("output.preview", "preview")
	bindFlag("ncbi.email", "email")
	bindFlag("ncbi.api_key", "api-key")

	rootCmd.SetVersionTemplate("get-papers-list {{.Version}}\n")
	viper.SetDefault("http.user_agent", "get-papers-list/"+version)
}

func bindFlag(key, flag string) {
	if err := viper.BindPFlag(key, rootCmd.Flags().Lookup(flag)); err != nil {
		panic(err)
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("get-papers-list")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "get-papers-list"))
		}
	}

	viper.SetEnvPrefix("GET_PAPERS_LIST")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	// NCBI keys may live in a .env file.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
