// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pubmed-papers/internal/pipeline"
	"github.com/pdiddy/pubmed-papers/internal/pubmed"
	"github.com/pdiddy/pubmed-papers/internal/secrets"
	"github.com/pdiddy/pubmed-papers/pkg/types"
)

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	debug := debugWriter(cmd)
	fmt.Fprintf(debug, "debug: output=%s format=%s db=%q\n", cfg.Output.File, cfg.Output.Format, cfg.Output.DB)

	// The library-default client: no timeout, no retry.
	client := pubmed.NewClient(nil, cfg.NCBI, cfg.HTTP.UserAgent)
	client.Debug = debug

	_, err = pipeline.Run(context.Background(), client, pipeline.Options{
		Query:  args[0],
		Output: cfg.Output,
		Out:    os.Stdout,
		Debug:  debug,
	})
	return err
}

// loadConfig assembles the invocation's settings from flags, environment,
// config file, and .secrets/, in that order of precedence, and validates
// the result.
func loadConfig() (types.Config, error) {
	cfg := types.Config{
		NCBI: types.NCBIConfig{
			APIKey: secretDefault(secrets.NCBIAPIKey, viper.GetString("ncbi.api_key")),
			Email:  secretDefault(secrets.NCBIEmail, viper.GetString("ncbi.email")),
			Tool:   viper.GetString("ncbi.tool"),
		},
		HTTP: types.HTTPConfig{
			UserAgent: viper.GetString("http.user_agent"),
		},
		Output: types.OutputConfig{
			File:    viper.GetString("output.file"),
			Format:  types.OutputFormat(viper.GetString("output.format")),
			DB:      viper.GetString("output.db"),
			Preview: viper.GetBool("output.preview"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func debugWriter(cmd *cobra.Command) io.Writer {
	if on, _ := cmd.Flags().GetBool("debug"); on {
		return os.Stderr
	}
	return io.Discard
}

func debugf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(debugWriter(cmd), "debug: "+format+"\n", args...)
}
