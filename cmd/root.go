// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	platformNames []string
	outputFormat  string
	cacheDir      string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:          "tenant-collector",
	Short:        "Cloud tenant collector",
	Long:         `Collects tenants, tags, costs and IAM role assignments from AWS, Azure and GCP into a local cache.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&platformNames, "platforms", nil, "Comma-separated platforms to query, defaults to PLATFORMS")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", formatTable, "Output format: table, json or yaml")
	rootCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", "", "Cache directory, defaults to CACHE_DIR")
}
