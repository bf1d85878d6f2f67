// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/canonical/tenant-collector/internal/windows"
	"github.com/spf13/cobra"
)

var (
	costsFrom string
	costsTo   string
)

var costsCmd = &cobra.Command{
	Use:   "costs",
	Short: "Collect tenant costs over a date range",
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to, err := costRange(costsFrom, costsTo, time.Now())
		if err != nil {
			return err
		}

		a, err := newApp()
		if err != nil {
			return err
		}

		return a.run(func(ctx context.Context) error {
			tenants, err := a.service.CollectCosts(ctx, a.platforms, from, to)
			if err != nil {
				return fmt.Errorf("failed to collect costs: %w", err)
			}

			return render(cmd.OutOrStdout(), outputFormat, costsView, tenants)
		})
	},
}

// costRange parses the --from/--to flags, --to defaults to today.
func costRange(fromFlag, toFlag string, now time.Time) (time.Time, time.Time, error) {
	from, err := windows.ParseDate(fromFlag)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --from: %w", err)
	}

	to := windows.Day(now)
	if toFlag != "" {
		if to, err = windows.ParseDate(toFlag); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --to: %w", err)
		}
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("--to %s is before --from %s", to.Format(windows.DateLayout), from.Format(windows.DateLayout))
	}

	return from, to, nil
}

func init() {
	rootCmd.AddCommand(costsCmd)

	costsCmd.Flags().StringVar(&costsFrom, "from", "", "First day of the range, YYYY-MM-DD")
	costsCmd.Flags().StringVar(&costsTo, "to", "", "Last day of the range, YYYY-MM-DD, defaults to today")
	costsCmd.MarkFlagRequired("from")
}
