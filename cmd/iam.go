// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var iamCmd = &cobra.Command{
	Use:   "iam",
	Short: "Collect IAM role assignments of every tenant",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		return a.run(func(ctx context.Context) error {
			tenants, err := a.service.CollectRoleAssignments(ctx, a.platforms)
			if err != nil {
				return fmt.Errorf("failed to collect role assignments: %w", err)
			}

			return render(cmd.OutOrStdout(), outputFormat, iamView, tenants)
		})
	},
}

func init() {
	rootCmd.AddCommand(iamCmd)
}
