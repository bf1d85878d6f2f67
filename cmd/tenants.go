// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/canonical/tenant-collector/internal/types"
	"github.com/spf13/cobra"
)

var tenantsCmd = &cobra.Command{
	Use:   "tenants",
	Short: "Manage cloud tenants",
}

var listTenantsCmd = &cobra.Command{
	Use:   "list",
	Short: "List tenants of the selected platforms",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		return a.run(func(ctx context.Context) error {
			tenants, err := a.service.ListTenants(ctx, a.platforms)
			if err != nil {
				return fmt.Errorf("failed to list tenants: %w", err)
			}

			return render(cmd.OutOrStdout(), outputFormat, tenantsView, tenants)
		})
	},
}

var tagValues []string

var tagTenantCmd = &cobra.Command{
	Use:   "tag [platform] [tenant-id]",
	Short: "Replace tags on a tenant",
	Long: `Replace the given tags on a tenant, keeping the others.
Each --tag is name=value, multiple values are comma separated: --tag owner=alice,bob`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		platform, err := types.ParsePlatform(args[0])
		if err != nil {
			return err
		}

		tags, err := parseTags(tagValues)
		if err != nil {
			return err
		}

		a, err := newApp()
		if err != nil {
			return err
		}

		return a.run(func(ctx context.Context) error {
			t, err := a.service.TagTenant(ctx, platform, args[1], tags)
			if err != nil {
				return fmt.Errorf("failed to tag tenant: %w", err)
			}

			return render(cmd.OutOrStdout(), outputFormat, tenantsView, []*types.Tenant{t})
		})
	},
}

// parseTags turns name=v1,v2 arguments into tags, the last occurrence of a name wins.
func parseTags(raw []string) ([]types.Tag, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("at least one --tag is required")
	}

	tags := make([]types.Tag, 0, len(raw))
	index := make(map[string]int, len(raw))

	for _, r := range raw {
		name, values, found := strings.Cut(r, "=")
		name = strings.TrimSpace(name)

		if !found || name == "" {
			return nil, fmt.Errorf("invalid tag %q, expected name=value", r)
		}

		tag := types.Tag{Name: name, Values: splitValues(values)}

		if i, ok := index[name]; ok {
			tags[i] = tag
			continue
		}

		index[name] = len(tags)
		tags = append(tags, tag)
	}

	return tags, nil
}

func splitValues(s string) []string {
	values := make([]string, 0)

	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}

	return values
}

func init() {
	rootCmd.AddCommand(tenantsCmd)
	tenantsCmd.AddCommand(listTenantsCmd)
	tenantsCmd.AddCommand(tagTenantCmd)

	tagTenantCmd.Flags().StringArrayVar(&tagValues, "tag", nil, "Tag to set as name=value[,value...], repeatable")
}
