// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/canonical/tenant-collector/internal/types"
	"gopkg.in/yaml.v3"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// view renders tenants as table rows under a fixed header.
type view struct {
	header string
	rows   func(t *types.Tenant) [][]string
}

var tenantsView = view{
	header: "PLATFORM\tID\tNAME\tTAGS",
	rows: func(t *types.Tenant) [][]string {
		return [][]string{{string(t.Platform), t.PlatformTenantID, t.PlatformTenantName, formatTags(t.Tags)}}
	},
}

var costsView = view{
	header: "PLATFORM\tID\tNAME\tFROM\tTO\tCOST\tCURRENCY",
	rows: func(t *types.Tenant) [][]string {
		rows := make([][]string, 0, len(t.Costs))
		for _, c := range t.Costs {
			rows = append(rows, []string{string(t.Platform), t.PlatformTenantID, t.PlatformTenantName, c.From, c.To, c.Cost, c.Currency})
		}
		return rows
	},
}

var iamView = view{
	header: "PLATFORM\tID\tPRINCIPAL\tTYPE\tROLE\tSOURCE\tASSIGNMENT",
	rows: func(t *types.Tenant) [][]string {
		rows := make([][]string, 0, len(t.RoleAssignments))
		for _, ra := range t.RoleAssignments {
			rows = append(rows, []string{string(t.Platform), t.PlatformTenantID, ra.PrincipalName, string(ra.PrincipalType), ra.RoleName, string(ra.AssignmentSource), ra.AssignmentID})
		}
		return rows
	},
}

func render(w io.Writer, format string, v view, tenants []*types.Tenant) error {
	switch format {
	case formatTable:
		tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
		fmt.Fprintln(tw, v.header)
		for _, t := range tenants {
			for _, row := range v.rows(t) {
				fmt.Fprintln(tw, strings.Join(row, "\t"))
			}
		}
		return tw.Flush()
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tenants)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tenants); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q, expected table, json or yaml", format)
	}
}

func formatTags(tags []types.Tag) string {
	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		parts = append(parts, tag.Name+"="+strings.Join(tag.Values, ","))
	}
	sort.Strings(parts)
	return strings.Join(parts, " ")
}
