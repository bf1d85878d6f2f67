// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package azure

import (
	"encoding/json"
	"fmt"
)

type Account struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	User struct {
		Name string `json:"name"`
		Type string `json:"type"`
	} `json:"user"`
}

type tagsResource struct {
	Properties struct {
		Tags map[string]string `json:"tags"`
	} `json:"properties"`
}

type Column struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// CostQueryResult is a cost management query answer. Depending on the CLI version the table
// is at the top level or under properties.
type CostQueryResult struct {
	Columns    []Column `json:"columns"`
	Rows       [][]any  `json:"rows"`
	Properties *struct {
		Columns []Column `json:"columns"`
		Rows    [][]any  `json:"rows"`
	} `json:"properties,omitempty"`
}

func (r *CostQueryResult) table() ([]Column, [][]any) {
	if len(r.Columns) == 0 && r.Properties != nil {
		return r.Properties.Columns, r.Properties.Rows
	}
	return r.Columns, r.Rows
}

// ServiceCost is one row of a query grouped by ServiceName.
type ServiceCost struct {
	Service  string
	Cost     string
	Currency string
}

// ServiceCosts reads the Cost, ServiceName and Currency columns. Costs are decoded as
// json.Number and kept verbatim.
func (r *CostQueryResult) ServiceCosts() ([]ServiceCost, error) {
	columns, rows := r.table()

	costIdx, serviceIdx, currencyIdx := -1, -1, -1
	for i, c := range columns {
		switch c.Name {
		case "Cost", "PreTaxCost":
			costIdx = i
		case "ServiceName":
			serviceIdx = i
		case "Currency":
			currencyIdx = i
		}
	}
	if costIdx < 0 {
		return nil, fmt.Errorf("missing cost column in cost query result")
	}

	out := make([]ServiceCost, 0, len(rows))
	for _, row := range rows {
		if len(row) <= costIdx {
			continue
		}
		sc := ServiceCost{Cost: numberString(row[costIdx])}
		if serviceIdx >= 0 && serviceIdx < len(row) {
			sc.Service, _ = row[serviceIdx].(string)
		}
		if currencyIdx >= 0 && currencyIdx < len(row) {
			sc.Currency, _ = row[currencyIdx].(string)
		}
		out = append(out, sc)
	}
	return out, nil
}

func numberString(v any) string {
	switch n := v.(type) {
	case json.Number:
		return n.String()
	case string:
		return n
	case float64:
		return fmt.Sprintf("%v", n)
	}
	return ""
}

type RoleAssignment struct {
	ID                 string `json:"id"`
	PrincipalID        string `json:"principalId"`
	PrincipalName      string `json:"principalName"`
	PrincipalType      string `json:"principalType"`
	RoleDefinitionID   string `json:"roleDefinitionId"`
	RoleDefinitionName string `json:"roleDefinitionName"`
	Scope              string `json:"scope"`
}
