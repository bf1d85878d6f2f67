// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package gcp

type Credential struct {
	Account string `json:"account"`
	Status  string `json:"status"`
}

type Binding struct {
	Role    string   `json:"role"`
	Members []string `json:"members"`
}

// AncestorPolicy is the IAM policy of the project or one of its folders or its organization.
type AncestorPolicy struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Policy struct {
		Bindings []Binding `json:"bindings"`
	} `json:"policy"`
}

// Scope renders the resource as organizations/<id>, folders/<id> or projects/<id>.
func (a AncestorPolicy) Scope() string {
	return a.Type + "s/" + a.ID
}

// BillingRow is one aggregated row of the billing export query. bq renders every value as a string.
type BillingRow struct {
	ProjectID string `json:"project_id"`
	Month     string `json:"month"`
	Service   string `json:"service"`
	Currency  string `json:"currency"`
	Cost      string `json:"cost"`
}
