// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"time"
)

type Platform string

const (
	PlatformAWS   Platform = "AWS"
	PlatformAzure Platform = "Azure"
	PlatformGCP   Platform = "GCP"
)

// Tag is a single tag name carrying one or more values.
type Tag struct {
	Name   string   `json:"tagName" yaml:"tagName" validate:"required"`
	Values []string `json:"tagValues" yaml:"tagValues"`
}

// Cost covers one billing window. Cost is kept as a decimal string.
type Cost struct {
	Currency string       `json:"currency" yaml:"currency"`
	From     string       `json:"from" yaml:"from" validate:"required,datetime=2006-01-02"`
	To       string       `json:"to" yaml:"to" validate:"required,datetime=2006-01-02"`
	Cost     string       `json:"cost" yaml:"cost" validate:"required,numeric"`
	Details  []CostDetail `json:"details" yaml:"details"`
}

type CostDetail struct {
	Service  string `json:"service" yaml:"service"`
	Cost     string `json:"cost" yaml:"cost"`
	Currency string `json:"currency" yaml:"currency"`
}

type PrincipalType string

const (
	PrincipalUser          PrincipalType = "User"
	PrincipalGroup         PrincipalType = "Group"
	PrincipalTechnicalUser PrincipalType = "TechnicalUser"
	PrincipalDomain        PrincipalType = "Domain"
	PrincipalOrphan        PrincipalType = "Orphan"
)

type AssignmentSource string

const (
	SourceOrganization AssignmentSource = "Organization"
	SourceAncestor     AssignmentSource = "Ancestor"
	SourceTenant       AssignmentSource = "Tenant"
)

type RoleAssignment struct {
	PrincipalID      string           `json:"principalId" yaml:"principalId"`
	PrincipalName    string           `json:"principalName" yaml:"principalName"`
	PrincipalType    PrincipalType    `json:"principalType" yaml:"principalType" validate:"oneof=User Group TechnicalUser Domain Orphan"`
	RoleID           string           `json:"roleId" yaml:"roleId"`
	RoleName         string           `json:"roleName" yaml:"roleName"`
	AssignmentSource AssignmentSource `json:"assignmentSource" yaml:"assignmentSource" validate:"oneof=Organization Ancestor Tenant"`
	AssignmentID     string           `json:"assignmentId" yaml:"assignmentId"`
}

// Tenant is an AWS account, Azure subscription or GCP project normalized into one shape.
// (Platform, PlatformTenantID) is its identity.
type Tenant struct {
	PlatformTenantID   string           `json:"platformTenantId" yaml:"platformTenantId" validate:"required"`
	PlatformTenantName string           `json:"platformTenantName" yaml:"platformTenantName"`
	Platform           Platform         `json:"platform" yaml:"platform" validate:"required"`
	Tags               []Tag            `json:"tags" yaml:"tags" validate:"dive"`
	Costs              []Cost           `json:"costs" yaml:"costs" validate:"dive"`
	RoleAssignments    []RoleAssignment `json:"roleAssignments" yaml:"roleAssignments" validate:"dive"`
	NativeObj          NativeObj        `json:"nativeObj" yaml:"-"`
}

// TagMap flattens the tags for logging and diffing.
func (t *Tenant) TagMap() map[string][]string {
	m := make(map[string][]string, len(t.Tags))
	for _, tag := range t.Tags {
		m[tag.Name] = tag.Values
	}
	return m
}

// Clone returns a deep copy, so callers can edit tags while keeping the original for diffing.
func (t *Tenant) Clone() *Tenant {
	c := *t

	c.Tags = make([]Tag, len(t.Tags))
	for i, tag := range t.Tags {
		c.Tags[i] = Tag{Name: tag.Name, Values: append([]string(nil), tag.Values...)}
	}
	c.Costs = make([]Cost, len(t.Costs))
	for i, cost := range t.Costs {
		c.Costs[i] = cost
		c.Costs[i].Details = append([]CostDetail(nil), cost.Details...)
	}
	c.RoleAssignments = append([]RoleAssignment(nil), t.RoleAssignments...)

	return &c
}

// CollectionStamp records when a category was collected and for which tenants.
type CollectionStamp struct {
	LastCollection time.Time `json:"lastCollection"`
	TenantIDs      []string  `json:"tenantIds"`
}

type CostCollectionStamp struct {
	From           string    `json:"from"`
	To             string    `json:"to"`
	LastCollection time.Time `json:"lastCollection"`
	TenantIDs      []string  `json:"tenantIds"`
}

const MetaVersion = 2

// Meta holds the freshness stamps of one tenant store. A nil stamp means never collected.
type Meta struct {
	Version          int                  `json:"version"`
	TenantCollection *CollectionStamp     `json:"tenantCollection,omitempty"`
	CostCollection   *CostCollectionStamp `json:"costCollection,omitempty"`
	IAMCollection    *CollectionStamp     `json:"iamCollection,omitempty"`
}

func NewMeta() *Meta {
	return &Meta{Version: MetaVersion}
}
