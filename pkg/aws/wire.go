// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package aws

import (
	"github.com/canonical/tenant-collector/internal/types"
)

type CallerIdentity struct {
	UserID  string `json:"UserId"`
	Account string `json:"Account"`
	Arn     string `json:"Arn"`
}

type AccountsPage struct {
	Accounts  []types.AWSAccount `json:"Accounts"`
	NextToken string             `json:"NextToken"`
}

type Tag struct {
	Key   string `json:"Key"`
	Value string `json:"Value"`
}

type TagsPage struct {
	Tags      []Tag  `json:"Tags"`
	NextToken string `json:"NextToken"`
}

type Amount struct {
	Amount string `json:"Amount"`
	Unit   string `json:"Unit"`
}

type CostGroup struct {
	Keys    []string          `json:"Keys"`
	Metrics map[string]Amount `json:"Metrics"`
}

type ResultByTime struct {
	TimePeriod struct {
		Start string `json:"Start"`
		End   string `json:"End"`
	} `json:"TimePeriod"`
	Groups []CostGroup `json:"Groups"`
}

type CostAndUsagePage struct {
	ResultsByTime []ResultByTime `json:"ResultsByTime"`
	NextPageToken string         `json:"NextPageToken"`
}

type User struct {
	UserID   string `json:"UserId"`
	UserName string `json:"UserName"`
	Arn      string `json:"Arn"`
}

type Group struct {
	GroupID   string `json:"GroupId"`
	GroupName string `json:"GroupName"`
	Arn       string `json:"Arn"`
}

type AttachedPolicy struct {
	PolicyName string `json:"PolicyName"`
	PolicyArn  string `json:"PolicyArn"`
}

type assumeRoleOutput struct {
	Credentials struct {
		AccessKeyID     string `json:"AccessKeyId"`
		SecretAccessKey string `json:"SecretAccessKey"`
		SessionToken    string `json:"SessionToken"`
		Expiration      string `json:"Expiration"`
	} `json:"Credentials"`
}
