// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"encoding/json"
	"fmt"
)

type AWSAccount struct {
	ID              string `json:"Id"`
	Arn             string `json:"Arn"`
	Email           string `json:"Email"`
	Name            string `json:"Name"`
	Status          string `json:"Status"`
	JoinedMethod    string `json:"JoinedMethod"`
	JoinedTimestamp string `json:"JoinedTimestamp"`
}

type AzureSubscription struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	State            string `json:"state"`
	TenantID         string `json:"tenantId"`
	CloudName        string `json:"cloudName"`
	IsDefault        bool   `json:"isDefault"`
	HomeTenantID     string `json:"homeTenantId"`
	EnvironmentName  string `json:"environmentName"`
	ManagedByTenants []struct {
		TenantID string `json:"tenantId"`
	} `json:"managedByTenants"`
}

type GCPProject struct {
	ProjectID      string            `json:"projectId"`
	ProjectNumber  string            `json:"projectNumber"`
	Name           string            `json:"name"`
	LifecycleState string            `json:"lifecycleState"`
	CreateTime     string            `json:"createTime"`
	Labels         map[string]string `json:"labels,omitempty"`
	Parent         *struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	} `json:"parent,omitempty"`
}

// NativeObj is the provider payload of a tenant. Exactly the field matching Platform is set.
type NativeObj struct {
	Platform Platform

	AWS   *AWSAccount
	Azure *AzureSubscription
	GCP   *GCPProject
}

func NewAWSNativeObj(a *AWSAccount) NativeObj {
	return NativeObj{Platform: PlatformAWS, AWS: a}
}

func NewAzureNativeObj(s *AzureSubscription) NativeObj {
	return NativeObj{Platform: PlatformAzure, Azure: s}
}

func NewGCPNativeObj(p *GCPProject) NativeObj {
	return NativeObj{Platform: PlatformGCP, GCP: p}
}

type nativeEnvelope struct {
	Platform Platform        `json:"platform"`
	Payload  json.RawMessage `json:"payload"`
}

func (n NativeObj) MarshalJSON() ([]byte, error) {
	var (
		payload []byte
		err     error
	)

	switch n.Platform {
	case PlatformAWS:
		payload, err = json.Marshal(n.AWS)
	case PlatformAzure:
		payload, err = json.Marshal(n.Azure)
	case PlatformGCP:
		payload, err = json.Marshal(n.GCP)
	case "":
		return []byte("null"), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlatform, n.Platform)
	}
	if err != nil {
		return nil, err
	}

	return json.Marshal(nativeEnvelope{Platform: n.Platform, Payload: payload})
}

func (n *NativeObj) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = NativeObj{}
		return nil
	}

	var env nativeEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	out := NativeObj{Platform: env.Platform}

	switch env.Platform {
	case PlatformAWS:
		out.AWS = new(AWSAccount)
		if err := json.Unmarshal(env.Payload, out.AWS); err != nil {
			return err
		}
	case PlatformAzure:
		out.Azure = new(AzureSubscription)
		if err := json.Unmarshal(env.Payload, out.Azure); err != nil {
			return err
		}
	case PlatformGCP:
		out.GCP = new(GCPProject)
		if err := json.Unmarshal(env.Payload, out.GCP); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownPlatform, env.Platform)
	}

	*n = out
	return nil
}

func (n NativeObj) AWSAccount() (*AWSAccount, error) {
	if n.Platform != PlatformAWS || n.AWS == nil {
		return nil, fmt.Errorf("%w: expected %s, got %q", ErrNativeMismatch, PlatformAWS, n.Platform)
	}
	return n.AWS, nil
}

func (n NativeObj) AzureSubscription() (*AzureSubscription, error) {
	if n.Platform != PlatformAzure || n.Azure == nil {
		return nil, fmt.Errorf("%w: expected %s, got %q", ErrNativeMismatch, PlatformAzure, n.Platform)
	}
	return n.Azure, nil
}

func (n NativeObj) GCPProject() (*GCPProject, error) {
	if n.Platform != PlatformGCP || n.GCP == nil {
		return nil, fmt.Errorf("%w: expected %s, got %q", ErrNativeMismatch, PlatformGCP, n.Platform)
	}
	return n.GCP, nil
}
