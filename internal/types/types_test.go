// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNativeObjRoundTrip(t *testing.T) {
	testCases := []struct {
		name   string
		native NativeObj
		check  func(*testing.T, NativeObj)
	}{
		{
			name:   "aws",
			native: NewAWSNativeObj(&AWSAccount{ID: "123456789012", Name: "prod"}),
			check: func(t *testing.T, n NativeObj) {
				a, err := n.AWSAccount()
				if err != nil || a.ID != "123456789012" {
					t.Errorf("unexpected aws payload %+v, err %v", a, err)
				}
			},
		},
		{
			name:   "azure",
			native: NewAzureNativeObj(&AzureSubscription{ID: "sub-1", Name: "dev"}),
			check: func(t *testing.T, n NativeObj) {
				s, err := n.AzureSubscription()
				if err != nil || s.ID != "sub-1" {
					t.Errorf("unexpected azure payload %+v, err %v", s, err)
				}
			},
		},
		{
			name:   "gcp",
			native: NewGCPNativeObj(&GCPProject{ProjectID: "my-project"}),
			check: func(t *testing.T, n NativeObj) {
				p, err := n.GCPProject()
				if err != nil || p.ProjectID != "my-project" {
					t.Errorf("unexpected gcp payload %+v, err %v", p, err)
				}
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := json.Marshal(tc.native)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var out NativeObj
			if err := json.Unmarshal(data, &out); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if out.Platform != tc.native.Platform {
				t.Errorf("expected platform %s, got %s", tc.native.Platform, out.Platform)
			}
			tc.check(t, out)
		})
	}
}

func TestNativeObjMismatch(t *testing.T) {
	n := NewAWSNativeObj(&AWSAccount{ID: "1"})

	if _, err := n.GCPProject(); !errors.Is(err, ErrNativeMismatch) {
		t.Errorf("expected ErrNativeMismatch, got %v", err)
	}
	if _, err := n.AzureSubscription(); !errors.Is(err, ErrNativeMismatch) {
		t.Errorf("expected ErrNativeMismatch, got %v", err)
	}
}

func TestNativeObjUnknownPlatform(t *testing.T) {
	var n NativeObj
	err := json.Unmarshal([]byte(`{"platform":"Oracle","payload":{}}`), &n)
	if !errors.Is(err, ErrUnknownPlatform) {
		t.Errorf("expected ErrUnknownPlatform, got %v", err)
	}
}

func TestTenantClone(t *testing.T) {
	original := &Tenant{
		PlatformTenantID: "1",
		Platform:         PlatformAWS,
		Tags:             []Tag{{Name: "env", Values: []string{"prod"}}},
		Costs:            []Cost{{From: "2021-01-01", To: "2021-01-31", Cost: "1", Currency: "USD"}},
	}

	clone := original.Clone()
	clone.Tags[0].Values[0] = "dev"
	clone.Costs[0].Cost = "2"

	if original.Tags[0].Values[0] != "prod" {
		t.Error("expected original tags to be untouched")
	}
	if original.Costs[0].Cost != "1" {
		t.Error("expected original costs to be untouched")
	}
}

func TestParsePlatform(t *testing.T) {
	for in, want := range map[string]Platform{"aws": PlatformAWS, "Azure": PlatformAzure, " gcp ": PlatformGCP} {
		got, err := ParsePlatform(in)
		if err != nil || got != want {
			t.Errorf("ParsePlatform(%q) = %s, %v", in, got, err)
		}
	}

	if _, err := ParsePlatform("oracle"); !errors.Is(err, ErrUnknownPlatform) {
		t.Errorf("expected ErrUnknownPlatform, got %v", err)
	}
}
