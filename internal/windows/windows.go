// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package windows computes the billing windows cost records are aligned to.
package windows

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// Window is an inclusive date range.
type Window struct {
	From time.Time
	To   time.Time
}

func (w Window) FromString() string {
	return w.From.Format(DateLayout)
}

func (w Window) ToString() string {
	return w.To.Format(DateLayout)
}

// Month returns the first day of the window's month in yyyymm form, as used by invoice months.
func (w Window) Month() string {
	return w.From.Format("200601")
}

// Day truncates t to midnight UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a yyyy-mm-dd date in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// Monthly splits [from, to] into calendar month windows. The first window starts at from
// and the last one is clipped to to when to falls mid month.
func Monthly(from, to time.Time) ([]Window, error) {
	from, to = Day(from), Day(to)
	if to.Before(from) {
		return nil, fmt.Errorf("invalid range: %s is after %s", from.Format(DateLayout), to.Format(DateLayout))
	}

	var ws []Window
	for start := from; !start.After(to); {
		monthEnd := time.Date(start.Year(), start.Month()+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
		end := Clip(monthEnd, to)

		ws = append(ws, Window{From: start, To: end})
		start = end.AddDate(0, 0, 1)
	}

	return ws, nil
}

// Clip returns end, or limit if end lies after it.
func Clip(end, limit time.Time) time.Time {
	if end.After(limit) {
		return limit
	}
	return end
}
