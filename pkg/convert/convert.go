/*
Copyright © 2026 Lumen Labs
SPDX-License-Identifier: Apache-2.0
*/

package convert

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// SafeFloat converts a string to float64, returning def on malformed input.
func SafeFloat(s string, def float64) float64 {
	if v, ok := ParseFloat(s); ok {
		return v
	}
	return def
}

// ParseFloat converts a string to float64. The second return value reports
// whether the input was a valid number.
func ParseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// SafeInt converts a string to int, returning def on malformed input.
// Fractional input is truncated toward zero, never rounded: "12.9" -> 12.
func SafeInt(s string, def int) int {
	v, ok := ParseFloat(s)
	if !ok {
		return def
	}
	return int(v)
}

// DBmToMw converts optical power in dBm to milliwatts.
func DBmToMw(dbm float64) float64 {
	return math.Pow(10, dbm/10)
}

// MwToDBm converts optical power in milliwatts to dBm. Power at or below
// zero mW has no dBm representation; ok is false in that case.
func MwToDBm(mw float64) (float64, bool) {
	if mw <= 0 {
		return 0, false
	}
	return 10 * math.Log10(mw), true
}

// PercentToRatio converts a 0-100 percentage to a 0-1 ratio.
func PercentToRatio(percent float64) float64 {
	return percent / 100.0
}

// RatioToPercent converts a 0-1 ratio to a 0-100 percentage.
func RatioToPercent(ratio float64) float64 {
	return ratio * 100.0
}

// timestampLayouts are tried in order after RFC 3339 parsing fails.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 timestamp, with or without a UTC
// offset, into epoch seconds. Timestamps starting with "0000-01-01" are
// uninitialized device values and yield no value rather than an error,
// as does any unparseable input. Layouts without an offset are taken
// as UTC.
func ParseTimestamp(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "0000-01-01") {
		return 0, false
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return epochSeconds(t), true
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return epochSeconds(t), true
		}
	}
	return 0, false
}

func epochSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
