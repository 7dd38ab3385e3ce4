/*
Copyright © 2026 Lumen Labs
SPDX-License-Identifier: Apache-2.0
*/

package convert

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeFloat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		def   float64
		want  float64
	}{
		{"valid float", "-3.25", 0, -3.25},
		{"valid int", "42", 0, 42},
		{"whitespace tolerated", "  1.5 ", 0, 1.5},
		{"scientific notation", "1e3", 0, 1000},
		{"garbage returns default", "not a number", -1, -1},
		{"empty returns default", "", 99, 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeFloat(tt.input, tt.def))
		})
	}
}

func TestSafeInt(t *testing.T) {
	// Fractional input truncates, never rounds.
	assert.Equal(t, 12, SafeInt("12.9", 0))
	assert.Equal(t, -12, SafeInt("-12.9", 0))
	assert.Equal(t, 7, SafeInt("7", 0))
	assert.Equal(t, 0, SafeInt("not a number", 0))
	assert.Equal(t, -1, SafeInt("", -1))
}

func TestPowerConversions(t *testing.T) {
	assert.InDelta(t, 1.0, DBmToMw(0), 1e-9)
	assert.InDelta(t, 10.0, DBmToMw(10), 1e-9)

	v, ok := MwToDBm(1.0)
	assert.True(t, ok)
	assert.InDelta(t, 0.0, v, 1e-9)

	// Round trip for valid powers.
	for _, mw := range []float64{0.001, 0.5, 1, 3.16, 100} {
		dbm, ok := MwToDBm(mw)
		assert.True(t, ok)
		assert.InDelta(t, mw, DBmToMw(dbm), mw*1e-9)
	}

	// Non-positive power has no dBm representation.
	_, ok = MwToDBm(0)
	assert.False(t, ok)
	_, ok = MwToDBm(-4)
	assert.False(t, ok)
}

func TestRatioPercent(t *testing.T) {
	assert.InDelta(t, 0.5, PercentToRatio(50), 1e-12)
	assert.InDelta(t, 50.0, RatioToPercent(0.5), 1e-12)

	for _, p := range []float64{0, 0.01, 33.3, 100, 250} {
		assert.InDelta(t, p, RatioToPercent(PercentToRatio(p)), math.Abs(p)*1e-12+1e-12)
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		ok    bool
	}{
		{"zulu", "2024-11-26T14:30:00Z", 1732631400, true},
		{"offset", "2024-11-26T14:30:00+02:00", 1732624200, true},
		{"fractional", "2024-11-26T14:30:00.500Z", 1732631400.5, true},
		{"no offset treated as UTC", "2024-11-26T14:30:00", 1732631400, true},
		{"space separator", "2024-11-26 14:30:00", 1732631400, true},
		{"date only", "2024-11-26", 1732579200, true},
		{"uninitialized sentinel", "0000-01-01T00:00:00.000Z", 0, false},
		{"garbage", "yesterday-ish", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTimestamp(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-6)
			}
		})
	}
}
