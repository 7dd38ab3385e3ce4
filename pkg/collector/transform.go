/*
Copyright © 2026 Lumen Labs
SPDX-License-Identifier: Apache-2.0
*/

package collector

import (
	"strings"

	"github.com/lumenlabs/lumen/pkg/config"
	"github.com/lumenlabs/lumen/pkg/convert"
	"github.com/lumenlabs/lumen/pkg/telemetry"
)

// Transform turns a raw device token into a metric value by applying
// the rule's transforms in order: string map, timestamp parse, unit
// conversion, multiplier. A token that cannot be resolved to a number
// yields no value rather than an error; one bad reading must not sink
// the rest of the collection.
func Transform(raw string, rule config.MetricRule, sm convert.StringMap) telemetry.Value {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return telemetry.NoValue()
	}

	var v float64
	switch {
	case sm != nil:
		v = float64(sm.Apply(raw, rule.StringMapDefault))
	case rule.ParseTimestamp:
		f, ok := convert.ParseTimestamp(raw)
		if !ok {
			return telemetry.NoValue()
		}
		v = f
	default:
		f, ok := convert.ParseFloat(raw)
		if !ok {
			return telemetry.NoValue()
		}
		v = f
	}

	switch rule.Convert {
	case config.ConvertDBmToMw:
		v = convert.DBmToMw(v)
	case config.ConvertMwToDBm:
		f, ok := convert.MwToDBm(v)
		if !ok {
			return telemetry.NoValue()
		}
		v = f
	case config.ConvertPercentToRatio:
		v = convert.PercentToRatio(v)
	case config.ConvertRatioToPercent:
		v = convert.RatioToPercent(v)
	}

	if rule.Multiplier != nil {
		v *= *rule.Multiplier
	}
	return telemetry.Float(v)
}
