/*
Copyright © 2026 Lumen Labs
SPDX-License-Identifier: Apache-2.0
*/

package convert

import (
	"strconv"
	"strings"
)

// StringMap maps a raw textual device state token to a stable numeric code.
type StringMap map[string]int

// Apply resolves token to its numeric code. An unmapped token, or a nil
// map, resolves to def; Apply never fails.
func (m StringMap) Apply(token string, def int) int {
	if m == nil {
		return def
	}
	if code, ok := m[token]; ok {
		return code
	}
	return def
}

// Has reports whether token is present in the map.
func (m StringMap) Has(token string) bool {
	_, ok := m[token]
	return ok
}

// ParseStringMapDefinition parses a compact "token:code,token:code"
// definition into a StringMap, tolerating surrounding whitespace. Empty
// input yields an empty map. Entries whose code is not numeric are
// skipped; fractional codes are truncated.
func ParseStringMapDefinition(definition string) StringMap {
	result := StringMap{}
	if strings.TrimSpace(definition) == "" {
		return result
	}

	for _, item := range strings.Split(definition, ",") {
		item = strings.TrimSpace(item)
		token, code, found := strings.Cut(item, ":")
		if !found {
			continue
		}
		token = strings.TrimSpace(token)
		code = strings.TrimSpace(code)
		if token == "" {
			continue
		}
		if v, err := strconv.Atoi(code); err == nil {
			result[token] = v
			continue
		}
		if f, err := strconv.ParseFloat(code, 64); err == nil {
			result[token] = int(f)
		}
	}
	return result
}

// builtinMaps are the string maps common across optical transport gear.
// Config may reference them by name instead of spelling out a definition.
var builtinMaps = map[string]StringMap{
	"status": {
		"down": 0,
		"up":   1,
	},
	"enabled": {
		"disabled": 0,
		"enabled":  1,
	},
	"active": {
		"Inactive": 0,
		"inactive": 0,
		"Active":   1,
		"active":   1,
	},
	"bool": {
		"false": 0,
		"true":  1,
		"False": 0,
		"True":  1,
		"no":    0,
		"yes":   1,
		"No":    0,
		"Yes":   1,
	},
	"oper_state": {
		"down":           0,
		"up":             1,
		"unknown":        -1,
		"testing":        2,
		"dormant":        3,
		"notPresent":     4,
		"lowerLayerDown": 5,
	},
	"admin_state": {
		"down":    0,
		"up":      1,
		"testing": 2,
	},
	"alarm_severity": {
		"cleared":       0,
		"indeterminate": 1,
		"warning":       2,
		"minor":         3,
		"major":         4,
		"critical":      5,
	},
}

// BuiltinMap returns the named builtin string map, or false if the name
// is not one of the builtins. The returned map must not be modified.
func BuiltinMap(name string) (StringMap, bool) {
	m, ok := builtinMaps[name]
	return m, ok
}
