/*
Copyright © 2026 Lumen Labs
SPDX-License-Identifier: Apache-2.0
*/

package telemetry

import "strconv"

// Value is a metric reading that may be absent. Absence ("no value") is
// distinct from a reading of zero: conversion failures and missing
// elements produce an invalid Value, which the formatter omits entirely.
type Value struct {
	F     float64
	Valid bool
}

// Float wraps a known reading.
func Float(f float64) Value {
	return Value{F: f, Valid: true}
}

// NoValue is the absent reading.
func NoValue() Value {
	return Value{}
}

// String renders the reading in its shortest exact decimal form, or ""
// when absent.
func (v Value) String() string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatFloat(v.F, 'f', -1, 64)
}

// MetricValue is one measured datapoint. InstanceID is empty for
// single-instance datasources. Name is expected to be sanitized and
// lowercase by the time the value is constructed (see pkg/sanitize).
type MetricValue struct {
	Name         string
	Value        Value
	InstanceID   string
	InstanceName string
	Labels       map[string]string
	Help         string
}

// DiscoveredInstance is one monitorable sub-resource found on a device
// during Active Discovery, e.g. a single optical port. Properties keep
// insertion order so discovery output is deterministic for deterministic
// input.
type DiscoveredInstance struct {
	ID          string
	Name        string
	Description string
	Properties  Properties
}

// Properties is an insertion-ordered string mapping with unique keys.
// Setting an existing key updates the value in place without changing
// its position.
type Properties struct {
	keys   []string
	values map[string]string
}

// Set adds or updates a property.
func (p *Properties) Set(key, value string) {
	if p.values == nil {
		p.values = make(map[string]string)
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// Get returns the value for key and whether it is present.
func (p *Properties) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Len returns the number of properties.
func (p *Properties) Len() int {
	return len(p.keys)
}

// Keys returns the property keys in insertion order.
func (p *Properties) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Each calls fn for every property in insertion order.
func (p *Properties) Each(fn func(key, value string)) {
	for _, k := range p.keys {
		fn(k, p.values[k])
	}
}
