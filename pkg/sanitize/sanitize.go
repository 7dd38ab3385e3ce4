/*
Copyright © 2026 Lumen Labs
SPDX-License-Identifier: Apache-2.0
*/

// Package sanitize canonicalizes identifiers extracted from device
// responses. Device data is heavily namespaced XML or free-form text;
// the monitoring platform only accepts restricted identifier charsets,
// so every instance ID and metric name passes through here before it
// reaches the output formatter.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	// Characters not allowed in instance IDs or metric names.
	invalidIDChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)
	repeatedUnders = regexp.MustCompile(`_+`)

	// Clark-notation namespace URI: {http://example.com}tag
	xmlNamespaceURI = regexp.MustCompile(`\{[^}]+\}`)
)

// InstanceID sanitizes a raw value for use as an instance identifier.
// Any character outside [A-Za-z0-9_-] becomes an underscore, repeated
// underscores collapse to one, and leading/trailing underscores are
// stripped. Empty input yields the empty string. Idempotent.
func InstanceID(value string) string {
	if value == "" {
		return ""
	}
	s := invalidIDChars.ReplaceAllString(value, "_")
	s = repeatedUnders.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// MetricName sanitizes an element or attribute name for use as a metric
// name: the XML namespace is stripped first (both {uri}local and
// prefix:local forms), then the instance ID rule applies, then the
// result is lowercased.
func MetricName(name string) string {
	if name == "" {
		return ""
	}
	return strings.ToLower(InstanceID(LocalName(name)))
}

// LocalName returns the namespace-free local part of an XML element or
// attribute name, accepting Clark notation ({uri}local) and prefixed
// (prefix:local) forms.
func LocalName(tag string) string {
	if strings.HasPrefix(tag, "{") {
		if _, local, found := strings.Cut(tag, "}"); found {
			return local
		}
	}
	if i := strings.Index(tag, ":"); i >= 0 {
		return tag[i+1:]
	}
	return tag
}

// StripNamespaces removes all Clark-notation URIs and leading namespace
// prefixes from text, for cases where a path or compound name embeds
// several namespaced segments.
func StripNamespaces(text string) string {
	text = xmlNamespaceURI.ReplaceAllString(text, "")
	parts := strings.Split(text, "/")
	for i, p := range parts {
		parts[i] = LocalName(p)
	}
	return strings.Join(parts, "/")
}
