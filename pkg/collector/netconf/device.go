/*
Copyright © 2026 Lumen Labs
SPDX-License-Identifier: Apache-2.0
*/

package netconf

import "strings"

// Known optical transport vendors. The device type picks the default
// namespace set used when a filter references "${prefix}" placeholders;
// an explicit config value overrides detection.
const (
	deviceCoriant = "coriant"
	deviceCiena   = "ciena"
	deviceJuniper = "juniper"
	deviceGeneric = "generic"
)

// vendorNamespaces are the YANG namespaces each vendor announces. They
// double as capability fingerprints for detection.
var vendorNamespaces = map[string]map[string]string{
	deviceCoriant: {
		"ne":  "http://coriant.com/yang/os/ne",
		"fac": "http://coriant.com/yang/os/facility",
	},
	deviceCiena: {
		"ptp":  "http://www.ciena.com/ns/yang/ciena-ws-ptp",
		"xcvr": "http://www.ciena.com/ns/yang/ciena-ws-xcvr",
	},
	deviceJuniper: {
		"junos": "http://xml.juniper.net/junos",
	},
}

// resolveDeviceType returns the configured device type, or detects one
// from the server capability URIs, falling back to generic.
func resolveDeviceType(configured string, capabilities []string) string {
	if configured != "" {
		return strings.ToLower(configured)
	}
	for vendor, namespaces := range vendorNamespaces {
		for _, uri := range namespaces {
			for _, cap := range capabilities {
				if strings.Contains(cap, uri) {
					return vendor
				}
			}
		}
	}
	return deviceGeneric
}

// mergedNamespaces layers configured namespaces over the vendor
// defaults; config wins on prefix collisions.
func mergedNamespaces(deviceType string, configured map[string]string) map[string]string {
	merged := make(map[string]string)
	for prefix, uri := range vendorNamespaces[deviceType] {
		merged[prefix] = uri
	}
	for prefix, uri := range configured {
		merged[prefix] = uri
	}
	return merged
}

// expandFilter substitutes "${prefix}" placeholders in the filter with
// the matching namespace URI. Unknown placeholders are left alone so the
// device reports them instead of the tool guessing.
func expandFilter(filter string, namespaces map[string]string) string {
	for prefix, uri := range namespaces {
		filter = strings.ReplaceAll(filter, "${"+prefix+"}", uri)
	}
	return strings.TrimSpace(filter)
}
