/*
Copyright © 2026 Lumen Labs
SPDX-License-Identifier: Apache-2.0
*/

// Package config loads and validates the declarative per-device
// configuration: the protocol-specific filter/query, instance extraction
// rules, property and metric extraction rules, and per-metric string
// maps. Configuration problems are reported before any network call.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lumenlabs/lumen/pkg/convert"
	"github.com/lumenlabs/lumen/pkg/errors"
)

// Protocol selects the wire protocol adapter for a datasource.
type Protocol string

const (
	ProtocolNetconf Protocol = "netconf"
	ProtocolSNMP    Protocol = "snmp"
)

// Conversion names a numeric transform applied to a metric after
// extraction.
type Conversion string

const (
	ConvertNone           Conversion = ""
	ConvertDBmToMw        Conversion = "dbm_to_mw"
	ConvertMwToDBm        Conversion = "mw_to_dbm"
	ConvertPercentToRatio Conversion = "percent_to_ratio"
	ConvertRatioToPercent Conversion = "ratio_to_percent"
)

// Datasource is the configuration for one discovery/collection target.
type Datasource struct {
	// Name identifies the datasource in collection output.
	Name string `yaml:"datasource"`

	// Protocol selects the adapter: netconf or snmp.
	Protocol Protocol `yaml:"protocol"`

	Netconf NetconfQuery `yaml:"netconf"`
	SNMP    SNMPQuery    `yaml:"snmp"`

	Discovery  DiscoveryRules  `yaml:"discovery"`
	Collection CollectionRules `yaml:"collection"`
}

// NetconfQuery is the opaque NETCONF side of the configuration. Filter
// is a raw subtree filter passed through to <get> unmodified.
type NetconfQuery struct {
	Filter     string            `yaml:"filter"`
	Namespaces map[string]string `yaml:"namespaces"`
	DeviceType string            `yaml:"device_type"`
}

// SNMPQuery is the opaque SNMP side of the configuration. WalkOID is the
// table walked during discovery; metric OIDs live on the metric rules.
type SNMPQuery struct {
	WalkOID string `yaml:"walk_oid"`
}

// DiscoveryRules declares how instances are extracted from a response.
type DiscoveryRules struct {
	// Instances is a local-name path to the per-instance elements.
	Instances string `yaml:"instances"`
	// IDKey is the child element holding the instance identifier.
	IDKey string `yaml:"id_key"`
	// FallbackIDKey is tried when IDKey yields nothing (devices that
	// only set an alias on some ports).
	FallbackIDKey  string `yaml:"fallback_id_key"`
	NameKey        string `yaml:"name_key"`
	DescriptionKey string `yaml:"description_key"`
	// Properties maps property name -> child path for ad-hoc instance
	// properties; entries keep file order in the output.
	Properties []PropertyRule `yaml:"-"`
	// RawProperties is the YAML view of Properties; decoded manually
	// because a plain map would lose file order.
	RawProperties yaml.Node `yaml:"properties"`
}

// PropertyRule declares one ad-hoc instance property extraction.
type PropertyRule struct {
	Name string
	Path string
}

// CollectionRules declares how metric values are extracted.
type CollectionRules struct {
	Instances string       `yaml:"instances"`
	IDKey     string       `yaml:"id_key"`
	Metrics   []MetricRule `yaml:"metrics"`
	// Chassis scopes device-global metrics; they are emitted without an
	// instance ID (the single-instance form).
	Chassis *ChassisRules `yaml:"chassis"`
}

// ChassisRules declares device-global metrics.
type ChassisRules struct {
	Path    string       `yaml:"path"`
	Metrics []MetricRule `yaml:"metrics"`
}

// MetricRule declares one datapoint extraction.
type MetricRule struct {
	Name string `yaml:"name"`
	// Path is the NETCONF child path; OID the SNMP object.
	Path string `yaml:"path"`
	OID  string `yaml:"oid"`
	// Walk makes the SNMP adapter walk OID as a table, one value per
	// index.
	Walk bool `yaml:"walk"`
	// StringMap is either a builtin map name (status, oper_state, ...)
	// or an inline "token:code,token:code" definition.
	StringMap string `yaml:"string_map"`
	// StringMapDefault is the code for tokens missing from the map.
	StringMapDefault int        `yaml:"string_map_default"`
	Convert          Conversion `yaml:"convert"`
	Multiplier       *float64   `yaml:"multiplier"`
	ParseTimestamp   bool       `yaml:"parse_timestamp"`
	Help             string     `yaml:"help"`
}

// Load reads and validates a datasource configuration file.
func Load(path string) (*Datasource, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfiguration, "failed to read config file", err)
	}
	return Parse(raw)
}

// Parse decodes and validates a datasource configuration document.
func Parse(raw []byte) (*Datasource, error) {
	var ds Datasource
	if err := yaml.Unmarshal(raw, &ds); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfiguration, "invalid config document", err)
	}
	if err := ds.decodeProperties(); err != nil {
		return nil, err
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

func (d *Datasource) decodeProperties() error {
	node := &d.Discovery.RawProperties
	if node.Kind == 0 || node.Kind == yaml.ScalarNode && node.Value == "" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return errors.New(errors.ErrCodeConfiguration, "discovery.properties must be a mapping")
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		d.Discovery.Properties = append(d.Discovery.Properties, PropertyRule{
			Name: node.Content[i].Value,
			Path: node.Content[i+1].Value,
		})
	}
	return nil
}

// Validate checks the configuration without touching the network. All
// problems it reports are fatal before connect.
func (d *Datasource) Validate() error {
	switch d.Protocol {
	case ProtocolNetconf:
		if strings.TrimSpace(d.Netconf.Filter) == "" {
			return errors.New(errors.ErrCodeConfiguration, "netconf protocol requires a filter")
		}
	case ProtocolSNMP:
		if strings.TrimSpace(d.SNMP.WalkOID) == "" && !d.hasMetricOIDs() {
			return errors.New(errors.ErrCodeConfiguration, "snmp protocol requires a walk_oid or metric oids")
		}
	case "":
		return errors.New(errors.ErrCodeConfiguration, "protocol is required")
	default:
		return errors.Newf(errors.ErrCodeConfiguration, "unknown protocol %q", d.Protocol)
	}

	for i, m := range d.Collection.Metrics {
		if err := m.validate(d.Protocol); err != nil {
			return errors.Wrap(errors.ErrCodeConfiguration, fmt.Sprintf("collection.metrics[%d]", i), err)
		}
	}
	if d.Collection.Chassis != nil {
		for i, m := range d.Collection.Chassis.Metrics {
			if err := m.validate(d.Protocol); err != nil {
				return errors.Wrap(errors.ErrCodeConfiguration, fmt.Sprintf("collection.chassis.metrics[%d]", i), err)
			}
		}
	}
	return nil
}

// ValidateDiscovery checks the extraction rules Discover needs on top
// of Validate. Without them discovery would open a session and emit
// nothing, indistinguishable from an empty device, so their absence is
// fatal before connect.
func (d *Datasource) ValidateDiscovery() error {
	switch d.Protocol {
	case ProtocolNetconf:
		if strings.TrimSpace(d.Discovery.Instances) == "" {
			return errors.New(errors.ErrCodeConfiguration, "discovery requires discovery.instances")
		}
		if strings.TrimSpace(d.Discovery.IDKey) == "" {
			return errors.New(errors.ErrCodeConfiguration, "discovery requires discovery.id_key")
		}
	case ProtocolSNMP:
		if strings.TrimSpace(d.SNMP.WalkOID) == "" {
			return errors.New(errors.ErrCodeConfiguration, "discovery requires snmp.walk_oid")
		}
	}
	return nil
}

func (d *Datasource) hasMetricOIDs() bool {
	for _, m := range d.Collection.Metrics {
		if strings.TrimSpace(m.OID) != "" {
			return true
		}
	}
	return false
}

func (m *MetricRule) validate(p Protocol) error {
	if strings.TrimSpace(m.Name) == "" {
		return errors.New(errors.ErrCodeConfiguration, "metric name is required")
	}
	switch p {
	case ProtocolNetconf:
		if strings.TrimSpace(m.Path) == "" {
			return errors.Newf(errors.ErrCodeConfiguration, "metric %q requires a path", m.Name)
		}
	case ProtocolSNMP:
		if strings.TrimSpace(m.OID) == "" {
			return errors.Newf(errors.ErrCodeConfiguration, "metric %q requires an oid", m.Name)
		}
	}
	switch m.Convert {
	case ConvertNone, ConvertDBmToMw, ConvertMwToDBm, ConvertPercentToRatio, ConvertRatioToPercent:
	default:
		return errors.Newf(errors.ErrCodeConfiguration, "metric %q has unknown convert %q", m.Name, m.Convert)
	}
	if _, err := m.ResolveStringMap(); err != nil {
		return err
	}
	return nil
}

// ResolveStringMap resolves the metric's string map: nil when none is
// configured, a builtin map when the value names one, otherwise an
// inline definition. A name that is neither builtin nor an inline
// definition is a configuration error.
func (m *MetricRule) ResolveStringMap() (convert.StringMap, error) {
	s := strings.TrimSpace(m.StringMap)
	if s == "" {
		return nil, nil
	}
	if sm, ok := convert.BuiltinMap(s); ok {
		return sm, nil
	}
	if strings.Contains(s, ":") {
		return convert.ParseStringMapDefinition(s), nil
	}
	return nil, errors.Newf(errors.ErrCodeConfiguration,
		"metric %q references unknown string map %q", m.Name, s)
}
