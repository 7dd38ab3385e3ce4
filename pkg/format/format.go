/*
Copyright © 2026 Lumen Labs
SPDX-License-Identifier: Apache-2.0
*/

// Package format renders discovery and collection results in the wire
// formats the monitoring platform ingests: the line-oriented grammar
// read by script datasources and a JSON document for batch ingestion.
// Output goes to stdout only; nothing here logs.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/lumenlabs/lumen/pkg/telemetry"
)

// Format selects the output rendering.
type Format string

const (
	FormatLine Format = "line"
	FormatJSON Format = "json"
)

// ParseFormat validates a textual format name. Empty selects line
// output.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatLine, "":
		return FormatLine, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// Writer renders results to a single output stream.
type Writer struct {
	out    io.Writer
	format Format
}

// NewWriter creates a Writer rendering in the given format.
func NewWriter(out io.Writer, format Format) *Writer {
	return &Writer{out: out, format: format}
}

// WriteDiscovery renders discovered instances, one line per instance in
// line format. An empty slice produces no output and no error.
func (w *Writer) WriteDiscovery(instances []telemetry.DiscoveredInstance) error {
	if w.format == FormatJSON {
		return w.writeDiscoveryJSON(instances)
	}
	for _, inst := range instances {
		if _, err := fmt.Fprintln(w.out, DiscoveryLine(inst)); err != nil {
			return err
		}
	}
	return nil
}

// WriteCollection renders a metric collection. An empty collection
// produces no output in line format and an empty data object in JSON.
func (w *Writer) WriteCollection(col *telemetry.MetricCollection) error {
	if w.format == FormatJSON {
		return w.writeCollectionJSON(col)
	}
	for _, v := range col.Metrics {
		if !v.Value.Valid {
			continue
		}
		if _, err := fmt.Fprintln(w.out, CollectionLine(v)); err != nil {
			return err
		}
	}
	return nil
}

// DiscoveryLine renders one instance in the discovery grammar:
//
//	id##name##description####key1=val1&key2=val2
//
// Trailing empty sections are omitted, so an instance with no
// description and no properties renders as "id##name".
func DiscoveryLine(inst telemetry.DiscoveredInstance) string {
	var b strings.Builder
	b.WriteString(inst.ID)
	b.WriteString("##")
	b.WriteString(inst.Name)

	hasProps := inst.Properties.Len() > 0
	if inst.Description != "" || hasProps {
		b.WriteString("##")
		b.WriteString(inst.Description)
	}
	if hasProps {
		b.WriteString("####")
		first := true
		inst.Properties.Each(func(key, value string) {
			if !first {
				b.WriteString("&")
			}
			first = false
			b.WriteString(key)
			b.WriteString("=")
			b.WriteString(value)
		})
	}
	return b.String()
}

// CollectionLine renders one datapoint in the collection grammar:
// "id.metric=value", or "metric=value" when the datapoint has no
// instance.
func CollectionLine(v telemetry.MetricValue) string {
	if v.InstanceID == "" {
		return fmt.Sprintf("%s=%s", v.Name, v.Value)
	}
	return fmt.Sprintf("%s.%s=%s", v.InstanceID, v.Name, v.Value)
}

type jsonInstance struct {
	Values map[string]float64 `json:"values"`
	Name   string             `json:"name,omitempty"`
	Labels map[string]string  `json:"labels,omitempty"`
}

type jsonCollection struct {
	Data map[string]jsonInstance `json:"data"`
}

func (w *Writer) writeCollectionJSON(col *telemetry.MetricCollection) error {
	doc := jsonCollection{Data: map[string]jsonInstance{}}
	for _, v := range col.Metrics {
		if !v.Value.Valid {
			continue
		}
		inst, ok := doc.Data[v.InstanceID]
		if !ok {
			inst = jsonInstance{Values: map[string]float64{}, Name: v.InstanceName}
		}
		inst.Values[v.Name] = v.Value.F
		if len(v.Labels) > 0 {
			if inst.Labels == nil {
				inst.Labels = map[string]string{}
			}
			for k, lv := range v.Labels {
				inst.Labels[k] = lv
			}
		}
		doc.Data[v.InstanceID] = inst
	}
	return w.writeJSON(doc)
}

type jsonDiscovered struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Properties  map[string]string `json:"properties,omitempty"`
}

func (w *Writer) writeDiscoveryJSON(instances []telemetry.DiscoveredInstance) error {
	out := make([]jsonDiscovered, 0, len(instances))
	for _, inst := range instances {
		d := jsonDiscovered{
			ID:          inst.ID,
			Name:        inst.Name,
			Description: inst.Description,
		}
		if inst.Properties.Len() > 0 {
			d.Properties = map[string]string{}
			inst.Properties.Each(func(key, value string) {
				d.Properties[key] = value
			})
		}
		out = append(out, d)
	}
	return w.writeJSON(struct {
		Data []jsonDiscovered `json:"data"`
	}{Data: out})
}

func (w *Writer) writeJSON(v any) error {
	enc := json.NewEncoder(w.out)
	return enc.Encode(v)
}
