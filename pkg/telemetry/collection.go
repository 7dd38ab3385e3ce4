/*
Copyright © 2026 Lumen Labs
SPDX-License-Identifier: Apache-2.0
*/

package telemetry

// MetricCollection is the ordered set of metric values produced by one
// collection run, tagged with the run timestamp and source identity.
type MetricCollection struct {
	Metrics    []MetricValue
	Timestamp  float64
	Hostname   string
	Datasource string
}

// NewMetricCollection creates an empty collection for one run.
func NewMetricCollection(hostname, datasource string, timestamp float64) *MetricCollection {
	return &MetricCollection{
		Metrics:    []MetricValue{},
		Timestamp:  timestamp,
		Hostname:   hostname,
		Datasource: datasource,
	}
}

// Add appends a metric to the collection.
func (c *MetricCollection) Add(m MetricValue) {
	c.Metrics = append(c.Metrics, m)
}

// Len returns the number of metrics in the collection.
func (c *MetricCollection) Len() int {
	return len(c.Metrics)
}

// InstanceIDs returns the distinct non-empty instance IDs in first-seen
// order.
func (c *MetricCollection) InstanceIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, m := range c.Metrics {
		if m.InstanceID == "" || seen[m.InstanceID] {
			continue
		}
		seen[m.InstanceID] = true
		ids = append(ids, m.InstanceID)
	}
	return ids
}

// ByInstance returns the metrics belonging to one instance ID, in
// collection order.
func (c *MetricCollection) ByInstance(instanceID string) []MetricValue {
	var out []MetricValue
	for _, m := range c.Metrics {
		if m.InstanceID == instanceID {
			out = append(out, m)
		}
	}
	return out
}

// FilterByName returns the metrics whose name matches any of names.
func (c *MetricCollection) FilterByName(names ...string) []MetricValue {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var out []MetricValue
	for _, m := range c.Metrics {
		if want[m.Name] {
			out = append(out, m)
		}
	}
	return out
}
