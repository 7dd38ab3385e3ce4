/*
Copyright © 2026 Lumen Labs
SPDX-License-Identifier: Apache-2.0
*/

package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue(t *testing.T) {
	assert.Equal(t, "-3.2", Float(-3.2).String())
	assert.Equal(t, "0", Float(0).String())
	assert.Equal(t, "", NoValue().String())

	// No value is distinct from zero.
	assert.True(t, Float(0).Valid)
	assert.False(t, NoValue().Valid)
}

func TestPropertiesOrder(t *testing.T) {
	var p Properties
	p.Set("circuit", "CKT-100")
	p.Set("role", "uplink")
	p.Set("vendor", "ciena")

	assert.Equal(t, []string{"circuit", "role", "vendor"}, p.Keys())

	// Updating an existing key keeps its position.
	p.Set("role", "access")
	assert.Equal(t, []string{"circuit", "role", "vendor"}, p.Keys())
	v, ok := p.Get("role")
	assert.True(t, ok)
	assert.Equal(t, "access", v)

	_, ok = p.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, 3, p.Len())
}

func TestPropertiesEach(t *testing.T) {
	var p Properties
	p.Set("b", "2")
	p.Set("a", "1")

	var got []string
	p.Each(func(k, v string) {
		got = append(got, k+"="+v)
	})
	assert.Equal(t, []string{"b=2", "a=1"}, got)
}

func TestMetricCollection(t *testing.T) {
	c := NewMetricCollection("olt1.example.net", "optical_dom", 1732631400)
	c.Add(MetricValue{Name: "rxpower", Value: Float(-3.2), InstanceID: "port_1"})
	c.Add(MetricValue{Name: "txpower", Value: Float(1.1), InstanceID: "port_1"})
	c.Add(MetricValue{Name: "rxpower", Value: Float(-7.8), InstanceID: "port_2"})
	c.Add(MetricValue{Name: "temperature", Value: Float(41), InstanceID: ""})

	assert.Equal(t, 4, c.Len())
	assert.Equal(t, []string{"port_1", "port_2"}, c.InstanceIDs())
	assert.Len(t, c.ByInstance("port_1"), 2)
	assert.Len(t, c.FilterByName("rxpower"), 2)
	assert.Len(t, c.FilterByName("rxpower", "txpower"), 3)
	assert.Empty(t, c.FilterByName("nope"))
}
