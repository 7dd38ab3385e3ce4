/*
Copyright © 2026 Lumen Labs
SPDX-License-Identifier: Apache-2.0
*/

// Package collector defines the contract shared by every protocol
// adapter: connect to a device, discover instances, collect metric
// values, disconnect. Adapters register with a Factory keyed by the
// configured protocol.
package collector

import (
	"context"
	"fmt"

	"github.com/lumenlabs/lumen/pkg/config"
	"github.com/lumenlabs/lumen/pkg/telemetry"
)

// Collector is a single-device, single-session telemetry source.
//
// Connect must succeed before Discover or Collect are called.
// Disconnect is safe to call on a collector that never connected or
// already disconnected. Implementations are not safe for concurrent
// use; the pipeline runs one session at a time.
type Collector interface {
	// Connect establishes the device session.
	Connect(ctx context.Context) error

	// Disconnect tears the session down, releasing the transport.
	Disconnect() error

	// Discover returns the instances present on the device. An empty
	// non-nil slice means the device answered with no instances.
	Discover(ctx context.Context) ([]telemetry.DiscoveredInstance, error)

	// Collect returns the metric values for the configured rules. An
	// empty non-nil slice means the device answered with no values.
	Collect(ctx context.Context) ([]telemetry.MetricValue, error)
}

// Target identifies the device a collector talks to. Port zero selects
// the protocol default.
type Target struct {
	Host string
	Port int
}

// Credentials carries everything an adapter may need to authenticate.
// Each protocol reads its own subset.
type Credentials struct {
	// Username and Password authenticate NETCONF-over-SSH and SNMPv3
	// sessions.
	Username string
	Password string

	// Community is the SNMP v2c community string.
	Community string

	// AuthProtocol and PrivProtocol select the SNMPv3 USM algorithms
	// (e.g. SHA, AES). Empty values select the adapter defaults.
	AuthProtocol string
	PrivProtocol string
	PrivPassword string
}

// New builds a collector for the given device and datasource
// configuration.
type New func(target Target, creds Credentials, ds *config.Datasource) (Collector, error)

// Factory resolves a protocol name to a collector constructor.
type Factory interface {
	GetCollector(protocol config.Protocol) (New, error)
}

// DefaultFactory is a registry-backed Factory.
type DefaultFactory struct {
	constructors map[config.Protocol]New
}

// NewDefaultFactory creates an empty factory.
func NewDefaultFactory() *DefaultFactory {
	return &DefaultFactory{constructors: make(map[config.Protocol]New)}
}

// Register adds a constructor for a protocol, replacing any previous
// registration.
func (f *DefaultFactory) Register(protocol config.Protocol, ctor New) {
	f.constructors[protocol] = ctor
}

// GetCollector returns the constructor registered for the protocol.
func (f *DefaultFactory) GetCollector(protocol config.Protocol) (New, error) {
	ctor, ok := f.constructors[protocol]
	if !ok {
		return nil, fmt.Errorf("no collector registered for protocol %q", protocol)
	}
	return ctor, nil
}

// WithSession connects the collector, runs fn, and disconnects. The
// session is torn down even when fn fails. A disconnect error never
// masks fn's error.
func WithSession(ctx context.Context, c Collector, fn func(ctx context.Context) error) error {
	if err := c.Connect(ctx); err != nil {
		return err
	}

	fnErr := fn(ctx)
	if err := c.Disconnect(); err != nil && fnErr == nil {
		fnErr = err
	}
	return fnErr
}
