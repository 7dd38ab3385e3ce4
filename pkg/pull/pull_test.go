/*
Copyright © 2026 Lumen Labs
SPDX-License-Identifier: Apache-2.0
*/

package pull

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenlabs/lumen/pkg/collector"
	"github.com/lumenlabs/lumen/pkg/config"
	"github.com/lumenlabs/lumen/pkg/errors"
	"github.com/lumenlabs/lumen/pkg/format"
	"github.com/lumenlabs/lumen/pkg/telemetry"
)

type mockCollector struct {
	instances []telemetry.DiscoveredInstance
	values    []telemetry.MetricValue

	connectErr  error
	discoverErr error
	collectErr  error

	connects    int
	disconnects int
}

func (m *mockCollector) Connect(ctx context.Context) error {
	m.connects++
	return m.connectErr
}

func (m *mockCollector) Disconnect() error {
	m.disconnects++
	return nil
}

func (m *mockCollector) Discover(ctx context.Context) ([]telemetry.DiscoveredInstance, error) {
	return m.instances, m.discoverErr
}

func (m *mockCollector) Collect(ctx context.Context) ([]telemetry.MetricValue, error) {
	return m.values, m.collectErr
}

func validDatasource() *config.Datasource {
	return &config.Datasource{
		Name:     "optical_dom",
		Protocol: config.ProtocolNetconf,
		Netconf:  config.NetconfQuery{Filter: "<interfaces/>"},
		Discovery: config.DiscoveryRules{
			Instances: "interfaces/interface",
			IDKey:     "name",
		},
	}
}

func newTestPuller(t *testing.T, mock *mockCollector, ds *config.Datasource, out *bytes.Buffer) *Puller {
	t.Helper()
	f := collector.NewDefaultFactory()
	f.Register(config.ProtocolNetconf, func(target collector.Target, creds collector.Credentials, d *config.Datasource) (collector.Collector, error) {
		return mock, nil
	})
	return NewWithFactory(Options{
		Target:     collector.Target{Host: "10.0.0.1"},
		Datasource: ds,
		Format:     format.FormatLine,
		Out:        out,
	}, f)
}

func TestDiscover(t *testing.T) {
	inst := telemetry.DiscoveredInstance{ID: "port_1", Name: "ots-1-1-1", Description: "west"}
	inst.Properties.Set("circuit", "CKT-100")
	mock := &mockCollector{instances: []telemetry.DiscoveredInstance{inst}}

	var out bytes.Buffer
	p := newTestPuller(t, mock, validDatasource(), &out)

	require.NoError(t, p.Discover(t.Context()))
	assert.Equal(t, "port_1##ots-1-1-1##west####auto.circuit=CKT-100\n", out.String())
	assert.Equal(t, 1, mock.connects)
	assert.Equal(t, 1, mock.disconnects)
}

func TestDiscoverEmptyIsSuccess(t *testing.T) {
	mock := &mockCollector{instances: []telemetry.DiscoveredInstance{}}

	var out bytes.Buffer
	p := newTestPuller(t, mock, validDatasource(), &out)

	require.NoError(t, p.Discover(t.Context()))
	assert.Equal(t, "", out.String())
}

func TestDiscoverNilResultIsFailure(t *testing.T) {
	mock := &mockCollector{instances: nil}

	var out bytes.Buffer
	p := newTestPuller(t, mock, validDatasource(), &out)

	err := p.Discover(t.Context())
	require.Error(t, err)
	assert.True(t, errors.IsConnection(err))
	// The session still opened and closed around the failed read.
	assert.Equal(t, 1, mock.disconnects)
}

func TestCollect(t *testing.T) {
	mock := &mockCollector{values: []telemetry.MetricValue{
		{Name: "rxpower", Value: telemetry.Float(-3.2), InstanceID: "port_1"},
		{Name: "uptime", Value: telemetry.Float(3600)},
	}}

	var out bytes.Buffer
	p := newTestPuller(t, mock, validDatasource(), &out)

	require.NoError(t, p.Collect(t.Context()))
	assert.Equal(t, "port_1.rxpower=-3.2\nuptime=3600\n", out.String())
}

func TestCollectEmptyIsSuccess(t *testing.T) {
	mock := &mockCollector{values: []telemetry.MetricValue{}}

	var out bytes.Buffer
	p := newTestPuller(t, mock, validDatasource(), &out)

	require.NoError(t, p.Collect(t.Context()))
	assert.Equal(t, "", out.String())
}

func TestCollectNilResultIsFailure(t *testing.T) {
	mock := &mockCollector{values: nil}

	var out bytes.Buffer
	p := newTestPuller(t, mock, validDatasource(), &out)

	err := p.Collect(t.Context())
	require.Error(t, err)
	assert.True(t, errors.IsConnection(err))
}

func TestInvalidConfigNeverConnects(t *testing.T) {
	mock := &mockCollector{}
	ds := validDatasource()
	ds.Netconf.Filter = ""

	var out bytes.Buffer
	p := newTestPuller(t, mock, ds, &out)

	err := p.Discover(t.Context())
	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err))
	assert.Equal(t, 0, mock.connects)
}

func TestDiscoverMissingRulesNeverConnects(t *testing.T) {
	mock := &mockCollector{
		instances: []telemetry.DiscoveredInstance{},
		values:    []telemetry.MetricValue{},
	}
	ds := validDatasource()
	ds.Discovery = config.DiscoveryRules{}

	var out bytes.Buffer
	p := newTestPuller(t, mock, ds, &out)

	// Missing extraction rules would silently discover nothing; they
	// must fail before any session opens instead.
	err := p.Discover(t.Context())
	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err))
	assert.Equal(t, 0, mock.connects)

	// Collect does not need the discovery rules.
	require.NoError(t, p.Collect(t.Context()))
}

func TestDiscoverMissingWalkOIDNeverConnects(t *testing.T) {
	mock := &mockCollector{instances: []telemetry.DiscoveredInstance{}}
	ds := &config.Datasource{
		Name:     "if_mib",
		Protocol: config.ProtocolSNMP,
		Collection: config.CollectionRules{
			Metrics: []config.MetricRule{{Name: "ifInOctets", OID: "1.3.6.1.2.1.2.2.1.10", Walk: true}},
		},
	}

	f := collector.NewDefaultFactory()
	f.Register(config.ProtocolSNMP, func(target collector.Target, creds collector.Credentials, d *config.Datasource) (collector.Collector, error) {
		return mock, nil
	})
	var out bytes.Buffer
	p := NewWithFactory(Options{
		Target:     collector.Target{Host: "10.0.0.1"},
		Datasource: ds,
		Format:     format.FormatLine,
		Out:        &out,
	}, f)

	err := p.Discover(t.Context())
	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err))
	assert.Equal(t, 0, mock.connects)
}

func TestConnectFailurePropagates(t *testing.T) {
	mock := &mockCollector{connectErr: errors.New(errors.ErrCodeConnection, "refused")}

	var out bytes.Buffer
	p := newTestPuller(t, mock, validDatasource(), &out)

	err := p.Collect(t.Context())
	require.Error(t, err)
	assert.True(t, errors.IsConnection(err))
	assert.Equal(t, "", out.String())
	// No session was established, so nothing to tear down beyond the
	// scoped helper's own bookkeeping.
	assert.Equal(t, 0, mock.disconnects)
}

func TestNormalizeInstanceKeepsExistingPrefix(t *testing.T) {
	inst := telemetry.DiscoveredInstance{ID: "p1", Name: "p1"}
	inst.Properties.Set("auto.circuit", "CKT-1")
	inst.Properties.Set("shelf", "2")

	got := normalizeInstance(inst)
	keys := got.Properties.Keys()
	assert.Equal(t, []string{"auto.circuit", "auto.shelf"}, keys)
}

func TestNormalizeInstanceSanitizesKeys(t *testing.T) {
	inst := telemetry.DiscoveredInstance{ID: "p1", Name: "p1"}
	inst.Properties.Set("Circuit ID", "CKT-1")
	inst.Properties.Set("rx&power", "ok")
	inst.Properties.Set("##", "dropped")

	// Keys with grammar characters would corrupt the discovery line;
	// they are forced into the identifier charset, and a key with
	// nothing left is dropped.
	got := normalizeInstance(inst)
	assert.Equal(t, []string{"auto.circuit_id", "auto.rx_power"}, got.Properties.Keys())

	v, ok := got.Properties.Get("auto.circuit_id")
	assert.True(t, ok)
	assert.Equal(t, "CKT-1", v)
}
