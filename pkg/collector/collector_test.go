/*
Copyright © 2026 Lumen Labs
SPDX-License-Identifier: Apache-2.0
*/

package collector

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenlabs/lumen/pkg/config"
	"github.com/lumenlabs/lumen/pkg/telemetry"
)

type fakeCollector struct {
	connectErr    error
	disconnectErr error

	connects    int
	disconnects int
}

func (f *fakeCollector) Connect(ctx context.Context) error {
	f.connects++
	return f.connectErr
}

func (f *fakeCollector) Disconnect() error {
	f.disconnects++
	return f.disconnectErr
}

func (f *fakeCollector) Discover(ctx context.Context) ([]telemetry.DiscoveredInstance, error) {
	return []telemetry.DiscoveredInstance{}, nil
}

func (f *fakeCollector) Collect(ctx context.Context) ([]telemetry.MetricValue, error) {
	return []telemetry.MetricValue{}, nil
}

func TestWithSession(t *testing.T) {
	fake := &fakeCollector{}
	ran := false

	err := WithSession(t.Context(), fake, func(ctx context.Context) error {
		ran = true
		return nil
	})

	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, 1, fake.connects)
	assert.Equal(t, 1, fake.disconnects)
}

func TestWithSessionConnectError(t *testing.T) {
	fake := &fakeCollector{connectErr: errors.New("refused")}

	err := WithSession(t.Context(), fake, func(ctx context.Context) error {
		t.Fatal("fn must not run when connect fails")
		return nil
	})

	require.Error(t, err)
	assert.Equal(t, 0, fake.disconnects)
}

func TestWithSessionDisconnectsOnError(t *testing.T) {
	fake := &fakeCollector{}
	want := errors.New("collect failed")

	err := WithSession(t.Context(), fake, func(ctx context.Context) error {
		return want
	})

	// fn's error wins; the session is still torn down exactly once.
	assert.ErrorIs(t, err, want)
	assert.Equal(t, 1, fake.disconnects)
}

func TestWithSessionDisconnectErrorNotMasked(t *testing.T) {
	fnErr := errors.New("collect failed")
	fake := &fakeCollector{disconnectErr: errors.New("close failed")}

	err := WithSession(t.Context(), fake, func(ctx context.Context) error {
		return fnErr
	})
	assert.ErrorIs(t, err, fnErr)

	// With a clean fn the disconnect error surfaces.
	fake = &fakeCollector{disconnectErr: errors.New("close failed")}
	err = WithSession(t.Context(), fake, func(ctx context.Context) error {
		return nil
	})
	assert.EqualError(t, err, "close failed")
}

func TestDefaultFactory(t *testing.T) {
	f := NewDefaultFactory()

	_, err := f.GetCollector(config.ProtocolNetconf)
	require.Error(t, err)

	f.Register(config.ProtocolNetconf, func(target Target, creds Credentials, ds *config.Datasource) (Collector, error) {
		return &fakeCollector{}, nil
	})

	ctor, err := f.GetCollector(config.ProtocolNetconf)
	require.NoError(t, err)

	c, err := ctor(Target{Host: "10.0.0.1"}, Credentials{}, &config.Datasource{})
	require.NoError(t, err)
	assert.NotNil(t, c)
}
