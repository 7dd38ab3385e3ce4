/*
Copyright © 2026 Lumen Labs
SPDX-License-Identifier: Apache-2.0
*/

// Package pull orchestrates a one-shot device pull: validate the
// configuration, build the protocol collector, run discovery or
// collection inside a scoped session, and render the result to stdout.
// Diagnostics go to the structured logger on stderr only.
package pull

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lumenlabs/lumen/pkg/collector"
	"github.com/lumenlabs/lumen/pkg/collector/netconf"
	"github.com/lumenlabs/lumen/pkg/collector/snmp"
	"github.com/lumenlabs/lumen/pkg/config"
	"github.com/lumenlabs/lumen/pkg/errors"
	"github.com/lumenlabs/lumen/pkg/format"
	"github.com/lumenlabs/lumen/pkg/sanitize"
	"github.com/lumenlabs/lumen/pkg/telemetry"
)

const (
	opDiscover = "discover"
	opCollect  = "collect"

	// autoPropertyPrefix marks discovered instance properties as
	// tool-managed on the monitoring platform.
	autoPropertyPrefix = "auto."
)

// Options configures one pull run.
type Options struct {
	Target      collector.Target
	Credentials collector.Credentials
	Datasource  *config.Datasource
	Format      format.Format
	Timeout     time.Duration

	// Out receives the rendered result; defaults to nothing useful, the
	// CLI passes os.Stdout.
	Out io.Writer
}

// Puller runs discovery and collection against one device.
type Puller struct {
	opts    Options
	factory collector.Factory
}

// New creates a Puller with the standard protocol adapters registered.
func New(opts Options) *Puller {
	f := collector.NewDefaultFactory()
	f.Register(config.ProtocolNetconf, netconf.NewCollector)
	f.Register(config.ProtocolSNMP, snmp.NewCollector)
	return NewWithFactory(opts, f)
}

// NewWithFactory creates a Puller with a caller-supplied factory.
func NewWithFactory(opts Options, factory collector.Factory) *Puller {
	return &Puller{opts: opts, factory: factory}
}

// Discover runs Active Discovery and writes one line (or JSON document)
// per instance. An empty device is a success with no output.
func (p *Puller) Discover(ctx context.Context) error {
	runID := uuid.NewString()
	start := time.Now()
	logger := slog.With("run_id", runID, "operation", opDiscover, "host", p.opts.Target.Host)
	logger.Info("pull started", "datasource", p.opts.Datasource.Name)

	var emitted int
	err := p.run(ctx, opDiscover, func(ctx context.Context, c collector.Collector) error {
		instances, err := c.Discover(ctx)
		if err != nil {
			return err
		}
		if instances == nil {
			return errors.New(errors.ErrCodeConnection, "collector returned no discovery result")
		}

		out := make([]telemetry.DiscoveredInstance, 0, len(instances))
		for _, inst := range instances {
			out = append(out, normalizeInstance(inst))
		}
		emitted = len(out)
		return format.NewWriter(p.opts.Out, p.opts.Format).WriteDiscovery(out)
	})

	recordRun(opDiscover, time.Since(start).Seconds(), emitted, err)
	if err != nil {
		logger.Error("pull failed", "error", err)
		return err
	}
	logger.Info("pull finished", "instances", emitted, "duration", time.Since(start).String())
	return nil
}

// Collect runs data collection and writes the datapoints. An empty
// device is a success with no datapoints.
func (p *Puller) Collect(ctx context.Context) error {
	runID := uuid.NewString()
	start := time.Now()
	logger := slog.With("run_id", runID, "operation", opCollect, "host", p.opts.Target.Host)
	logger.Info("pull started", "datasource", p.opts.Datasource.Name)

	var emitted int
	err := p.run(ctx, opCollect, func(ctx context.Context, c collector.Collector) error {
		values, err := c.Collect(ctx)
		if err != nil {
			return err
		}
		if values == nil {
			return errors.New(errors.ErrCodeConnection, "collector returned no collection result")
		}

		col := telemetry.NewMetricCollection(
			p.opts.Target.Host,
			p.opts.Datasource.Name,
			float64(start.Unix()),
		)
		for _, v := range values {
			col.Add(v)
		}
		emitted = col.Len()
		return format.NewWriter(p.opts.Out, p.opts.Format).WriteCollection(col)
	})

	recordRun(opCollect, time.Since(start).Seconds(), emitted, err)
	if err != nil {
		logger.Error("pull failed", "error", err)
		return err
	}
	logger.Info("pull finished", "datapoints", emitted, "duration", time.Since(start).String())
	return nil
}

// run validates, builds the collector, and executes fn inside a scoped
// session. Validation failures never open a connection.
func (p *Puller) run(ctx context.Context, op string, fn func(ctx context.Context, c collector.Collector) error) error {
	if p.opts.Datasource == nil {
		return errors.New(errors.ErrCodeConfiguration, "no datasource configuration")
	}
	if err := p.opts.Datasource.Validate(); err != nil {
		return err
	}
	if op == opDiscover {
		if err := p.opts.Datasource.ValidateDiscovery(); err != nil {
			return err
		}
	}

	ctor, err := p.factory.GetCollector(p.opts.Datasource.Protocol)
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfiguration, "unsupported protocol", err)
	}
	c, err := ctor(p.opts.Target, p.opts.Credentials, p.opts.Datasource)
	if err != nil {
		return err
	}

	if p.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.opts.Timeout)
		defer cancel()
	}

	return collector.WithSession(ctx, c, func(ctx context.Context) error {
		return fn(ctx, c)
	})
}

// normalizeInstance applies the platform conventions the adapters don't
// own: property keys are sanitized to the identifier charset and carry
// the auto. prefix. A key that sanitizes away entirely drops the
// property; an unsanitized key would corrupt the discovery grammar.
func normalizeInstance(inst telemetry.DiscoveredInstance) telemetry.DiscoveredInstance {
	if inst.Properties.Len() == 0 {
		return inst
	}
	out := telemetry.DiscoveredInstance{
		ID:          inst.ID,
		Name:        inst.Name,
		Description: inst.Description,
	}
	inst.Properties.Each(func(key, value string) {
		key = sanitize.MetricName(strings.TrimPrefix(key, autoPropertyPrefix))
		if key == "" {
			return
		}
		out.Properties.Set(autoPropertyPrefix+key, value)
	})
	return out
}
