/*
Copyright © 2026 Lumen Labs
SPDX-License-Identifier: Apache-2.0
*/

// Package netconf collects optical transport telemetry over
// NETCONF-over-SSH. The configured subtree filter is passed through to
// <get> verbatim and the reply is walked by element local name, so one
// configuration survives the namespace prefix differences between
// vendors.
package netconf

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	ncssh "github.com/Juniper/go-netconf/netconf"
	"github.com/beevik/etree"
	"golang.org/x/crypto/ssh"

	"github.com/lumenlabs/lumen/pkg/collector"
	"github.com/lumenlabs/lumen/pkg/config"
	"github.com/lumenlabs/lumen/pkg/errors"
	"github.com/lumenlabs/lumen/pkg/sanitize"
	"github.com/lumenlabs/lumen/pkg/telemetry"
)

const (
	defaultPort    = 830
	dialTimeout    = 30 * time.Second
	defaultRPCWait = 60 * time.Second
)

// session is the subset of the NETCONF library session the collector
// uses; tests substitute canned replies.
type session interface {
	Exec(methods ...ncssh.RPCMethod) (*ncssh.RPCReply, error)
	Close() error
}

// Collector pulls telemetry from one device over a single NETCONF
// session.
type Collector struct {
	target collector.Target
	creds  collector.Credentials
	ds     *config.Datasource

	session      session
	capabilities []string
	deviceType   string

	dial func(addr string, cfg *ssh.ClientConfig) (*ncssh.Session, error)
}

// NewCollector builds a NETCONF collector; it does not touch the
// network until Connect.
func NewCollector(target collector.Target, creds collector.Credentials, ds *config.Datasource) (collector.Collector, error) {
	if target.Host == "" {
		return nil, errors.New(errors.ErrCodeConfiguration, "netconf collector requires a host")
	}
	if creds.Username == "" {
		return nil, errors.New(errors.ErrCodeConfiguration, "netconf collector requires a username")
	}
	return &Collector{
		target: target,
		creds:  creds,
		ds:     ds,
		dial:   ncssh.DialSSH,
	}, nil
}

// Connect dials the device and opens the NETCONF session.
func (c *Collector) Connect(ctx context.Context) error {
	if c.session != nil {
		return nil
	}

	port := c.target.Port
	if port == 0 {
		port = defaultPort
	}
	addr := fmt.Sprintf("%s:%d", c.target.Host, port)

	sshCfg := &ssh.ClientConfig{
		User: c.creds.Username,
		Auth: []ssh.AuthMethod{
			ssh.Password(c.creds.Password),
			ssh.KeyboardInteractive(func(name, instruction string, questions []string, echos []bool) ([]string, error) {
				answers := make([]string, len(questions))
				for i := range questions {
					answers[i] = c.creds.Password
				}
				return answers, nil
			}),
		},
		// Optical line systems rotate host keys on RMA; operators pin
		// reachability at the management network instead.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         dialTimeout,
	}
	if deadline, ok := ctx.Deadline(); ok {
		if remain := time.Until(deadline); remain < sshCfg.Timeout {
			sshCfg.Timeout = remain
		}
	}

	s, err := c.dial(addr, sshCfg)
	if err != nil {
		if strings.Contains(err.Error(), "unable to authenticate") {
			return errors.Wrap(errors.ErrCodeAuthentication, "device rejected credentials", err)
		}
		return errors.Wrap(errors.ErrCodeConnection, fmt.Sprintf("netconf dial %s failed", addr), err)
	}

	c.session = s
	c.capabilities = s.ServerCapabilities
	c.deviceType = resolveDeviceType(c.ds.Netconf.DeviceType, c.capabilities)
	slog.Debug("netconf session established",
		"host", c.target.Host,
		"device_type", c.deviceType,
		"capabilities", len(c.capabilities))
	return nil
}

// Disconnect closes the session. Safe on an unconnected collector.
func (c *Collector) Disconnect() error {
	if c.session == nil {
		return nil
	}
	err := c.session.Close()
	c.session = nil
	if err != nil {
		return errors.Wrap(errors.ErrCodeConnection, "netconf session close failed", err)
	}
	return nil
}

// Discover runs the configured filter and extracts instances from the
// reply.
func (c *Collector) Discover(ctx context.Context) ([]telemetry.DiscoveredInstance, error) {
	doc, err := c.get(ctx)
	if err != nil {
		return nil, err
	}
	return c.discoverFrom(doc), nil
}

// Collect runs the configured filter and extracts metric values from
// the reply.
func (c *Collector) Collect(ctx context.Context) ([]telemetry.MetricValue, error) {
	doc, err := c.get(ctx)
	if err != nil {
		return nil, err
	}
	return c.collectFrom(doc), nil
}

// get issues <get> with the configured subtree filter and parses the
// reply body.
func (c *Collector) get(ctx context.Context) (*etree.Document, error) {
	if c.session == nil {
		return nil, errors.New(errors.ErrCodeConnection, "netconf session not connected")
	}

	filter := expandFilter(c.ds.Netconf.Filter, mergedNamespaces(c.deviceType, c.ds.Netconf.Namespaces))
	method := ncssh.RawMethod(fmt.Sprintf("<get><filter type=\"subtree\">%s</filter></get>", filter))

	type result struct {
		reply *ncssh.RPCReply
		err   error
	}
	done := make(chan result, 1)
	go func() {
		reply, err := c.session.Exec(method)
		done <- result{reply, err}
	}()

	wait := defaultRPCWait
	if deadline, ok := ctx.Deadline(); ok {
		wait = time.Until(deadline)
	}

	var reply *ncssh.RPCReply
	select {
	case r := <-done:
		if r.err != nil {
			return nil, errors.Wrap(errors.ErrCodeConnection, "netconf get failed", r.err)
		}
		reply = r.reply
	case <-ctx.Done():
		return nil, errors.Wrap(errors.ErrCodeTimeout, "netconf get canceled", ctx.Err())
	case <-time.After(wait):
		return nil, errors.New(errors.ErrCodeTimeout, "netconf get timed out")
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString("<data>" + reply.Data + "</data>"); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, "netconf reply is not well-formed", err)
	}
	return doc, nil
}

func (c *Collector) discoverFrom(doc *etree.Document) []telemetry.DiscoveredInstance {
	rules := c.ds.Discovery
	instances := []telemetry.DiscoveredInstance{}

	for _, el := range findAll(doc.Root(), rules.Instances) {
		raw := childText(el, rules.IDKey, "")
		if raw == "" && rules.FallbackIDKey != "" {
			raw = childText(el, rules.FallbackIDKey, "")
		}
		id := sanitize.InstanceID(raw)
		if id == "" {
			slog.Debug("skipping instance without usable id", "path", rules.Instances)
			continue
		}

		inst := telemetry.DiscoveredInstance{
			ID:          id,
			Name:        childText(el, rules.NameKey, raw),
			Description: childText(el, rules.DescriptionKey, ""),
		}
		for _, p := range rules.Properties {
			if v := childText(el, p.Path, ""); v != "" {
				inst.Properties.Set(p.Name, v)
			}
		}
		instances = append(instances, inst)
	}
	return instances
}

func (c *Collector) collectFrom(doc *etree.Document) []telemetry.MetricValue {
	rules := c.ds.Collection
	values := []telemetry.MetricValue{}

	for _, el := range findAll(doc.Root(), rules.Instances) {
		raw := childText(el, rules.IDKey, "")
		id := sanitize.InstanceID(raw)
		if id == "" {
			continue
		}
		for _, rule := range rules.Metrics {
			v, ok := c.extract(el, rule)
			if !ok {
				continue
			}
			v.InstanceID = id
			v.InstanceName = raw
			values = append(values, v)
		}
	}

	if rules.Chassis != nil {
		scope := doc.Root()
		if rules.Chassis.Path != "" {
			if found := findAll(doc.Root(), rules.Chassis.Path); len(found) > 0 {
				scope = found[0]
			} else {
				scope = nil
			}
		}
		if scope != nil {
			for _, rule := range rules.Chassis.Metrics {
				if v, ok := c.extract(scope, rule); ok {
					values = append(values, v)
				}
			}
		}
	}
	return values
}

// extract resolves one metric rule against an element. A missing child
// or unparseable token skips the datapoint without failing the run.
func (c *Collector) extract(el *etree.Element, rule config.MetricRule) (telemetry.MetricValue, bool) {
	raw := childText(el, rule.Path, "")
	if raw == "" {
		return telemetry.MetricValue{}, false
	}

	sm, err := rule.ResolveStringMap()
	if err != nil {
		slog.Warn("metric skipped", "metric", rule.Name, "error", err)
		return telemetry.MetricValue{}, false
	}

	v := collector.Transform(raw, rule, sm)
	if !v.Valid {
		slog.Debug("token did not resolve to a value", "metric", rule.Name, "token", raw)
		return telemetry.MetricValue{}, false
	}
	return telemetry.MetricValue{
		Name:  sanitize.MetricName(rule.Name),
		Value: v,
		Help:  rule.Help,
	}, true
}

