/*
Copyright © 2026 Lumen Labs
SPDX-License-Identifier: Apache-2.0
*/

// Package snmp collects interface telemetry over SNMP v2c or v3. Tables
// are walked with GETBULK and row indexes become instance identifiers;
// scalar objects are read with GET and emitted without an instance.
package snmp

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/gosnmp/gosnmp"
	"golang.org/x/time/rate"

	"github.com/lumenlabs/lumen/pkg/collector"
	"github.com/lumenlabs/lumen/pkg/config"
	"github.com/lumenlabs/lumen/pkg/errors"
	"github.com/lumenlabs/lumen/pkg/sanitize"
	"github.com/lumenlabs/lumen/pkg/telemetry"
)

const (
	defaultPort    = 161
	requestTimeout = 10 * time.Second
	requestRetries = 2

	// requestsPerSecond paces successive walk and get operations, one
	// token per BulkWalk or Get call, so a pull with many metric rules
	// never saturates the management plane of a busy chassis.
	requestsPerSecond = 20
)

// Collector pulls telemetry from one device over SNMP.
type Collector struct {
	target collector.Target
	creds  collector.Credentials
	ds     *config.Datasource

	client  *gosnmp.GoSNMP
	limiter *rate.Limiter
}

// NewCollector builds an SNMP collector; it does not touch the network
// until Connect.
func NewCollector(target collector.Target, creds collector.Credentials, ds *config.Datasource) (collector.Collector, error) {
	if target.Host == "" {
		return nil, errors.New(errors.ErrCodeConfiguration, "snmp collector requires a host")
	}
	if creds.Community == "" && creds.Username == "" {
		return nil, errors.New(errors.ErrCodeConfiguration, "snmp collector requires a community or a v3 username")
	}
	return &Collector{
		target:  target,
		creds:   creds,
		ds:      ds,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}, nil
}

// Connect opens the SNMP socket and, for v3, completes the USM
// handshake.
func (c *Collector) Connect(ctx context.Context) error {
	if c.client != nil {
		return nil
	}

	port := c.target.Port
	if port == 0 {
		port = defaultPort
	}

	client := &gosnmp.GoSNMP{
		Target:  c.target.Host,
		Port:    uint16(port),
		Timeout: requestTimeout,
		Retries: requestRetries,
		Context: ctx,
	}

	if c.creds.Community != "" {
		client.Version = gosnmp.Version2c
		client.Community = c.creds.Community
	} else {
		client.Version = gosnmp.Version3
		client.SecurityModel = gosnmp.UserSecurityModel
		client.MsgFlags = gosnmp.AuthPriv
		client.SecurityParameters = &gosnmp.UsmSecurityParameters{
			UserName:                 c.creds.Username,
			AuthenticationProtocol:   authProtocol(c.creds.AuthProtocol),
			AuthenticationPassphrase: c.creds.Password,
			PrivacyProtocol:          privProtocol(c.creds.PrivProtocol),
			PrivacyPassphrase:        privPassphrase(c.creds),
		}
	}

	if err := client.Connect(); err != nil {
		return errors.Wrap(errors.ErrCodeConnection,
			fmt.Sprintf("snmp connect %s:%d failed", c.target.Host, port), err)
	}
	c.client = client
	slog.Debug("snmp session established", "host", c.target.Host, "version", client.Version)
	return nil
}

// Disconnect closes the socket. Safe on an unconnected collector.
func (c *Collector) Disconnect() error {
	if c.client == nil {
		return nil
	}
	err := c.client.Conn.Close()
	c.client = nil
	if err != nil {
		return errors.Wrap(errors.ErrCodeConnection, "snmp close failed", err)
	}
	return nil
}

// Discover walks the configured table and yields one instance per row.
// The row index is the instance identifier and the walked value its
// display name.
func (c *Collector) Discover(ctx context.Context) ([]telemetry.DiscoveredInstance, error) {
	if c.client == nil {
		return nil, errors.New(errors.ErrCodeConnection, "snmp session not connected")
	}
	base := strings.TrimSpace(c.ds.SNMP.WalkOID)
	if base == "" {
		return nil, errors.New(errors.ErrCodeConfiguration, "discovery requires snmp.walk_oid")
	}

	instances := []telemetry.DiscoveredInstance{}
	err := c.walk(ctx, base, func(index string, pdu gosnmp.SnmpPDU) {
		name := pduText(pdu)
		instances = append(instances, telemetry.DiscoveredInstance{
			ID:          sanitize.InstanceID(index),
			Name:        name,
			Description: name,
		})
	})
	if err != nil {
		return nil, err
	}
	return instances, nil
}

// Collect reads every configured metric. Table metrics are walked and
// keyed by row index; scalar metrics are read with GET and emitted
// without an instance.
func (c *Collector) Collect(ctx context.Context) ([]telemetry.MetricValue, error) {
	if c.client == nil {
		return nil, errors.New(errors.ErrCodeConnection, "snmp session not connected")
	}

	values := []telemetry.MetricValue{}
	for _, rule := range c.ds.Collection.Metrics {
		sm, err := rule.ResolveStringMap()
		if err != nil {
			return nil, err
		}
		name := sanitize.MetricName(rule.Name)

		if rule.Walk {
			err := c.walk(ctx, rule.OID, func(index string, pdu gosnmp.SnmpPDU) {
				v := collector.Transform(pduText(pdu), rule, sm)
				if !v.Valid {
					return
				}
				values = append(values, telemetry.MetricValue{
					Name:         name,
					Value:        v,
					InstanceID:   sanitize.InstanceID(index),
					InstanceName: index,
					Help:         rule.Help,
				})
			})
			if err != nil {
				return nil, err
			}
			continue
		}

		pdu, err := c.getScalar(ctx, rule.OID)
		if err != nil {
			return nil, err
		}
		if pdu == nil {
			slog.Debug("scalar object absent", "metric", rule.Name, "oid", rule.OID)
			continue
		}
		v := collector.Transform(pduText(*pdu), rule, sm)
		if !v.Valid {
			continue
		}
		values = append(values, telemetry.MetricValue{Name: name, Value: v, Help: rule.Help})
	}

	if chassis := c.ds.Collection.Chassis; chassis != nil {
		for _, rule := range chassis.Metrics {
			sm, err := rule.ResolveStringMap()
			if err != nil {
				return nil, err
			}
			pdu, err := c.getScalar(ctx, rule.OID)
			if err != nil {
				return nil, err
			}
			if pdu == nil {
				continue
			}
			if v := collector.Transform(pduText(*pdu), rule, sm); v.Valid {
				values = append(values, telemetry.MetricValue{
					Name:  sanitize.MetricName(rule.Name),
					Value: v,
					Help:  rule.Help,
				})
			}
		}
	}
	return values, nil
}

// walk paces and runs a GETBULK walk, handing each PDU's row index and
// value to fn.
func (c *Collector) walk(ctx context.Context, base string, fn func(index string, pdu gosnmp.SnmpPDU)) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return errors.Wrap(errors.ErrCodeTimeout, "snmp walk canceled", err)
	}
	c.client.Context = ctx

	prefix := "." + strings.TrimPrefix(base, ".") + "."
	err := c.client.BulkWalk(base, func(pdu gosnmp.SnmpPDU) error {
		fn(rowIndex(pdu.Name, prefix), pdu)
		return nil
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeConnection, fmt.Sprintf("snmp walk %s failed", base), err)
	}
	return nil
}

// getScalar paces and reads one object as configured. A noSuchObject
// answer yields nil without error.
func (c *Collector) getScalar(ctx context.Context, oid string) (*gosnmp.SnmpPDU, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(errors.ErrCodeTimeout, "snmp get canceled", err)
	}
	c.client.Context = ctx

	packet, err := c.client.Get([]string{oid})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConnection, fmt.Sprintf("snmp get %s failed", oid), err)
	}
	for _, pdu := range packet.Variables {
		switch pdu.Type {
		case gosnmp.NoSuchObject, gosnmp.NoSuchInstance, gosnmp.EndOfMibView:
			continue
		}
		return &pdu, nil
	}
	return nil, nil
}

// rowIndex strips the walked base OID from a PDU name, leaving the row
// index (possibly multi-component, e.g. "1.4.10.0.0.1").
func rowIndex(name, prefix string) string {
	name = "." + strings.TrimPrefix(name, ".")
	if idx := strings.TrimPrefix(name, prefix); idx != name {
		return idx
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}

// pduText renders a PDU value as the raw token fed to the transform
// chain.
func pduText(pdu gosnmp.SnmpPDU) string {
	switch v := pdu.Value.(type) {
	case []byte:
		return string(v)
	case string:
		return v
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return gosnmp.ToBigInt(pdu.Value).String()
	}
}

func authProtocol(name string) gosnmp.SnmpV3AuthProtocol {
	switch strings.ToLower(name) {
	case "md5":
		return gosnmp.MD5
	case "sha256":
		return gosnmp.SHA256
	case "sha512":
		return gosnmp.SHA512
	default:
		return gosnmp.SHA
	}
}

func privProtocol(name string) gosnmp.SnmpV3PrivProtocol {
	switch strings.ToLower(name) {
	case "des":
		return gosnmp.DES
	case "aes256":
		return gosnmp.AES256
	default:
		return gosnmp.AES
	}
}

func privPassphrase(creds collector.Credentials) string {
	if creds.PrivPassword != "" {
		return creds.PrivPassword
	}
	return creds.Password
}
