/*
Copyright © 2026 Lumen Labs
SPDX-License-Identifier: Apache-2.0
*/

// Package telemetry defines the data model shared by the protocol
// adapters and the output formatter: discovered instances, metric
// values, and the per-run metric collection.
//
// Everything here is built fresh for a single discovery or collection
// run from raw protocol data and discarded after serialization; nothing
// is cached or reused between invocations.
package telemetry
