/*
Copyright © 2026 Lumen Labs
SPDX-License-Identifier: Apache-2.0
*/

// Package convert provides the numeric and lexical conversions used when
// normalizing raw device telemetry: lenient float/int parsing, optical
// power unit math (dBm/mW), ratio/percent conversion, timestamp parsing,
// and string maps that turn textual device state into numeric codes.
//
// All functions are pure and total: malformed input yields a caller
// supplied default or the "no value" result, never an error. A metric
// with no value is distinct from a metric with value zero; callers use
// the (value, ok) return pair to tell them apart.
package convert
