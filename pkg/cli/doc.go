/*
Copyright © 2026 Lumen Labs
SPDX-License-Identifier: Apache-2.0
*/

// Package cli implements the lumen command line interface.
//
// The binary is one-shot by design: the monitoring platform invokes it
// per device, reads stdout, and interprets the exit code. Exit 0 means
// the pull succeeded, including pulls that found nothing; exit 1 means
// any failure. Diagnostics go to stderr as structured JSON logs and
// never mix with the data channel.
//
// Commands:
//
//	discover  print discovered instances in the discovery line grammar
//	collect   print metric values in the collection grammar or as JSON
//
// Credentials can be passed as flags or through LUMEN_* environment
// variables so schedulers never place secrets on the command line.
package cli
