/*
Copyright © 2026 Lumen Labs
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/lumenlabs/lumen/pkg/pull"
)

func discoverCmd() *cli.Command {
	return &cli.Command{
		Name:                  "discover",
		EnableShellCompletion: true,
		Usage:                 "Discover monitorable instances on a device",
		Description: `Connect to the device, run the configured query, and print one line
per discovered instance:

  instance_id##instance_name##description####key1=val1&key2=val2

A device with no matching instances produces no output and exits 0.

# Examples

  lumen discover --config groove-dom.yaml --host 10.1.2.3 -u monitor -p secret

  lumen discover --config if-mib.yaml --host 10.1.2.4 --community public --format json`,
		Flags: pullFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts, err := optionsFromCommand(cmd)
			if err != nil {
				return err
			}
			return pull.New(opts).Discover(ctx)
		},
	}
}
