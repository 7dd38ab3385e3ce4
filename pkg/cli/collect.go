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

func collectCmd() *cli.Command {
	return &cli.Command{
		Name:                  "collect",
		EnableShellCompletion: true,
		Usage:                 "Collect metric values from a device",
		Description: `Connect to the device, run the configured query, and print one line
per datapoint:

  instance_id.metric_name=value

Device-scope metrics print without the instance prefix. With --format
json the datapoints are grouped per instance in a single document.

# Examples

  lumen collect --config groove-dom.yaml --host 10.1.2.3 -u monitor -p secret

  lumen collect --config if-mib.yaml --host 10.1.2.4 --community public --format json`,
		Flags: pullFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts, err := optionsFromCommand(cmd)
			if err != nil {
				return err
			}
			return pull.New(opts).Collect(ctx)
		},
	}
}
