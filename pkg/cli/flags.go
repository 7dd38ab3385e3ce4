/*
Copyright © 2026 Lumen Labs
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"time"

	"github.com/urfave/cli/v3"
)

// Flags shared by discover and collect. Secrets can come from the
// environment so they never show up in process listings.
var (
	configFlag = &cli.StringFlag{
		Name:     "config",
		Aliases:  []string{"c"},
		Usage:    "Datasource configuration file (YAML)",
		Sources:  cli.EnvVars("LUMEN_CONFIG"),
		Required: true,
	}

	hostFlag = &cli.StringFlag{
		Name:     "host",
		Usage:    "Device hostname or IP address",
		Sources:  cli.EnvVars("LUMEN_HOST"),
		Required: true,
	}

	portFlag = &cli.IntFlag{
		Name:  "port",
		Usage: "Device port (default: 830 for netconf, 161 for snmp)",
	}

	usernameFlag = &cli.StringFlag{
		Name:    "username",
		Aliases: []string{"u"},
		Usage:   "Username for NETCONF or SNMPv3 sessions",
		Sources: cli.EnvVars("LUMEN_USERNAME"),
	}

	passwordFlag = &cli.StringFlag{
		Name:    "password",
		Aliases: []string{"p"},
		Usage:   "Password for NETCONF or SNMPv3 sessions",
		Sources: cli.EnvVars("LUMEN_PASSWORD"),
	}

	communityFlag = &cli.StringFlag{
		Name:    "community",
		Usage:   "SNMP v2c community string",
		Sources: cli.EnvVars("LUMEN_COMMUNITY"),
	}

	authProtocolFlag = &cli.StringFlag{
		Name:  "auth-protocol",
		Usage: "SNMPv3 authentication protocol (md5, sha, sha256, sha512)",
	}

	privProtocolFlag = &cli.StringFlag{
		Name:  "priv-protocol",
		Usage: "SNMPv3 privacy protocol (des, aes, aes256)",
	}

	privPasswordFlag = &cli.StringFlag{
		Name:    "priv-password",
		Usage:   "SNMPv3 privacy passphrase (defaults to the password)",
		Sources: cli.EnvVars("LUMEN_PRIV_PASSWORD"),
	}

	timeoutFlag = &cli.DurationFlag{
		Name:  "timeout",
		Usage: "Overall deadline for the pull",
		Value: 2 * time.Minute,
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: line or json",
		Value:   "line",
	}
)

func pullFlags() []cli.Flag {
	return []cli.Flag{
		configFlag,
		hostFlag,
		portFlag,
		usernameFlag,
		passwordFlag,
		communityFlag,
		authProtocolFlag,
		privProtocolFlag,
		privPasswordFlag,
		timeoutFlag,
		formatFlag,
	}
}
