/*
Copyright © 2026 Lumen Labs
SPDX-License-Identifier: Apache-2.0
*/

package main

import "github.com/lumenlabs/lumen/pkg/cli"

func main() {
	cli.Execute()
}
