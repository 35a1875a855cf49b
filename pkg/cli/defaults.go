/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/cluster-definition/pkg/cluster"
)

func defaultsCmd() *cli.Command {
	return &cli.Command{
		Name:                  "defaults",
		EnableShellCompletion: true,
		Usage:                 "Print the default cluster definition",
		Description: `Prints the document that is merged under every cluster definition before
it is validated. Keys set in a definition replace the defaults; nested
mappings are merged key by key.`,
		Flags: []cli.Flag{
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}
			doc, err := cluster.Defaults()
			if err != nil {
				return err
			}
			return writeOutput(ctx, cmd, outFormat, doc)
		},
	}
}
