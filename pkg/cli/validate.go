/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"github.com/NVIDIA/cluster-definition/pkg/cluster"
	"github.com/NVIDIA/cluster-definition/pkg/serializer"
)

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "validate",
		EnableShellCompletion: true,
		Usage:                 "Validate cluster definitions",
		ArgsUsage:             "SOURCE...",
		Description: `Validates one or more cluster definitions and prints a report for each.

A source is a file path, "-" for stdin, an HTTP/HTTPS URL, or a ConfigMap
URI (cm://namespace/name). Sources are validated concurrently; reports are
printed in argument order. The command fails when any definition is invalid.

# Examples

Validate a single file:
  clusterdef validate cluster.yml

Validate several definitions and print JSON:
  clusterdef validate --format json prod.yml staging.yml

Include the normalized document (defaults applied) in valid reports:
  clusterdef validate --document cluster.yml

Validate the definition stored in the cluster:
  clusterdef validate cm://kube-system/cluster-config`,
		Flags: []cli.Flag{
			outputFlag(),
			formatFlag(),
			localeFlag(),
			kubeconfigFlag(),
			&cli.BoolFlag{
				Name:  "document",
				Usage: "include the normalized document in valid reports",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			sources := cmd.Args().Slice()
			if len(sources) == 0 {
				return fmt.Errorf("at least one source is required")
			}

			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}
			tag, err := parseLocale(cmd)
			if err != nil {
				return err
			}
			v, err := newValidator(cmd)
			if err != nil {
				return fmt.Errorf("failed to build validator: %w", err)
			}

			reports, err := validateSources(ctx, v, sources, validateOptions{
				kubeconfig: cmd.String("kubeconfig"),
				locale:     tag,
				document:   cmd.Bool("document"),
			})
			if err != nil {
				return err
			}

			var out any = reports
			if len(reports) == 1 {
				out = reports[0]
			}
			if err := writeOutput(ctx, cmd, outFormat, out); err != nil {
				return err
			}

			invalid := 0
			for _, r := range reports {
				if !r.Valid {
					invalid++
				}
			}
			if invalid > 0 {
				return fmt.Errorf("%d of %d cluster definitions are invalid", invalid, len(reports))
			}
			return nil
		},
	}
}

type validateOptions struct {
	kubeconfig string
	locale     language.Tag
	document   bool
}

// validateSources reads and validates each source concurrently. Reports keep
// the order of sources. A source that cannot be read or decoded fails the
// whole run.
func validateSources(ctx context.Context, v *cluster.Validator, sources []string, opts validateOptions) ([]*cluster.Report, error) {
	reports := make([]*cluster.Report, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, src := range sources {
		g.Go(func() error {
			data, err := serializer.ReadSource(ctx, src, opts.kubeconfig)
			if err != nil {
				return err
			}
			doc, err := serializer.DecodeDocument(data)
			if err != nil {
				return fmt.Errorf("%s: %w", src, err)
			}

			ropts := []cluster.ReportOption{
				cluster.ReportSource(src),
				cluster.ReportLocale(opts.locale),
			}
			if opts.document {
				ropts = append(ropts, cluster.ReportDocument())
			}
			r := v.Report(v.Validate(doc), ropts...)

			slog.Debug("cluster definition validated",
				"source", src,
				"valid", r.Valid,
				"errors", len(r.Errors),
			)
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
