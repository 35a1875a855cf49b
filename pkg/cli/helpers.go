/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"
	"golang.org/x/text/language"

	"github.com/NVIDIA/cluster-definition/pkg/cluster"
	"github.com/NVIDIA/cluster-definition/pkg/serializer"
)

// parseOutputFormat extracts and validates the output format from CLI flags.
// Returns the validated format or an error if the format is unknown.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	outFormat := serializer.Format(cmd.String("format"))
	if outFormat.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, valid formats are: yaml, json, table", outFormat)
	}
	return outFormat, nil
}

// parseLocale reads the --locale flag. An empty flag selects the default
// locale; unsupported locales fall back to it when messages are rendered.
func parseLocale(cmd *cli.Command) (language.Tag, error) {
	l := cmd.String("locale")
	if l == "" {
		return cluster.DefaultLocale, nil
	}
	tag, err := language.Parse(l)
	if err != nil {
		return language.Und, fmt.Errorf("invalid locale %q: %w", l, err)
	}
	return tag, nil
}

// newValidator builds the validator for a command run.
func newValidator(cmd *cli.Command) (*cluster.Validator, error) {
	tag, err := parseLocale(cmd)
	if err != nil {
		return nil, err
	}
	return cluster.NewValidator(
		cluster.WithVersion(version),
		cluster.WithLocale(tag),
	)
}

// writeOutput serializes data to the --output destination.
func writeOutput(ctx context.Context, cmd *cli.Command, format serializer.Format, data any) error {
	ser, err := serializer.NewFileWriterOrStdout(format, cmd.String("output"))
	if err != nil {
		return err
	}
	if c, ok := ser.(serializer.Closer); ok {
		defer func() {
			if err := c.Close(); err != nil {
				slog.Warn("failed to close serializer", "error", err)
			}
		}()
	}
	return ser.Serialize(ctx, data)
}
