/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/urfave/cli/v3"
	"k8s.io/client-go/kubernetes"

	"github.com/NVIDIA/cluster-definition/pkg/cluster"
	"github.com/NVIDIA/cluster-definition/pkg/defaults"
	"github.com/NVIDIA/cluster-definition/pkg/k8s/client"
	"github.com/NVIDIA/cluster-definition/pkg/serializer"
	"github.com/NVIDIA/cluster-definition/pkg/store"
)

// newKubeClient is replaced in tests.
var newKubeClient = func(kubeconfig string) (kubernetes.Interface, error) {
	cs, _, err := client.BuildKubeClient(kubeconfig)
	return cs, err
}

func storeCmd() *cli.Command {
	return &cli.Command{
		Name:                  "store",
		EnableShellCompletion: true,
		Usage:                 "Validate a cluster definition and store it in a ConfigMap",
		ArgsUsage:             "SOURCE",
		Description: `Validates a cluster definition and writes the normalized document (defaults
applied) as YAML into a ConfigMap. The ConfigMap is updated when it exists and
created otherwise. Nothing is written when the definition is invalid.

# Examples

Store cluster.yml in kube-system/cluster-config:
  clusterdef store cluster.yml

Store into a custom location:
  clusterdef store --namespace infra --name prod-cluster cluster.yml`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "namespace",
				Aliases: []string{"n"},
				Value:   defaults.ConfigMapNamespace,
				Usage:   "namespace of the ConfigMap",
			},
			&cli.StringFlag{
				Name:  "name",
				Value: defaults.ConfigMapName,
				Usage: "name of the ConfigMap",
			},
			&cli.StringFlag{
				Name:  "key",
				Value: defaults.ConfigMapDataKey,
				Usage: "ConfigMap data key holding the document",
			},
			localeFlag(),
			kubeconfigFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("exactly one source is required")
			}
			src := cmd.Args().First()
			kubeconfig := cmd.String("kubeconfig")

			v, err := newValidator(cmd)
			if err != nil {
				return fmt.Errorf("failed to build validator: %w", err)
			}

			data, err := serializer.ReadSource(ctx, src, kubeconfig)
			if err != nil {
				return err
			}
			doc, err := loadDocument(v, src, data)
			if err != nil {
				return err
			}

			cs, err := newKubeClient(kubeconfig)
			if err != nil {
				return fmt.Errorf("failed to create kubernetes client: %w", err)
			}
			s := store.NewConfigMapStore(cs,
				store.WithNamespace(cmd.String("namespace")),
				store.WithDataKey(cmd.String("key")),
			)

			op, err := storeDocument(ctx, s, cmd.String("name"), doc)
			if err != nil {
				return err
			}

			slog.Info("cluster definition stored",
				"source", src,
				"namespace", s.Namespace(),
				"name", cmd.String("name"),
				"operation", op,
			)
			return nil
		},
	}
}

// loadDocument decodes and validates data. Each violation is logged before
// the error is returned.
func loadDocument(v *cluster.Validator, src string, data []byte) (map[string]any, error) {
	raw, err := serializer.DecodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src, err)
	}

	doc, err := v.Load(raw)
	var cfgErr *cluster.ConfigError
	if errors.As(err, &cfgErr) {
		for _, subject := range slices.Sorted(maps.Keys(cfgErr.Messages)) {
			for _, m := range cfgErr.Messages[subject] {
				slog.Error("invalid cluster definition", "source", src, "problem", m)
			}
		}
		return nil, fmt.Errorf("%s: %w", src, err)
	}
	return doc, err
}

// storeDocument writes doc as YAML under name.
func storeDocument(ctx context.Context, s store.Store, name string, doc map[string]any) (store.Operation, error) {
	data, err := serializer.Marshal(serializer.FormatYAML, doc)
	if err != nil {
		return "", fmt.Errorf("failed to serialize cluster definition: %w", err)
	}
	return store.Upsert(ctx, s, name, data)
}
