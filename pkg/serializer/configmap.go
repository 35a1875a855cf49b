/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package serializer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/NVIDIA/cluster-definition/pkg/k8s/client"
	"github.com/NVIDIA/cluster-definition/pkg/store"
	"k8s.io/client-go/kubernetes"
)

// ParseConfigMapURI splits cm://namespace/name.
func ParseConfigMapURI(uri string) (namespace, name string, err error) {
	rest, ok := strings.CutPrefix(uri, ConfigMapURIScheme)
	if !ok {
		return "", "", fmt.Errorf("invalid ConfigMap URI %q: expected %snamespace/name", uri, ConfigMapURIScheme)
	}
	namespace, name, ok = strings.Cut(rest, "/")
	if !ok || namespace == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("invalid ConfigMap URI %q: expected %snamespace/name", uri, ConfigMapURIScheme)
	}
	return namespace, name, nil
}

// ConfigMapWriter upserts the serialized value into a ConfigMap.
type ConfigMapWriter struct {
	format Format
	name   string
	store  *store.ConfigMapStore
}

// NewConfigMapWriter returns a writer for cm://namespace/name using the
// given kubeconfig, or the default discovery when it is empty.
func NewConfigMapWriter(format Format, uri, kubeconfig string) (*ConfigMapWriter, error) {
	namespace, name, err := ParseConfigMapURI(uri)
	if err != nil {
		return nil, err
	}
	cs, err := kubeClient(kubeconfig)
	if err != nil {
		return nil, err
	}
	return newConfigMapWriter(format, cs, namespace, name), nil
}

func newConfigMapWriter(format Format, cs kubernetes.Interface, namespace, name string) *ConfigMapWriter {
	if format == FormatTable || format.IsUnknown() {
		format = FormatYAML
	}
	return &ConfigMapWriter{
		format: format,
		name:   name,
		store:  store.NewConfigMapStore(cs, store.WithNamespace(namespace)),
	}
}

// Serialize encodes data and upserts it.
func (w *ConfigMapWriter) Serialize(ctx context.Context, data any) error {
	payload, err := Marshal(w.format, data)
	if err != nil {
		return err
	}
	op, err := store.Upsert(ctx, w.store, w.name, payload)
	if err != nil {
		return fmt.Errorf("failed to write ConfigMap %s/%s: %w", w.store.Namespace(), w.name, err)
	}
	slog.Info("stored cluster definition",
		"namespace", w.store.Namespace(),
		"name", w.name,
		"operation", op,
	)
	return nil
}

// Close implements Closer.
func (w *ConfigMapWriter) Close() error { return nil }

func kubeClient(kubeconfig string) (kubernetes.Interface, error) {
	if kubeconfig == "" {
		return client.GetKubeClient()
	}
	cs, _, err := client.BuildKubeClient(kubeconfig)
	return cs, err
}
