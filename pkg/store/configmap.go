/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package store

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/NVIDIA/cluster-definition/pkg/defaults"
	cnserrors "github.com/NVIDIA/cluster-definition/pkg/errors"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

// Option is a functional option for configuring ConfigMapStore instances.
type Option func(*ConfigMapStore)

// WithNamespace sets the ConfigMap namespace. Defaults to kube-system.
func WithNamespace(namespace string) Option {
	return func(s *ConfigMapStore) {
		if namespace != "" {
			s.namespace = namespace
		}
	}
}

// WithDataKey sets the ConfigMap data key. Defaults to cluster.yml.
func WithDataKey(key string) Option {
	return func(s *ConfigMapStore) {
		if key != "" {
			s.dataKey = key
		}
	}
}

// WithLabels adds labels to every written ConfigMap.
func WithLabels(labels map[string]string) Option {
	return func(s *ConfigMapStore) {
		maps.Copy(s.labels, labels)
	}
}

// WithTimeout bounds each API call.
func WithTimeout(d time.Duration) Option {
	return func(s *ConfigMapStore) {
		s.timeout = d
	}
}

// ConfigMapStore stores documents in Kubernetes ConfigMaps named by key.
type ConfigMapStore struct {
	client    kubernetes.Interface
	namespace string
	dataKey   string
	labels    map[string]string
	timeout   time.Duration
}

// NewConfigMapStore returns a store backed by client.
func NewConfigMapStore(client kubernetes.Interface, opts ...Option) *ConfigMapStore {
	s := &ConfigMapStore{
		client:    client,
		namespace: defaults.ConfigMapNamespace,
		dataKey:   defaults.ConfigMapDataKey,
		labels: map[string]string{
			"app.kubernetes.io/managed-by": "clusterdef",
		},
		timeout: defaults.KubernetesTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Namespace returns the namespace written to.
func (s *ConfigMapStore) Namespace() string { return s.namespace }

func (s *ConfigMapStore) configMap(name string, value []byte) *corev1.ConfigMap {
	return &corev1.ConfigMap{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "ConfigMap",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: s.namespace,
			Labels:    maps.Clone(s.labels),
		},
		Data: map[string]string{
			s.dataKey: string(value),
		},
	}
}

// Update replaces ConfigMap key.
func (s *ConfigMapStore) Update(ctx context.Context, key string, value []byte) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.client.CoreV1().ConfigMaps(s.namespace).Update(ctx, s.configMap(key, value), metav1.UpdateOptions{})
	if apierrors.IsNotFound(err) {
		return fmt.Errorf("configmap %s/%s: %w", s.namespace, key, ErrNotFound)
	}
	if err != nil {
		return s.wrap("failed to update ConfigMap", key, err)
	}
	return nil
}

// Create creates ConfigMap key.
func (s *ConfigMapStore) Create(ctx context.Context, key string, value []byte) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.client.CoreV1().ConfigMaps(s.namespace).Create(ctx, s.configMap(key, value), metav1.CreateOptions{})
	if err != nil {
		return s.wrap("failed to create ConfigMap", key, err)
	}
	return nil
}

// Get returns the document stored in ConfigMap key.
func (s *ConfigMapStore) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cm, err := s.client.CoreV1().ConfigMaps(s.namespace).Get(ctx, key, metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		return nil, fmt.Errorf("configmap %s/%s: %w", s.namespace, key, ErrNotFound)
	}
	if err != nil {
		return nil, s.wrap("failed to get ConfigMap", key, err)
	}

	data, ok := cm.Data[s.dataKey]
	if !ok {
		return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeNotFound, "ConfigMap has no document",
			fmt.Errorf("data key %q: %w", s.dataKey, ErrNotFound), map[string]any{
				"namespace": s.namespace,
				"name":      key,
			})
	}
	return []byte(data), nil
}

func (s *ConfigMapStore) wrap(msg, key string, err error) error {
	code := cnserrors.ErrCodeInternal
	switch {
	case apierrors.IsTimeout(err) || apierrors.IsServerTimeout(err) || errors.Is(err, context.DeadlineExceeded):
		code = cnserrors.ErrCodeTimeout
	case apierrors.IsUnauthorized(err) || apierrors.IsForbidden(err):
		code = cnserrors.ErrCodeUnauthorized
	case apierrors.IsInvalid(err) || apierrors.IsAlreadyExists(err):
		code = cnserrors.ErrCodeInvalidRequest
	case apierrors.IsServiceUnavailable(err) || apierrors.IsTooManyRequests(err):
		code = cnserrors.ErrCodeUnavailable
	}
	return cnserrors.WrapWithContext(code, msg, err, map[string]any{
		"namespace": s.namespace,
		"name":      key,
	})
}
