/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package serializer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/NVIDIA/cluster-definition/pkg/defaults"
	"github.com/NVIDIA/cluster-definition/pkg/store"
	"gopkg.in/yaml.v3"
)

var (
	stdin      io.Reader = os.Stdin
	httpClient           = &http.Client{Timeout: defaults.HTTPClientTimeout}
)

// FromFile reads and decodes source into a new T. See ReadSource.
func FromFile[T any](source string) (*T, error) {
	return FromFileWithKubeconfig[T](source, "")
}

// FromFileWithKubeconfig is FromFile with an explicit kubeconfig for cm://
// sources.
func FromFileWithKubeconfig[T any](source, kubeconfig string) (*T, error) {
	data, err := ReadSource(context.Background(), source, kubeconfig)
	if err != nil {
		return nil, err
	}
	var out T
	if err := Unmarshal(formatFromPath(source), data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", source, err)
	}
	return &out, nil
}

// ReadSource returns the raw bytes of a file, stdin ("-"), an HTTP(S) URL or
// a cm://namespace/name ConfigMap. Reads are capped at
// defaults.MaxDocumentBytes.
func ReadSource(ctx context.Context, source, kubeconfig string) ([]byte, error) {
	switch {
	case source == StdoutURI:
		return readLimited(stdin, "stdin")
	case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
		return readURL(ctx, source)
	case strings.HasPrefix(source, ConfigMapURIScheme):
		return readConfigMap(ctx, source, kubeconfig)
	}

	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", source, err)
	}
	defer f.Close()
	return readLimited(f, source)
}

func readLimited(r io.Reader, name string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, defaults.MaxDocumentBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	if len(data) > defaults.MaxDocumentBytes {
		return nil, fmt.Errorf("%s exceeds %d bytes", name, defaults.MaxDocumentBytes)
	}
	return data, nil
}

func readURL(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %s: %w", url, err)
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: unexpected status %s", url, resp.Status)
	}
	return readLimited(resp.Body, url)
}

func readConfigMap(ctx context.Context, uri, kubeconfig string) ([]byte, error) {
	namespace, name, err := ParseConfigMapURI(uri)
	if err != nil {
		return nil, err
	}
	cs, err := kubeClient(kubeconfig)
	if err != nil {
		return nil, err
	}
	return store.NewConfigMapStore(cs, store.WithNamespace(namespace)).Get(ctx, name)
}

// Unmarshal decodes data as JSON or YAML into v.
func Unmarshal(format Format, data []byte, v any) error {
	if format == FormatJSON {
		return json.Unmarshal(data, v)
	}
	return yaml.Unmarshal(data, v)
}

// DecodeDocument parses a YAML or JSON mapping. Empty input yields an empty
// document.
func DecodeDocument(data []byte) (map[string]any, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	switch d := doc.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return d, nil
	default:
		return nil, fmt.Errorf("document must be a mapping, got %T", doc)
	}
}
