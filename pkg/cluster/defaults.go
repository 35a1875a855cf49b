/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cluster

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/NVIDIA/cluster-definition/pkg/schema"
	"gopkg.in/yaml.v3"
)

var (
	//go:embed data/defaults.yaml
	defaultsData []byte

	defaultsOnce   sync.Once
	cachedDefaults map[string]any
	defaultsErr    error
)

// loadDefaults parses the embedded default document once.
func loadDefaults() (map[string]any, error) {
	defaultsOnce.Do(func() {
		var doc map[string]any
		if err := yaml.Unmarshal(defaultsData, &doc); err != nil {
			defaultsErr = fmt.Errorf("failed to parse embedded defaults: %w", err)
			return
		}
		cachedDefaults = schema.Merge(nil, doc)
	})
	return cachedDefaults, defaultsErr
}

// Defaults returns a copy of the default cluster definition.
func Defaults() (map[string]any, error) {
	doc, err := loadDefaults()
	if err != nil {
		return nil, err
	}
	return schema.Merge(nil, doc), nil
}
