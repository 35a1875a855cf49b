/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package store persists validated cluster definitions.
//
// Store is the minimal write contract: Update replaces an existing entry and
// reports ErrNotFound when there is none, Create adds a new one. Upsert
// combines the two the way the provisioning phase does, without locking:
//
//	s := store.NewConfigMapStore(clientset, store.WithNamespace("kube-system"))
//	if err := store.Upsert(ctx, s, "cluster-config", payload); err != nil {
//	    return err
//	}
//
// ConfigMapStore keeps each document in a Kubernetes ConfigMap under the
// data key "cluster.yml".
package store
