/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package serializer reads cluster definitions and writes reports.
//
// Sources accepted by ReadSource and FromFile:
//
//	cluster.yml                   local file (YAML or JSON)
//	-                             standard input
//	https://example.com/c.yml     HTTP(S) URL
//	cm://kube-system/cluster      ConfigMap data key "cluster.yml"
//
// Writers render any value as json, yaml or a flattened FIELD/VALUE table,
// to stdout, a file or a ConfigMap:
//
//	w, err := serializer.NewFileWriterOrStdout(serializer.FormatYAML, output)
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//	return w.Serialize(ctx, report)
package serializer
