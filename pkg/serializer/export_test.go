/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package serializer

// NewConfigMapWriterWithClient lets external tests inject a fake clientset.
var NewConfigMapWriterWithClient = newConfigMapWriter
