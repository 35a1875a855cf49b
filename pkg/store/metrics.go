/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var upsertTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "clusterdef_store_upsert_total",
		Help: "Total number of store writes, by operation and outcome",
	},
	[]string{"operation", "status"}, // status: success or error
)

func recordUpsert(op Operation, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	upsertTotal.WithLabelValues(string(op), status).Inc()
}
