/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cluster

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	validationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clusterdef_validation_total",
			Help: "Total number of cluster definition validations",
		},
		[]string{"result"}, // valid or invalid
	)

	validationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "clusterdef_validation_duration_seconds",
			Help:    "Duration of cluster definition validation in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
		},
	)

	violationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clusterdef_violations_total",
			Help: "Total number of violations reported, by kind",
		},
		[]string{"kind"},
	)
)
