// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package workspace

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	activeWorkspaces = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "portal_workspaces_active",
		Help: "Number of open profile workspaces.",
	})

	loadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_profile_loads_total",
		Help: "Profile loads by outcome (loaded, absent, failed).",
	}, []string{"outcome"})

	submissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_profile_submissions_total",
		Help: "Profile submissions by action and outcome.",
	}, []string{"action", "outcome"})

	uploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_document_uploads_total",
		Help: "Document uploads by category and outcome.",
	}, []string{"category", "outcome"})

	uploadedBytes = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "portal_document_upload_bytes",
		Help:    "Size of successfully uploaded documents.",
		Buckets: prometheus.ExponentialBuckets(64<<10, 2, 8),
	}, []string{"category"})
)
