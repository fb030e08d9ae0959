package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mediaUploads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "media_uploads_total",
		Help: "Attachments successfully transformed and uploaded to the remote store",
	})

	mediaTransformFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "media_transform_failures_total",
		Help: "Attachments dropped because the transform pipeline failed",
	})

	mediaUploadFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "media_upload_failures_total",
		Help: "Attachments dropped because the remote store upload failed",
	})

	mediaOrphanDeletes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "media_orphan_deletes_total",
		Help: "Remote assets deleted during cleanup",
	})

	mediaOrphanDeleteFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "media_orphan_delete_failures_total",
		Help: "Remote cleanup calls that failed and were swallowed",
	})
)
