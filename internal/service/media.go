package service

import (
	"context"
	"sync"

	"github.com/refugio-dev/refugio/internal/cloudinary"
	"github.com/refugio-dev/refugio/internal/domain"
	"github.com/refugio-dev/refugio/internal/logger"
	"github.com/refugio-dev/refugio/internal/media"
)

// Transformer produces a display-ready encoding of one uploaded file.
type Transformer interface {
	Transform(raw []byte) (*media.TransformResult, error)
}

// BlobStore is the remote asset store. Each call is a single round trip.
type BlobStore interface {
	Upload(ctx context.Context, encoded []byte) (*cloudinary.UploadResult, error)
	Delete(ctx context.Context, identifier string) error
}

// Media sequences the asset pipeline for record operations: transform and
// upload on ingest, best-effort remote cleanup on update and delete.
type Media struct {
	transformer Transformer
	store       BlobStore
	workers     int
}

func NewMedia(transformer Transformer, store BlobStore, workers int) *Media {
	if workers < 1 {
		workers = 1
	}
	return &Media{transformer: transformer, store: store, workers: workers}
}

// Attach runs the transform+upload pipeline for each file concurrently,
// bounded by the worker cap, and collects successful locators in submission
// order. A file whose transform or upload fails is dropped and logged; it
// never aborts its siblings or the record operation. The second return
// value names the dropped files.
func (m *Media) Attach(ctx context.Context, files []*domain.PendingFile) (domain.AttachmentSet, []string) {
	if len(files) == 0 {
		return domain.AttachmentSet{}, nil
	}

	// Indexed result slots keep locator order matching submission order
	// even though uploads complete concurrently.
	results := make([]*cloudinary.UploadResult, len(files))

	var wg sync.WaitGroup
	sem := make(chan struct{}, m.workers)
	for i, file := range files {
		wg.Add(1)
		go func(i int, file *domain.PendingFile) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = m.processFile(ctx, file)
		}(i, file)
	}
	wg.Wait()

	set := make(domain.AttachmentSet, 0, len(files))
	var dropped []string
	for i, result := range results {
		if result == nil {
			dropped = append(dropped, files[i].Filename)
			continue
		}
		set = append(set, domain.AssetReference{Locator: result.Locator})
	}
	return set, dropped
}

func (m *Media) processFile(ctx context.Context, file *domain.PendingFile) *cloudinary.UploadResult {
	transformed, err := m.transformer.Transform(file.Data)
	if err != nil {
		mediaTransformFailures.Inc()
		logger.Log.Error("dropping attachment, transform failed", "filename", file.Filename, "error", err)
		return nil
	}

	result, err := m.store.Upload(ctx, transformed.Bytes)
	if err != nil {
		mediaUploadFailures.Inc()
		logger.Log.Error("dropping attachment, upload failed", "filename", file.Filename, "error", err)
		return nil
	}
	mediaUploads.Inc()
	return result
}

// Cleanup best-effort deletes every reference in the set. Failures are
// logged and swallowed: remote deletes are advisory, they never decide the
// outcome of the record operation that triggered them. References whose
// identifier can't be recovered from the locator are skipped.
func (m *Media) Cleanup(ctx context.Context, refs domain.AttachmentSet) {
	for _, ref := range refs {
		identifier, ok := cloudinary.ExtractPublicID(ref.Locator)
		if !ok {
			logger.Log.Warn("skipping remote cleanup, can't derive identifier", "locator", ref.Locator)
			continue
		}
		if err := m.store.Delete(ctx, identifier); err != nil {
			mediaOrphanDeleteFailures.Inc()
			logger.Log.Error("remote cleanup failed", "identifier", identifier, "error", err)
			continue
		}
		mediaOrphanDeletes.Inc()
	}
}
