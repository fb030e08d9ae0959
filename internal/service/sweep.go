package service

import (
	"context"
	"time"

	"github.com/refugio-dev/refugio/internal/cloudinary"
	"github.com/refugio-dev/refugio/internal/domain"
	"github.com/refugio-dev/refugio/internal/logger"
)

// OrphanSweeper reconciles the remote store against the metadata store.
// Uploads that outlived a failed metadata write and deletes that were
// swallowed during reconciliation both leak remote assets; the sweep finds
// assets referenced by no persisted record and deletes them.
type OrphanSweeper struct {
	storage   SweepStorage
	store     SweepStore
	safetyAge time.Duration

	lastStats SweepStats
}

// SweepStats tracks the outcome of the last sweep run.
type SweepStats struct {
	RunAt          time.Time
	AssetsScanned  int
	OrphanedAssets int
	AssetsDeleted  int
	DurationMs     int64
	Errors         []string
}

// SweepStorage is the metadata-store view the sweep needs.
type SweepStorage interface {
	GetAllPhotoColumns(ctx context.Context) ([]string, error)
}

// SweepStore is the remote-store view the sweep needs.
type SweepStore interface {
	ListAssets(ctx context.Context) ([]cloudinary.RemoteAsset, error)
	Delete(ctx context.Context, identifier string) error
}

// NewOrphanSweeper creates a sweeper. safetyAge is the minimum age a remote
// asset must have before deletion, so an asset uploaded by an in-flight
// create is never swept between its upload and its metadata write.
func NewOrphanSweeper(storage SweepStorage, store SweepStore, safetyAge time.Duration) *OrphanSweeper {
	return &OrphanSweeper{storage: storage, store: store, safetyAge: safetyAge}
}

// StartBackground runs the sweep on a ticker until ctx is cancelled.
func (s *OrphanSweeper) StartBackground(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	logger.Log.Info("started orphan sweep", "interval", interval, "safety_age", s.safetyAge)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := s.Run(ctx); err != nil {
					logger.Log.Error("orphan sweep failed", "error", err)
				} else {
					stats := s.LastStats()
					logger.Log.Info("orphan sweep completed",
						"scanned", stats.AssetsScanned,
						"orphans", stats.OrphanedAssets,
						"deleted", stats.AssetsDeleted,
						"duration_ms", stats.DurationMs,
						"errors", len(stats.Errors),
					)
				}
			case <-ctx.Done():
				logger.Log.Info("orphan sweep shutting down")
				return
			}
		}
	}()
}

// Run executes a single sweep cycle. Callable directly for maintenance.
func (s *OrphanSweeper) Run(ctx context.Context) error {
	startTime := time.Now()
	stats := SweepStats{RunAt: startTime, Errors: []string{}}

	// Every identifier referenced by any persisted record stays.
	columns, err := s.storage.GetAllPhotoColumns(ctx)
	if err != nil {
		return err
	}
	referenced := make(map[string]bool)
	for _, raw := range columns {
		for _, ref := range domain.DecodeAttachments(raw) {
			if identifier, ok := cloudinary.ExtractPublicID(ref.Locator); ok {
				referenced[identifier] = true
			}
		}
	}

	assets, err := s.store.ListAssets(ctx)
	if err != nil {
		return err
	}
	stats.AssetsScanned = len(assets)

	for _, asset := range assets {
		if referenced[asset.Identifier] {
			continue
		}

		// Unknown or too-recent creation time: might be mid-create, leave it
		// for a later run.
		if asset.CreatedAt.IsZero() || time.Since(asset.CreatedAt) < s.safetyAge {
			continue
		}

		stats.OrphanedAssets++
		if err := s.store.Delete(ctx, asset.Identifier); err != nil {
			stats.Errors = append(stats.Errors, "delete error: "+asset.Identifier+": "+err.Error())
		} else {
			stats.AssetsDeleted++
			mediaOrphanDeletes.Inc()
		}
	}

	stats.DurationMs = time.Since(startTime).Milliseconds()
	s.lastStats = stats

	return nil
}

// LastStats returns statistics from the last completed run.
func (s *OrphanSweeper) LastStats() SweepStats {
	return s.lastStats
}
