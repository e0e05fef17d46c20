package asset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"board-archive/internal/domain"
	"board-archive/internal/metrics"
	"board-archive/internal/pool"
)

// Stats aggregates one board's sync outcome
type Stats struct {
	Total      int `json:"total"`
	Skipped    int `json:"skipped"`
	Downloaded int `json:"downloaded"`
	Failed     int `json:"failed"`
}

// Succeeded returns the number of assets present after the sync
func (s Stats) Succeeded() int {
	return s.Downloaded + s.Skipped
}

// Syncer reconciles a board's asset directory with the asset set its stored
// document references: stale files are deleted, missing files downloaded
// under bounded concurrency, existing files left untouched.
type Syncer struct {
	httpClient  *http.Client
	concurrency int
	logger      *zap.Logger
	metrics     *metrics.Metrics
}

// NewSyncer creates a new asset Syncer
func NewSyncer(timeout time.Duration, concurrency int, logger *zap.Logger, m *metrics.Metrics) *Syncer {
	return &Syncer{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		concurrency: concurrency,
		logger:      logger,
		metrics:     m,
	}
}

// Sync brings assetDir to exactly the deduplicated asset set of board.
// Individual download failures are counted, never raised; only directory
// level I/O fails the call.
func (s *Syncer) Sync(ctx context.Context, board *domain.Board, assetDir string) (Stats, error) {
	if err := os.MkdirAll(assetDir, 0o755); err != nil {
		return Stats{}, fmt.Errorf("failed to create asset directory %s: %w", assetDir, err)
	}

	assets := domain.CollectAssets(board)
	stats := Stats{Total: len(assets)}

	validNames := make(map[string]struct{}, len(assets))
	for _, a := range assets {
		validNames[domain.AssetFileName(a)] = struct{}{}
	}

	deleted, err := s.deleteStale(assetDir, validNames)
	if err != nil {
		return Stats{}, err
	}

	s.logger.Info("Syncing board assets",
		zap.String("board_id", board.BoardID),
		zap.Int("total", stats.Total),
		zap.Int("stale_deleted", deleted),
	)

	if stats.Total == 0 {
		return stats, nil
	}

	var skipped, downloaded, failed atomic.Int64

	pool.ForEach(assets, s.concurrency, func(a domain.Asset) {
		dest := filepath.Join(assetDir, domain.AssetFileName(a))

		if _, err := os.Stat(dest); err == nil {
			skipped.Add(1)
			return
		}

		if err := s.downloadFile(ctx, a.PublicURL, dest); err != nil {
			failed.Add(1)
			s.logger.Error("Failed to download asset",
				zap.String("board_id", board.BoardID),
				zap.String("asset_id", a.AssetID),
				zap.String("file_name", a.FileName),
				zap.Error(err),
			)
			return
		}

		downloaded.Add(1)
		progress := int(skipped.Load() + downloaded.Load() + failed.Load())
		fmt.Printf("\rProgress: %d / %d (%d%%)", progress, stats.Total, progress*100/stats.Total)
	})
	fmt.Println()

	stats.Skipped = int(skipped.Load())
	stats.Downloaded = int(downloaded.Load())
	stats.Failed = int(failed.Load())

	if s.metrics != nil {
		s.metrics.RecordAssetSync(stats.Downloaded, stats.Skipped, stats.Failed, deleted)
	}
	return stats, nil
}

// deleteStale removes files no longer referenced by the board document.
// Deletion is best effort; failures are logged and do not abort the sync.
func (s *Syncer) deleteStale(assetDir string, validNames map[string]struct{}) (int, error) {
	entries, err := os.ReadDir(assetDir)
	if err != nil {
		return 0, fmt.Errorf("failed to list asset directory %s: %w", assetDir, err)
	}

	deleted := 0
	for _, entry := range entries {
		name := entry.Name()
		if _, ok := validNames[name]; ok {
			continue
		}
		if err := os.Remove(filepath.Join(assetDir, name)); err != nil {
			s.logger.Warn("Failed to delete obsolete asset",
				zap.String("file", name),
				zap.Error(err),
			)
			continue
		}
		deleted++
		s.logger.Info("Deleted obsolete asset", zap.String("file", name))
	}
	return deleted, nil
}

// downloadFile streams one asset to its destination path. A partial file
// left by a failed download is removed so the next run retries it.
func (s *Syncer) downloadFile(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("failed to fetch %s: %s", url, resp.Status)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(dest)
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	return f.Close()
}
