package asset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"board-archive/internal/domain"
)

// boardWithAssets builds a board whose sole item references the given
// asset IDs, served from baseURL as {id}.png.
func boardWithAssets(baseURL string, assetIDs ...string) *domain.Board {
	item := domain.Item{ItemID: "i1", Title: "Item"}
	for _, id := range assetIDs {
		item.Assets = append(item.Assets, domain.Asset{
			AssetID:   id,
			FileName:  id + ".png",
			Extension: ".png",
			PublicURL: baseURL + "/" + id + ".png",
			LocalURL:  "/asset/B1/" + id + ".png",
		})
	}
	return &domain.Board{
		BoardID: "B1",
		Name:    "Board",
		Groups:  []domain.Group{{GroupID: "g1", Name: "G", Items: []domain.Item{item}}},
	}
}

func newTestSyncer(t *testing.T) (*Syncer, string) {
	t.Helper()
	return NewSyncer(5*time.Second, 4, zap.NewNop(), nil), t.TempDir()
}

func TestSync_ConvergesToReferencedSet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("content of " + r.URL.Path))
	}))
	defer server.Close()

	syncer, assetDir := newTestSyncer(t)

	// Start from {A, D}; the board references {A, B, C}.
	require.NoError(t, os.WriteFile(filepath.Join(assetDir, "A.png"), []byte("old A"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(assetDir, "D.png"), []byte("stale"), 0o644))

	board := boardWithAssets(server.URL, "A", "B", "C")
	stats, err := syncer.Sync(context.Background(), board, assetDir)
	require.NoError(t, err)

	assert.Equal(t, Stats{Total: 3, Skipped: 1, Downloaded: 2, Failed: 0}, stats)
	assert.Equal(t, 3, stats.Succeeded())

	entries, err := os.ReadDir(assetDir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"A.png", "B.png", "C.png"}, names)

	// The existing file was skipped, not re-downloaded.
	data, err := os.ReadFile(filepath.Join(assetDir, "A.png"))
	require.NoError(t, err)
	assert.Equal(t, "old A", string(data))
}

func TestSync_SecondRunSkipsEverything(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("x"))
	}))
	defer server.Close()

	syncer, assetDir := newTestSyncer(t)
	board := boardWithAssets(server.URL, "A", "B")

	_, err := syncer.Sync(context.Background(), board, assetDir)
	require.NoError(t, err)

	stats, err := syncer.Sync(context.Background(), board, assetDir)
	require.NoError(t, err)
	assert.Equal(t, Stats{Total: 2, Skipped: 2, Downloaded: 0, Failed: 0}, stats)
}

func TestSync_CountsFailedDownloads(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/bad.png" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	syncer, assetDir := newTestSyncer(t)
	board := boardWithAssets(server.URL, "good", "bad")

	stats, err := syncer.Sync(context.Background(), board, assetDir)
	require.NoError(t, err)

	assert.Equal(t, Stats{Total: 2, Skipped: 0, Downloaded: 1, Failed: 1}, stats)
	assert.Equal(t, 1, stats.Succeeded())

	// The failed asset left no partial file behind.
	_, statErr := os.Stat(filepath.Join(assetDir, "bad.png"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestSync_EmptyBoard(t *testing.T) {
	syncer, assetDir := newTestSyncer(t)

	stats, err := syncer.Sync(context.Background(), &domain.Board{BoardID: "B1"}, assetDir)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, stats)
}

func TestSync_CreatesAssetDirectory(t *testing.T) {
	syncer, base := newTestSyncer(t)
	assetDir := filepath.Join(base, "asset", "B1")

	_, err := syncer.Sync(context.Background(), &domain.Board{BoardID: "B1"}, assetDir)
	require.NoError(t, err)

	info, err := os.Stat(assetDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
