package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"board-archive/internal/domain"
)

// BoardStore persists archived board documents under a data directory:
//
//	{dataDir}/board/{boardId}.json   one pretty-printed document per board
//	{dataDir}/asset/{boardId}/       downloaded attachment files
//
// Once written, the JSON file is the sole source of truth; the asset
// synchronizer and the serving layer read it back independently.
type BoardStore struct {
	dataDir string
	logger  *zap.Logger
}

// NewBoardStore creates a new BoardStore rooted at dataDir
func NewBoardStore(dataDir string, logger *zap.Logger) *BoardStore {
	return &BoardStore{
		dataDir: dataDir,
		logger:  logger,
	}
}

// BoardDir returns the directory holding board JSON documents
func (s *BoardStore) BoardDir() string {
	return filepath.Join(s.dataDir, "board")
}

// AssetDir returns the asset directory for one board
func (s *BoardStore) AssetDir(boardID string) string {
	return filepath.Join(s.dataDir, "asset", boardID)
}

// BoardPath returns the JSON document path for one board
func (s *BoardStore) BoardPath(boardID string) string {
	return filepath.Join(s.BoardDir(), boardID+".json")
}

// EnsureLayout creates the base, board and asset directories. The writer
// assumes they exist; a failure here is fatal to the whole run.
func (s *BoardStore) EnsureLayout() error {
	for _, dir := range []string{s.dataDir, s.BoardDir(), filepath.Join(s.dataDir, "asset")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// WriteBoard serializes one board document and overwrites any prior file
// for the same identifier. Output is pretty-printed with 4-space indent and
// stable key order.
func (s *BoardStore) WriteBoard(board *domain.Board) error {
	data, err := json.MarshalIndent(board, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal board %s: %w", board.BoardID, err)
	}

	path := s.BoardPath(board.BoardID)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write board %s: %w", board.BoardID, err)
	}

	s.logger.Info("Saved board document",
		zap.String("board_id", board.BoardID),
		zap.String("path", path),
	)
	return nil
}

// ReadBoard reads one board document back from disk
func (s *BoardStore) ReadBoard(boardID string) (*domain.Board, error) {
	data, err := os.ReadFile(s.BoardPath(boardID))
	if err != nil {
		return nil, fmt.Errorf("failed to read board %s: %w", boardID, err)
	}

	var board domain.Board
	if err := json.Unmarshal(data, &board); err != nil {
		return nil, fmt.Errorf("failed to parse board %s: %w", boardID, err)
	}
	return &board, nil
}

// ReadBoardMeta decodes only the identifier, name and creation timestamp of
// a stored document, skipping the group tree.
func (s *BoardStore) ReadBoardMeta(boardID string) (*domain.BoardMeta, error) {
	f, err := os.Open(s.BoardPath(boardID))
	if err != nil {
		return nil, fmt.Errorf("failed to open board %s: %w", boardID, err)
	}
	defer f.Close()

	var meta domain.BoardMeta
	if err := json.NewDecoder(f).Decode(&meta); err != nil {
		return nil, fmt.Errorf("failed to parse board %s: %w", boardID, err)
	}
	return &meta, nil
}

// BoardExists reports whether a board document is on disk
func (s *BoardStore) BoardExists(boardID string) bool {
	_, err := os.Stat(s.BoardPath(boardID))
	return err == nil
}

// ListBoardIDs returns the identifiers of every stored board document,
// sorted for deterministic iteration.
func (s *BoardStore) ListBoardIDs() ([]string, error) {
	entries, err := os.ReadDir(s.BoardDir())
	if err != nil {
		return nil, fmt.Errorf("failed to list board directory: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

// CleanBoards deletes board JSON files whose identifier is not in validIDs
// and returns the names of the deleted files.
func (s *BoardStore) CleanBoards(validIDs []string) ([]string, error) {
	valid := make(map[string]struct{}, len(validIDs))
	for _, id := range validIDs {
		valid[id] = struct{}{}
	}

	entries, err := os.ReadDir(s.BoardDir())
	if err != nil {
		return nil, fmt.Errorf("failed to list board directory: %w", err)
	}

	var deleted []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		boardID := strings.TrimSuffix(name, ".json")
		if _, ok := valid[boardID]; ok {
			continue
		}

		if err := os.Remove(filepath.Join(s.BoardDir(), name)); err != nil {
			s.logger.Warn("Failed to delete stale board file",
				zap.String("file", name),
				zap.Error(err),
			)
			continue
		}
		deleted = append(deleted, name)
		s.logger.Info("Deleted stale board file", zap.String("file", name))
	}
	return deleted, nil
}
