package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"board-archive/internal/domain"
)

func strPtr(s string) *string { return &s }

func newTestStore(t *testing.T) *BoardStore {
	t.Helper()
	s := NewBoardStore(t.TempDir(), zap.NewNop())
	require.NoError(t, s.EnsureLayout())
	return s
}

func sampleBoard(boardID string) *domain.Board {
	return &domain.Board{
		BoardID:   boardID,
		Name:      "Project Board",
		CreatedAt: "2024-03-01T09:00:00Z",
		Groups: []domain.Group{
			{
				GroupID: "g1",
				Name:    "Sprint 1",
				Items: []domain.Item{
					{
						ItemID:    "i1",
						Title:     "Design review",
						CreatedBy: "Alice",
						CreatedAt: "2024-03-02T10:00:00Z",
						UpdatedAt: "2024-03-03T11:00:00Z",
						Column: []domain.Column{
							{Name: "Status", Value: strPtr("Done")},
						},
						Assets: []domain.Asset{
							{
								AssetID:   "a1",
								FileName:  "mockup.png",
								Extension: ".png",
								Size:      2048,
								PublicURL: "https://files.example.com/a1/mockup.png",
								LocalURL:  "/asset/" + boardID + "/a1.png",
								CreatedAt: "2024-03-02T10:05:00Z",
							},
						},
						Comments: []domain.Comment{},
						SubItems: []domain.Item{},
					},
				},
			},
		},
	}
}

func TestWriteBoard_ReadBoard_Roundtrip(t *testing.T) {
	s := newTestStore(t)
	board := sampleBoard("B1")

	require.NoError(t, s.WriteBoard(board))

	got, err := s.ReadBoard("B1")
	require.NoError(t, err)
	assert.Equal(t, board, got)
}

func TestWriteBoard_RewriteIsByteIdentical(t *testing.T) {
	s := newTestStore(t)
	board := sampleBoard("B1")

	require.NoError(t, s.WriteBoard(board))
	first, err := os.ReadFile(s.BoardPath("B1"))
	require.NoError(t, err)

	require.NoError(t, s.WriteBoard(board))
	second, err := os.ReadFile(s.BoardPath("B1"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestWriteBoard_EmptySubItemsRoundtrip(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.WriteBoard(sampleBoard("B1")))

	// Items without subitems still carry the key as an empty list.
	data, err := os.ReadFile(s.BoardPath("B1"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"subItems": []`)

	got, err := s.ReadBoard("B1")
	require.NoError(t, err)
	assert.NotNil(t, got.Groups[0].Items[0].SubItems)
	assert.Empty(t, got.Groups[0].Items[0].SubItems)
}

func TestWriteBoard_PrettyPrinted(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.WriteBoard(sampleBoard("B1")))

	data, err := os.ReadFile(s.BoardPath("B1"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n    \"boardId\": \"B1\"")
}

func TestReadBoardMeta_SkipsGroupTree(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.WriteBoard(sampleBoard("B1")))

	meta, err := s.ReadBoardMeta("B1")
	require.NoError(t, err)
	assert.Equal(t, "B1", meta.BoardID)
	assert.Equal(t, "Project Board", meta.Name)
	assert.Equal(t, "2024-03-01T09:00:00Z", meta.CreatedAt)
}

func TestReadBoard_MissingFile(t *testing.T) {
	s := newTestStore(t)

	_, err := s.ReadBoard("absent")
	assert.Error(t, err)
}

func TestBoardExists(t *testing.T) {
	s := newTestStore(t)
	assert.False(t, s.BoardExists("B1"))

	require.NoError(t, s.WriteBoard(sampleBoard("B1")))
	assert.True(t, s.BoardExists("B1"))
}

func TestListBoardIDs_SortedAndFiltered(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.WriteBoard(sampleBoard("B2")))
	require.NoError(t, s.WriteBoard(sampleBoard("B1")))

	// Non-board files and directories are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(s.BoardDir(), "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(s.BoardDir(), "sub"), 0o755))

	ids, err := s.ListBoardIDs()
	require.NoError(t, err)
	assert.Equal(t, []string{"B1", "B2"}, ids)
}

func TestCleanBoards_DeletesOnlyStaleFiles(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.WriteBoard(sampleBoard("B1")))
	require.NoError(t, s.WriteBoard(sampleBoard("B2")))
	require.NoError(t, s.WriteBoard(sampleBoard("B3")))

	deleted, err := s.CleanBoards([]string{"B1", "B3"})
	require.NoError(t, err)
	assert.Equal(t, []string{"B2.json"}, deleted)

	assert.True(t, s.BoardExists("B1"))
	assert.False(t, s.BoardExists("B2"))
	assert.True(t, s.BoardExists("B3"))
}
