package asset

import (
	"fmt"
	"math"

	"board-archive/internal/domain"
	"board-archive/internal/store"
)

// Usage summarizes one board's deduplicated asset footprint
type Usage struct {
	BoardID   string
	BoardName string
	Count     int
	Size      int64
}

// Analyze reports the asset count and total byte size of every stored board
func Analyze(s *store.BoardStore) ([]Usage, error) {
	boardIDs, err := s.ListBoardIDs()
	if err != nil {
		return nil, err
	}

	var usages []Usage
	for _, boardID := range boardIDs {
		board, err := s.ReadBoard(boardID)
		if err != nil {
			return nil, err
		}

		usage := Usage{
			BoardID:   board.BoardID,
			BoardName: board.Name,
		}
		for _, a := range domain.CollectAssets(board) {
			usage.Count++
			usage.Size += a.Size
		}
		usages = append(usages, usage)
	}
	return usages, nil
}

// FormatBytes renders a byte count in binary units for report tables
func FormatBytes(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}

	sizes := []string{"Bytes", "KB", "MB", "GB", "TB"}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(sizes) {
		i = len(sizes) - 1
	}
	value := float64(bytes) / math.Pow(1024, float64(i))
	return fmt.Sprintf("%s %s", trimZeros(value), sizes[i])
}

func trimZeros(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}
