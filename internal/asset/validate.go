package asset

import (
	"os"
	"path/filepath"

	"board-archive/internal/domain"
	"board-archive/internal/store"
)

// Out-of-band archive verification: checks every asset file a stored board
// document references for existence and size. The normal sync path trusts
// filenames alone; this is the separate consistency pass.

type IssueType string

const (
	IssueMissingJSON  IssueType = "missing_json"
	IssueMissingFile  IssueType = "missing_file"
	IssueSizeMismatch IssueType = "size_mismatch"
)

// Issue describes one validation failure with its item context
type Issue struct {
	Type         IssueType
	BoardID      string
	BoardName    string
	ItemID       string
	ItemName     string
	AssetID      string
	AssetName    string
	ExpectedSize int64
	ActualSize   int64
	Path         string
}

// BoardReport summarizes one board's validation outcome
type BoardReport struct {
	BoardID     string
	BoardName   string
	MissingJSON bool
	TotalAssets int
	ErrorCount  int
}

// Validate checks the archived asset files of every given board against its
// stored document and returns per-board summaries plus all issues found.
func Validate(s *store.BoardStore, boardIDs []string) ([]BoardReport, []Issue) {
	var reports []BoardReport
	var issues []Issue

	for _, boardID := range boardIDs {
		board, err := s.ReadBoard(boardID)
		if err != nil {
			reports = append(reports, BoardReport{
				BoardID:     boardID,
				MissingJSON: true,
				ErrorCount:  1,
			})
			issues = append(issues, Issue{Type: IssueMissingJSON, BoardID: boardID})
			continue
		}

		report := BoardReport{
			BoardID:   boardID,
			BoardName: board.Name,
		}

		for _, ref := range assetsWithContext(board) {
			report.TotalAssets++
			path := filepath.Join(s.AssetDir(boardID), domain.AssetFileName(ref.asset))

			info, err := os.Stat(path)
			if err != nil {
				report.ErrorCount++
				issues = append(issues, Issue{
					Type:         IssueMissingFile,
					BoardID:      boardID,
					BoardName:    board.Name,
					ItemID:       ref.itemID,
					ItemName:     ref.itemName,
					AssetID:      ref.asset.AssetID,
					AssetName:    ref.asset.FileName,
					ExpectedSize: ref.asset.Size,
					Path:         path,
				})
				continue
			}

			if info.Size() != ref.asset.Size {
				report.ErrorCount++
				issues = append(issues, Issue{
					Type:         IssueSizeMismatch,
					BoardID:      boardID,
					BoardName:    board.Name,
					ItemID:       ref.itemID,
					ItemName:     ref.itemName,
					AssetID:      ref.asset.AssetID,
					AssetName:    ref.asset.FileName,
					ExpectedSize: ref.asset.Size,
					ActualSize:   info.Size(),
					Path:         path,
				})
			}
		}

		reports = append(reports, report)
	}

	return reports, issues
}

type assetRef struct {
	asset    domain.Asset
	itemID   string
	itemName string
}

// assetsWithContext lists every asset occurrence together with the item it
// hangs off. Unlike CollectAssets this keeps duplicates: each occurrence is
// validated in its own context.
func assetsWithContext(board *domain.Board) []assetRef {
	var refs []assetRef

	appendItem := func(item domain.Item) {
		for _, a := range item.Assets {
			refs = append(refs, assetRef{asset: a, itemID: item.ItemID, itemName: item.Title})
		}
		for _, comment := range item.Comments {
			for _, a := range comment.Assets {
				refs = append(refs, assetRef{asset: a, itemID: item.ItemID, itemName: item.Title})
			}
			for _, reply := range comment.Replies {
				for _, a := range reply.Assets {
					refs = append(refs, assetRef{asset: a, itemID: item.ItemID, itemName: item.Title})
				}
			}
		}
	}

	for _, group := range board.Groups {
		for _, item := range group.Items {
			appendItem(item)
			for _, sub := range item.SubItems {
				appendItem(sub)
			}
		}
	}
	return refs
}
