package domain

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func makeAsset(id string) Asset {
	return Asset{
		AssetID:   id,
		FileName:  "file-" + id,
		Extension: ".png",
		Size:      10,
		PublicURL: "https://files.example.com/" + id,
		URL:       "https://example.com/view?id=" + id,
		LocalURL:  "/asset/b1/" + id + ".png",
	}
}

func TestAssetFileName(t *testing.T) {
	asset := Asset{AssetID: "123456", Extension: ".pdf"}
	assert.Equal(t, "123456.pdf", AssetFileName(asset))
}

func TestCollectAssets_DeduplicatesAcrossAllLevels(t *testing.T) {
	// The same identifier appears under an item, a subitem, a comment and
	// a reply; it must collapse to one entry.
	shared := makeAsset("A1")

	board := &Board{
		BoardID: "b1",
		Groups: []Group{
			{
				GroupID: "g1",
				Items: []Item{
					{
						ItemID: "i1",
						Assets: []Asset{shared, makeAsset("A2")},
						Comments: []Comment{
							{
								CommentID: "c1",
								Assets:    []Asset{shared},
								Replies: []Reply{
									{ReplyID: "r1", Assets: []Asset{shared, makeAsset("A3")}},
								},
							},
						},
						SubItems: []Item{
							{ItemID: "s1", Assets: []Asset{shared}},
						},
					},
				},
			},
		},
	}

	assets := CollectAssets(board)

	ids := make([]string, 0, len(assets))
	for _, a := range assets {
		ids = append(ids, a.AssetID)
	}
	assert.Equal(t, []string{"A1", "A2", "A3"}, ids)
}

func TestCollectAssets_EmptyBoard(t *testing.T) {
	board := &Board{BoardID: "b1"}
	assert.Empty(t, CollectAssets(board))
}

func TestCollectAssets_StableFirstOccurrenceOrder(t *testing.T) {
	board := &Board{
		Groups: []Group{
			{Items: []Item{{ItemID: "i1", Assets: []Asset{makeAsset("B"), makeAsset("A")}}}},
			{Items: []Item{{ItemID: "i2", Assets: []Asset{makeAsset("A"), makeAsset("C")}}}},
		},
	}

	assets := CollectAssets(board)
	ids := make([]string, 0, len(assets))
	for _, a := range assets {
		ids = append(ids, a.AssetID)
	}
	assert.Equal(t, []string{"B", "A", "C"}, ids)
}

// For any board whose asset identifiers are drawn from a small pool (so
// duplicates are frequent), CollectAssets never returns two entries with
// the same identifier, and every referenced identifier is returned.
func TestProperty_CollectAssetsDeduplicates(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("collected assets are unique and complete", prop.ForAll(
		func(assetIDs []int) bool {
			board := &Board{BoardID: "b1", Groups: []Group{{GroupID: "g1"}}}
			expected := make(map[string]struct{})

			// Scatter the identifiers across items, subitems, comments
			// and replies round-robin.
			for n, rawID := range assetIDs {
				id := fmt.Sprintf("asset-%d", rawID%7)
				expected[id] = struct{}{}

				item := Item{ItemID: fmt.Sprintf("i%d", n)}
				switch n % 4 {
				case 0:
					item.Assets = []Asset{makeAsset(id)}
				case 1:
					item.SubItems = []Item{{ItemID: "s", Assets: []Asset{makeAsset(id)}}}
				case 2:
					item.Comments = []Comment{{Assets: []Asset{makeAsset(id)}}}
				case 3:
					item.Comments = []Comment{{Replies: []Reply{{Assets: []Asset{makeAsset(id)}}}}}
				}
				board.Groups[0].Items = append(board.Groups[0].Items, item)
			}

			collected := CollectAssets(board)

			seen := make(map[string]struct{})
			for _, a := range collected {
				if _, dup := seen[a.AssetID]; dup {
					return false
				}
				seen[a.AssetID] = struct{}{}
			}
			return len(seen) == len(expected)
		},
		gen.SliceOf(gen.IntRange(0, 100)),
	))

	properties.TestingRun(t)
}
