package domain

// Asset is a file attachment referenced by an item, subitem, comment or reply.
// The same asset identifier may appear in several places; it always maps to
// one physical file named {assetId}{extension}.
type Asset struct {
	AssetID   string `json:"assetId"`
	FileName  string `json:"fileName"`
	Extension string `json:"extension"`
	Size      int64  `json:"size"`
	PublicURL string `json:"publicUrl"`
	URL       string `json:"url"`
	LocalURL  string `json:"localUrl"`
	CreatedAt string `json:"createdAt"`
}

// AssetFileName returns the deterministic local filename for an asset.
func AssetFileName(a Asset) string {
	return a.AssetID + a.Extension
}

// CollectAssets walks every group, item, subitem, comment and reply of a board
// and returns the deduplicated set of assets it references. Dedup key is the
// asset identifier; the first occurrence wins and input order is preserved.
func CollectAssets(board *Board) []Asset {
	var all []Asset

	for _, group := range board.Groups {
		for _, item := range group.Items {
			all = append(all, itemAssets(item)...)
			for _, sub := range item.SubItems {
				all = append(all, itemAssets(sub)...)
			}
		}
	}

	seen := make(map[string]struct{}, len(all))
	deduped := make([]Asset, 0, len(all))
	for _, asset := range all {
		if _, ok := seen[asset.AssetID]; ok {
			continue
		}
		seen[asset.AssetID] = struct{}{}
		deduped = append(deduped, asset)
	}
	return deduped
}

func itemAssets(item Item) []Asset {
	assets := append([]Asset{}, item.Assets...)

	for _, comment := range item.Comments {
		assets = append(assets, comment.Assets...)
		for _, reply := range comment.Replies {
			assets = append(assets, reply.Assets...)
		}
	}
	return assets
}
