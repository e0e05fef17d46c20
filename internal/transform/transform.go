package transform

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	_ "time/tzdata" // display timezone must resolve without a host zoneinfo db

	"board-archive/internal/client"
	"board-archive/internal/domain"
)

// Pure mapping of upstream wire shapes into archive shapes. No I/O happens
// here; everything is deterministic given its inputs.

const (
	columnSubitems    = "Subitems"
	columnLastUpdated = "Last Updated"
	columnCreationLog = "Creation Log"

	dateColumnFormat = "2006-01-02 15:04:05"
)

// Date-valued columns are reformatted into the archive's display timezone.
var displayLocation = mustLoadLocation("Asia/Hong_Kong")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(fmt.Sprintf("transform: cannot load location %s: %v", name, err))
	}
	return loc
}

// userMentionPattern matches upstream user-mention anchors; the inner text
// is preserved in the neutralized span.
var userMentionPattern = regexp.MustCompile(`<a[^>]*data-mention-id="[^"]*"[^>]*>(.*?)</a>`)

// Item maps one raw top-level item into its archive shape. Subitems are
// mapped one level deep only; comments are attached separately after their
// paginated fetch. Top-level items always carry a subItems list, empty
// included; subitems themselves never do.
func Item(boardID string, raw client.RawItem) domain.Item {
	item := baseItem(boardID, raw)
	item.SubItems = make([]domain.Item, 0, len(raw.Subitems))
	for _, sub := range raw.Subitems {
		item.SubItems = append(item.SubItems, baseItem(boardID, sub))
	}
	return item
}

// baseItem maps the fields an item and a subitem share.
func baseItem(boardID string, raw client.RawItem) domain.Item {
	return domain.Item{
		ItemID:    raw.ID,
		Title:     raw.Name,
		CreatedBy: creatorName(raw.Creator),
		CreatedAt: raw.CreatedAt,
		UpdatedAt: raw.UpdatedAt,
		Column:    Columns(raw.ColumnValues),
		Assets:    Assets(boardID, raw.Assets),
		Comments:  []domain.Comment{},
	}
}

// Columns maps raw column values, suppressing the redundant Subitems column
// and reformatting date-valued columns into the display timezone.
func Columns(values []client.RawColumnValue) []domain.Column {
	columns := make([]domain.Column, 0, len(values))

	for _, cv := range values {
		name := cv.Column.Title
		value := cv.Text

		switch name {
		case columnSubitems:
			continue
		case columnLastUpdated, columnCreationLog:
			if value != nil && *value != "" {
				if parsed, err := parseUpstreamDate(*value); err == nil {
					formatted := parsed.In(displayLocation).Format(dateColumnFormat)
					value = &formatted
				}
			}
		}

		columns = append(columns, domain.Column{Name: name, Value: value})
	}
	return columns
}

// Comments maps one item's raw updates, including replies and body rewrite.
func Comments(boardID string, raws []client.RawComment) []domain.Comment {
	comments := make([]domain.Comment, 0, len(raws))

	for _, raw := range raws {
		comment := domain.Comment{
			CommentID:     raw.ID,
			Body:          raw.Body,
			FormattedBody: Body(boardID, raw.Body, raw.Assets),
			EditedAt:      raw.EditedAt,
			CreatedAt:     raw.CreatedAt,
			UpdatedAt:     raw.UpdatedAt,
			CreatedBy:     creatorName(raw.Creator),
			Assets:        Assets(boardID, raw.Assets),
			Replies:       make([]domain.Reply, 0, len(raw.Replies)),
		}

		for _, rawReply := range raw.Replies {
			comment.Replies = append(comment.Replies, domain.Reply{
				ReplyID:       rawReply.ID,
				Body:          rawReply.Body,
				FormattedBody: Body(boardID, rawReply.Body, rawReply.Assets),
				CreatedBy:     creatorName(rawReply.Creator),
				CreatedAt:     rawReply.CreatedAt,
				UpdatedAt:     rawReply.UpdatedAt,
				Assets:        Assets(boardID, rawReply.Assets),
			})
		}

		comments = append(comments, comment)
	}
	return comments
}

// Asset maps one raw asset and computes its local serving URL.
func Asset(boardID string, raw client.RawAsset) domain.Asset {
	return domain.Asset{
		AssetID:   raw.ID,
		FileName:  raw.Name,
		Extension: raw.FileExtension,
		Size:      raw.FileSize,
		PublicURL: raw.PublicURL,
		URL:       raw.URL,
		LocalURL:  fmt.Sprintf("/asset/%s/%s%s", boardID, raw.ID, raw.FileExtension),
		CreatedAt: raw.CreatedAt,
	}
}

// Assets maps a raw asset list.
func Assets(boardID string, raws []client.RawAsset) []domain.Asset {
	assets := make([]domain.Asset, 0, len(raws))
	for _, raw := range raws {
		assets = append(assets, Asset(boardID, raw))
	}
	return assets
}

// Body rewrites a comment or reply body so that every reference resolves
// inside the archive:
//   - upstream user-mention anchors become plain inline spans,
//   - anchors linking an attached asset's upstream URL point at the local
//     file and carry a download filename,
//   - image tags keyed by an attached asset's identifier point at the local
//     file.
//
// Replacement is textual substitution in asset-list order. Rewritten text is
// never re-matched: local URLs cannot match the upstream URL or asset-id
// patterns of later assets.
func Body(boardID, body string, assets []client.RawAsset) string {
	if body == "" {
		return body
	}

	body = userMentionPattern.ReplaceAllString(body, `<span data-body-type="user-mention">$1</span>`)

	for _, rawAsset := range assets {
		asset := Asset(boardID, rawAsset)

		filePattern := regexp.MustCompile(`<a[^>]*href="` + regexp.QuoteMeta(asset.URL) + `"[^>]*>(.*?)</a>`)
		downloadName := asset.FileName + asset.Extension
		body = filePattern.ReplaceAllString(body,
			fmt.Sprintf(`<a href="%s" download="%s" data-body-type="asset">$1</a>`,
				literalReplacement(asset.LocalURL), literalReplacement(downloadName)))

		imagePattern := regexp.MustCompile(`<img[^>]*data-asset_id="` + regexp.QuoteMeta(asset.AssetID) + `"[^>]*>`)
		body = imagePattern.ReplaceAllString(body, fmt.Sprintf(`<img src="%s">`, literalReplacement(asset.LocalURL)))
	}

	return body
}

// literalReplacement neutralizes $ so an interpolated value stays literal
// inside a regexp replacement template.
func literalReplacement(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}

func creatorName(creator *client.RawCreator) string {
	if creator == nil || creator.Name == "" {
		return domain.UnknownCreator
	}
	return creator.Name
}

// parseUpstreamDate accepts the timestamp formats the upstream API emits in
// date-valued column text.
func parseUpstreamDate(value string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02 15:04:05 MST",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}

	var lastErr error
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
