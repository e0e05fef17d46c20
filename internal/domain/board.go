package domain

// Board is the root archival unit: one upstream board, fully materialized.
// The JSON field names are the on-disk contract; the browsing UI and the
// serving API both read these documents verbatim.
type Board struct {
	BoardID   string  `json:"boardId"`
	Name      string  `json:"name"`
	CreatedAt string  `json:"createdAt"`
	Groups    []Group `json:"groups"`
}

// Group is a named partition of a board's items.
type Group struct {
	GroupID string `json:"groupId"`
	Name    string `json:"name"`
	Items   []Item `json:"items"`
}

// Item is a unit of work with columns, attachments and comments.
// Subitems nest one level under items only.
type Item struct {
	ItemID    string    `json:"itemId"`
	Title     string    `json:"title"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt string    `json:"createdAt"`
	UpdatedAt string    `json:"updatedAt"`
	Column    []Column  `json:"column"`
	Assets    []Asset   `json:"assets"`
	Comments  []Comment `json:"comments"`
	SubItems  []Item    `json:"subItems,omitzero"`
}

// Column is one (name, value) pair of an item's column values.
type Column struct {
	Name  string  `json:"name"`
	Value *string `json:"value"`
}

// Comment carries both the raw upstream markup and the rewritten body
// whose asset references point at locally archived files.
// Timestamp keys are snake_case: the upstream updates API uses them and the
// archived documents keep them as-is.
type Comment struct {
	CommentID     string  `json:"commentId"`
	Body          string  `json:"body"`
	FormattedBody string  `json:"formattedBody"`
	EditedAt      string  `json:"edited_at"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
	CreatedBy     string  `json:"createdBy"`
	Assets        []Asset `json:"assets"`
	Replies       []Reply `json:"replies"`
}

// Reply is a comment reply. Same shape as Comment minus nested replies.
type Reply struct {
	ReplyID       string  `json:"replyId"`
	Body          string  `json:"body"`
	FormattedBody string  `json:"formattedBody"`
	CreatedBy     string  `json:"createdBy"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
	Assets        []Asset `json:"assets"`
}

// UnknownCreator is the display name used when upstream creator data is absent.
const UnknownCreator = "Unknown"
