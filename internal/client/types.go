package client

// Raw wire shapes returned by the upstream GraphQL API. Field names follow
// the upstream snake_case convention; the transform package maps them into
// the archive shapes.

// RawBoard is the board+groups lookup result
type RawBoard struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	CreatedAt string         `json:"created_at"`
	Groups    []RawGroupInfo `json:"groups"`
}

// RawGroupInfo identifies one group within a board
type RawGroupInfo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// RawGroupPage is one page of a group's items. A nil cursor signals the
// last page.
type RawGroupPage struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	ItemsPage struct {
		Cursor *string   `json:"cursor"`
		Items  []RawItem `json:"items"`
	} `json:"items_page"`
}

// RawItem is one item or subitem; only top-level items carry subitems
type RawItem struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	CreatedAt    string           `json:"created_at"`
	UpdatedAt    string           `json:"updated_at"`
	Creator      *RawCreator      `json:"creator"`
	ColumnValues []RawColumnValue `json:"column_values"`
	Assets       []RawAsset       `json:"assets"`
	Subitems     []RawItem        `json:"subitems,omitempty"`
}

// RawColumnValue is one column cell of an item
type RawColumnValue struct {
	Text   *string `json:"text"`
	Type   string  `json:"type"`
	Column struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	} `json:"column"`
}

// RawComment is one update on an item, with its replies
type RawComment struct {
	ID                   string      `json:"id"`
	Body                 string      `json:"body"`
	EditedAt             string      `json:"edited_at"`
	CreatedAt            string      `json:"created_at"`
	UpdatedAt            string      `json:"updated_at"`
	ItemID               string      `json:"item_id"`
	OriginalCreationDate *string     `json:"original_creation_date"`
	TextBody             string      `json:"text_body"`
	Creator              *RawCreator `json:"creator"`
	Assets               []RawAsset  `json:"assets"`
	Replies              []RawReply  `json:"replies"`
}

// RawReply is one reply to an update
type RawReply struct {
	ID        string      `json:"id"`
	Body      string      `json:"body"`
	CreatorID string      `json:"creator_id"`
	EditedAt  string      `json:"edited_at"`
	CreatedAt string      `json:"created_at"`
	UpdatedAt string      `json:"updated_at"`
	TextBody  string      `json:"text_body"`
	Creator   *RawCreator `json:"creator"`
	Assets    []RawAsset  `json:"assets"`
}

// RawAsset is one file attachment as reported upstream
type RawAsset struct {
	ID            string `json:"id"`
	CreatedAt     string `json:"created_at"`
	Name          string `json:"name"`
	FileExtension string `json:"file_extension"`
	FileSize      int64  `json:"file_size"`
	PublicURL     string `json:"public_url"`
	URL           string `json:"url"`
}

// RawCreator identifies the author of an item, comment or reply
type RawCreator struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

const assetFields = `
	id
	created_at
	file_extension
	file_size
	name
	public_url
	url
`

const commentFields = `
	id
	body
	edited_at
	created_at
	updated_at
	item_id
	original_creation_date
	text_body
	creator {
		id
		name
	}
	assets {` + assetFields + `}
	replies {
		id
		body
		creator_id
		edited_at
		created_at
		updated_at
		text_body
		creator {
			id
			name
		}
		assets {` + assetFields + `}
	}
`

const itemFields = `
	id
	name
	created_at
	updated_at
	creator {
		id
		name
	}
	column_values {
		text
		type
		column {
			id
			title
		}
	}
	assets {` + assetFields + `}
	updates {` + commentFields + `}
`
