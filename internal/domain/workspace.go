package domain

// BoardMeta is the reduced board view used by the listing endpoint.
// Only these three fields are decoded from the archived document.
type BoardMeta struct {
	BoardID   string `json:"boardId"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
}

// Workspace groups archived boards under a configured bucket for serving.
// It is built at request time from the static identifier mapping and is
// never persisted in the archive itself.
type Workspace struct {
	Name   string      `json:"name"`
	Boards []BoardMeta `json:"boards"`
}
