package casesearch

import "go-crossroads/internal/connectors"

// Query is a frame sent by the client while the user types.
type Query struct {
	Query string `json:"query"`
}

// Result answers the latest query of a connection. Seq echoes the token the
// query was issued under.
type Result struct {
	Seq     uint64                   `json:"seq"`
	Query   string                   `json:"query"`
	Results []connectors.CaseSummary `json:"results"`
	Error   string                   `json:"error,omitempty"`
}
