package reconcile

// Result is the outcome of reconciling one document.
type Result struct {
	// MirrorLines is the canonical playlist in fetch order, one list line per item.
	MirrorLines []string `json:"mirror_lines" yaml:"mirror_lines"`

	// SuggestionLines holds the surviving suggestions, prior suggestions first.
	SuggestionLines []string `json:"suggestion_lines" yaml:"suggestion_lines"`

	Stats Stats `json:"stats" yaml:"stats"`
}

// Stats counts what happened to the prior entries during reconciliation.
type Stats struct {
	Tracks         int `json:"tracks" yaml:"tracks"`                   // canonical items
	Suggestions    int `json:"suggestions" yaml:"suggestions"`         // suggestion lines emitted
	Promoted       int `json:"promoted" yaml:"promoted"`               // dropped because they are canonical
	Duplicates     int `json:"duplicates" yaml:"duplicates"`           // dropped as repeats
	Searched       int `json:"searched" yaml:"searched"`               // link lookups attempted
	Enriched       int `json:"enriched" yaml:"enriched"`               // lookups that produced a link
	SearchFailures int `json:"search_failures" yaml:"search_failures"` // lookups that errored
}

// Dropped returns the number of prior entries that were not kept.
func (s Stats) Dropped() int {
	return s.Promoted + s.Duplicates
}
