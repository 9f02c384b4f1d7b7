// Package runlog provides streaming per-decode record logging for offline
// analysis of a run. Records are written as CSV or JSONL (JSON Lines), one
// record per mapped individual, and can be read back for replay.
package runlog

import "time"

// Record is one individual's mapping statistics as logged during a run.
type Record struct {
	Index      int       `json:"index"`
	Timestamp  time.Time `json:"timestamp"`
	Nodes      int       `json:"nodes"`
	MaxDepth   int       `json:"max_depth"`
	UsedCodons int       `json:"used_codons"`
	Invalid    bool      `json:"invalid"`
	Phenotype  string    `json:"phenotype,omitempty"`
}
