// Package results defines the structured output format for decoding runs.
package results

import "time"

const SchemaVersion = "1.0.0"

// Results contains complete decoding run output.
type Results struct {
	Version  string   `json:"version"`
	Metadata Metadata `json:"metadata"`
	Model    Model    `json:"model"`
	Data     Data     `json:"results"`
}

// Metadata contains run execution information.
type Metadata struct {
	RunID       string    `json:"runId"`
	Timestamp   time.Time `json:"timestamp"`
	Strategy    string    `json:"strategy"` // tree, fast-queue, position-independent
	Status      string    `json:"status"`   // success, error
	Error       string    `json:"error,omitempty"`
	ComputeTime float64   `json:"computeTime"` // seconds
}

// Model summarizes the grammar the run decoded against.
type Model struct {
	Name         string   `json:"name,omitempty"`
	Start        string   `json:"start"`
	NonTerminals []string `json:"nonTerminals"`
	Productions  int      `json:"productions"`
	EmbeddedCode bool     `json:"embeddedCode,omitempty"`
}

// Data contains the per-individual records and their summary.
type Data struct {
	Summary Summary  `json:"summary"`
	Records []Record `json:"records"`
}

// Record holds the mapping statistics of one individual.
type Record struct {
	Index           int    `json:"index"`
	Nodes           int    `json:"nodes"`
	MaxDepth        int    `json:"maxDepth"`
	UsedCodons      int    `json:"usedCodons"`
	Invalid         bool   `json:"invalid"`
	PhenotypeLength int    `json:"phenotypeLength"`
	Phenotype       string `json:"phenotype,omitempty"`
}

// Summary provides a quick overview of a run.
type Summary struct {
	Individuals int     `json:"individuals"`
	Valid       int     `json:"valid"`
	ValidRatio  float64 `json:"validRatio"`
	MeanNodes   float64 `json:"meanNodes"`
	MeanDepth   float64 `json:"meanDepth"`
	MaxDepth    int     `json:"maxDepth"`
}
