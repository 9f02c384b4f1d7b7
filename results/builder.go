package results

import (
	"time"

	"github.com/gemap-xyz/go-gemap/grammar"
	"github.com/gemap-xyz/go-gemap/mapper"
	"github.com/google/uuid"
)

// Builder helps construct Results from decoding output.
type Builder struct {
	results Results
}

// NewBuilder creates a new results builder with a fresh run ID.
func NewBuilder() *Builder {
	return &Builder{
		results: Results{
			Version: SchemaVersion,
			Metadata: Metadata{
				RunID:     uuid.NewString(),
				Timestamp: time.Now(),
			},
		},
	}
}

// WithModel sets grammar information.
func (b *Builder) WithModel(g *grammar.Grammar, name string) *Builder {
	productions := 0
	nts := g.NonTerminals()
	for _, nt := range nts {
		_, n := g.Productions(nt)
		productions += n
	}
	b.results.Model = Model{
		Name:         name,
		Start:        g.Start.Text,
		NonTerminals: nts,
		Productions:  productions,
		EmbeddedCode: g.HasEmbeddedCode,
	}
	return b
}

// WithStrategy records the forward strategy the run used.
func (b *Builder) WithStrategy(cfg mapper.Config) *Builder {
	b.results.Metadata.Strategy = cfg.Strategy()
	return b
}

// Append adds one individual's mapping result. keepPhenotype controls
// whether the phenotype text itself is stored alongside its length.
func (b *Builder) Append(index int, res *mapper.Result, keepPhenotype bool) *Builder {
	rec := Record{
		Index:           index,
		Nodes:           res.Nodes,
		MaxDepth:        res.MaxDepth,
		UsedCodons:      res.UsedCodons,
		Invalid:         res.Invalid,
		PhenotypeLength: len(res.Phenotype),
	}
	if keepPhenotype {
		rec.Phenotype = res.Phenotype
	}
	b.results.Data.Records = append(b.results.Data.Records, rec)
	return b
}

// Fail marks the run as failed with the given error.
func (b *Builder) Fail(err error) *Builder {
	b.results.Metadata.Status = "error"
	b.results.Metadata.Error = err.Error()
	return b
}

// Build finalizes the summary and returns the assembled results.
func (b *Builder) Build(computeTime float64) *Results {
	b.results.Metadata.ComputeTime = computeTime
	if b.results.Metadata.Status == "" {
		b.results.Metadata.Status = "success"
	}

	records := b.results.Data.Records
	summary := Summary{Individuals: len(records)}
	if len(records) > 0 {
		totalNodes, totalDepth := 0, 0
		for _, r := range records {
			if !r.Invalid {
				summary.Valid++
			}
			totalNodes += r.Nodes
			totalDepth += r.MaxDepth
			if r.MaxDepth > summary.MaxDepth {
				summary.MaxDepth = r.MaxDepth
			}
		}
		summary.ValidRatio = float64(summary.Valid) / float64(len(records))
		summary.MeanNodes = float64(totalNodes) / float64(len(records))
		summary.MeanDepth = float64(totalDepth) / float64(len(records))
	}
	b.results.Data.Summary = summary

	return &b.results
}
