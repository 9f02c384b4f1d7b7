package grammar

import (
	"encoding/json"
	"fmt"
)

// jsonGrammar is the serialized form of a Grammar.
//
//	{
//	  "start": "S",
//	  "embeddedCode": false,
//	  "rules": [
//	    {"name": "S", "productions": [
//	      [{"type": "T", "value": "a"}, {"type": "NT", "value": "S"}],
//	      [{"type": "T", "value": "b"}]
//	    ]}
//	  ]
//	}
type jsonGrammar struct {
	Start        string     `json:"start"`
	EmbeddedCode bool       `json:"embeddedCode,omitempty"`
	Rules        []jsonRule `json:"rules"`
}

type jsonRule struct {
	Name        string         `json:"name"`
	Productions [][]jsonSymbol `json:"productions"`
}

type jsonSymbol struct {
	Type  string `json:"type"` // "T" or "NT"
	Value string `json:"value"`
}

// FromJSON decodes a grammar object from its JSON serialization. This is
// structured object decoding, not grammar source text parsing; the resulting
// grammar is validated before being returned.
func FromJSON(data []byte) (*Grammar, error) {
	var raw jsonGrammar
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	g := NewGrammar(raw.Start)
	g.HasEmbeddedCode = raw.EmbeddedCode

	for _, r := range raw.Rules {
		prods := make([]Production, 0, len(r.Productions))
		for _, p := range r.Productions {
			symbols := make([]Symbol, 0, len(p))
			for _, s := range p {
				switch s.Type {
				case "T":
					symbols = append(symbols, T(s.Value))
				case "NT":
					symbols = append(symbols, NT(s.Value))
				default:
					return nil, fmt.Errorf("rule %q: unknown symbol type %q", r.Name, s.Type)
				}
			}
			prods = append(prods, Production{Symbols: symbols})
		}
		g.AddRule(r.Name, prods...)
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// ToJSON encodes the grammar to its JSON serialization.
func (g *Grammar) ToJSON() ([]byte, error) {
	raw := jsonGrammar{
		Start:        g.Start.Text,
		EmbeddedCode: g.HasEmbeddedCode,
		Rules:        make([]jsonRule, 0, len(g.order)),
	}
	for _, name := range g.order {
		r := g.Rules[name]
		jr := jsonRule{Name: name, Productions: make([][]jsonSymbol, 0, len(r.Productions))}
		for _, p := range r.Productions {
			jp := make([]jsonSymbol, 0, len(p.Symbols))
			for _, s := range p.Symbols {
				kind := "T"
				if s.IsNonTerminal() {
					kind = "NT"
				}
				jp = append(jp, jsonSymbol{Type: kind, Value: s.Text})
			}
			jr.Productions = append(jr.Productions, jp)
		}
		raw.Rules = append(raw.Rules, jr)
	}
	return json.MarshalIndent(raw, "", "  ")
}
