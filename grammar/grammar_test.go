package grammar

import (
	"errors"
	"reflect"
	"testing"
)

func testGrammar() *Grammar {
	g := NewGrammar("expr")
	g.AddRule("expr",
		Prod(NT("expr"), NT("op"), NT("expr")),
		Prod(NT("var")),
	)
	g.AddRule("op", Prod(T("+")), Prod(T("*")))
	g.AddRule("var", Prod(T("x")), Prod(T("y")))
	return g
}

func TestGrammarBuilder(t *testing.T) {
	g := testGrammar()

	if !g.Start.IsNonTerminal() || g.Start.Text != "expr" {
		t.Errorf("Unexpected start symbol %+v", g.Start)
	}

	prods, choices := g.Productions("expr")
	if choices != 2 || len(prods) != 2 {
		t.Fatalf("Expected 2 choices for expr, got %d", choices)
	}
	if prods[0].NonTerminalCount() != 3 {
		t.Errorf("Expected 3 non-terminals in first production, got %d",
			prods[0].NonTerminalCount())
	}
	if prods[1].NonTerminalCount() != 1 {
		t.Errorf("Expected 1 non-terminal in second production, got %d",
			prods[1].NonTerminalCount())
	}

	if _, choices := g.Productions("missing"); choices != 0 {
		t.Errorf("Unknown rule should have 0 choices, got %d", choices)
	}

	if !g.IsNonTerminal("op") || g.IsNonTerminal("+") {
		t.Error("IsNonTerminal should track rule names only")
	}

	want := []string{"expr", "op", "var"}
	if got := g.NonTerminals(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected insertion order %v, got %v", want, got)
	}
}

func TestGrammarAddRuleReplaces(t *testing.T) {
	g := testGrammar()
	g.AddRule("op", Prod(T("-")))

	prods, choices := g.Productions("op")
	if choices != 1 || prods[0].Symbols[0].Text != "-" {
		t.Errorf("Re-adding a rule should replace its productions, got %v", prods)
	}
	if got := len(g.NonTerminals()); got != 3 {
		t.Errorf("Replacing a rule must not duplicate its order entry, got %d names", got)
	}
}

func TestGrammarValidate(t *testing.T) {
	if err := testGrammar().Validate(); err != nil {
		t.Errorf("Expected valid grammar, got %v", err)
	}

	if err := NewGrammar("").Validate(); !errors.Is(err, ErrNoStartSymbol) {
		t.Errorf("Expected ErrNoStartSymbol, got %v", err)
	}

	if err := NewGrammar("S").Validate(); !errors.Is(err, ErrRuleNotFound) {
		t.Errorf("Expected ErrRuleNotFound for missing start rule, got %v", err)
	}

	g := NewGrammar("S")
	g.AddRule("S")
	if err := g.Validate(); !errors.Is(err, ErrEmptyRule) {
		t.Errorf("Expected ErrEmptyRule, got %v", err)
	}

	g = NewGrammar("S")
	g.AddRule("S", Prod(NT("ghost")))
	if err := g.Validate(); !errors.Is(err, ErrRuleNotFound) {
		t.Errorf("Expected ErrRuleNotFound for dangling reference, got %v", err)
	}
}

func TestGrammarJSONRoundTrip(t *testing.T) {
	g := testGrammar()
	g.HasEmbeddedCode = true

	data, err := g.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}

	decoded, err := FromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON failed: %v", err)
	}

	if decoded.Start != g.Start {
		t.Errorf("Start symbol changed: %+v vs %+v", decoded.Start, g.Start)
	}
	if !decoded.HasEmbeddedCode {
		t.Error("Embedded-code flag lost in round trip")
	}
	if !reflect.DeepEqual(decoded.NonTerminals(), g.NonTerminals()) {
		t.Errorf("Rule order changed: %v vs %v", decoded.NonTerminals(), g.NonTerminals())
	}
	for _, name := range g.NonTerminals() {
		want, _ := g.Productions(name)
		got, _ := decoded.Productions(name)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Rule %q changed: %v vs %v", name, got, want)
		}
	}
}

func TestGrammarFromJSONRejectsBadInput(t *testing.T) {
	if _, err := FromJSON([]byte("{")); err == nil {
		t.Error("Expected error for malformed JSON")
	}

	bad := `{"start":"S","rules":[{"name":"S","productions":[[{"type":"X","value":"a"}]]}]}`
	if _, err := FromJSON([]byte(bad)); err == nil {
		t.Error("Expected error for unknown symbol type")
	}

	dangling := `{"start":"S","rules":[{"name":"S","productions":[[{"type":"NT","value":"T"}]]}]}`
	if _, err := FromJSON([]byte(dangling)); !errors.Is(err, ErrRuleNotFound) {
		t.Errorf("Expected ErrRuleNotFound, got %v", err)
	}
}
