// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package scopelang parses the scoped-enable mini-language accepted by
// PluginRegistry's scoped context: either a list of bare
// plugin names ("only these are enabled") or a list of +name/-name deltas
// applied against the currently enabled set. Mixing the two forms in one
// spec is a grammar-level error, not a runtime one.
package scopelang

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/samber/oops"
)

var tokenLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Plus", Pattern: `\+`},
	{Name: "Minus", Pattern: `-`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_.-]*`},
})

// Token is one parsed item: a bare name, or a +name/-name delta.
type Token struct {
	Pos  lexer.Position `parser:""`
	Op   string         `parser:"@(Plus | Minus)?"`
	Name string         `parser:"@Ident"`
}

// Spec is the parsed form of a scoped-context argument list.
type Spec struct {
	Tokens []*Token
}

var parser *participle.Parser[Token]

func init() {
	var err error
	parser, err = participle.Build[Token](participle.Lexer(tokenLexer))
	if err != nil {
		panic("scopelang: failed to build parser: " + err.Error())
	}
}

// Parse parses raw items — each already isolated by the caller (there is
// no whitespace-separated sentence here, just a slice of "+a" / "-b" / "c"
// strings) — and enforces that bare and prefixed forms are not mixed.
func Parse(items []string) (*Spec, error) {
	tokens := make([]*Token, 0, len(items))
	sawBare, sawPrefixed := false, false

	for _, item := range items {
		tok, err := parser.ParseString("", item)
		if err != nil {
			return nil, oops.Code("SCOPE_SYNTAX").With("item", item).Wrapf(err, "parsing scope item %q", item)
		}
		if tok.Op == "" {
			sawBare = true
		} else {
			sawPrefixed = true
		}
		tokens = append(tokens, tok)
	}

	if sawBare && sawPrefixed {
		return nil, oops.Code("SCOPE_SYNTAX").Errorf("cannot mix bare names and +/- prefixed names in one scope spec")
	}

	return &Spec{Tokens: tokens}, nil
}

// IsDelta reports whether this spec is in +/- delta form rather than the
// "only these are enabled" bare-name form. An empty spec is treated as a
// no-op delta (no adds, no removes).
func (s *Spec) IsDelta() bool {
	if len(s.Tokens) == 0 {
		return true
	}
	for _, t := range s.Tokens {
		if t.Op != "" {
			return true
		}
	}
	return false
}

// Adds returns the names prefixed with "+".
func (s *Spec) Adds() []string {
	var out []string
	for _, t := range s.Tokens {
		if t.Op == "+" {
			out = append(out, t.Name)
		}
	}
	return out
}

// Removes returns the names prefixed with "-".
func (s *Spec) Removes() []string {
	var out []string
	for _, t := range s.Tokens {
		if t.Op == "-" {
			out = append(out, t.Name)
		}
	}
	return out
}

// OnlyNames returns every name when the spec is in bare-name form.
func (s *Spec) OnlyNames() []string {
	out := make([]string, 0, len(s.Tokens))
	for _, t := range s.Tokens {
		out = append(out, t.Name)
	}
	return out
}
