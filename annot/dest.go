package annot

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// destLexer tokenizes the head of a destination token. Version must come
// before Int so "1.0" is not split.
var destLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Vendor", Pattern: `[A-Z]+`},
	{Name: "Version", Pattern: `[0-9]+\.[0-9]+`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[-+()]`},
})

// destGrammar is <VENDOR><VERSION>[+|-<VERSION>](<TYPECODE>).
type destGrammar struct {
	Vendor string     `parser:"@Vendor"`
	First  string     `parser:"@Version"`
	Range  *destRange `parser:"@@?"`
	Type   int        `parser:"\"(\" @Int \")\""`
}

type destRange struct {
	Latest bool   `parser:"  @\"+\""`
	Last   string `parser:"| \"-\" @Version"`
}

var destParser = participle.MustBuild[destGrammar](
	participle.Lexer(destLexer),
)

var deprecatedSuffix = regexp.MustCompile(`^(.*) is deprecated \(([^)]+)\)$`)

// ParseDest parses one destination token such as
// "OF1.2+(25) is deprecated (use Set-Field)".
func ParseDest(token string) (Dest, error) {
	d := Dest{Raw: token}

	head := token
	if m := deprecatedSuffix.FindStringSubmatch(token); m != nil {
		head = m[1]
		d.Deprecation = m[2]
	}

	g, err := destParser.ParseString("", head)
	if err != nil {
		return Dest{}, fmt.Errorf("%q: syntax error in destination", token)
	}

	d.Vendor = g.Vendor
	d.First = g.First
	d.Type = g.Type
	if g.Range != nil {
		d.Latest = g.Range.Latest
		d.Last = g.Range.Last
	}
	return d, nil
}

// splitDests splits a destination list at commas outside parentheses, so
// deprecation notes may contain commas.
func splitDests(list string) []string {
	var (
		out   []string
		depth int
		start int
	)
	for i, r := range list {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				out = append(out, strings.TrimSpace(list[start:i]))
				start = i + 1
			}
		}
	}
	return append(out, strings.TrimSpace(list[start:]))
}

// ParseDests parses a comma-separated destination list.
func ParseDests(list string) ([]Dest, error) {
	tokens := splitDests(list)
	dests := make([]Dest, 0, len(tokens))
	for _, tok := range tokens {
		d, err := ParseDest(tok)
		if err != nil {
			return nil, err
		}
		dests = append(dests, d)
	}
	return dests, nil
}
