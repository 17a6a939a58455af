// Package grammar carries the SPWN surface grammar as an EBNF document.
//
// The document describes what package syntax accepts. It is not used to
// drive parsing; it is verified with golang.org/x/exp/ebnf so that the
// description stays well formed.
package grammar

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"

	"golang.org/x/exp/ebnf"
)

// Start is the production every SPWN program derives from.
const Start = "Program"

//go:embed spwn.ebnf
var source []byte

// Source returns the embedded grammar text.
func Source() []byte {
	return bytes.Clone(source)
}

// Load parses the embedded grammar.
func Load() (ebnf.Grammar, error) {
	return Parse("spwn.ebnf", bytes.NewReader(source))
}

func LoadFile(path string) (ebnf.Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()
	return Parse(path, f)
}

func Parse(filename string, r io.Reader) (ebnf.Grammar, error) {
	g, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Verify checks that every production is defined, reachable from start
// and that lexical productions only refer to lexical productions. An
// empty start only checks that the grammar parsed.
func Verify(g ebnf.Grammar, start string) error {
	if start == "" {
		return nil
	}
	return ebnf.Verify(g, start)
}

// Productions lists the production names in sorted order.
func Productions(g ebnf.Grammar) []string {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Tokens collects every literal token used anywhere in the grammar.
func Tokens(g ebnf.Grammar) map[string]bool {
	tokens := make(map[string]bool)
	for _, prod := range g {
		collectTokens(prod.Expr, tokens)
	}
	return tokens
}

func collectTokens(expr ebnf.Expression, tokens map[string]bool) {
	switch x := expr.(type) {
	case ebnf.Alternative:
		for _, e := range x {
			collectTokens(e, tokens)
		}
	case ebnf.Sequence:
		for _, e := range x {
			collectTokens(e, tokens)
		}
	case *ebnf.Group:
		collectTokens(x.Body, tokens)
	case *ebnf.Option:
		collectTokens(x.Body, tokens)
	case *ebnf.Repetition:
		collectTokens(x.Body, tokens)
	case *ebnf.Token:
		tokens[x.String] = true
	}
}

// Errors splits an error returned by ebnf into its individual messages.
// Parse and Verify report an unexported list type.
func Errors(err error) []string {
	if err == nil {
		return nil
	}
	v := reflect.ValueOf(err)
	if v.Kind() != reflect.Slice {
		return []string{err.Error()}
	}
	messages := make([]string, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		messages = append(messages, fmt.Sprint(v.Index(i).Interface()))
	}
	return messages
}
