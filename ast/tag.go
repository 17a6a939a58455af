package ast

import (
	"fmt"
	"strings"
)

// Tag is an ordered list of properties attached with #[...]. Names may
// repeat.
type Tag []Property

type Property struct {
	Name string
	Args []Argument
}

// Get returns the arguments of the first property called name.
func (t Tag) Get(name string) ([]Argument, bool) {
	for _, p := range t {
		if p.Name == name {
			return p.Args, true
		}
	}
	return nil, false
}

// Desc returns the description given by a desc property. A string first
// argument yields its content; any other first argument yields a debug
// rendering tagged with its kind, such as Number(5).
func (t Tag) Desc() (string, bool) {
	args, ok := t.Get("desc")
	if !ok || len(args) == 0 {
		return "", false
	}
	values := args[0].Value.Values
	if len(values) == 0 {
		return "", false
	}
	if s, ok := values[0].Value.(Str); ok {
		return string(s), true
	}
	return debugString(values[0].Value), true
}

func debugString(v ValueLiteral) string {
	kind := strings.TrimPrefix(fmt.Sprintf("%T", v), "ast.")
	return fmt.Sprintf("%s(%+v)", kind, v)
}
