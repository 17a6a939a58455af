package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/spwn/syntax"
)

// TreeJSONEncoder writes a parse tree as indented JSON.
type TreeJSONEncoder struct {
	w io.Writer
}

func NewTreeJSONEncoder(w io.Writer) *TreeJSONEncoder {
	return &TreeJSONEncoder{w: w}
}

func (e *TreeJSONEncoder) Encode(node *syntax.Node) error {
	text, err := e.MarshalText(node)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TreeJSONEncoder) MarshalText(node *syntax.Node) ([]byte, error) {
	return json.MarshalIndent(node, "", "  ")
}
