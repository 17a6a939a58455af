package syntax

import "encoding/json"

type jsonNode struct {
	Rule     string      `json:"rule"`
	Span     *jsonSpan   `json:"span,omitempty"`
	Text     string      `json:"text,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

type jsonSpan struct {
	Start jsonPosition `json:"start"`
	End   jsonPosition `json:"end"`
}

type jsonPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.toJSON())
}

func (n *Node) toJSON() *jsonNode {
	jn := &jsonNode{
		Rule: n.Rule.String(),
	}

	if n.Span.Start.Line != 0 || n.Span.End.Line != 0 {
		jn.Span = &jsonSpan{
			Start: jsonPosition{Line: n.Span.Start.Line, Column: n.Span.Start.Column},
			End:   jsonPosition{Line: n.Span.End.Line, Column: n.Span.End.Column},
		}
	}

	// Interior nodes are reconstructed from their children.
	if len(n.Children) == 0 {
		jn.Text = n.Text
	}

	if len(n.Children) > 0 {
		jn.Children = make([]*jsonNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = child.toJSON()
		}
	}

	return jn
}
