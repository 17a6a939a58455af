package format

import (
	"encoding"

	"github.com/dhamidi/spwn/ast"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(program ast.Program) error
}
