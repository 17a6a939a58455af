package ast

import "strings"

// StrContent removes every double quote from s. It does not process
// escapes, so an escaped quote inside the literal is dropped as well.
func StrContent(s string) string {
	return strings.ReplaceAll(s, `"`, "")
}
