package format

import (
	"github.com/dhamidi/spwn/syntax"
)

func (p *SpwnPrettyPrinter) emitCommentsBeforeLine(line int) {
	for p.commentIndex < len(p.comments) {
		comment := p.comments[p.commentIndex]
		if comment.Span.Start.Line >= line {
			break
		}
		p.emitComment(comment)
	}
}

func (p *SpwnPrettyPrinter) emitRemainingComments() {
	for p.commentIndex < len(p.comments) {
		p.emitComment(p.comments[p.commentIndex])
	}
}

// emitComment writes comment on its own line, keeping one blank line if the
// source had any gap before it.
func (p *SpwnPrettyPrinter) emitComment(comment syntax.Token) {
	if !p.atLineStart {
		p.newline()
	}
	if comment.Span.Start.Line > p.lastLine+1 && p.lastLine > 0 {
		p.newline()
	}
	p.write(comment.Literal)
	p.newline()
	p.lastLine = comment.Span.End.Line
	p.commentIndex++
}

// emitTrailingLineComment appends a line comment that sat after code on the
// given source line.
func (p *SpwnPrettyPrinter) emitTrailingLineComment(line int) {
	if p.commentIndex >= len(p.comments) {
		return
	}
	comment := p.comments[p.commentIndex]
	if comment.Kind == syntax.TokenLineComment && comment.Span.Start.Line == line {
		p.write(" ")
		p.write(comment.Literal)
		p.lastLine = comment.Span.End.Line
		p.commentIndex++
	}
}
