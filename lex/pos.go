package lex

import (
	"fmt"
	"strconv"

	"github.com/wowczarek/barser/chartable"
)

// Pos pinpoints a byte offset in a Lexer's buffer together with its
// line/column and enough of the surrounding buffer to render context,
// playing the role go-tony/token/pos.go's Pos plays for its tokenizer.
type Pos struct {
	buf       []byte
	offset    int
	line      int
	col       int
	lineStart int
}

func (p Pos) Line() int { return p.line }
func (p Pos) Col() int  { return p.col }

// String renders a short "...context..." snippet plus offset/line/col,
// for inline error messages.
func (p Pos) String() string {
	start := p.offset - 5
	if start < 0 {
		start = 0
	}
	end := p.offset + 5
	if end > len(p.buf) {
		end = len(p.buf)
	}
	sample := strconv.Quote(string(p.buf[start:end]))
	sample = sample[1 : len(sample)-1]
	return fmt.Sprintf("offset %d (line=%d, col=%d): `...%s...`", p.offset, p.line, p.col, sample)
}

// LineText returns the text of the line p is on, bounded to
// chartable.ErrorDumpLineWidth bytes, and the caret column within that
// returned text — sliding the window right when p.col would otherwise
// fall outside it, mirroring bsErrorHint's context rendering.
func (p Pos) LineText() (string, int) {
	width := chartable.ErrorDumpLineWidth
	half := width / 2

	end := p.lineStart
	for end < len(p.buf) && !chartable.Is(p.buf[end], chartable.Nln) {
		end++
	}
	line := p.buf[p.lineStart:end]

	if p.col <= half || len(line) <= width {
		if len(line) > width {
			line = line[:width]
		}
		return string(line), p.col
	}

	start := p.col - half
	if start+width > len(line) {
		start = len(line) - width
	}
	if start < 0 {
		start = 0
	}
	sub := line[start:]
	if len(sub) > width {
		sub = sub[:width]
	}
	return string(sub), p.col - start
}
