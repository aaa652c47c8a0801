// Package lex implements Barser's scanner state machine: the
// BS_SKIP_WHITESPACE/BS_GET_TOKEN/BS_GET_QUOTED/BS_SKIP_COMMENT/
// BS_SKIP_MLCOMMENT states from barser.c's bsScan, ported switch for
// switch. It knows nothing about node trees or arity rules — it only
// turns a byte buffer into a stream of Events for bparse to consume.
package lex

import (
	"github.com/wowczarek/barser/bserr"
	"github.com/wowczarek/barser/chartable"
)

// EventKind is the event a scan step can raise, mirroring barser.c's
// parser-event enum (the subset the scanner itself raises).
type EventKind uint8

const (
	EOF EventKind = iota
	Token
	EndVal
	Block
	EndBlock
	Array
	EndArray
)

// Event is one unit handed to bparse: either a token (quoted or bare)
// or a structural delimiter, with the position it started at.
type Event struct {
	Kind   EventKind
	Text   []byte
	Quoted bool
	Pos    Pos
}

type scanState uint8

const (
	stSkipWhitespace scanState = iota
	stGetToken
	stGetQuoted
	stSkipComment
	stSkipMLComment
)

const eof = -1

// Lexer scans one buffer. It holds no heap-allocated token cache of its
// own — bparse owns that — only the scan cursor and the saved position
// used to report errors at the start of an unterminated quote, comment,
// or bracket rather than at the EOF that discovered it.
type Lexer struct {
	buf []byte
	pos int
	c   int
	prev int

	line      int
	col       int
	lineStart int

	savedOffset    int
	savedLine      int
	savedCol       int
	savedLineStart int

	state scanState
	qchar byte
}

// New returns a Lexer scanning buf from its first byte.
func New(buf []byte) *Lexer {
	l := &Lexer{buf: buf, line: 1, prev: eof}
	if len(buf) == 0 {
		l.c = eof
	} else {
		l.c = int(buf[0])
	}
	l.state = stSkipWhitespace
	return l
}

func (l *Lexer) snapshot() Pos {
	return Pos{buf: l.buf, offset: l.pos, line: l.line, col: l.col, lineStart: l.lineStart}
}

// SavedPos returns the position last recorded by savestate — the start
// of the quoted string, comment, or bracket currently being scanned.
func (l *Lexer) SavedPos() Pos {
	return Pos{buf: l.buf, offset: l.savedOffset, line: l.savedLine, col: l.savedCol, lineStart: l.savedLineStart}
}

func (l *Lexer) savestate() {
	l.savedOffset = l.pos
	l.savedLine = l.line
	l.savedCol = l.col
	l.savedLineStart = l.lineStart
}

// forward consumes one byte and returns the new current byte, or eof.
// CR-LF (or LF-CR) pairs advance the line counter only once, matching
// bsForward's "two different newline characters" trick.
func (l *Lexer) forward() int {
	if l.pos >= len(l.buf) {
		l.c = eof
		return eof
	}
	l.prev = l.c
	l.pos++
	if l.pos >= len(l.buf) {
		l.c = eof
		return eof
	}
	nc := int(l.buf[l.pos])
	if chartable.Is(byte(nc), chartable.Nln) {
		if l.prev < 0 || !chartable.Is(byte(l.prev), chartable.Nln) || nc == l.prev {
			l.lineStart = l.pos + 1
			l.line++
			l.col = 0
		}
	} else {
		l.col++
	}
	l.c = nc
	return nc
}

func (l *Lexer) peek() int {
	if l.pos+1 >= len(l.buf) {
		return eof
	}
	return int(l.buf[l.pos+1])
}

// Next scans forward until it can raise an Event, matching bsScan: the
// state-specific cases either return directly, transition state and
// loop immediately ("goto again"), or fall into the control-character
// dispatch below them once no event has been raised yet.
func (l *Lexer) Next() (Event, error) {
	for {
		switch l.state {

		case stSkipWhitespace:
			for l.c != eof && chartable.Is(byte(l.c), chartable.Spc|chartable.Nln) {
				l.forward()
			}
			if l.c == int(chartable.MLCommentOut) {
				if l.peek() == int(chartable.MLCommentIn) {
					l.savestate()
					l.forward()
					l.state = stSkipMLComment
					continue
				}
				if l.peek() == int(chartable.MLCommentOut) {
					l.forward()
					l.state = stSkipComment
					continue
				}
			}
			l.state = stGetToken

		case stGetToken:
			start := l.pos
			for l.c != eof && chartable.Is(byte(l.c), chartable.Tok|chartable.Ext) {
				l.forward()
			}
			if l.pos > start {
				text := append([]byte{}, l.buf[start:l.pos]...)
				ev := Event{Kind: Token, Text: text, Pos: Pos{buf: l.buf, offset: start, line: l.line, col: l.col - (l.pos - start), lineStart: l.lineStart}}
				l.state = stSkipWhitespace
				return ev, nil
			}

		case stGetQuoted:
			var out []byte
			for l.c != int(l.qchar) {
				captured := false
				var outByte byte
				if l.c == int(chartable.Escape) {
					l.forward()
					if l.c != eof {
						if ctrl, ok := chartable.Unescape(byte(l.c)); ok {
							outByte = ctrl
							captured = true
						}
					}
				}
				if captured {
					out = append(out, outByte)
				} else {
					if l.c == eof {
						return Event{}, bserr.New(bserr.EOF, l.SavedPos(), "unterminated quoted string")
					}
					out = append(out, byte(l.c))
				}
				l.forward()
			}
			l.forward()
			l.state = stSkipWhitespace
			return Event{Kind: Token, Text: out, Quoted: true, Pos: l.SavedPos()}, nil

		case stSkipComment:
			for l.c != eof && !chartable.Is(byte(l.c), chartable.Nln) {
				l.forward()
			}
			for l.c != eof && chartable.Is(byte(l.c), chartable.Nln) {
				l.forward()
			}
			l.state = stSkipWhitespace

		case stSkipMLComment:
			for l.c != int(chartable.MLCommentOut) && l.c != eof {
				l.forward()
			}
			if l.c == int(chartable.MLCommentOut) {
				if l.prev == int(chartable.MLCommentIn) {
					l.state = stSkipWhitespace
				}
				l.forward()
			} else if l.c == eof {
				return Event{}, bserr.New(bserr.EOF, l.SavedPos(), "unterminated multiline comment")
			}
		}

		// control-character dispatch: runs after every state transition
		// above that did not already return or continue, exactly as
		// bsScan's post-switch "if parseEvent == BS_NOEVENT" block does.
		if l.c == eof {
			return Event{Kind: EOF, Pos: l.snapshot()}, nil
		}
		switch byte(l.c) {
		case chartable.Quote, chartable.Quote1:
			l.qchar = byte(l.c)
			l.savestate()
			l.forward()
			l.state = stGetQuoted
			continue

		case chartable.EndVal, chartable.EndVal1:
			pos := l.snapshot()
			l.forward()
			l.state = stSkipWhitespace
			return Event{Kind: EndVal, Pos: pos}, nil

		case chartable.StartBlock:
			pos := l.snapshot()
			l.savestate()
			l.forward()
			l.state = stSkipWhitespace
			return Event{Kind: Block, Pos: pos}, nil

		case chartable.EndBlock:
			pos := l.snapshot()
			l.forward()
			l.state = stSkipWhitespace
			return Event{Kind: EndBlock, Pos: pos}, nil

		case chartable.StartArray:
			pos := l.snapshot()
			l.savestate()
			l.forward()
			l.state = stSkipWhitespace
			return Event{Kind: Array, Pos: pos}, nil

		case chartable.EndArray:
			pos := l.snapshot()
			l.forward()
			l.state = stSkipWhitespace
			return Event{Kind: EndArray, Pos: pos}, nil

		case chartable.Comment:
			l.forward()
			l.state = stSkipComment
			continue

		default:
			if chartable.Is(byte(l.c), chartable.Ill) {
				return Event{}, bserr.New(bserr.Unexpected, l.snapshot(), quoteByte(byte(l.c)))
			}
		}
	}
}

func quoteByte(b byte) string {
	return "'" + string(b) + "'"
}
