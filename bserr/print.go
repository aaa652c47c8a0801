package bserr

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// caretColor highlights the error position marker; errColor highlights
// the kind/message line. Color is applied unconditionally here — Print
// decides whether to enable it at all based on the destination.
var (
	errColor   = color.New(color.FgRed, color.Bold)
	caretColor = color.New(color.FgYellow)
)

// Print writes a human-readable rendering of err to w: the message, the
// line:col it occurred at, and an 80-column context line with a caret
// under the offending byte, mirroring bsPrintError/bsErrorHint. Color is
// used only when w is a terminal.
func Print(w io.Writer, err *Error) {
	useColor := false
	if f, ok := w.(*os.File); ok {
		useColor = isatty.IsTerminal(f.Fd())
	}

	msg := fmt.Sprintf("Parser error: %s", err.Error())
	if useColor {
		msg = errColor.Sprint(msg)
	}
	fmt.Fprintln(w, msg)

	if err.Pos == nil {
		return
	}

	text, caret := err.Pos.LineText()
	fmt.Fprintf(w, "\t%s\n", text)

	pointer := make([]byte, len(text))
	for i := range pointer {
		pointer[i] = ' '
	}
	if caret >= 0 && caret < len(pointer) {
		pointer[caret] = '^'
	}
	line := "\t" + string(pointer)
	if useColor {
		line = "\t" + caretColor.Sprint(string(pointer))
	}
	fmt.Fprintln(w, line)
}
