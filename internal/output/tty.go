package output

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IsTTY reports whether w is a terminal. Buffers and pipes are not.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// StylesFor returns colored styles when w is a terminal and plain styles
// otherwise.
func StylesFor(w io.Writer) *Styles {
	if IsTTY(w) {
		return GetStyles()
	}
	return PlainStyles()
}
