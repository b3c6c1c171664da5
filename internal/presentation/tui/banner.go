// Package tui holds the terminal presentation of the folio CLI.
package tui

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

var bannerLines = []struct{ text, color string }{
	{"  _____     _ _       ", "#34d399"},
	{" |  ___|__ | (_) ___  ", "#2dd4bf"},
	{" | |_ / _ \\| | |/ _ \\ ", "#22d3ee"},
	{" |  _| (_) | | | (_) |", "#38bdf8"},
	{" |_|  \\___/|_|_|\\___/ ", "#60a5fa"},
}

// PrintBanner writes the folio banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
