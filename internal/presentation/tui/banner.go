package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	"  _____                 ___                 _",
	" |_   _| _ ___ ___     / _ \\ _ _ __ _ __ __| |___",
	"   | || '_/ -_) -_)   | (_) | '_/ _` / _/ _| / -_)",
	"   |_||_| \\___\\___|    \\___/|_| \\__,_\\__\\__|_\\___|",
}

var bannerColors = []string{"#34d399", "#22d3ee", "#60a5fa", "#818cf8"}

// PrintBanner writes the coloured ASCII banner to w.
// Colours degrade to whatever profile the terminal supports.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()

	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, termenv.String(line).Foreground(p.Color(bannerColors[i])))
	}
	fmt.Fprintln(w)
}

// Highlight renders s in bold with the accent colour.
func Highlight(s string) string {
	p := termenv.ColorProfile()
	return termenv.String(s).Bold().Foreground(p.Color(bannerColors[len(bannerColors)-1])).String()
}
