package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Scena ASCII art banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []termenv.Style{
		termenv.String("   ____                       ").Foreground(p.Color("#818cf8")),
		termenv.String("  / ___|  ___ ___ _ __   __ _ ").Foreground(p.Color("#a78bfa")),
		termenv.String("  \\___ \\ / __/ _ \\ '_ \\ / _` |").Foreground(p.Color("#c084fc")),
		termenv.String("   ___) | (_|  __/ | | | (_| |").Foreground(p.Color("#e879f9")),
		termenv.String("  |____/ \\___\\___|_| |_|\\__,_|").Foreground(p.Color("#f472b6")),
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
	if version != "" {
		fmt.Fprintln(w, termenv.String("  v"+version).Faint())
	}
	fmt.Fprintln(w)
}
