package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the application banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{" _                 _          _   _   _                 ", "#818cf8"},
		{"| | ___   ___ __ _| |___  ___| |_| |_(_)_ __   __ _ ___ ", "#a78bfa"},
		{"| |/ _ \\ / __/ _` | / __|/ _ \\ __| __| | '_ \\ / _` / __|", "#c084fc"},
		{"| | (_) | (_| (_| | \\__ \\  __/ |_| |_| | | | | (_| \\__ \\", "#e879f9"},
		{"|_|\\___/ \\___\\__,_|_|___/\\___|\\__|\\__|_|_| |_|\\__, |___/", "#f472b6"},
		{"                                               |___/     ", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
