package display

import (
	"fmt"
	"io"

	"github.com/backmassage/brightmask/internal/term"
)

const banner = ` _          _       _     _                       _
| |__  _ __(_) __ _| |__ | |_ _ __ ___   __ _ ___| | __
| '_ \| '__| |/ _` + "`" + ` | '_ \| __| '_ ` + "`" + ` _ \ / _` + "`" + ` / __| |/ /
| |_) | |  | | (_| | | | | |_| | | | | | (_| \__ \   <
|_.__/|_|  |_|\__, |_| |_|\__|_| |_| |_|\__,_|___/_|\_\
              |___/
`

// PrintBanner writes the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner(w io.Writer) {
	if term.Magenta != "" {
		fmt.Fprint(w, term.Magenta)
	}
	fmt.Fprint(w, banner)
	if term.Magenta != "" {
		fmt.Fprintln(w, term.NC)
	}
}
