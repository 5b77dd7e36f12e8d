// Package report renders command results as the plain-text console reports
// the dataset maintainers read.
package report

import (
	"fmt"
	"io"
	"strings"
)

const rule = "=================================================="

// printer writes formatted lines and keeps the first write error
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, a ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, a...)
}

func (p *printer) println(a ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, a...)
}

func (p *printer) heading(title string) {
	p.printf("\n%s:\n%s\n", title, rule)
}

// Banner writes the boxed title used by the config commands
func Banner(w io.Writer, title string) error {
	p := &printer{w: w}
	line := strings.Repeat("═", 59)
	p.printf("%s\n  %s\n%s\n\n", line, title, line)
	return p.err
}
