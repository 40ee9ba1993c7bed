package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"pathmark/internal/store"
)

const columnGap = "  "

// Printer writes command results to a single writer.
type Printer struct {
	out    io.Writer
	styles Styles
}

// NewPrinter returns a Printer whose styling follows out's capabilities:
// a pipe or buffer gets plain text.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out, styles: NewStyles(lipgloss.NewRenderer(out))}
}

// Styles returns the styles bound to the printer's writer.
func (p *Printer) Styles() Styles {
	return p.styles
}

// Path prints a bare path, suitable for command substitution.
func (p *Printer) Path(path string) {
	fmt.Fprintln(p.out, path)
}

// Bookmarks prints one bookmark per line with names left-justified to the
// widest name. long adds the time each bookmark was saved.
func (p *Printer) Bookmarks(bookmarks []store.Bookmark, long bool) {
	if len(bookmarks) == 0 {
		fmt.Fprintln(p.out, p.styles.Muted.Render("No saved paths."))
		return
	}

	width := 0
	for _, b := range bookmarks {
		if w := lipgloss.Width(b.Name); w > width {
			width = w
		}
	}

	var sb strings.Builder
	for _, b := range bookmarks {
		sb.WriteString(p.styles.Name.Render(b.Name))
		sb.WriteString(strings.Repeat(" ", width-lipgloss.Width(b.Name)))
		sb.WriteString(columnGap)
		sb.WriteString(b.Path)
		if long {
			sb.WriteString(columnGap)
			sb.WriteString(p.styles.Muted.Render(savedAt(b.CreatedAt)))
		}
		sb.WriteByte('\n')
	}
	io.WriteString(p.out, sb.String())
}

// Saved confirms an insert.
func (p *Printer) Saved(name, path string) {
	fmt.Fprintf(p.out, "%s %s -> %s\n", p.styles.Success.Render("Saved"), p.styles.Name.Render("'"+name+"'"), path)
}

// DuplicateName reports a name collision. It is a warning, not a failure.
func (p *Printer) DuplicateName(name string) {
	fmt.Fprintln(p.out, p.styles.Warning.Render(fmt.Sprintf("Name '%s' is already used.", name)))
}

// Removed reports the outcome of a remove.
func (p *Printer) Removed(name string, removed bool) {
	if removed {
		fmt.Fprintln(p.out, p.styles.Success.Render("Entry removed."))
		return
	}
	fmt.Fprintln(p.out, p.styles.Muted.Render(fmt.Sprintf("No entry named '%s'.", name)))
}

// Error prints msg in the error style.
func (p *Printer) Error(msg string) {
	fmt.Fprintln(p.out, p.styles.Error.Render(msg))
}

// Raw writes s unchanged.
func (p *Printer) Raw(s string) {
	io.WriteString(p.out, s)
}

func savedAt(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
