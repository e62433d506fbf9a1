// Package render writes tutoring output to a terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Options configures a Renderer.
type Options struct {
	// Raw disables styling and markdown rendering.
	Raw bool

	// Width is the word-wrap column for markdown. Default: 80.
	Width int

	// Style is a glamour style name ("auto", "dark", "light", "notty").
	// Default: "auto".
	Style string
}

// Renderer prints headings, markdown bodies and question lists.
type Renderer struct {
	w   io.Writer
	raw bool
	md  *glamour.TermRenderer
}

// New creates a Renderer writing to w.
func New(w io.Writer, opts Options) (*Renderer, error) {
	r := &Renderer{w: w, raw: opts.Raw}
	if opts.Raw {
		return r, nil
	}

	width := opts.Width
	if width <= 0 {
		width = 80
	}
	styleOpt := glamour.WithAutoStyle()
	if opts.Style != "" && opts.Style != "auto" {
		styleOpt = glamour.WithStandardStyle(opts.Style)
	}

	md, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return nil, fmt.Errorf("create markdown renderer: %w", err)
	}
	r.md = md
	return r, nil
}

// Heading prints a section title.
func (r *Renderer) Heading(title string) {
	if r.raw {
		fmt.Fprintf(r.w, "%s\n", strings.ToUpper(title))
		return
	}
	fmt.Fprintln(r.w, Section.Render(title))
}

// Markdown prints a generated body. Rendering failures fall back to the
// plain text.
func (r *Renderer) Markdown(text string) {
	if r.raw || r.md == nil {
		fmt.Fprintln(r.w, strings.TrimRight(text, "\n"))
		return
	}
	out, err := r.md.Render(text)
	if err != nil {
		fmt.Fprintln(r.w, text)
		return
	}
	fmt.Fprint(r.w, out)
}

// Questions prints a numbered list. An empty list prints a placeholder.
func (r *Renderer) Questions(questions []string) {
	if len(questions) == 0 {
		r.dim("(no practice questions found)")
		return
	}
	for i, q := range questions {
		line := fmt.Sprintf("%d. %s", i+1, q)
		if !r.raw {
			line = Question.Render(line)
		}
		fmt.Fprintln(r.w, line)
	}
}

// Field prints a "label: value" line.
func (r *Renderer) Field(label, value string) {
	if r.raw {
		fmt.Fprintf(r.w, "%s: %s\n", label, value)
		return
	}
	fmt.Fprintf(r.w, "%s %s\n", Label.Render(label+":"), Value.Render(value))
}

// Error prints an error message.
func (r *Renderer) Error(err error) {
	msg := "error: " + err.Error()
	if !r.raw {
		msg = Failure.Render(msg)
	}
	fmt.Fprintln(r.w, msg)
}

func (r *Renderer) dim(s string) {
	if !r.raw {
		s = Label.Render(s)
	}
	fmt.Fprintln(r.w, s)
}
