// Package markdown renders the small markdown subset produced by the
// assistant as styled terminal text.
//
// Unlike a typical markdown renderer, source line breaks inside a paragraph
// are kept: summaries are laid out line by line and should read the same in
// the terminal as they do in the source.
package markdown

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var (
	parserOnce sync.Once
	parser     goldmark.Markdown
)

func markdownParser() goldmark.Markdown {
	parserOnce.Do(func() {
		parser = goldmark.New()
	})
	return parser
}

var (
	strongStyle  = lipgloss.NewStyle().Bold(true)
	emStyle      = lipgloss.NewStyle().Italic(true)
	codeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("180"))
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("141"))
	bulletStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("141"))
)

// Render converts markdown into terminal text wrapped at width columns.
// A width of zero or less disables wrapping.
func Render(input string, width int) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	source := []byte(input)
	doc := markdownParser().Parser().Parse(text.NewReader(source))
	r := &renderer{source: source, width: width}
	_ = ast.Walk(doc, r.walk)
	return strings.TrimRight(r.out.String(), "\n")
}

type listState struct {
	ordered bool
	counter int
	tight   bool
}

type renderer struct {
	source []byte
	width  int

	out      strings.Builder
	inline   strings.Builder
	trailing int

	bold   int
	italic int

	lists         []listState
	indent        string
	pendingBullet string
}

func (r *renderer) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch n := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		if entering {
			r.inline.Reset()
			return ast.WalkContinue, nil
		}
		r.flushBlock(lipgloss.Style{}, false)
		if !r.inTightList() {
			r.ensureBlankLine()
		}
	case *ast.Heading:
		if entering {
			r.inline.Reset()
			return ast.WalkContinue, nil
		}
		r.flushBlock(headingStyle, true)
		r.ensureBlankLine()
	case *ast.List:
		if entering {
			r.ensureNewline()
			r.lists = append(r.lists, listState{ordered: n.IsOrdered(), counter: n.Start, tight: n.IsTight})
			return ast.WalkContinue, nil
		}
		r.lists = r.lists[:len(r.lists)-1]
		if len(r.lists) == 0 {
			r.ensureBlankLine()
		}
	case *ast.ListItem:
		if entering {
			r.pendingBullet = r.indent + r.nextBullet()
			r.indent += "  "
			return ast.WalkContinue, nil
		}
		r.indent = r.indent[:len(r.indent)-2]
		r.ensureNewline()
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		if entering {
			r.writeCodeLines(node)
		}
		return ast.WalkSkipChildren, nil
	case *ast.Text:
		if entering {
			r.inline.WriteString(r.styled(string(n.Segment.Value(r.source))))
			if n.SoftLineBreak() || n.HardLineBreak() {
				r.inline.WriteString("\n")
			}
		}
	case *ast.String:
		if entering {
			r.inline.WriteString(r.styled(string(n.Value)))
		}
	case *ast.Emphasis:
		delta := 1
		if !entering {
			delta = -1
		}
		if n.Level >= 2 {
			r.bold += delta
		} else {
			r.italic += delta
		}
	case *ast.CodeSpan:
		if entering {
			var b strings.Builder
			for child := n.FirstChild(); child != nil; child = child.NextSibling() {
				if t, ok := child.(*ast.Text); ok {
					b.Write(t.Segment.Value(r.source))
				}
			}
			r.inline.WriteString(codeStyle.Render(b.String()))
		}
		return ast.WalkSkipChildren, nil
	case *ast.AutoLink:
		if entering {
			r.inline.WriteString(r.styled(string(n.URL(r.source))))
		}
		return ast.WalkSkipChildren, nil
	}
	return ast.WalkContinue, nil
}

func (r *renderer) inTightList() bool {
	return len(r.lists) > 0 && r.lists[len(r.lists)-1].tight
}

func (r *renderer) nextBullet() string {
	top := &r.lists[len(r.lists)-1]
	if !top.ordered {
		return bulletStyle.Render("-") + " "
	}
	label := strconv.Itoa(top.counter) + "."
	top.counter++
	return bulletStyle.Render(label) + " "
}

func (r *renderer) styled(s string) string {
	if s == "" {
		return ""
	}
	switch {
	case r.bold > 0 && r.italic > 0:
		return strongStyle.Copy().Italic(true).Render(s)
	case r.bold > 0:
		return strongStyle.Render(s)
	case r.italic > 0:
		return emStyle.Render(s)
	default:
		return s
	}
}

// flushBlock writes the buffered inline content one source line at a time,
// wrapping each to the space left after the current indent.
func (r *renderer) flushBlock(style lipgloss.Style, styled bool) {
	content := strings.TrimRight(r.inline.String(), "\n")
	r.inline.Reset()
	if content == "" {
		return
	}
	avail := r.width - len(r.indent)
	if r.width > 0 && avail < 10 {
		avail = 10
	}
	var b strings.Builder
	first := true
	for _, line := range strings.Split(content, "\n") {
		if styled {
			line = style.Render(line)
		}
		if r.width > 0 {
			line = wordwrap.String(line, avail)
		}
		for _, wrapped := range strings.Split(line, "\n") {
			if !first {
				b.WriteString("\n")
			}
			b.WriteString(r.linePrefix(first))
			b.WriteString(wrapped)
			first = false
		}
	}
	r.write(b.String())
	r.ensureNewline()
}

func (r *renderer) linePrefix(first bool) string {
	if first && r.pendingBullet != "" {
		bullet := r.pendingBullet
		r.pendingBullet = ""
		return bullet
	}
	return r.indent
}

func (r *renderer) writeCodeLines(node ast.Node) {
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		line := strings.TrimRight(string(seg.Value(r.source)), "\n")
		r.write(r.indent + "  " + codeStyle.Render(line) + "\n")
	}
	r.ensureBlankLine()
}

func (r *renderer) write(s string) {
	if s == "" {
		return
	}
	r.out.WriteString(s)
	n := len(s) - len(strings.TrimRight(s, "\n"))
	if n == len(s) {
		r.trailing += n
	} else {
		r.trailing = n
	}
}

func (r *renderer) ensureNewline() {
	if r.out.Len() > 0 && r.trailing < 1 {
		r.write("\n")
	}
}

func (r *renderer) ensureBlankLine() {
	if r.out.Len() == 0 {
		return
	}
	for r.trailing < 2 {
		r.write("\n")
	}
}
