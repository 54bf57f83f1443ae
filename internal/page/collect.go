package page

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	candidateTags = map[atom.Atom]bool{
		atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
		atom.P: true, atom.Span: true, atom.Button: true, atom.A: true,
		atom.Label: true, atom.Td: true, atom.Th: true,
	}
	skippedTags = map[atom.Atom]bool{atom.Script: true, atom.Style: true, atom.Noscript: true}
	formTags    = map[atom.Atom]bool{atom.Input: true, atom.Select: true, atom.Textarea: true}

	numericText = regexp.MustCompile(`^[\d\s\p{Zs}\-+.,%$¥€£]+$`)
)

// Target is an element selected for machine translation.
type Target struct {
	node *html.Node
	// Original is the element's text before any translation.
	Original string
}

// Text returns the element's current text.
func (t Target) Text() string {
	return strings.TrimSpace(textContent(t.node))
}

// Collect returns the translatable elements in document order. The first
// collection of an element records its text in data-original-text; later
// collections return that recorded text. Texts longer than maxLen runes
// are skipped when maxLen > 0.
func (d *Document) Collect(maxLen int) []Target {
	var out []Target
	walk(d.root, func(n *html.Node) bool {
		if n.Type != html.ElementNode || !isCandidate(n) || skipElement(n) {
			return true
		}
		orig, saved := attr(n, OriginalTextAttr)
		if !saved {
			orig = strings.TrimSpace(textContent(n))
		}
		if orig == "" || (maxLen > 0 && utf8.RuneCountInString(orig) > maxLen) {
			return true
		}
		if !saved {
			setAttr(n, OriginalTextAttr, orig)
		}
		out = append(out, Target{node: n, Original: orig})
		return true
	})
	return out
}

// SetText replaces the target element's content with text.
func (d *Document) SetText(t Target, text string) {
	setText(t.node, text)
}

func isCandidate(n *html.Node) bool {
	if _, ok := attr(n, "data-translate"); ok {
		return true
	}
	return candidateTags[n.DataAtom]
}

func skipElement(n *html.Node) bool {
	if skippedTags[n.DataAtom] || hasClass(n, "no-translate") {
		return true
	}
	if _, ok := attr(n, "data-skip-translate"); ok {
		return true
	}
	if findFirst(n, func(c *html.Node) bool { return c != n && formTags[c.DataAtom] }) != nil {
		return true
	}
	return numericText.MatchString(strings.TrimSpace(textContent(n)))
}
