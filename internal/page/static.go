package page

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Lookuper resolves static catalog keys for one language.
// i18n.Localizer satisfies it.
type Lookuper interface {
	Language() string
	Lookup(key string) (string, bool)
}

// StaticReport counts what ApplyStatic changed.
type StaticReport struct {
	Texts        int
	Placeholders int
	Alts         int
	Title        bool
}

// ApplyStatic applies the static catalog to the document: text for
// data-i18n elements (placeholder for inputs that have one), placeholder
// for data-i18n-placeholder, alt for data-i18n-alt, the <title> from
// page.title, the top info bar labels and the <html lang> attribute.
// Keys missing from the catalog leave the element untouched.
func (d *Document) ApplyStatic(l Lookuper) StaticReport {
	var r StaticReport
	var contactTexts []*html.Node
	var socialText *html.Node

	walk(d.root, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		if key, ok := attr(n, "data-i18n"); ok {
			if msg, found := l.Lookup(key); found {
				if _, hasPlaceholder := attr(n, "placeholder"); n.DataAtom == atom.Input && hasPlaceholder {
					setAttr(n, "placeholder", msg)
					r.Placeholders++
				} else {
					setText(n, msg)
					r.Texts++
				}
			}
		}
		if key, ok := attr(n, "data-i18n-placeholder"); ok {
			if msg, found := l.Lookup(key); found {
				setAttr(n, "placeholder", msg)
				r.Placeholders++
			}
		}
		if key, ok := attr(n, "data-i18n-alt"); ok {
			if msg, found := l.Lookup(key); found {
				setAttr(n, "alt", msg)
				r.Alts++
			}
		}
		if hasClass(n, "contact-text") && hasAncestorClass(n, "contact-info") {
			contactTexts = append(contactTexts, n)
		}
		if socialText == nil && hasClass(n, "social-text") {
			socialText = n
		}
		return true
	})

	setFromKey := func(n *html.Node, key string) {
		if msg, ok := l.Lookup(key); ok {
			setText(n, msg)
			r.Texts++
		}
	}
	if len(contactTexts) > 0 {
		setFromKey(contactTexts[0], "contact.service_hotline")
	}
	if len(contactTexts) > 1 {
		setFromKey(contactTexts[1], "contact.email")
	}
	if socialText != nil {
		setFromKey(socialText, "social.follow_us")
	}

	if title, ok := l.Lookup("page.title"); ok {
		if n := findFirst(d.root, func(n *html.Node) bool { return n.DataAtom == atom.Title }); n != nil {
			setText(n, title)
			r.Title = true
		}
	}
	if n := findFirst(d.root, func(n *html.Node) bool { return n.DataAtom == atom.Html }); n != nil {
		setAttr(n, "lang", HTMLLang(l.Language()))
	}
	return r
}

// HTMLLang maps a UI language to the <html lang> value.
func HTMLLang(lang string) string {
	if strings.HasPrefix(lang, "zh") {
		return "zh-CN"
	}
	return "en-US"
}

func hasAncestorClass(n *html.Node, class string) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && hasClass(p, class) {
			return true
		}
	}
	return false
}
