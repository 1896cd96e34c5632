package httpx

import (
	"bytes"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/cases"
)

type listingEntry struct {
	name string
	dir  bool
	link bool
}

// href is the escaped relative link; directories keep a trailing slash.
func (e listingEntry) href() string {
	h := strings.ReplaceAll(url.PathEscape(e.name), ":", "%3A")
	if e.dir {
		h += "/"
	}
	return h
}

// label marks directories with "/" and symlinks with "@".
func (e listingEntry) label() string {
	switch {
	case e.link:
		return e.name + "@"
	case e.dir:
		return e.name + "/"
	}
	return e.name
}

// renderListing builds the "Directory listing for" page. Entries are
// ordered case-insensitively.
func renderListing(dir string, entries []listingEntry) ([]byte, error) {
	fold := cases.Fold()
	keys := make(map[string]string, len(entries))
	for _, e := range entries {
		keys[e.name] = fold.String(e.name)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		ki, kj := keys[entries[i].name], keys[entries[j].name]
		if ki != kj {
			return ki < kj
		}
		return entries[i].name < entries[j].name
	})

	title := "Directory listing for " + dir
	list := element(atom.Ul)
	for _, e := range entries {
		a := element(atom.A, html.Attribute{Key: "href", Val: e.href()})
		a.AppendChild(text(e.label()))
		li := element(atom.Li)
		li.AppendChild(a)
		list.AppendChild(li)
		list.AppendChild(text("\n"))
	}
	return renderPage(title,
		withText(element(atom.H1), title),
		element(atom.Hr),
		list,
		element(atom.Hr),
	)
}

// renderError builds the error page sent with every non-2xx response.
func renderError(code int, message string) ([]byte, error) {
	return renderPage("Error response",
		withText(element(atom.H1), "Error response"),
		withText(element(atom.P), "Error code: "+strconv.Itoa(code)),
		withText(element(atom.P), "Message: "+message+"."),
		withText(element(atom.P), "Error code explanation: "+strconv.Itoa(code)+" - "+http.StatusText(code)+"."),
	)
}

func renderPage(title string, body ...*html.Node) ([]byte, error) {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(text("\n"))

	root := element(atom.Html, html.Attribute{Key: "lang", Val: "en"})
	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, html.Attribute{Key: "charset", Val: "utf-8"}))
	head.AppendChild(withText(element(atom.Title), title))
	root.AppendChild(head)
	root.AppendChild(text("\n"))

	b := element(atom.Body)
	for _, n := range body {
		b.AppendChild(n)
		b.AppendChild(text("\n"))
	}
	root.AppendChild(b)
	doc.AppendChild(root)
	doc.AppendChild(text("\n"))

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func withText(n *html.Node, s string) *html.Node {
	n.AppendChild(text(s))
	return n
}
