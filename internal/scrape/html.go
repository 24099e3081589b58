package scrape

import (
	"strings"

	"golang.org/x/net/html"
)

// pageMetadata holds the raw values pulled out of a parsed document,
// before truncation and URL resolution.
type pageMetadata struct {
	title       string
	description string
	favicon     string

	ogTitle       string
	twitterTitle  string
	docTitle      string
	ogDesc        string
	twitterDesc   string
	metaDesc      string
	iconHref      string
	shortcutHref  string
	appleTouchRef string
}

// extractMetadata walks the document collecting the tags each chain
// prefers, then settles the chains: og > twitter > plain for text,
// icon > shortcut icon > apple-touch-icon for the favicon.
func extractMetadata(doc *html.Node) pageMetadata {
	var m pageMetadata
	walk(doc, &m)

	m.title = firstNonEmpty(m.ogTitle, m.twitterTitle, m.docTitle)
	m.description = firstNonEmpty(m.ogDesc, m.twitterDesc, m.metaDesc)
	m.favicon = firstNonEmpty(m.iconHref, m.shortcutHref, m.appleTouchRef)
	return m
}

func walk(n *html.Node, m *pageMetadata) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "meta":
			readMeta(n, m)
		case "link":
			readLink(n, m)
		case "title":
			if m.docTitle == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				m.docTitle = strings.TrimSpace(n.FirstChild.Data)
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, m)
	}
}

func readMeta(n *html.Node, m *pageMetadata) {
	var name, property, content string
	for _, a := range n.Attr {
		switch strings.ToLower(a.Key) {
		case "name":
			name = strings.ToLower(a.Val)
		case "property":
			property = strings.ToLower(a.Val)
		case "content":
			content = strings.TrimSpace(a.Val)
		}
	}
	if content == "" {
		return
	}

	switch {
	case property == "og:title" && m.ogTitle == "":
		m.ogTitle = content
	case property == "og:description" && m.ogDesc == "":
		m.ogDesc = content
	case name == "twitter:title" && m.twitterTitle == "":
		m.twitterTitle = content
	case name == "twitter:description" && m.twitterDesc == "":
		m.twitterDesc = content
	case name == "description" && m.metaDesc == "":
		m.metaDesc = content
	}
}

func readLink(n *html.Node, m *pageMetadata) {
	var rel, href string
	for _, a := range n.Attr {
		switch strings.ToLower(a.Key) {
		case "rel":
			rel = strings.ToLower(strings.TrimSpace(a.Val))
		case "href":
			href = strings.TrimSpace(a.Val)
		}
	}
	if href == "" {
		return
	}

	switch rel {
	case "icon":
		if m.iconHref == "" {
			m.iconHref = href
		}
	case "shortcut icon":
		if m.shortcutHref == "" {
			m.shortcutHref = href
		}
	case "apple-touch-icon":
		if m.appleTouchRef == "" {
			m.appleTouchRef = href
		}
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
