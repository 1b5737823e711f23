package importer

import (
	"io"
	"strings"

	"github.com/nikbrunner/nt/internal/model"
	"golang.org/x/net/html"
)

// LinkIcon is the glyph given to items imported from <A> entries.
const LinkIcon = "🔗"

// ParseHTMLOutline parses a Netscape-style nested outline (as written by the
// exporter or a browser bookmark export) into items with fresh IDs.
// H3 headings and A links both become items; sibling order follows the
// document and is numbered from 1 per parent. Headings without an icon get
// defaultIcon.
func ParseHTMLOutline(r io.Reader, defaultIcon string) ([]model.Item, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var items []model.Item
	nextOrder := make(map[string]int)

	// Track current parent stack for hierarchy, "" = root
	var parentStack []string
	var pendingID string // heading waiting to be pushed on next DL

	currentParent := func() string {
		if len(parentStack) == 0 {
			return ""
		}
		return parentStack[len(parentStack)-1]
	}

	add := func(title, icon string) string {
		parentID := currentParent()
		nextOrder[parentID]++
		it := model.Item{
			ID:       model.GenerateUUID(),
			ParentID: parentID,
			Title:    title,
			Icon:     icon,
			Order:    nextOrder[parentID],
		}
		items = append(items, it)
		return it.ID
	}

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h1", "title":
				return // Document heading, not an item

			case "h3":
				name := getTextContent(n)
				if name == "" {
					return
				}
				icon := getAttr(n, "data-icon")
				if icon == "" {
					icon = defaultIcon
				}
				pendingID = add(name, icon)
				return // Don't recurse into H3

			case "a":
				title := getTextContent(n)
				if title == "" {
					title = getAttr(n, "href")
				}
				if title == "" {
					return
				}
				add(title, LinkIcon)
				pendingID = ""
				return // Don't recurse into A

			case "dl":
				// Definition list - marks heading contents
				pushed := false
				if pendingID != "" {
					parentStack = append(parentStack, pendingID)
					pendingID = ""
					pushed = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushed {
					parentStack = parentStack[:len(parentStack)-1]
				}
				// A heading that closed without its own DL stays a leaf
				pendingID = ""
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return items, nil
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
