// Package extract parses fetched HTML into the page title and the set of
// outbound hyperlink targets.
package extract

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Page returns the trimmed <title> text (empty when the document has none)
// and the distinct href values of anchor elements. Targets that are empty or
// begin with a fragment marker are excluded. Targets are returned exactly as
// they appear in markup, in first-seen order, without resolving relative
// URLs; callers sort as needed. Page is a pure function of its input.
func Page(body []byte) (string, []string, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return "", nil, fmt.Errorf("parse html: %w", err)
	}

	var title string
	var foundTitle bool
	seen := make(map[string]struct{})
	var links []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if !foundTitle && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					title = strings.TrimSpace(n.FirstChild.Data)
					foundTitle = true
				}
			case "a":
				for _, attr := range n.Attr {
					if !strings.EqualFold(attr.Key, "href") {
						continue
					}
					href := attr.Val
					if href == "" || strings.HasPrefix(href, "#") {
						continue
					}
					if _, ok := seen[href]; ok {
						continue
					}
					seen[href] = struct{}{}
					links = append(links, href)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return title, links, nil
}
