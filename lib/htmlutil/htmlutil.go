package htmlutil

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	if node.Type == html.ElementNode && (node.Data == "script" || node.Data == "style") {
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		// keeps text from adjacent elements from gluing together
		buffer.WriteString(" ")
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s+`)

// PageText flattens the document body into a single line of text with
// runs of whitespace collapsed, roughly what a browser would report as
// the rendered inner text of the page.
func PageText(doc *goquery.Document) string {
	var buffer bytes.Buffer
	for _, node := range doc.Find("body").Nodes {
		getTextRecursive(node, &buffer)
	}
	text := innerWhitespace.ReplaceAllString(buffer.String(), " ")
	return strings.Trim(text, " ")
}
