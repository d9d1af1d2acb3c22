package htmlutil

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

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
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

// CleanText strips non-printable characters and collapses inner whitespace.
func CleanText(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) || c == '\n' || c == '\t' {
			newStr.WriteRune(c)
		}
	}
	out := strings.Trim(newStr.String(), " \t\n")
	return innerWhitespace.ReplaceAllString(out, " ")
}

// AttributeValues returns the non-empty values of the given attributes for every
// element under sel, in document order.
func AttributeValues(sel *goquery.Selection, attrs ...string) []string {
	var values []string
	sel.Find("*").Each(func(_ int, s *goquery.Selection) {
		for _, attr := range attrs {
			value, ok := s.Attr(attr)
			if !ok {
				continue
			}
			value = strings.TrimSpace(value)
			if value == "" {
				continue
			}
			values = append(values, value)
		}
	})
	return values
}

var quoted = regexp.MustCompile(`"([^"]*)"|'([^']*)'`)

// QuotedStrings returns every single or double quoted substring of raw in order,
// for markup too broken to be trusted to the html parser.
func QuotedStrings(raw string) []string {
	var out []string
	for _, groups := range quoted.FindAllStringSubmatch(raw, -1) {
		if groups[1] != "" {
			out = append(out, groups[1])
			continue
		}
		if groups[2] != "" {
			out = append(out, groups[2])
		}
	}
	return out
}
