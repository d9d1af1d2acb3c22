package henke

import (
	"fmt"
	"henke-client/pkg/htmlutil"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const dataFileSuffix = ".dat"

// FindDataLink finds the generated data file linked from a result page and
// resolves it against base. When the page links more than one, the last wins.
func FindDataLink(body string, base *url.URL) (*url.URL, error) {
	var candidates []string
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err == nil {
		candidates = htmlutil.AttributeValues(doc.Selection, "href", "src")
	}
	link := lastDataLink(candidates)
	if link == "" {
		link = lastDataLink(htmlutil.QuotedStrings(body))
	}
	if link == "" {
		return nil, ErrLinkNotFound
	}

	ref, err := url.Parse(link)
	if err != nil {
		return nil, &ParseError{Text: link, Reason: fmt.Sprintf("invalid data file link: %s", err.Error())}
	}
	return base.ResolveReference(ref), nil
}

func lastDataLink(candidates []string) string {
	for i := len(candidates) - 1; i >= 0; i-- {
		if strings.Contains(candidates[i], dataFileSuffix) {
			return candidates[i]
		}
	}
	return ""
}

// Edge is an absorption edge of an element.
type Edge struct {
	Name string
	// eV
	Energy float64
	// nm
	Wavelength float64
}

// BindingEnergy is the inline result of a binding energy lookup.
type BindingEnergy struct {
	Element string
	// photon energy the decrement was evaluated at, eV
	Energy float64
	// nil if the page did not report it
	Delta *float64
	Beta  *float64
	Edges []Edge
}

// ParseBindingEnergy extracts the refractive index decrement and the absorption
// edges from a binding energy result page.
func ParseBindingEnergy(element string, energy float64, body string) (BindingEnergy, error) {
	fragments := strings.Split(body, "<li>")
	if len(fragments) == 1 {
		return BindingEnergy{}, fmt.Errorf("%w: %s", ErrNotFound, element)
	}

	result := BindingEnergy{
		Element: element,
		Energy:  energy,
	}
	for _, fragment := range fragments[1:] {
		switch {
		case strings.Contains(fragment, "Delta"):
			value, err := listItemValue(fragment)
			if err != nil {
				return BindingEnergy{}, err
			}
			result.Delta = &value
		case strings.Contains(fragment, "Beta"):
			value, err := listItemValue(fragment)
			if err != nil {
				return BindingEnergy{}, err
			}
			result.Beta = &value
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return BindingEnergy{}, &ParseError{Reason: fmt.Sprintf("parse html: %s", err.Error())}
	}
	pre := doc.Find("pre").First()
	if pre.Length() == 0 {
		return BindingEnergy{}, &ParseError{Reason: "no edge energy block"}
	}

	for i, line := range strings.Split(htmlutil.GetText(pre.Nodes[0]), "\n") {
		if len(line) <= 3 {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return BindingEnergy{}, &ParseError{Line: i + 1, Text: line, Reason: "expected an edge name and energy"}
		}
		edgeEnergy, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return BindingEnergy{}, &ParseError{Line: i + 1, Text: line, Reason: "edge energy is not a number"}
		}
		result.Edges = append(result.Edges, Edge{
			Name:       fields[0],
			Energy:     edgeEnergy,
			Wavelength: EnergyToWavelength(edgeEnergy),
		})
	}

	return result, nil
}

var markup = regexp.MustCompile(`<[^>]*>`)

// listItemValue reads the value of a "<li>Name = value" fragment.
func listItemValue(fragment string) (float64, error) {
	line := strings.SplitN(fragment, "\n", 2)[0]
	fields := strings.Fields(htmlutil.CleanText(markup.ReplaceAllString(line, " ")))
	if len(fields) < 3 {
		return 0, &ParseError{Text: line, Reason: "expected a name, separator and value"}
	}
	value, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return 0, &ParseError{Text: line, Reason: "value is not a number"}
	}
	return value, nil
}
