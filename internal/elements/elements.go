// Package elements knows the element symbols the service tabulates (Z = 1 to 92)
// and suggests corrections for symbols it does not recognize.
package elements

import (
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/antzucaro/matchr"
)

var symbols = []string{
	"H", "He", "Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar", "K", "Ca",
	"Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn",
	"Ga", "Ge", "As", "Se", "Br", "Kr", "Rb", "Sr", "Y", "Zr",
	"Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd", "In", "Sn",
	"Sb", "Te", "I", "Xe", "Cs", "Ba", "La", "Ce", "Pr", "Nd",
	"Pm", "Sm", "Eu", "Gd", "Tb", "Dy", "Ho", "Er", "Tm", "Yb",
	"Lu", "Hf", "Ta", "W", "Re", "Os", "Ir", "Pt", "Au", "Hg",
	"Tl", "Pb", "Bi", "Po", "At", "Rn", "Fr", "Ra", "Ac", "Th",
	"Pa", "U",
}

// Symbols returns every known symbol ordered by atomic number.
func Symbols() []string {
	return slices.Clone(symbols)
}

// AtomicNumber returns Z for a symbol, matching is case sensitive like the
// service's formula parser.
func AtomicNumber(symbol string) (int, bool) {
	i := slices.Index(symbols, symbol)
	if i < 0 {
		return 0, false
	}
	return i + 1, true
}

var formulaToken = regexp.MustCompile(`[A-Z][a-z]*`)

// Unknown returns the symbols of a chemical formula (ex. "SiO2") that are not
// elements, in order of appearance.
func Unknown(formula string) []string {
	var out []string
	for _, token := range formulaToken.FindAllString(formula, -1) {
		_, ok := AtomicNumber(token)
		if !ok && !slices.Contains(out, token) {
			out = append(out, token)
		}
	}
	if len(out) == 0 && strings.TrimSpace(formula) != "" && !formulaToken.MatchString(formula) {
		out = append(out, formula)
	}
	return out
}

// minSimilarity is the lowest Jaro-Winkler similarity still worth suggesting.
const minSimilarity = 0.7

type candidate struct {
	symbol     string
	similarity float64
}

// Suggest returns up to `limit` known symbols that look like `symbol`, most
// similar first. Case is ignored when comparing.
func Suggest(symbol string, limit int) []string {
	target := strings.ToLower(strings.TrimSpace(symbol))
	if target == "" || limit <= 0 {
		return nil
	}

	var candidates []candidate
	for _, known := range symbols {
		similarity := matchr.JaroWinkler(target, strings.ToLower(known), false)
		if similarity < minSimilarity {
			continue
		}
		candidates = append(candidates, candidate{symbol: known, similarity: similarity})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].similarity > candidates[j].similarity
	})

	out := []string{}
	for _, c := range candidates {
		if len(out) >= limit {
			break
		}
		out = append(out, c.symbol)
	}
	return out
}
