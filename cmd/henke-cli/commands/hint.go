package commands

import (
	"errors"
	"fmt"
	"henke-client/internal/elements"
	"henke-client/internal/henke"
	"strings"
)

// withHint appends "did you mean" suggestions to errors caused by formulas the
// service did not recognize.
func withHint(err error, formulas ...string) error {
	if !errors.Is(err, henke.ErrNotFound) && !errors.Is(err, henke.ErrLinkNotFound) {
		return err
	}

	var hints []string
	for _, formula := range formulas {
		for _, unknown := range elements.Unknown(formula) {
			suggestions := elements.Suggest(unknown, 3)
			if len(suggestions) == 0 {
				hints = append(hints, fmt.Sprintf("%q is not an element symbol", unknown))
				continue
			}
			hints = append(hints, fmt.Sprintf(
				"%q is not an element symbol, did you mean %s?",
				unknown, strings.Join(suggestions, ", "),
			))
		}
	}
	if len(hints) == 0 {
		return err
	}
	return fmt.Errorf("%w\n%s", err, strings.Join(hints, "\n"))
}
