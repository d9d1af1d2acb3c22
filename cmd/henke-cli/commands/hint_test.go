package commands

import (
	"errors"
	"fmt"
	"henke-client/internal/henke"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithHint(t *testing.T) {
	notFound := fmt.Errorf("%w: Auu", henke.ErrNotFound)
	err := withHint(notFound, "Auu")
	require.True(t, errors.Is(err, henke.ErrNotFound))
	require.ErrorContains(t, err, `"Auu" is not an element symbol, did you mean Au`)

	// known symbols get no hint
	err = withHint(henke.ErrLinkNotFound, "SiO2")
	require.Equal(t, henke.ErrLinkNotFound, err)

	// only lookup failures are hinted
	transport := &henke.TransportError{Op: "POST", URL: "x", StatusCode: 500}
	require.Equal(t, error(transport), withHint(transport, "Auu"))
}
