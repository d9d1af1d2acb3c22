// Package henke is a client for the CXRO X-ray interactions web service hosted at
// henke.lbl.gov. Each endpoint mode has a typed request, every call submits the
// request form, scrapes the result page and, for tabulated results, downloads
// and parses the generated data file.
package henke

import (
	"strconv"
)

// HcEVNanometer is Planck's constant times the speed of light in eV*nm, it
// converts photon energy to wavelength.
const HcEVNanometer = 1239.84

const DefaultBaseUrl = "https://henke.lbl.gov"

const (
	endpointBindingEnergy     = "/cgi-bin/pert_cgi.pl"
	endpointFilter            = "/cgi-bin/filter.pl"
	endpointThickMirror       = "/cgi-bin/mirror.pl"
	endpointMultilayer        = "/cgi-bin/multi.pl"
	endpointSingleLayer       = "/cgi-bin/laymir.pl"
	endpointRefractiveIndex   = "/cgi-bin/getdb.pl"
	endpointAttenuationLength = "/cgi-bin/atten.pl"
)

// EnergyToWavelength converts a photon energy in eV to a wavelength in nm.
func EnergyToWavelength(energy float64) float64 {
	return HcEVNanometer / energy
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatDensity sends -1 for unset densities, the service then uses its
// tabulated value.
func formatDensity(v float64) string {
	if v <= 0 {
		return "-1"
	}
	return formatFloat(v)
}
