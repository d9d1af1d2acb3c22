package henke

import (
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestRequestForms(t *testing.T) {
	testCases := []struct {
		name     string
		form     url.Values
		expected url.Values
	}{
		{
			name: "binding energy",
			form: BindingEnergyRequest{Element: "Fe", Energy: 100}.Form(),
			expected: url.Values{
				"Element": {"Fe"},
				"Energy":  {"100"},
			},
		},
		{
			name: "filter",
			form: FilterRequest{
				Formula:   "Al",
				Thickness: 0.2,
				Energy:    Sweep{Min: 20, Max: 220, Points: 200},
			}.Form(),
			expected: url.Values{
				"Material":  {"Enter Formula"},
				"Formula":   {"Al"},
				"Density":   {"-1"},
				"Thickness": {"0.2"},
				"Scan":      {"Energy"},
				"Min":       {"20"},
				"Max":       {"220"},
				"Npts":      {"200"},
				"Plot":      {"Linear"},
				"Output":    {"Plot"},
			},
		},
		{
			name: "thick mirror",
			form: ThickMirrorRequest{
				Formula:      "Au",
				Density:      19.3,
				Polarization: PolarizationP,
				Scan:         EnergyScan(Sweep{Min: 40, Max: 100, Points: 100}, 42),
				Plot:         PlotLog,
			}.Form(),
			expected: url.Values{
				"Formula": {"Au"},
				"Density": {"19.3"},
				"Sigma":   {"0"},
				"Pol":     {"-1"},
				"Scan":    {"Energy"},
				"Min":     {"40"},
				"Max":     {"100"},
				"Npts":    {"100"},
				"temp":    {"Angle (deg)"},
				"Fixed":   {"42"},
				"Plot":    {"Log"},
				"Output":  {"Plot"},
			},
		},
		{
			name: "multilayer",
			form: MultilayerRequest{
				Top:          "Si",
				Bottom:       "Mo",
				Substrate:    "SiO2",
				Period:       6.9,
				Gamma:        0.4,
				Cells:        40,
				Polarization: PolarizationS,
				Scan:         AngleScan(Sweep{Min: 10, Max: 80, Points: 200}, 95),
			}.Form(),
			expected: url.Values{
				"Layer2":    {"Si"},
				"Density2":  {"-1"},
				"Layer1":    {"Mo"},
				"Density1":  {"-1"},
				"Thick":     {"6.9"},
				"Gamma":     {"0.4"},
				"Sigma":     {"0"},
				"Ncells":    {"40"},
				"Substrate": {"SiO2"},
				"Sdensity":  {"-1"},
				"Pol":       {"1"},
				"Scan":      {"Angle"},
				"Min":       {"10"},
				"Max":       {"80"},
				"Npts":      {"200"},
				"temp":      {"Energy (eV)"},
				"Fixed":     {"95"},
				"Plot":      {"Linear"},
				"Output":    {"Plot"},
			},
		},
		{
			name: "single layer",
			form: SingleLayerRequest{
				Layer:        "Au",
				Substrate:    "SiO2",
				Thickness:    30,
				Polarization: PolarizationUnpolarized,
				Scan:         EnergyScan(Sweep{Min: 85, Max: 100, Points: 100}, 90),
			}.Form(),
			expected: url.Values{
				"Layer":     {"Au"},
				"Ldensity":  {"-1"},
				"Thick":     {"30"},
				"Sigma1":    {"0"},
				"Substrate": {"SiO2"},
				"Sdensity":  {"-1"},
				"Sigma2":    {"0"},
				"Pol":       {"0"},
				"Scan":      {"Energy"},
				"Min":       {"85"},
				"Max":       {"100"},
				"Npts":      {"100"},
				"temp":      {"Angle (deg)"},
				"Fixed":     {"90"},
				"Plot":      {"Linear"},
				"Output":    {"Plot"},
			},
		},
		{
			name: "refractive index",
			form: RefractiveIndexRequest{
				Formula: "Fe",
				Energy:  Sweep{Min: 30, Max: 130, Points: 100},
			}.Form(),
			expected: url.Values{
				"Material": {"Enter Formula"},
				"Formula":  {"Fe"},
				"Density":  {"-1"},
				"Scan":     {"Energy"},
				"Min":      {"30"},
				"Max":      {"130"},
				"Npts":     {"100"},
				"Output":   {"Text File"},
			},
		},
		{
			name: "attenuation length",
			form: AttenuationLengthRequest{
				Formula: "Al",
				Energy:  Sweep{Min: 30, Max: 130, Points: 100},
			}.Form(),
			expected: url.Values{
				"Material": {"Enter Formula"},
				"Formula":  {"Al"},
				"Density":  {"-1"},
				"Scan":     {"Energy"},
				"Min":      {"30"},
				"Max":      {"130"},
				"Npts":     {"100"},
				"temp":     {"Angle (deg)"},
				"Fixed":    {"90"},
				"Plot":     {"Linear"},
				"Output":   {"Plot"},
			},
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			diff := cmp.Diff(test.expected, test.form)
			if diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestFilterPayloadEncoding(t *testing.T) {
	payload := FilterRequest{
		Formula:   "Al",
		Thickness: 0.2,
		Energy:    Sweep{Min: 20, Max: 220, Points: 200},
	}.Form().Encode()

	fields := strings.Split(payload, "&")
	require.Contains(t, fields, "Min=20")
	require.Contains(t, fields, "Max=220")
	require.Contains(t, fields, "Npts=200")
	require.Contains(t, fields, "Scan=Energy")
	require.Contains(t, fields, "Material=Enter+Formula")
}

func TestScanRouting(t *testing.T) {
	energy := EnergyScan(Sweep{Min: 85, Max: 100, Points: 100}, 42.5)
	form := url.Values{}
	energy.fill(form)
	require.Equal(t, "Energy", form.Get("Scan"))
	require.Equal(t, "85", form.Get("Min"))
	require.Equal(t, "100", form.Get("Max"))
	require.Equal(t, "100", form.Get("Npts"))
	require.Equal(t, "42.5", form.Get("Fixed"))
	angle, ok := energy.FixedAngle()
	require.True(t, ok)
	require.Equal(t, 42.5, angle)
	_, ok = energy.FixedEnergy()
	require.False(t, ok)

	angleScan := AngleScan(Sweep{Min: 40, Max: 75, Points: 150}, 55)
	form = url.Values{}
	angleScan.fill(form)
	require.Equal(t, "Angle", form.Get("Scan"))
	require.Equal(t, "40", form.Get("Min"))
	require.Equal(t, "75", form.Get("Max"))
	require.Equal(t, "150", form.Get("Npts"))
	require.Equal(t, "55", form.Get("Fixed"))
	require.Equal(t, "Energy (eV)", form.Get("temp"))
}

func TestScanValidate(t *testing.T) {
	require.NoError(t, EnergyScan(Sweep{Min: 1, Max: 2, Points: 1}, 90).Validate())
	require.Error(t, Scan{Axis: "Wavelength", Sweep: Sweep{Min: 1, Max: 2, Points: 3}}.Validate())
	require.Error(t, AngleScan(Sweep{Min: 1, Max: 2, Points: 0}, 90).Validate())
}

func TestRequestKeys(t *testing.T) {
	require.Equal(t, "Al_200.0", FilterRequest{Formula: "Al", Thickness: 0.2}.Key())
	require.Equal(t, "Zr_780.0", FilterRequest{Formula: "Zr", Thickness: 0.78}.Key())
	require.Equal(t, "Au_-1_0.5", ThickMirrorRequest{Formula: "Au", Polarization: PolarizationP, Roughness: 0.5}.Key())

	multilayer := MultilayerRequest{Period: 6.9, Gamma: 0.4}
	require.InDelta(t, 2.76, multilayer.BottomThickness(), 1e-12)
	require.InDelta(t, 4.14, multilayer.TopThickness(), 1e-12)
}
