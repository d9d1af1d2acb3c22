package henke

import (
	"fmt"
	"net/url"
	"strconv"
)

// PlotScale selects the plot the service renders next to the data file, it
// does not change the data itself.
type PlotScale string

const (
	PlotLinear PlotScale = "Linear"
	PlotLog    PlotScale = "Log"
)

func (p PlotScale) String() string {
	if p == "" {
		return string(PlotLinear)
	}
	return string(p)
}

// Polarization is +1 for s, -1 for p and 0 for unpolarized light, values in
// between mix the two.
type Polarization float64

const (
	PolarizationS           Polarization = 1
	PolarizationP           Polarization = -1
	PolarizationUnpolarized Polarization = 0
)

func (p Polarization) String() string {
	return formatFloat(float64(p))
}

// BindingEnergyRequest looks up the absorption edges of an element and its
// refractive index decrement at Energy (eV).
type BindingEnergyRequest struct {
	Element string
	Energy  float64
}

func (r BindingEnergyRequest) Form() url.Values {
	form := url.Values{}
	form.Set("Element", r.Element)
	form.Set("Energy", formatFloat(r.Energy))
	return form
}

// FilterRequest computes the transmission of a free standing filter.
type FilterRequest struct {
	Formula string
	// g/cm^3, zero means the tabulated density
	Density float64
	// microns
	Thickness float64
	Energy    Sweep
	Plot      PlotScale
}

func (r FilterRequest) Form() url.Values {
	form := url.Values{}
	form.Set("Material", "Enter Formula")
	form.Set("Formula", r.Formula)
	form.Set("Density", formatDensity(r.Density))
	form.Set("Thickness", formatFloat(r.Thickness))
	form.Set("Scan", string(AxisEnergy))
	r.Energy.fill(form)
	form.Set("Plot", r.Plot.String())
	form.Set("Output", "Plot")
	return form
}

// ThicknessNm is the filter thickness in nm.
func (r FilterRequest) ThicknessNm() float64 {
	return 1e3 * r.Thickness
}

// Key identifies the request within a batch, ex. "Al_200.0".
func (r FilterRequest) Key() string {
	return fmt.Sprintf("%s_%.1f", r.Formula, r.ThicknessNm())
}

// ThickMirrorRequest computes the reflectivity of a bulk mirror.
type ThickMirrorRequest struct {
	Formula string
	Density float64
	// rms roughness, nm
	Roughness    float64
	Polarization Polarization
	Scan         Scan
	Plot         PlotScale
}

func (r ThickMirrorRequest) Form() url.Values {
	form := url.Values{}
	form.Set("Formula", r.Formula)
	form.Set("Density", formatDensity(r.Density))
	form.Set("Sigma", formatFloat(r.Roughness))
	form.Set("Pol", r.Polarization.String())
	r.Scan.fill(form)
	form.Set("Plot", r.Plot.String())
	form.Set("Output", "Plot")
	return form
}

// Key identifies the request within a batch, ex. "Au_1_0".
func (r ThickMirrorRequest) Key() string {
	return fmt.Sprintf("%s_%s_%s", r.Formula, r.Polarization, formatFloat(r.Roughness))
}

// MultilayerRequest computes the reflectivity of a periodic bilayer stack.
type MultilayerRequest struct {
	Top              string
	Bottom           string
	Substrate        string
	TopDensity       float64
	BottomDensity    float64
	SubstrateDensity float64
	// bilayer period, nm
	Period float64
	// bottom layer thickness / period
	Gamma float64
	// interface roughness, nm
	Roughness    float64
	Cells        int
	Polarization Polarization
	Scan         Scan
	Plot         PlotScale
}

func (r MultilayerRequest) Form() url.Values {
	form := url.Values{}
	form.Set("Layer2", r.Top)
	form.Set("Density2", formatDensity(r.TopDensity))
	form.Set("Layer1", r.Bottom)
	form.Set("Density1", formatDensity(r.BottomDensity))
	form.Set("Thick", formatFloat(r.Period))
	form.Set("Gamma", formatFloat(r.Gamma))
	form.Set("Sigma", formatFloat(r.Roughness))
	form.Set("Ncells", strconv.Itoa(r.Cells))
	form.Set("Substrate", r.Substrate)
	form.Set("Sdensity", formatDensity(r.SubstrateDensity))
	form.Set("Pol", r.Polarization.String())
	r.Scan.fill(form)
	form.Set("Plot", r.Plot.String())
	form.Set("Output", "Plot")
	return form
}

// BottomThickness is the bottom layer thickness in nm.
func (r MultilayerRequest) BottomThickness() float64 {
	return r.Gamma * r.Period
}

// TopThickness is the top layer thickness in nm.
func (r MultilayerRequest) TopThickness() float64 {
	return r.Period - r.BottomThickness()
}

// SingleLayerRequest computes the reflectivity of one layer on a substrate.
type SingleLayerRequest struct {
	Layer            string
	Substrate        string
	LayerDensity     float64
	SubstrateDensity float64
	// nm
	Thickness          float64
	LayerRoughness     float64
	SubstrateRoughness float64
	Polarization       Polarization
	Scan               Scan
	Plot               PlotScale
}

func (r SingleLayerRequest) Form() url.Values {
	form := url.Values{}
	form.Set("Layer", r.Layer)
	form.Set("Ldensity", formatDensity(r.LayerDensity))
	form.Set("Thick", formatFloat(r.Thickness))
	form.Set("Sigma1", formatFloat(r.LayerRoughness))
	form.Set("Substrate", r.Substrate)
	form.Set("Sdensity", formatDensity(r.SubstrateDensity))
	form.Set("Sigma2", formatFloat(r.SubstrateRoughness))
	form.Set("Pol", r.Polarization.String())
	r.Scan.fill(form)
	form.Set("Plot", r.Plot.String())
	form.Set("Output", "Plot")
	return form
}

// RefractiveIndexRequest tabulates delta and beta of a material.
type RefractiveIndexRequest struct {
	Formula string
	Density float64
	Energy  Sweep
}

func (r RefractiveIndexRequest) Form() url.Values {
	form := url.Values{}
	form.Set("Material", "Enter Formula")
	form.Set("Formula", r.Formula)
	form.Set("Density", formatDensity(r.Density))
	form.Set("Scan", string(AxisEnergy))
	r.Energy.fill(form)
	form.Set("Output", "Text File")
	return form
}

// AttenuationLengthRequest tabulates the 1/e attenuation length of a material.
type AttenuationLengthRequest struct {
	Formula string
	Density float64
	Energy  Sweep
	// grazing angle in degrees, zero means normal incidence (90)
	Angle float64
	Plot  PlotScale
}

func (r AttenuationLengthRequest) angle() float64 {
	if r.Angle == 0 {
		return 90
	}
	return r.Angle
}

func (r AttenuationLengthRequest) Form() url.Values {
	form := url.Values{}
	form.Set("Material", "Enter Formula")
	form.Set("Formula", r.Formula)
	form.Set("Density", formatDensity(r.Density))
	EnergyScan(r.Energy, r.angle()).fill(form)
	form.Set("Plot", r.Plot.String())
	form.Set("Output", "Plot")
	return form
}
