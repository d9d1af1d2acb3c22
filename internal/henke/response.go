package henke

import (
	"fmt"
)

const (
	labelEnergy     = "Energy (eV)"
	labelWavelength = "Wavelength (nm)"
	labelAngle      = "Inc. angle (deg)"
)

// Meta describes a Response for display, nothing in it is needed to interpret
// the numbers.
type Meta struct {
	Title  string
	XLabel string
	YLabel string
	// one name per table column
	Columns []string
	Axis    Axis
	// hints for plotting
	LogY   bool
	YRange *[2]float64
}

// Response is a parsed data file plus its display metadata.
type Response struct {
	Table Table
	Meta  Meta
}

// InWavelength returns a copy of an energy swept response with its first column
// converted to wavelength.
func (r Response) InWavelength() (Response, error) {
	if r.Meta.Axis != AxisEnergy {
		return Response{}, fmt.Errorf("cannot convert a %s scan to wavelength", r.Meta.Axis)
	}

	meta := r.Meta
	meta.XLabel = labelWavelength
	meta.Columns = append([]string{labelWavelength}, r.Meta.Columns[1:]...)
	return Response{
		Table: r.Table.WithWavelengthAxis(),
		Meta:  meta,
	}, nil
}

func axisLabel(axis Axis) string {
	if axis == AxisAngle {
		return labelAngle
	}
	return labelEnergy
}

// scanCondition renders the fixed quantity of a scan, ex. "at 90.00 deg".
func scanCondition(scan Scan) string {
	if scan.Axis == AxisEnergy {
		return fmt.Sprintf("at %.2f deg", scan.Fixed)
	}
	return fmt.Sprintf("at %.2f eV", scan.Fixed)
}

func filterMeta(req FilterRequest) Meta {
	return Meta{
		Title:   fmt.Sprintf("%s - %.1f nm", req.Formula, req.ThicknessNm()),
		XLabel:  labelEnergy,
		YLabel:  "Transmittivity",
		Columns: []string{labelEnergy, "Transmission"},
		Axis:    AxisEnergy,
		YRange:  &[2]float64{0, 1},
	}
}

func thickMirrorMeta(req ThickMirrorRequest) Meta {
	return Meta{
		Title: fmt.Sprintf(
			"%s (pol %s, sigma %s nm) %s",
			req.Formula, req.Polarization, formatFloat(req.Roughness), scanCondition(req.Scan),
		),
		XLabel:  axisLabel(req.Scan.Axis),
		YLabel:  "Reflectivity",
		Columns: []string{axisLabel(req.Scan.Axis), "Reflectivity"},
		Axis:    req.Scan.Axis,
	}
}

func multilayerMeta(req MultilayerRequest) Meta {
	return Meta{
		Title: fmt.Sprintf(
			"[%s (%.1f nm) | %s (%.1f nm)]x%d on %s %s",
			req.Top, req.TopThickness(),
			req.Bottom, req.BottomThickness(),
			req.Cells, req.Substrate, scanCondition(req.Scan),
		),
		XLabel:  axisLabel(req.Scan.Axis),
		YLabel:  "Reflectivity",
		Columns: []string{axisLabel(req.Scan.Axis), "Reflectivity"},
		Axis:    req.Scan.Axis,
	}
}

func singleLayerMeta(req SingleLayerRequest) Meta {
	return Meta{
		Title: fmt.Sprintf(
			"%s (%.1f nm) on %s %s",
			req.Layer, req.Thickness, req.Substrate, scanCondition(req.Scan),
		),
		XLabel:  axisLabel(req.Scan.Axis),
		YLabel:  "Reflectivity",
		Columns: []string{axisLabel(req.Scan.Axis), "Reflectivity"},
		Axis:    req.Scan.Axis,
	}
}

func refractiveIndexMeta(req RefractiveIndexRequest) Meta {
	return Meta{
		Title:   fmt.Sprintf("Refractive index for %s (1 - Delta - i*Beta)", req.Formula),
		XLabel:  labelEnergy,
		YLabel:  "Delta, Beta",
		Columns: []string{labelEnergy, "Delta", "Beta"},
		Axis:    AxisEnergy,
		LogY:    true,
	}
}

func attenuationLengthMeta(req AttenuationLengthRequest) Meta {
	return Meta{
		Title:   fmt.Sprintf("Attenuation length for %s at %.2f deg", req.Formula, req.angle()),
		XLabel:  labelEnergy,
		YLabel:  "Attenuation length (microns)",
		Columns: []string{labelEnergy, "Attenuation length"},
		Axis:    AxisEnergy,
	}
}
