package henke

import (
	"fmt"
	"net/url"
	"strconv"
)

// Axis is the independent variable swept by a request.
type Axis string

const (
	AxisEnergy Axis = "Energy"
	AxisAngle  Axis = "Angle"
)

// Sweep is an inclusive range sampled at Points points.
type Sweep struct {
	Min    float64
	Max    float64
	Points int
}

func (s Sweep) String() string {
	return fmt.Sprintf("%s:%s:%d", formatFloat(s.Min), formatFloat(s.Max), s.Points)
}

func (s Sweep) validate() error {
	if s.Points <= 0 {
		return fmt.Errorf("sweep %s: point count must be positive", s)
	}
	return nil
}

func (s Sweep) fill(form url.Values) {
	form.Set("Min", formatFloat(s.Min))
	form.Set("Max", formatFloat(s.Max))
	form.Set("Npts", strconv.Itoa(s.Points))
}

// Scan sweeps one axis while holding the other one at Fixed. Energies are in eV,
// angles are grazing angles in degrees (measured from the surface, not the normal).
type Scan struct {
	Axis  Axis
	Sweep Sweep
	Fixed float64
}

// EnergyScan sweeps the photon energy at a fixed grazing angle.
func EnergyScan(sweep Sweep, angle float64) Scan {
	return Scan{Axis: AxisEnergy, Sweep: sweep, Fixed: angle}
}

// AngleScan sweeps the grazing angle at a fixed photon energy.
func AngleScan(sweep Sweep, energy float64) Scan {
	return Scan{Axis: AxisAngle, Sweep: sweep, Fixed: energy}
}

func (s Scan) Validate() error {
	switch s.Axis {
	case AxisEnergy, AxisAngle:
	default:
		return fmt.Errorf("unknown scan axis %q", s.Axis)
	}
	return s.Sweep.validate()
}

// FixedEnergy returns the energy held fixed by an angle scan.
func (s Scan) FixedEnergy() (float64, bool) {
	return s.Fixed, s.Axis == AxisAngle
}

// FixedAngle returns the angle held fixed by an energy scan.
func (s Scan) FixedAngle() (float64, bool) {
	return s.Fixed, s.Axis == AxisEnergy
}

func (s Scan) fill(form url.Values) {
	form.Set("Scan", string(s.Axis))
	s.Sweep.fill(form)
	if s.Axis == AxisEnergy {
		form.Set("temp", "Angle (deg)")
	} else {
		form.Set("temp", "Energy (eV)")
	}
	form.Set("Fixed", formatFloat(s.Fixed))
}
