package commands

import (
	"errors"
	"fmt"
	"henke-client/internal/henke"
	"strconv"
	"strings"
)

func isSweep(value string) bool {
	return strings.Contains(value, ":")
}

// parseSweep parses "min:max:n".
func parseSweep(value string) (henke.Sweep, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return henke.Sweep{}, fmt.Errorf("invalid sweep %q, expected min:max:n", value)
	}
	minimum, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return henke.Sweep{}, fmt.Errorf("invalid sweep minimum %q", parts[0])
	}
	maximum, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return henke.Sweep{}, fmt.Errorf("invalid sweep maximum %q", parts[1])
	}
	points, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil || points <= 0 {
		return henke.Sweep{}, fmt.Errorf("invalid sweep point count %q", parts[2])
	}
	return henke.Sweep{Min: minimum, Max: maximum, Points: points}, nil
}

func parseFixed(name, value string) (float64, error) {
	out, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid --%s %q, expected a number", name, value)
	}
	return out, nil
}

// parseScan builds a scan out of the --energy and --angle flags, exactly one of
// them must be a sweep.
func parseScan(energy, angle string) (henke.Scan, error) {
	switch {
	case isSweep(energy) && isSweep(angle):
		return henke.Scan{}, errors.New("only one of --energy and --angle can be a min:max:n sweep")
	case isSweep(energy):
		sweep, err := parseSweep(energy)
		if err != nil {
			return henke.Scan{}, err
		}
		fixed, err := parseFixed("angle", angle)
		if err != nil {
			return henke.Scan{}, err
		}
		return henke.EnergyScan(sweep, fixed), nil
	case isSweep(angle):
		sweep, err := parseSweep(angle)
		if err != nil {
			return henke.Scan{}, err
		}
		fixed, err := parseFixed("energy", energy)
		if err != nil {
			return henke.Scan{}, err
		}
		return henke.AngleScan(sweep, fixed), nil
	}
	return henke.Scan{}, errors.New("one of --energy and --angle must be a min:max:n sweep")
}

// parseFilterArg parses "formula:thickness" with the thickness in microns.
func parseFilterArg(arg string) (formula string, thickness float64, err error) {
	idx := strings.LastIndex(arg, ":")
	if idx <= 0 {
		return "", 0, fmt.Errorf("invalid filter %q, expected formula:thickness", arg)
	}
	thickness, err = strconv.ParseFloat(arg[idx+1:], 64)
	if err != nil || thickness <= 0 {
		return "", 0, fmt.Errorf("invalid filter thickness in %q", arg)
	}
	return arg[:idx], thickness, nil
}
