package commands

import (
	"fmt"
	"henke-client/internal/henke"

	"github.com/spf13/cobra"
)

var (
	multilayerReq    henke.MultilayerRequest
	multilayerPol    float64
	multilayerEnergy string
	multilayerAngle  string
)

func init() {
	flags := multilayerCmd.Flags()
	flags.StringVar(&multilayerReq.Top, "top", "Si", "Top layer formula.")
	flags.StringVar(&multilayerReq.Bottom, "bottom", "Mo", "Bottom layer formula.")
	flags.StringVar(&multilayerReq.Substrate, "substrate", "SiO2", "Substrate formula.")
	flags.Float64Var(&multilayerReq.TopDensity, "top-density", 0, "Top layer density (g/cm^3).")
	flags.Float64Var(&multilayerReq.BottomDensity, "bottom-density", 0, "Bottom layer density (g/cm^3).")
	flags.Float64Var(&multilayerReq.SubstrateDensity, "substrate-density", 0, "Substrate density (g/cm^3).")
	flags.Float64Var(&multilayerReq.Period, "period", 6.9, "Bilayer period (nm).")
	flags.Float64Var(&multilayerReq.Gamma, "gamma", 0.4, "Bottom layer thickness as a fraction of the period.")
	flags.Float64Var(&multilayerReq.Roughness, "roughness", 0, "Interface roughness (nm).")
	flags.IntVar(&multilayerReq.Cells, "cells", 40, "Number of bilayers.")
	flags.Float64Var(&multilayerPol, "pol", 1, "Polarization, 1 is s, -1 is p and 0 is unpolarized.")
	flags.StringVar(&multilayerEnergy, "energy", "95", "Photon energy (eV), a min:max:n sweep or a fixed value.")
	flags.StringVar(&multilayerAngle, "angle", "10:80:200", "Grazing angle (deg), a min:max:n sweep or a fixed value.")
	rootCmd.AddCommand(multilayerCmd)
}

var multilayerCmd = &cobra.Command{
	Use:   "multilayer [--top Si --bottom Mo --substrate SiO2 --period 6.9 --gamma 0.4 --cells 40]",
	Short: "Compute the reflectivity of a periodic multilayer mirror.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		scan, err := parseScan(multilayerEnergy, multilayerAngle)
		if err != nil {
			return err
		}
		if multilayerReq.Gamma <= 0 || multilayerReq.Gamma >= 1 {
			return fmt.Errorf("--gamma must be between 0 and 1, got %v", multilayerReq.Gamma)
		}
		req := multilayerReq
		req.Polarization = henke.Polarization(multilayerPol)
		req.Scan = scan

		res, err := client.Multilayer(cmd.Context(), req)
		if err != nil {
			return withHint(err, req.Top, req.Bottom, req.Substrate)
		}
		return emitResponse(cmd, "multilayer", res)
	},
}
