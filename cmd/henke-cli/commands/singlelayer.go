package commands

import (
	"henke-client/internal/henke"

	"github.com/spf13/cobra"
)

var (
	singleLayerReq    henke.SingleLayerRequest
	singleLayerPol    float64
	singleLayerEnergy string
	singleLayerAngle  string
)

func init() {
	flags := singleLayerCmd.Flags()
	flags.StringVar(&singleLayerReq.Layer, "layer", "Au", "Layer formula.")
	flags.StringVar(&singleLayerReq.Substrate, "substrate", "SiO2", "Substrate formula.")
	flags.Float64Var(&singleLayerReq.LayerDensity, "layer-density", 0, "Layer density (g/cm^3).")
	flags.Float64Var(&singleLayerReq.SubstrateDensity, "substrate-density", 0, "Substrate density (g/cm^3).")
	flags.Float64Var(&singleLayerReq.Thickness, "thickness", 30, "Layer thickness (nm).")
	flags.Float64Var(&singleLayerReq.LayerRoughness, "layer-roughness", 0, "Layer surface roughness (nm).")
	flags.Float64Var(&singleLayerReq.SubstrateRoughness, "substrate-roughness", 0, "Substrate roughness (nm).")
	flags.Float64Var(&singleLayerPol, "pol", 1, "Polarization, 1 is s, -1 is p and 0 is unpolarized.")
	flags.StringVar(&singleLayerEnergy, "energy", "55", "Photon energy (eV), a min:max:n sweep or a fixed value.")
	flags.StringVar(&singleLayerAngle, "angle", "40:75:150", "Grazing angle (deg), a min:max:n sweep or a fixed value.")
	rootCmd.AddCommand(singleLayerCmd)
}

var singleLayerCmd = &cobra.Command{
	Use:   "singlelayer [--layer Au --substrate SiO2 --thickness 30]",
	Short: "Compute the reflectivity of a single layer on a substrate.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		scan, err := parseScan(singleLayerEnergy, singleLayerAngle)
		if err != nil {
			return err
		}
		req := singleLayerReq
		req.Polarization = henke.Polarization(singleLayerPol)
		req.Scan = scan

		res, err := client.SingleLayer(cmd.Context(), req)
		if err != nil {
			return withHint(err, req.Layer, req.Substrate)
		}
		return emitResponse(cmd, "singlelayer", res)
	},
}
