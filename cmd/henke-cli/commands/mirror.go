package commands

import (
	"henke-client/internal/chart"
	"henke-client/internal/henke"

	"github.com/spf13/cobra"
)

var (
	mirrorEnergy       string
	mirrorAngle        string
	mirrorDensity      float64
	mirrorRoughness    float64
	mirrorPolarization []float64
)

func init() {
	flags := mirrorCmd.Flags()
	flags.StringVar(&mirrorEnergy, "energy", "40:100:100", "Photon energy (eV), a min:max:n sweep or a fixed value.")
	flags.StringVar(&mirrorAngle, "angle", "42", "Grazing angle (deg), a min:max:n sweep or a fixed value.")
	flags.Float64Var(&mirrorDensity, "density", 0, "Density (g/cm^3), defaults to the tabulated density.")
	flags.Float64Var(&mirrorRoughness, "roughness", 0, "Rms roughness (nm).")
	flags.Float64SliceVar(&mirrorPolarization, "pol", []float64{1}, "Polarization, 1 is s, -1 is p and 0 is unpolarized. Repeat to compare.")
	rootCmd.AddCommand(mirrorCmd)
}

var mirrorCmd = &cobra.Command{
	Use:   "mirror <formula>... [--energy <eV|min:max:n>] [--angle <deg|min:max:n>]",
	Short: "Compute the reflectivity of one or more thick mirrors.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scan, err := parseScan(mirrorEnergy, mirrorAngle)
		if err != nil {
			return err
		}

		var reqs []henke.ThickMirrorRequest
		for _, formula := range args {
			for _, pol := range mirrorPolarization {
				reqs = append(reqs, henke.ThickMirrorRequest{
					Formula:      formula,
					Density:      mirrorDensity,
					Roughness:    mirrorRoughness,
					Polarization: henke.Polarization(pol),
					Scan:         scan,
				})
			}
		}

		if len(reqs) == 1 {
			res, err := client.ThickMirror(cmd.Context(), reqs[0])
			if err != nil {
				return withHint(err, args...)
			}
			return emitResponse(cmd, reqs[0].Key(), res)
		}

		results, err := client.ThickMirrors(cmd.Context(), reqs)
		if err != nil {
			return withHint(err, args...)
		}
		return emitBatch(cmd, results, chart.FromMirrors)
	},
}
