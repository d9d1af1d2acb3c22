package commands

import (
	"henke-client/internal/henke"

	"github.com/spf13/cobra"
)

var (
	attenEnergy  string
	attenDensity float64
	attenAngle   float64
)

func init() {
	attenCmd.Flags().StringVar(&attenEnergy, "energy", "30:130:100", "Energy sweep (eV) as min:max:n.")
	attenCmd.Flags().Float64Var(&attenDensity, "density", 0, "Density (g/cm^3), defaults to the tabulated density.")
	attenCmd.Flags().Float64Var(&attenAngle, "angle", 90, "Grazing angle (deg) the length is projected on.")
	rootCmd.AddCommand(attenCmd)
}

var attenCmd = &cobra.Command{
	Use:   "atten <formula> [--energy <min:max:n>]",
	Short: "Tabulate the attenuation length of a material.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sweep, err := parseSweep(attenEnergy)
		if err != nil {
			return err
		}
		res, err := client.AttenuationLength(cmd.Context(), henke.AttenuationLengthRequest{
			Formula: args[0],
			Density: attenDensity,
			Energy:  sweep,
			Angle:   attenAngle,
		})
		if err != nil {
			return withHint(err, args[0])
		}
		return emitResponse(cmd, args[0], res)
	},
}
