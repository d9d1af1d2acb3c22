package commands

import (
	"henke-client/internal/henke"

	"github.com/spf13/cobra"
)

var (
	indexEnergy  string
	indexDensity float64
)

func init() {
	indexCmd.Flags().StringVar(&indexEnergy, "energy", "30:130:100", "Energy sweep (eV) as min:max:n.")
	indexCmd.Flags().Float64Var(&indexDensity, "density", 0, "Density (g/cm^3), defaults to the tabulated density.")
	rootCmd.AddCommand(indexCmd)
}

var indexCmd = &cobra.Command{
	Use:   "index <formula> [--energy <min:max:n>]",
	Short: "Tabulate the refractive index (delta and beta) of a material.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sweep, err := parseSweep(indexEnergy)
		if err != nil {
			return err
		}
		res, err := client.RefractiveIndex(cmd.Context(), henke.RefractiveIndexRequest{
			Formula: args[0],
			Density: indexDensity,
			Energy:  sweep,
		})
		if err != nil {
			return withHint(err, args[0])
		}
		return emitResponse(cmd, args[0], res)
	},
}
