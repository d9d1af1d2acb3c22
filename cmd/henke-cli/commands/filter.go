package commands

import (
	"henke-client/internal/chart"
	"henke-client/internal/henke"

	"github.com/spf13/cobra"
)

var (
	filterEnergy  string
	filterDensity float64
	filterPlot    string
)

func init() {
	filterCmd.Flags().StringVar(&filterEnergy, "energy", "20:220:200", "Energy sweep (eV) as min:max:n.")
	filterCmd.Flags().Float64Var(&filterDensity, "density", 0, "Density (g/cm^3), defaults to the tabulated density.")
	filterCmd.Flags().StringVar(&filterPlot, "scale", string(henke.PlotLinear), "Scale of the plot rendered by the service (Linear or Log).")
	rootCmd.AddCommand(filterCmd)
}

var filterCmd = &cobra.Command{
	Use:   "filter <formula:thickness_um>... [--energy <min:max:n>]",
	Short: "Compute the transmission of one or more free standing filters.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sweep, err := parseSweep(filterEnergy)
		if err != nil {
			return err
		}

		reqs := make([]henke.FilterRequest, len(args))
		formulas := make([]string, len(args))
		for i, arg := range args {
			formula, thickness, err := parseFilterArg(arg)
			if err != nil {
				return err
			}
			formulas[i] = formula
			reqs[i] = henke.FilterRequest{
				Formula:   formula,
				Density:   filterDensity,
				Thickness: thickness,
				Energy:    sweep,
				Plot:      henke.PlotScale(filterPlot),
			}
		}

		if len(reqs) == 1 {
			res, err := client.Filter(cmd.Context(), reqs[0])
			if err != nil {
				return withHint(err, formulas...)
			}
			return emitResponse(cmd, reqs[0].Key(), res)
		}

		results, err := client.Filters(cmd.Context(), reqs)
		if err != nil {
			return withHint(err, formulas...)
		}
		return emitBatch(cmd, results, chart.FromFilters)
	},
}
