package commands

import (
	"errors"
	"henke-client/internal/henke"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var bindingEnergy float64

func init() {
	bindingCmd.Flags().Float64Var(&bindingEnergy, "energy", 100, "Photon energy (eV) the refractive index decrement is evaluated at.")
	rootCmd.AddCommand(bindingCmd)
}

var bindingCmd = &cobra.Command{
	Use:   "binding <element> [--energy <eV>]",
	Short: "Look up the absorption edges of an element.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if plotPath != "" || outPath != "" {
			return errors.New("binding energies are not tabulated, --plot and --out do not apply")
		}

		result, err := client.BindingEnergy(cmd.Context(), henke.BindingEnergyRequest{
			Element: args[0],
			Energy:  bindingEnergy,
		})
		if err != nil {
			return withHint(err, args[0])
		}

		t := newTable(cmd.OutOrStdout())
		t.SetTitle(result.Element)
		if result.Delta != nil {
			t.AppendRow(table.Row{"Delta", formatValue(*result.Delta)})
		}
		if result.Beta != nil {
			t.AppendRow(table.Row{"Beta", formatValue(*result.Beta)})
		}
		t.Render()

		edges := newTable(cmd.OutOrStdout())
		edges.SetTitle("Edge energies")
		edges.AppendHeader(table.Row{"Edge", "Energy (eV)", "Wavelength (nm)"})
		for _, edge := range result.Edges {
			edges.AppendRow(table.Row{edge.Name, formatValue(edge.Energy), formatValue(edge.Wavelength)})
		}
		edges.Render()
		return nil
	},
}
