package commands

import (
	"fmt"
	"henke-client/internal/chart"
	"henke-client/internal/export"
	"henke-client/internal/henke"
	"io"
	"log/slog"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func renderResponse(w io.Writer, res henke.Response) {
	t := newTable(w)
	t.SetTitle(res.Meta.Title)

	header := table.Row{}
	for _, column := range res.Meta.Columns {
		header = append(header, column)
	}
	t.AppendHeader(header)

	for _, row := range res.Table.Rows {
		out := make(table.Row, len(row))
		for i, v := range row {
			out[i] = formatValue(v)
		}
		t.AppendRow(out)
	}
	t.Render()
}

func toWavelength(res henke.Response) (henke.Response, error) {
	if !wavelength {
		return res, nil
	}
	return res.InWavelength()
}

// emitResponse prints a single response and writes the optional chart and
// export file.
func emitResponse(cmd *cobra.Command, name string, res henke.Response) error {
	res, err := toWavelength(res)
	if err != nil {
		return err
	}
	renderResponse(cmd.OutOrStdout(), res)
	return emit(cmd, chart.FromResponse(res), []export.Dataset{{Name: name, Response: res}})
}

func emitBatch[R any](
	cmd *cobra.Command,
	results []henke.BatchResult[R],
	toChart func([]henke.BatchResult[R]) chart.Chart,
) error {
	var datasets []export.Dataset
	for i, result := range results {
		res, err := toWavelength(result.Response)
		if err != nil {
			return err
		}
		results[i].Response = res
		renderResponse(cmd.OutOrStdout(), res)
		datasets = append(datasets, export.Dataset{Name: result.Key, Response: res})
	}
	return emit(cmd, toChart(results), datasets)
}

func emit(cmd *cobra.Command, c chart.Chart, datasets []export.Dataset) error {
	if plotPath != "" {
		err := chart.Save(c, plotPath)
		if err != nil {
			return fmt.Errorf("failed to save plot: %w", err)
		}
		slog.Info("saved plot", "path", plotPath)
	}
	if outPath != "" {
		err := export.Write(cmd.Context(), outPath, datasets)
		if err != nil {
			return fmt.Errorf("failed to export: %w", err)
		}
		slog.Info("exported results", "path", outPath, "datasets", len(datasets))
	}
	return nil
}
