// Package chart renders henke responses as line charts. Fetching data never
// depends on it.
package chart

import (
	"errors"
	"fmt"
	"henke-client/internal/henke"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

const (
	DefaultWidth  = 8 * vg.Inch
	DefaultHeight = 5 * vg.Inch
)

var ErrNoPoints = errors.New("chart: nothing to plot")

type Series struct {
	Label string
	X     []float64
	Y     []float64
}

type Chart struct {
	Title  string
	XLabel string
	YLabel string
	LogY   bool
	// the y range is only fixed when YMax > YMin
	YMin   float64
	YMax   float64
	Series []Series
}

func withYRange(c Chart, meta henke.Meta) Chart {
	if meta.YRange != nil {
		c.YMin = meta.YRange[0]
		c.YMax = meta.YRange[1]
	}
	return c
}

// FromResponse plots every column after the first against the first.
func FromResponse(res henke.Response) Chart {
	c := Chart{
		Title:  res.Meta.Title,
		XLabel: res.Meta.XLabel,
		YLabel: res.Meta.YLabel,
		LogY:   res.Meta.LogY,
	}
	c = withYRange(c, res.Meta)

	x := res.Table.Column(0)
	for i := 1; i < res.Table.Width(); i++ {
		label := fmt.Sprintf("column %d", i+1)
		if i < len(res.Meta.Columns) {
			label = res.Meta.Columns[i]
		}
		c.Series = append(c.Series, Series{
			Label: label,
			X:     x,
			Y:     res.Table.Column(i),
		})
	}
	return c
}

func fromBatch[R any](title string, results []henke.BatchResult[R]) Chart {
	c := Chart{Title: title}
	for i, result := range results {
		if i == 0 {
			c.XLabel = result.Response.Meta.XLabel
			c.YLabel = result.Response.Meta.YLabel
			c = withYRange(c, result.Response.Meta)
		}
		c.Series = append(c.Series, Series{
			Label: result.Response.Meta.Title,
			X:     result.Response.Table.Column(0),
			Y:     result.Response.Table.Column(1),
		})
	}
	return c
}

// FromFilters overlays the transmission of every filter in a batch.
func FromFilters(results []henke.FilterResult) Chart {
	return fromBatch("Filter transmission", results)
}

// FromMirrors overlays the reflectivity of every mirror in a batch.
func FromMirrors(results []henke.MirrorResult) Chart {
	return fromBatch("Thick mirror reflectivity", results)
}

func (c Chart) points(s Series) plotter.XYs {
	n := min(len(s.X), len(s.Y))
	out := make(plotter.XYs, 0, n)
	for i := 0; i < n; i++ {
		if c.LogY && s.Y[i] <= 0 {
			continue
		}
		out = append(out, plotter.XY{X: s.X[i], Y: s.Y[i]})
	}
	return out
}

func (c Chart) build() (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	if c.LogY {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	total := 0
	for i, s := range c.Series {
		xys := c.points(s)
		if len(xys) == 0 {
			continue
		}
		total += len(xys)

		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("series %q: %w", s.Label, err)
		}
		line.Color = plotutil.Color(i)
		line.Dashes = plotutil.Dashes(i / len(plotutil.SoftColors))
		p.Add(line)
		if s.Label != "" {
			p.Legend.Add(s.Label, line)
		}
	}
	if total == 0 {
		return nil, ErrNoPoints
	}

	if c.YMax > c.YMin && (!c.LogY || c.YMin > 0) {
		p.Y.Min = c.YMin
		p.Y.Max = c.YMax
	}
	return p, nil
}

func checkFormat(format string) error {
	switch format {
	case "png", "svg", "pdf":
		return nil
	}
	return fmt.Errorf("chart: unsupported format %q", format)
}

// Render writes the chart to w, format is one of png, svg or pdf.
func Render(c Chart, w io.Writer, format string, width, height vg.Length) error {
	format = strings.ToLower(format)
	err := checkFormat(format)
	if err != nil {
		return err
	}

	p, err := c.build()
	if err != nil {
		return err
	}
	writer, err := p.WriterTo(width, height, format)
	if err != nil {
		return err
	}
	_, err = writer.WriteTo(w)
	return err
}

// Save renders the chart to a file, the format follows the file extension.
func Save(c Chart, path string) error {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	err := checkFormat(format)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = Render(c, f, format, DefaultWidth, DefaultHeight)
	if err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
