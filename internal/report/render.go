// Package report renders the assembled intensity matrix as a heatmap image
// and packages it, together with the run diagnostics, into a PDF report.
package report

import (
	"bytes"
	"fmt"
	"image/color"

	"debyeplot/internal/heatmap"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const paletteColors = 9 // the ColorBrewer sequential maximum

// RenderOptions control the heatmap image output.
type RenderOptions struct {
	Title    string
	Colormap string  // ColorBrewer palette name, e.g. "Blues"
	WidthCM  float64
	HeightCM float64
	DPI      int
	Format   string // png, jpeg, svg, pdf, tif
}

// intensityGrid adapts a pipeline result to plotter.GridXYZ. Columns are
// grid indices, rows are series indices.
type intensityGrid struct {
	res *heatmap.Result
}

func (g intensityGrid) Dims() (c, r int)   { return g.res.Grid.Len(), len(g.res.Rows) }
func (g intensityGrid) Z(c, r int) float64 { return g.res.Rows[r][c] }
func (g intensityGrid) X(c int) float64    { return float64(c) }
func (g intensityGrid) Y(r int) float64    { return float64(r) }

// paletteByName resolves a colormap name against the ColorBrewer palettes,
// trying sequential, diverging and qualitative families in that order, and
// falls back to a heat palette for unknown names.
func paletteByName(name string) palette.Palette {
	types := []brewer.PaletteType{
		brewer.TypeSequential,
		brewer.TypeDiverging,
		brewer.TypeQualitative,
	}
	for _, typ := range types {
		if pal, err := brewer.GetPalette(typ, name, paletteColors); err == nil {
			return pal
		}
	}
	return palette.Heat(paletteColors, 1)
}

// decadeTicks spreads the grid's decade tick labels linearly across the
// column index range, so the labels line up with the matrix columns no
// matter the grid granularity.
func decadeTicks(g *heatmap.Grid) []plot.Tick {
	ticks := make([]plot.Tick, len(g.Ticks))
	span := float64(g.Len() - 1)
	for i, v := range g.Ticks {
		pos := 0.0
		if len(g.Ticks) > 1 {
			pos = float64(i) * span / float64(len(g.Ticks)-1)
		}
		ticks[i] = plot.Tick{Value: pos, Label: fmt.Sprintf("%d", int(v))}
	}
	return ticks
}

func labelTicks(names []string) []plot.Tick {
	ticks := make([]plot.Tick, len(names))
	for i, name := range names {
		ticks[i] = plot.Tick{Value: float64(i), Label: name}
	}
	return ticks
}

// RenderHeatmap draws the intensity matrix and returns the encoded image.
func RenderHeatmap(res *heatmap.Result, opts RenderOptions) ([]byte, error) {
	if res == nil || len(res.Rows) == 0 {
		return nil, fmt.Errorf("no intensity data to render")
	}
	if opts.WidthCM <= 0 || opts.HeightCM <= 0 {
		return nil, fmt.Errorf("plot dimensions must be positive, got %g x %g cm",
			opts.WidthCM, opts.HeightCM)
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "2theta (deg)"

	hm := plotter.NewHeatMap(intensityGrid{res: res}, paletteByName(opts.Colormap))
	hm.NaN = color.Gray{Y: 200}
	p.Add(hm)

	p.X.Tick.Marker = plot.ConstantTicks(decadeTicks(res.Grid))
	p.Y.Tick.Marker = plot.ConstantTicks(labelTicks(res.Labels))
	p.X.Min = -0.5
	p.X.Max = float64(res.Grid.Len()) - 0.5
	p.Y.Min = -0.5
	p.Y.Max = float64(len(res.Rows)) - 0.5

	width := vg.Length(opts.WidthCM) * vg.Centimeter
	height := vg.Length(opts.HeightCM) * vg.Centimeter

	buf := new(bytes.Buffer)
	switch opts.Format {
	case "", "png":
		var c *vgimg.Canvas
		if opts.DPI > 0 {
			c = vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(opts.DPI))
		} else {
			c = vgimg.NewWith(vgimg.UseWH(width, height))
		}
		p.Draw(draw.New(c))
		png := vgimg.PngCanvas{Canvas: c}
		if _, err := png.WriteTo(buf); err != nil {
			return nil, fmt.Errorf("failed to encode heatmap png: %w", err)
		}
	case "jpeg", "jpg", "svg", "pdf", "tif":
		format := opts.Format
		if format == "jpeg" {
			format = "jpg"
		}
		writer, err := p.WriterTo(width, height, format)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s writer: %w", opts.Format, err)
		}
		if _, err := writer.WriteTo(buf); err != nil {
			return nil, fmt.Errorf("failed to write heatmap %s: %w", opts.Format, err)
		}
	default:
		return nil, fmt.Errorf("unsupported image format %q", opts.Format)
	}
	return buf.Bytes(), nil
}
