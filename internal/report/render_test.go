package report

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"debyeplot/internal/heatmap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult(t *testing.T) *heatmap.Result {
	t.Helper()
	files := []heatmap.InputFile{
		{Name: "a.txt", Data: []byte("10 5\n20 8\n30 3\n")},
		{Name: "b.txt", Data: []byte("10 2\n20 9\n30 1\n")},
	}
	asm := heatmap.NewAssembler(heatmap.Params{
		Step:  10,
		Scale: heatmap.ScaleLinear,
		Sort:  heatmap.SortNone,
	}, nil)
	res, err := asm.Run(files)
	require.NoError(t, err)
	return res
}

func TestRenderHeatmapPNG(t *testing.T) {
	res := sampleResult(t)

	img, err := RenderHeatmap(res, RenderOptions{
		Colormap: "Blues",
		WidthCM:  25,
		HeightCM: 10,
		DPI:      72,
		Format:   "png",
	})
	require.NoError(t, err)
	require.NotEmpty(t, img)

	// PNG magic bytes.
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, img[:4])
}

func TestRenderHeatmapDPIScalesRaster(t *testing.T) {
	res := sampleResult(t)

	opts := RenderOptions{Colormap: "Blues", WidthCM: 10, HeightCM: 5, Format: "png"}

	opts.DPI = 72
	lo, err := RenderHeatmap(res, opts)
	require.NoError(t, err)

	opts.DPI = 144
	hi, err := RenderHeatmap(res, opts)
	require.NoError(t, err)

	loCfg, err := png.DecodeConfig(bytes.NewReader(lo))
	require.NoError(t, err)
	hiCfg, err := png.DecodeConfig(bytes.NewReader(hi))
	require.NoError(t, err)

	// Same physical size, double the resolution: twice the pixels.
	assert.Equal(t, 2*loCfg.Width, hiCfg.Width)
	assert.Equal(t, 2*loCfg.Height, hiCfg.Height)
}

func TestRenderHeatmapUnknownColormapFallsBack(t *testing.T) {
	res := sampleResult(t)

	img, err := RenderHeatmap(res, RenderOptions{
		Colormap: "definitely-not-a-colormap",
		WidthCM:  10,
		HeightCM: 5,
		Format:   "png",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, img)
}

func TestRenderHeatmapSVG(t *testing.T) {
	res := sampleResult(t)

	img, err := RenderHeatmap(res, RenderOptions{
		Colormap: "Blues",
		WidthCM:  10,
		HeightCM: 5,
		Format:   "svg",
	})
	require.NoError(t, err)
	assert.Contains(t, string(img), "<svg")
}

func TestRenderHeatmapErrors(t *testing.T) {
	res := sampleResult(t)

	_, err := RenderHeatmap(res, RenderOptions{WidthCM: 10, HeightCM: 5, Format: "bmp"})
	assert.Error(t, err)

	_, err = RenderHeatmap(res, RenderOptions{WidthCM: 0, HeightCM: 5, Format: "png"})
	assert.Error(t, err)

	_, err = RenderHeatmap(nil, RenderOptions{WidthCM: 10, HeightCM: 5, Format: "png"})
	assert.Error(t, err)
}

func TestBuildPDFReport(t *testing.T) {
	res := sampleResult(t)
	res.Warnings = append(res.Warnings, "skipping bad.txt: fewer than 2 columns")

	img, err := RenderHeatmap(res, RenderOptions{
		Colormap: "Blues",
		WidthCM:  25,
		HeightCM: 10,
		Format:   "png",
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "report.pdf")
	params := heatmap.Params{Step: 10, Scale: heatmap.ScaleLinear, Sort: heatmap.SortNone}
	require.NoError(t, BuildPDFReport(path, res, params, img))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
