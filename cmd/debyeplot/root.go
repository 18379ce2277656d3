package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"debyeplot/internal/config"
	"debyeplot/internal/heatmap"
	"debyeplot/internal/labels"
	"debyeplot/internal/report"

	"github.com/spf13/cobra"
)

var (
	// Pipeline
	configPath string
	labelsPath string
	colX       string
	colY       string
	step       float64
	scale      string
	sortMode   string

	// Output
	title    string
	colormap string
	widthCM  float64
	heightCM float64
	dpi      int
	format   string
	outPath  string
	pdfPath  string

	rootCmd = &cobra.Command{
		Use:   "debyeplot [flags] <datafile>...",
		Short: "Debye-Scherrer heatmap builder",
		Long: `debyeplot aligns a batch of powder diffraction measurement files onto a
shared 2theta grid and renders the stacked intensities as a heatmap.

Each input file holds whitespace-separated columns, optionally preceded by a
single header line starting with # or '. Files that cannot be parsed or
interpolated are skipped with a warning; the run fails only when no file
survives.

Examples:
  debyeplot scan_*.txt                          # Defaults: linear scale, upload order
  debyeplot --scale log --sort Similarity *.txt # Log intensities, similarity-ordered rows
  debyeplot --labels samples.csv --sort File *.txt
  debyeplot --step 0.1 --colormap Greens --out heatmap.svg --format svg *.txt
  debyeplot --pdf report.pdf *.txt              # Also write a PDF report`,
		Args: cobra.MinimumNArgs(1),
		RunE: runPipeline,
	}
)

func init() {
	defaults := config.DefaultConfig()

	rootCmd.Flags().StringVar(&configPath, "config", "",
		"YAML config file with pipeline and plot defaults")
	rootCmd.Flags().StringVarP(&labelsPath, "labels", "l", "",
		"CSV label table with filename, label and order columns")
	rootCmd.Flags().StringVar(&colX, "col-x", "",
		"Name of the x column in the file headers (default: first column)")
	rootCmd.Flags().StringVar(&colY, "col-y", "",
		"Name of the y column in the file headers (default: second column)")
	rootCmd.Flags().Float64Var(&step, "step", defaults.Pipeline.XStep,
		"Shared x-grid step size in degrees")
	rootCmd.Flags().StringVar(&scale, "scale", defaults.Pipeline.Scale,
		"Intensity scale (linear, log)")
	rootCmd.Flags().StringVar(&sortMode, "sort", defaults.Pipeline.Sort,
		"Series ordering (None, File, Similarity)")

	rootCmd.Flags().StringVar(&title, "title", "",
		"Plot title")
	rootCmd.Flags().StringVar(&colormap, "colormap", defaults.Plot.Colormap,
		"ColorBrewer palette name (e.g. Blues, Greens, RdBu)")
	rootCmd.Flags().Float64Var(&widthCM, "width", defaults.Plot.WidthCM,
		"Plot width in centimeters")
	rootCmd.Flags().Float64Var(&heightCM, "height", defaults.Plot.HeightCM,
		"Plot height in centimeters")
	rootCmd.Flags().IntVar(&dpi, "dpi", defaults.Plot.DPI,
		"Raster resolution for PNG output")
	rootCmd.Flags().StringVarP(&format, "format", "f", defaults.Plot.Format,
		"Image format (png, jpeg, svg, pdf, tif)")
	rootCmd.Flags().StringVarP(&outPath, "out", "o", "",
		"Output image path (default: heatmap.<format>)")
	rootCmd.Flags().StringVar(&pdfPath, "pdf", "",
		"Also write a PDF report to this path")
}

// applyConfig layers the config file under the flags: file values win over
// built-in defaults, explicit flags win over the file.
func applyConfig(cmd *cobra.Command, cfg *config.Config) {
	flagString := func(name string, dst *string, fileVal string) {
		if !cmd.Flags().Changed(name) && fileVal != "" {
			*dst = fileVal
		}
	}
	flagString("col-x", &colX, cfg.Pipeline.ColX)
	flagString("col-y", &colY, cfg.Pipeline.ColY)
	flagString("scale", &scale, cfg.Pipeline.Scale)
	flagString("sort", &sortMode, cfg.Pipeline.Sort)
	flagString("colormap", &colormap, cfg.Plot.Colormap)
	flagString("format", &format, cfg.Plot.Format)

	if !cmd.Flags().Changed("step") && cfg.Pipeline.XStep > 0 {
		step = cfg.Pipeline.XStep
	}
	if !cmd.Flags().Changed("width") && cfg.Plot.WidthCM > 0 {
		widthCM = cfg.Plot.WidthCM
	}
	if !cmd.Flags().Changed("height") && cfg.Plot.HeightCM > 0 {
		heightCM = cfg.Plot.HeightCM
	}
	if !cmd.Flags().Changed("dpi") && cfg.Plot.DPI > 0 {
		dpi = cfg.Plot.DPI
	}
}

func runPipeline(cmd *cobra.Command, args []string) error {
	if configPath != "" {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		applyConfig(cmd, cfg)
	}

	scaleMode, err := heatmap.ParseScaleMode(scale)
	if err != nil {
		return err
	}
	ordering, err := heatmap.ParseSortMode(sortMode)
	if err != nil {
		return err
	}

	var table *labels.Table
	if labelsPath != "" {
		table, err = labels.LoadCSV(labelsPath)
		if err != nil {
			return fmt.Errorf("failed to load label table: %w", err)
		}
	}

	files, err := readInputFiles(args)
	if err != nil {
		return err
	}

	params := heatmap.Params{
		ColX:  colX,
		ColY:  colY,
		Step:  step,
		Scale: scaleMode,
		Sort:  ordering,
	}
	asm := heatmap.NewAssembler(params, table)
	res, err := asm.Run(files)
	if err != nil {
		for _, w := range asm.Warnings() {
			log.Printf("warning: %s", w)
		}
		return err
	}
	for _, w := range res.Warnings {
		log.Printf("warning: %s", w)
	}
	log.Printf("aligned %d series on a %d-point grid", len(res.Labels), res.Grid.Len())

	img, err := report.RenderHeatmap(res, report.RenderOptions{
		Title:    title,
		Colormap: colormap,
		WidthCM:  widthCM,
		HeightCM: heightCM,
		DPI:      dpi,
		Format:   format,
	})
	if err != nil {
		return fmt.Errorf("failed to render heatmap: %w", err)
	}

	out := outPath
	if out == "" {
		out = "heatmap." + imageExt(format)
	}
	if err := os.WriteFile(out, img, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	log.Printf("wrote %s", out)

	if pdfPath != "" {
		pngBytes := img
		if imageExt(format) != "png" {
			// The report embeds a PNG regardless of the image output format.
			pngBytes, err = report.RenderHeatmap(res, report.RenderOptions{
				Title:    title,
				Colormap: colormap,
				WidthCM:  widthCM,
				HeightCM: heightCM,
				DPI:      dpi,
				Format:   "png",
			})
			if err != nil {
				return fmt.Errorf("failed to render report image: %w", err)
			}
		}
		if err := report.BuildPDFReport(pdfPath, res, params, pngBytes); err != nil {
			return fmt.Errorf("failed to build PDF report: %w", err)
		}
		log.Printf("wrote %s", pdfPath)
	}
	return nil
}

func readInputFiles(paths []string) ([]heatmap.InputFile, error) {
	files := make([]heatmap.InputFile, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		files = append(files, heatmap.InputFile{
			Name: filepath.Base(path),
			Data: data,
		})
	}
	return files, nil
}

func imageExt(format string) string {
	ext := strings.ToLower(format)
	if ext == "jpeg" {
		ext = "jpg"
	}
	if ext == "" {
		ext = "png"
	}
	return ext
}
