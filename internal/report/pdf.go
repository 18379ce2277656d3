package report

import (
	"bytes"
	"fmt"

	"debyeplot/internal/heatmap"

	"github.com/jung-kurt/gofpdf"
)

const (
	inchToMm               = 25.4
	pdfPageWidthLandscape  = 11 * inchToMm // Letter landscape
	pdfPageHeightLandscape = 8.5 * inchToMm
	pdfMargin              = 0.5 * inchToMm
	pdfContentWidth        = pdfPageWidthLandscape - (2 * pdfMargin)
)

// pdfStyler holds reusable styling and flowing-content state for the report.
type pdfStyler struct {
	pdf         *gofpdf.Fpdf
	styles      map[string]func()
	lineHeight  float64
	currentY    float64
	pageHeight  float64
	contentTopY float64
}

func newPDFStyler(pdf *gofpdf.Fpdf) *pdfStyler {
	s := &pdfStyler{
		pdf:         pdf,
		styles:      make(map[string]func()),
		lineHeight:  6, // mm
		pageHeight:  pdfPageHeightLandscape - (2 * pdfMargin),
		contentTopY: pdfMargin,
	}
	s.currentY = s.contentTopY
	s.defineStyles()
	return s
}

func (s *pdfStyler) defineStyles() {
	s.styles["h1"] = func() {
		s.pdf.SetFont("Arial", "B", 16)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["h2"] = func() {
		s.pdf.SetFont("Arial", "B", 13)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["normal"] = func() {
		s.pdf.SetFont("Arial", "", 10)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["warning"] = func() {
		s.pdf.SetFont("Arial", "", 9)
		s.pdf.SetTextColor(180, 60, 0)
	}
}

func (s *pdfStyler) applyStyle(styleName string) {
	if fn, ok := s.styles[styleName]; ok {
		fn()
	} else {
		s.styles["normal"]()
	}
}

func (s *pdfStyler) checkAddPage(neededHeight float64) {
	if s.currentY+neededHeight > s.pageHeight {
		s.pdf.AddPage()
		s.currentY = s.contentTopY
	}
}

func (s *pdfStyler) writeParagraph(text string, styleName string, align string) {
	s.applyStyle(styleName)
	s.checkAddPage(s.lineHeight)
	s.pdf.SetXY(pdfMargin, s.currentY)
	s.pdf.MultiCell(pdfContentWidth, s.lineHeight, text, "", align, false)
	s.currentY = s.pdf.GetY() + 1
}

func (s *pdfStyler) addSpacer(height float64) {
	s.checkAddPage(height)
	s.currentY += height
}

func (s *pdfStyler) addImage(imageBytes []byte, imageName string, width, height float64) {
	s.pdf.RegisterImageReader(imageName, "PNG", bytes.NewReader(imageBytes))

	if width > pdfContentWidth {
		ratio := pdfContentWidth / width
		width = pdfContentWidth
		height *= ratio
	}
	s.checkAddPage(height)
	s.pdf.Image(imageName, pdfMargin, s.currentY, width, height, false, "PNG", 0, "")
	s.currentY += height
	s.addSpacer(2)
}

// BuildPDFReport writes a one-stop report for a batch run: the run
// parameters, the rendered heatmap (PNG bytes) and every per-file skip
// diagnostic.
func BuildPDFReport(path string, res *heatmap.Result, params heatmap.Params, heatmapPNG []byte) error {
	if res == nil {
		return fmt.Errorf("no result to report")
	}

	pdf := gofpdf.New("L", "mm", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.AddPage()

	styler := newPDFStyler(pdf)

	styler.writeParagraph("Debye-Scherrer Heatmap Report", "h1", "C")
	styler.addSpacer(3)
	styler.writeParagraph(fmt.Sprintf("%d series aligned on a %d-point grid (step %g, %s scale, sort: %s)",
		len(res.Labels), res.Grid.Len(), params.Step, params.Scale, params.Sort), "normal", "L")
	colX, colY := params.ColX, params.ColY
	if colX == "" {
		colX = "(first column)"
	}
	if colY == "" {
		colY = "(second column)"
	}
	styler.writeParagraph(fmt.Sprintf("x column: %s, y column: %s", colX, colY), "normal", "L")
	styler.addSpacer(4)

	if len(heatmapPNG) > 0 {
		imgWidth := pdfContentWidth * 0.9
		imgHeight := imgWidth * (2.0 / 5.0)
		styler.addImage(heatmapPNG, "heatmap", imgWidth, imgHeight)
	} else {
		styler.writeParagraph("Heatmap image not available.", "normal", "L")
	}
	styler.addSpacer(4)

	styler.writeParagraph("Skipped files", "h2", "L")
	if len(res.Warnings) == 0 {
		styler.writeParagraph("All files processed successfully.", "normal", "L")
	} else {
		for _, w := range res.Warnings {
			styler.writeParagraph("- "+w, "warning", "L")
		}
	}

	return pdf.OutputFileAndClose(path)
}
