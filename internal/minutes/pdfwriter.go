package minutes

import (
	"strings"

	"github.com/phpdave11/gofpdf"
)

// WriteTranscriptPDF renders a plain-text transcript as a paginated PDF.
func WriteTranscriptPDF(title, transcript, outputPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 16)
	pdf.MultiCell(0, 9, tr(title), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 11)
	for _, para := range strings.Split(transcript, "\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			pdf.Ln(3)
			continue
		}
		pdf.MultiCell(0, 6, tr(para), "", "L", false)
		pdf.Ln(1)
	}

	return pdf.OutputFileAndClose(outputPath)
}
