// Package export renders a project's conversation for sharing: a paginated
// PDF document or an indented JSON dump.
package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/hcs-labs/hub/internal/models"
)

// Document is the input to an export: one project with its metrics and its
// slice of the flat message history, already in chronological order.
type Document struct {
	ProjectName string           `json:"project_name"`
	Metrics     []models.Metric  `json:"metrics"`
	Messages    []models.Message `json:"messages"`
}

const (
	pageMargin   = 15.0
	bottomMargin = 20.0
	lineHeight   = 5.5
)

// PDF writes the document as an A4 PDF: title line, one "key: value" line
// per metric, then every message as "[HH:MM] Sender: text", word-wrapped to
// the page width. Message order is preserved exactly; pages break past the
// bottom margin.
func PDF(doc Document, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, bottomMargin)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageWidth, _ := pdf.GetPageSize()
	textWidth := pageWidth - 2*pageMargin

	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(textWidth, 8, tr(doc.ProjectName), "", "L", false)
	pdf.Ln(2)

	if len(doc.Metrics) > 0 {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.MultiCell(textWidth, lineHeight, tr("Kennzahlen"), "", "L", false)
		pdf.SetFont("Helvetica", "", 10)
		for _, metric := range doc.Metrics {
			line := fmt.Sprintf("%s: %s", metric.Key, metric.Value)
			pdf.MultiCell(textWidth, lineHeight, tr(line), "", "L", false)
		}
		pdf.Ln(3)
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, message := range doc.Messages {
		line := fmt.Sprintf("[%s] %s: %s",
			message.Timestamp.Format("15:04"),
			senderLabel(message.Sender),
			message.Text,
		)
		pdf.MultiCell(textWidth, lineHeight, tr(line), "", "L", false)
		pdf.Ln(1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}

func senderLabel(sender models.Sender) string {
	switch sender {
	case models.SenderUser:
		return "Nutzer"
	case models.SenderAgent:
		return "Agent"
	case models.SenderSystem:
		return "System"
	default:
		return string(sender)
	}
}
