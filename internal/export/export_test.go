package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/hcs-labs/hub/internal/models"
)

func sampleDocument() Document {
	base := time.Date(2024, 3, 14, 9, 30, 0, 0, time.UTC)
	return Document{
		ProjectName: "Qualitätsmanagement",
		Metrics: []models.Metric{
			{ID: "m1", ProjectID: "p1", Key: "Fehlerquote", Value: "0.8%", Color: "green"},
			{ID: "m2", ProjectID: "p1", Key: "Audit-Status", Value: "bestanden"},
		},
		Messages: []models.Message{
			{ID: "1", Sender: models.SenderUser, Text: "hallo", Timestamp: base, ProjectID: "p1"},
			{ID: "2", Sender: models.SenderAgent, Text: "Hallo, wie kann ich Ihnen helfen?", Timestamp: base.Add(time.Second), ProjectID: "p1"},
			{ID: "3", Sender: models.SenderUser, Text: "Wie ist die Qualität?", Timestamp: base.Add(2 * time.Second), ProjectID: "p1"},
		},
	}
}

func TestPDF(t *testing.T) {
	var buf bytes.Buffer
	if err := PDF(sampleDocument(), &buf); err != nil {
		t.Fatalf("PDF failed: %v", err)
	}

	if buf.Len() == 0 {
		t.Fatal("PDF output is empty")
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Errorf("Output does not look like a PDF: %q", buf.Bytes()[:8])
	}
}

func TestPDFLongConversationPaginates(t *testing.T) {
	doc := sampleDocument()
	long := strings.Repeat("Dies ist ein sehr langer Satz über Prozesse und Qualität. ", 10)
	for i := 0; i < 120; i++ {
		doc.Messages = append(doc.Messages, models.Message{
			Sender:    models.SenderAgent,
			Text:      long,
			Timestamp: time.Now(),
		})
	}

	var buf bytes.Buffer
	if err := PDF(doc, &buf); err != nil {
		t.Fatalf("PDF failed: %v", err)
	}

	// A conversation this size cannot fit one page. A single-page document
	// contains the marker twice (once from the page tree), so require more.
	if n := bytes.Count(buf.Bytes(), []byte("/Type /Page")); n < 3 {
		t.Errorf("Expected multiple pages, found %d page markers", n)
	}
}

func TestJSON(t *testing.T) {
	doc := sampleDocument()

	var buf bytes.Buffer
	if err := JSON(doc, &buf); err != nil {
		t.Fatalf("JSON failed: %v", err)
	}

	var decoded Document
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}

	if decoded.ProjectName != doc.ProjectName {
		t.Errorf("ProjectName = %q, want %q", decoded.ProjectName, doc.ProjectName)
	}
	if len(decoded.Messages) != len(doc.Messages) {
		t.Fatalf("Message count = %d, want %d", len(decoded.Messages), len(doc.Messages))
	}
	// Order must be preserved exactly.
	for i := range doc.Messages {
		if decoded.Messages[i].Text != doc.Messages[i].Text {
			t.Errorf("Message %d out of order: %q", i, decoded.Messages[i].Text)
		}
	}
}
