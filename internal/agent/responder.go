package agent

import (
	"strings"
)

// Responder produces the scripted agent replies. Lookup order: exact match
// against a small fixed table, then keyword substring match, then a fixed
// fallback. Stateless, no I/O.
type Responder struct {
	exact    map[string]string
	keywords []keywordReply
	fallback string
}

type keywordReply struct {
	keyword string
	reply   string
}

// NewResponder creates a responder with the default reply tables.
func NewResponder() *Responder {
	return &Responder{
		exact: map[string]string{
			"hallo":        "Hallo, wie kann ich Ihnen helfen?",
			"hi":           "Hallo, wie kann ich Ihnen helfen?",
			"guten morgen": "Guten Morgen! Womit kann ich Ihnen heute helfen?",
			"guten tag":    "Guten Tag! Womit kann ich Ihnen helfen?",
			"danke":        "Gern geschehen! Gibt es noch etwas, das ich für Sie tun kann?",
			"tschüss":      "Auf Wiedersehen! Melden Sie sich gerne wieder.",
		},
		keywords: []keywordReply{
			{"qualität", "Zum Thema Qualität: Sie finden die aktuellen Kennzahlen im Projektbereich. Soll ich eine Übersicht erstellen?"},
			{"prozess", "Unsere Prozessdokumentation ist im jeweiligen Projekt hinterlegt. Welchen Prozess meinen Sie genau?"},
			{"audit", "Das nächste Audit ist in Planung. Benötigen Sie die Checkliste zur Vorbereitung?"},
			{"metrik", "Metriken können Sie pro Projekt als Schlüssel/Wert-Paare pflegen. Soll ich Ihnen die aktuellen Werte zeigen?"},
			{"kennzahl", "Kennzahlen können Sie pro Projekt als Schlüssel/Wert-Paare pflegen. Soll ich Ihnen die aktuellen Werte zeigen?"},
			{"dokument", "Dokumente verwalten Sie direkt im Projekt. Welches Dokument suchen Sie?"},
			{"export", "Sie können den Gesprächsverlauf eines Projekts jederzeit als PDF exportieren."},
			{"hilfe", "Ich helfe Ihnen gerne weiter. Beschreiben Sie kurz Ihr Anliegen."},
		},
		fallback: "Entschuldigung, das habe ich nicht verstanden. Können Sie Ihre Frage bitte umformulieren?",
	}
}

// Respond returns the scripted reply for a user message.
func (r *Responder) Respond(text string) string {
	normalized := strings.ToLower(strings.TrimSpace(text))

	if reply, ok := r.exact[normalized]; ok {
		return reply
	}

	for _, entry := range r.keywords {
		if strings.Contains(normalized, entry.keyword) {
			return entry.reply
		}
	}

	return r.fallback
}

var defaultResponder = NewResponder()

// Respond returns the scripted reply using the default tables.
func Respond(text string) string {
	return defaultResponder.Respond(text)
}
