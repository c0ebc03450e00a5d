package models

import (
	"time"
)

// Sender identifies who produced a message.
type Sender string

const (
	SenderUser   Sender = "user"
	SenderAgent  Sender = "agent"
	SenderSystem Sender = "system"
)

// Project is a named grouping that owns chats and metrics. The ID is
// assigned once at creation and never changes; Name is a mutable display
// attribute, so renaming never touches the records that reference the
// project.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Chat is a project-scoped conversation thread. Only metadata lives here;
// message bodies are kept in the flat message history.
type Chat struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	Title     string `json:"title"`
	Preview   string `json:"preview"`
	Date      string `json:"date"`
}

// UserChat is a peer-to-peer conversation independent of any project. Its
// message list is persisted under its own slot (see localstore.ChatMessagesKey).
type UserChat struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	LastMessage string `json:"last_message"`
	Unread      int    `json:"unread"`
	Timestamp   string `json:"timestamp"`
}

// Metric is a labeled key/value fact attached to a project. Keys are not
// unique within a project; each metric carries its own id.
type Metric struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	Key       string `json:"key"`
	Value     string `json:"value"`
	Color     string `json:"color,omitempty"`
}

// MetricColors is the fixed palette a metric color tag may take.
var MetricColors = []string{"blue", "green", "yellow", "red", "purple", "gray"}

// ValidMetricColor reports whether c is empty or one of MetricColors.
func ValidMetricColor(c string) bool {
	if c == "" {
		return true
	}
	for _, known := range MetricColors {
		if c == known {
			return true
		}
	}
	return false
}

// Message is one entry of the flat, cross-project message history.
// ProjectID is empty for messages not associated with a project.
type Message struct {
	ID        string    `json:"id"`
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	ProjectID string    `json:"project_id,omitempty"`
}

// ChatMessage is one entry of a user chat's private message list.
type ChatMessage struct {
	ID        string    `json:"id"`
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// DialogType says what kind of entity a confirmation dialog targets.
type DialogType string

const (
	DialogProject  DialogType = "project"
	DialogChat     DialogType = "chat"
	DialogUserChat DialogType = "userChat"
)

// DialogIntent describes the item pending rename or delete while a
// confirmation dialog is open. It is transient state, never persisted.
type DialogIntent struct {
	Type      DialogType `json:"type"`
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	ProjectID string     `json:"project_id,omitempty"`
}

// User is one row of the mocked credential table.
type User struct {
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Admin        bool      `json:"admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session is the mocked signed-in session.
type Session struct {
	Email    string    `json:"email"`
	Admin    bool      `json:"admin"`
	SignedIn time.Time `json:"signed_in"`
}

// Settings holds per-user display preferences.
type Settings struct {
	DisplayName string `json:"display_name"`
	Language    string `json:"language"`
	Theme       string `json:"theme"`
}

// DefaultSettings returns the settings used before the user saves any.
func DefaultSettings() Settings {
	return Settings{Language: "de", Theme: "light"}
}

// SeedUserChats is the sample peer chat list written on first start when no
// userChats slot exists yet.
func SeedUserChats() []UserChat {
	return []UserChat{
		{ID: "seed-1", Username: "Max Mustermann", LastMessage: "Bis morgen!", Unread: 0, Timestamp: "09:15"},
		{ID: "seed-2", Username: "Erika Beispiel", LastMessage: "Danke für die Unterlagen.", Unread: 2, Timestamp: "Gestern"},
		{ID: "seed-3", Username: "Jan Schmidt", LastMessage: "Passt das Audit am Freitag?", Unread: 0, Timestamp: "Montag"},
	}
}
