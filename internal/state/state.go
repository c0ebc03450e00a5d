package state

import (
	"github.com/hcs-labs/hub/internal/models"
)

// State is the in-memory aggregate for one session: canonical collections,
// the filtered mirrors the search layer maintains, and transient UI state.
// Chats, FilteredChats and ExpandedProjects are keyed by project id.
type State struct {
	Projects          []models.Project
	Chats             map[string][]models.Chat
	FilteredChats     map[string][]models.Chat
	UserChats         []models.UserChat
	FilteredUserChats []models.UserChat
	ExpandedProjects  map[string]bool
	Messages          []models.Message
	Metrics           []models.Metric

	SelectedProjectID string
	SelectedChatID    string
	Dialog            *models.DialogIntent
}

// NewState returns an empty state with all maps initialized.
func NewState() *State {
	return &State{
		Chats:            make(map[string][]models.Chat),
		FilteredChats:    make(map[string][]models.Chat),
		ExpandedProjects: make(map[string]bool),
	}
}

// ProjectByID returns the project with the given id, or nil.
func (s *State) ProjectByID(id string) *models.Project {
	for i := range s.Projects {
		if s.Projects[i].ID == id {
			return &s.Projects[i]
		}
	}
	return nil
}

// ProjectByName returns the project whose name matches (case-sensitive), or nil.
func (s *State) ProjectByName(name string) *models.Project {
	for i := range s.Projects {
		if s.Projects[i].Name == name {
			return &s.Projects[i]
		}
	}
	return nil
}

// ChatByID returns the chat with the given id within a project, or nil.
func (s *State) ChatByID(projectID, chatID string) *models.Chat {
	chats := s.Chats[projectID]
	for i := range chats {
		if chats[i].ID == chatID {
			return &chats[i]
		}
	}
	return nil
}

// UserChatByID returns the user chat with the given id, or nil.
func (s *State) UserChatByID(id string) *models.UserChat {
	for i := range s.UserChats {
		if s.UserChats[i].ID == id {
			return &s.UserChats[i]
		}
	}
	return nil
}

// MetricsFor returns the metrics attached to a project, in insertion order.
func (s *State) MetricsFor(projectID string) []models.Metric {
	var out []models.Metric
	for _, m := range s.Metrics {
		if m.ProjectID == projectID {
			out = append(out, m)
		}
	}
	return out
}

// MessagesFor returns the flat-history messages associated with a project,
// in insertion order.
func (s *State) MessagesFor(projectID string) []models.Message {
	var out []models.Message
	for _, m := range s.Messages {
		if m.ProjectID == projectID {
			out = append(out, m)
		}
	}
	return out
}

// Clone returns a deep copy. The search layer filters a clone so canonical
// collections are never aliased by derived views.
func (s *State) Clone() *State {
	out := &State{
		Projects:          append([]models.Project(nil), s.Projects...),
		Chats:             cloneChatMap(s.Chats),
		FilteredChats:     cloneChatMap(s.FilteredChats),
		UserChats:         append([]models.UserChat(nil), s.UserChats...),
		FilteredUserChats: append([]models.UserChat(nil), s.FilteredUserChats...),
		ExpandedProjects:  make(map[string]bool, len(s.ExpandedProjects)),
		Messages:          append([]models.Message(nil), s.Messages...),
		Metrics:           append([]models.Metric(nil), s.Metrics...),
		SelectedProjectID: s.SelectedProjectID,
		SelectedChatID:    s.SelectedChatID,
	}
	for id, expanded := range s.ExpandedProjects {
		out.ExpandedProjects[id] = expanded
	}
	if s.Dialog != nil {
		dialog := *s.Dialog
		out.Dialog = &dialog
	}
	return out
}

func cloneChatMap(in map[string][]models.Chat) map[string][]models.Chat {
	out := make(map[string][]models.Chat, len(in))
	for id, chats := range in {
		out[id] = append([]models.Chat(nil), chats...)
	}
	return out
}
