package state

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hcs-labs/hub/internal/localstore"
	"github.com/hcs-labs/hub/internal/models"
)

// Store is the single source of truth for a session. Every mutator keeps the
// cross-collection invariants (no duplicate project names, filtered mirrors
// in step with canonical lists, cascades on delete) and persists the changed
// slots through the adapter before returning.
//
// The mutex exists for the agent reply scheduler, which appends messages from
// its own goroutine; everything else runs on the UI event path.
type Store struct {
	mu      sync.Mutex
	state   *State
	adapter *Adapter
}

// Open loads a Store from the given key/value backend.
func Open(kv localstore.Store) (*Store, error) {
	adapter := NewAdapter(kv)
	st, err := adapter.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	return &Store{state: st, adapter: adapter}, nil
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() *State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *Store) persist() error {
	return s.adapter.Save(s.state)
}

// CreateProject adds a project. A blank name is a no-op; an existing name
// just selects that project. The returned bool reports whether a project was
// actually created.
func (s *Store) CreateProject(name string) (models.Project, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return models.Project{}, false, nil
	}
	if existing := s.state.ProjectByName(name); existing != nil {
		s.state.SelectedProjectID = existing.ID
		return *existing, false, nil
	}

	project := models.Project{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	s.state.Projects = append(s.state.Projects, project)
	s.state.Chats[project.ID] = []models.Chat{}
	s.state.FilteredChats[project.ID] = []models.Chat{}
	s.state.ExpandedProjects[project.ID] = true
	s.state.SelectedProjectID = project.ID

	return project, true, s.persist()
}

// RenameProject updates a project's display name. Blank or unchanged names
// and collisions with another live project are rejected. Chats, metrics and
// messages reference the id and need no rewrite.
func (s *Store) RenameProject(projectID, newName string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	newName = strings.TrimSpace(newName)
	project := s.state.ProjectByID(projectID)
	if project == nil || newName == "" || newName == project.Name {
		return false, nil
	}
	if other := s.state.ProjectByName(newName); other != nil && other.ID != projectID {
		return false, nil
	}

	project.Name = newName
	return true, s.persist()
}

// DeleteProject removes a project and cascades to its chats, metrics,
// messages, expansion flag and filtered mirror. Selection is cleared when it
// pointed at the deleted project.
func (s *Store) DeleteProject(projectID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := -1
	for i := range s.state.Projects {
		if s.state.Projects[i].ID == projectID {
			index = i
			break
		}
	}
	if index < 0 {
		return false, nil
	}

	s.state.Projects = append(s.state.Projects[:index], s.state.Projects[index+1:]...)
	delete(s.state.Chats, projectID)
	delete(s.state.FilteredChats, projectID)
	delete(s.state.ExpandedProjects, projectID)

	metrics := s.state.Metrics[:0]
	for _, m := range s.state.Metrics {
		if m.ProjectID != projectID {
			metrics = append(metrics, m)
		}
	}
	s.state.Metrics = metrics

	messages := s.state.Messages[:0]
	for _, m := range s.state.Messages {
		if m.ProjectID != projectID {
			messages = append(messages, m)
		}
	}
	s.state.Messages = messages

	if s.state.SelectedProjectID == projectID {
		s.state.SelectedProjectID = ""
		s.state.SelectedChatID = ""
	}

	return true, s.persist()
}

// ToggleProjectExpansion flips the expansion flag for one project.
func (s *Store) ToggleProjectExpansion(projectID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.ProjectByID(projectID) == nil {
		return false, nil
	}
	s.state.ExpandedProjects[projectID] = !s.state.ExpandedProjects[projectID]
	return true, s.persist()
}

// CreateChat appends a new chat to a project, titled "Chat N" where N is one
// past the current count.
func (s *Store) CreateChat(projectID string) (models.Chat, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.ProjectByID(projectID) == nil {
		return models.Chat{}, false, nil
	}

	chat := models.Chat{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Title:     fmt.Sprintf("Chat %d", len(s.state.Chats[projectID])+1),
		Date:      time.Now().Format("2006-01-02"),
	}
	s.state.Chats[projectID] = append(s.state.Chats[projectID], chat)
	s.state.FilteredChats[projectID] = append(s.state.FilteredChats[projectID], chat)
	s.state.SelectedChatID = chat.ID

	return chat, true, s.persist()
}

// RenameChat retitles a chat in the canonical list and, when present, in the
// filtered mirror. Unknown ids and blank titles are no-ops.
func (s *Store) RenameChat(projectID, chatID, newTitle string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	newTitle = strings.TrimSpace(newTitle)
	if newTitle == "" {
		return false, nil
	}
	chat := s.state.ChatByID(projectID, chatID)
	if chat == nil {
		return false, nil
	}
	chat.Title = newTitle

	filtered := s.state.FilteredChats[projectID]
	for i := range filtered {
		if filtered[i].ID == chatID {
			filtered[i].Title = newTitle
			break
		}
	}

	return true, s.persist()
}

// SetChatPreview records the last-known message snippet on a chat.
func (s *Store) SetChatPreview(projectID, chatID, preview string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	chat := s.state.ChatByID(projectID, chatID)
	if chat == nil {
		return false, nil
	}
	chat.Preview = preview

	filtered := s.state.FilteredChats[projectID]
	for i := range filtered {
		if filtered[i].ID == chatID {
			filtered[i].Preview = preview
			break
		}
	}

	return true, s.persist()
}

// DeleteChat removes a chat from the canonical and filtered lists.
func (s *Store) DeleteChat(projectID, chatID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	chats, removed := removeChat(s.state.Chats[projectID], chatID)
	if !removed {
		return false, nil
	}
	s.state.Chats[projectID] = chats
	s.state.FilteredChats[projectID], _ = removeChat(s.state.FilteredChats[projectID], chatID)

	if s.state.SelectedChatID == chatID {
		s.state.SelectedChatID = ""
	}

	return true, s.persist()
}

func removeChat(chats []models.Chat, chatID string) ([]models.Chat, bool) {
	for i := range chats {
		if chats[i].ID == chatID {
			return append(chats[:i], chats[i+1:]...), true
		}
	}
	return chats, false
}

// CreateUserChat adds a peer chat. Blank usernames are a no-op.
func (s *Store) CreateUserChat(username string) (models.UserChat, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	username = strings.TrimSpace(username)
	if username == "" {
		return models.UserChat{}, false, nil
	}

	chat := models.UserChat{
		ID:        uuid.NewString(),
		Username:  username,
		Timestamp: time.Now().Format("15:04"),
	}
	s.state.UserChats = append(s.state.UserChats, chat)
	s.state.FilteredUserChats = append(s.state.FilteredUserChats, chat)

	return chat, true, s.persist()
}

// RenameUserChat updates a peer chat's display name.
func (s *Store) RenameUserChat(id, newName string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	newName = strings.TrimSpace(newName)
	if newName == "" {
		return false, nil
	}
	chat := s.state.UserChatByID(id)
	if chat == nil {
		return false, nil
	}
	chat.Username = newName

	for i := range s.state.FilteredUserChats {
		if s.state.FilteredUserChats[i].ID == id {
			s.state.FilteredUserChats[i].Username = newName
			break
		}
	}

	return true, s.persist()
}

// DeleteUserChat removes a peer chat together with its private message slot.
func (s *Store) DeleteUserChat(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := -1
	for i := range s.state.UserChats {
		if s.state.UserChats[i].ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		return false, nil
	}

	s.state.UserChats = append(s.state.UserChats[:index], s.state.UserChats[index+1:]...)
	for i := range s.state.FilteredUserChats {
		if s.state.FilteredUserChats[i].ID == id {
			s.state.FilteredUserChats = append(s.state.FilteredUserChats[:i], s.state.FilteredUserChats[i+1:]...)
			break
		}
	}

	if s.state.SelectedChatID == id {
		s.state.SelectedChatID = ""
	}

	if err := s.adapter.DeleteChatMessages(id); err != nil {
		return true, err
	}
	return true, s.persist()
}

// SetMetric attaches a key/value metric to a project. Keys are not unique;
// every call creates a new record. Unknown colors are rejected.
func (s *Store) SetMetric(projectID, key, value, color string) (models.Metric, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key = strings.TrimSpace(key)
	if key == "" || s.state.ProjectByID(projectID) == nil {
		return models.Metric{}, false, nil
	}
	if !models.ValidMetricColor(color) {
		return models.Metric{}, false, fmt.Errorf("unknown metric color %q", color)
	}

	metric := models.Metric{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Key:       key,
		Value:     value,
		Color:     color,
	}
	s.state.Metrics = append(s.state.Metrics, metric)

	return metric, true, s.persist()
}

// DeleteMetric removes one metric record by id.
func (s *Store) DeleteMetric(metricID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Metrics {
		if s.state.Metrics[i].ID == metricID {
			s.state.Metrics = append(s.state.Metrics[:i], s.state.Metrics[i+1:]...)
			return true, s.persist()
		}
	}
	return false, nil
}

// AppendMessage adds a message to the flat history. An empty projectID
// leaves the message unassociated.
func (s *Store) AppendMessage(sender models.Sender, text, projectID string) (models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	message := models.Message{
		ID:        uuid.NewString(),
		Sender:    sender,
		Text:      text,
		Timestamp: time.Now(),
		ProjectID: projectID,
	}
	s.state.Messages = append(s.state.Messages, message)

	return message, s.persist()
}

// UserChatMessages returns the private message list of one peer chat.
func (s *Store) UserChatMessages(userChatID string) ([]models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adapter.ReadChatMessages(userChatID)
}

// AppendUserChatMessage adds a message to a peer chat's private list and
// updates the chat's last-message snippet.
func (s *Store) AppendUserChatMessage(userChatID string, sender models.Sender, text string) (models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	chat := s.state.UserChatByID(userChatID)
	if chat == nil {
		return models.ChatMessage{}, fmt.Errorf("unknown user chat %q", userChatID)
	}

	messages, err := s.adapter.ReadChatMessages(userChatID)
	if err != nil {
		return models.ChatMessage{}, err
	}

	message := models.ChatMessage{
		ID:        uuid.NewString(),
		Sender:    sender,
		Text:      text,
		Timestamp: time.Now(),
	}
	messages = append(messages, message)

	if err := s.adapter.WriteChatMessages(userChatID, messages); err != nil {
		return models.ChatMessage{}, err
	}

	chat.LastMessage = text
	chat.Timestamp = message.Timestamp.Format("15:04")
	for i := range s.state.FilteredUserChats {
		if s.state.FilteredUserChats[i].ID == userChatID {
			s.state.FilteredUserChats[i].LastMessage = text
			s.state.FilteredUserChats[i].Timestamp = chat.Timestamp
			break
		}
	}

	return message, s.persist()
}

// SelectProject records the active project, clearing any chat selection that
// belonged to another project.
func (s *Store) SelectProject(projectID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if projectID != s.state.SelectedProjectID {
		s.state.SelectedChatID = ""
	}
	s.state.SelectedProjectID = projectID
}

// SelectChat records the active chat.
func (s *Store) SelectChat(chatID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SelectedChatID = chatID
}

// OpenDialog records the entity a pending rename/delete confirmation targets.
func (s *Store) OpenDialog(intent models.DialogIntent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Dialog = &intent
}

// CloseDialog clears the pending dialog intent (confirm or cancel).
func (s *Store) CloseDialog() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Dialog = nil
}

// ApplyFilter installs the derived views produced by the search layer.
// Forced expansions are merged into the canonical expansion map so matching
// projects open in the sidebar.
func (s *Store) ApplyFilter(filteredChats map[string][]models.Chat, filteredUserChats []models.UserChat, expand map[string]bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.FilteredChats = filteredChats
	s.state.FilteredUserChats = filteredUserChats
	for id := range expand {
		s.state.ExpandedProjects[id] = true
	}
	return s.persist()
}
