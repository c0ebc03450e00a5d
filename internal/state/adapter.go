package state

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/hcs-labs/hub/internal/localstore"
	"github.com/hcs-labs/hub/internal/models"
)

// Adapter synchronizes the named slots of a State with a localstore.Store.
// It owns the slot layout; nothing else in the hub touches those keys.
type Adapter struct {
	kv localstore.Store
}

func NewAdapter(kv localstore.Store) *Adapter {
	return &Adapter{kv: kv}
}

// Load builds a State from the stored slots. Missing slots fall back to
// defaults; an unparseable slot is logged, deleted, and treated as missing.
// When no userChats slot exists the built-in sample list is seeded and
// persisted immediately.
func (a *Adapter) Load() (*State, error) {
	st := NewState()

	legacyNames := a.loadProjects(st)
	a.loadChats(st, legacyNames)
	a.loadExpanded(st, legacyNames)
	a.loadMessages(st, legacyNames)
	a.loadMetrics(st, legacyNames)

	if err := a.loadUserChats(st); err != nil {
		return nil, err
	}

	// Derived views start as copies of the canonical collections.
	st.FilteredChats = cloneChatMap(st.Chats)
	st.FilteredUserChats = append([]models.UserChat(nil), st.UserChats...)

	return st, nil
}

// Save writes every state-owned slot. Empty collections are written too, so
// deleting the last item of a collection is durable.
func (a *Adapter) Save(st *State) error {
	slots := []struct {
		key   string
		value interface{}
	}{
		{localstore.KeyProjects, st.Projects},
		{localstore.KeyProjectChats, st.Chats},
		{localstore.KeyExpandedProjects, st.ExpandedProjects},
		{localstore.KeyUserChats, st.UserChats},
		{localstore.KeyMessages, st.Messages},
		{localstore.KeyProjectMetrics, st.Metrics},
	}

	for _, slot := range slots {
		data, err := json.Marshal(slot.value)
		if err != nil {
			return fmt.Errorf("failed to encode slot %q: %w", slot.key, err)
		}
		if err := a.kv.Put(slot.key, data); err != nil {
			return err
		}
	}
	return nil
}

// ReadChatMessages returns the private message list of one user chat.
func (a *Adapter) ReadChatMessages(userChatID string) ([]models.ChatMessage, error) {
	key := localstore.ChatMessagesKey(userChatID)
	var messages []models.ChatMessage
	if !a.readSlot(key, &messages) {
		return nil, nil
	}
	return messages, nil
}

// WriteChatMessages replaces the private message list of one user chat.
func (a *Adapter) WriteChatMessages(userChatID string, messages []models.ChatMessage) error {
	data, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("failed to encode chat messages: %w", err)
	}
	return a.kv.Put(localstore.ChatMessagesKey(userChatID), data)
}

// DeleteChatMessages removes a user chat's message slot.
func (a *Adapter) DeleteChatMessages(userChatID string) error {
	return a.kv.Delete(localstore.ChatMessagesKey(userChatID))
}

// readSlot decodes a slot into out. Returns false when the slot is absent or
// corrupt; a corrupt slot is deleted so it cannot poison later reads.
func (a *Adapter) readSlot(key string, out interface{}) bool {
	data, ok, err := a.kv.Get(key)
	if err != nil {
		log.Printf("failed to read slot %q: %v", key, err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Printf("corrupt slot %q, resetting: %v", key, err)
		if delErr := a.kv.Delete(key); delErr != nil {
			log.Printf("failed to delete corrupt slot %q: %v", key, delErr)
		}
		return false
	}
	return true
}

// rawSlot returns the undecoded slot value, or nil when absent.
func (a *Adapter) rawSlot(key string) []byte {
	data, ok, err := a.kv.Get(key)
	if err != nil {
		log.Printf("failed to read slot %q: %v", key, err)
		return nil
	}
	if !ok {
		return nil
	}
	return data
}

// dropCorrupt logs and deletes a slot that decoded as no known format.
func (a *Adapter) dropCorrupt(key string, err error) {
	log.Printf("corrupt slot %q, resetting: %v", key, err)
	if delErr := a.kv.Delete(key); delErr != nil {
		log.Printf("failed to delete corrupt slot %q: %v", key, delErr)
	}
}

// loadProjects fills st.Projects. The legacy format was a bare name array;
// when found, fresh ids are assigned and the name→id mapping is returned so
// the other legacy slots can be remapped.
func (a *Adapter) loadProjects(st *State) map[string]string {
	data := a.rawSlot(localstore.KeyProjects)
	if data == nil {
		return nil
	}

	var projects []models.Project
	if err := json.Unmarshal(data, &projects); err == nil && validProjects(projects) {
		st.Projects = projects
		return nil
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		a.dropCorrupt(localstore.KeyProjects, err)
		return nil
	}
	legacy := make(map[string]string, len(names))
	for _, name := range names {
		id := uuid.NewString()
		legacy[name] = id
		st.Projects = append(st.Projects, models.Project{ID: id, Name: name})
	}
	return legacy
}

func validProjects(projects []models.Project) bool {
	for _, p := range projects {
		if p.ID == "" {
			return false
		}
	}
	return true
}

func (a *Adapter) loadChats(st *State, legacy map[string]string) {
	var chats map[string][]models.Chat
	if !a.readSlot(localstore.KeyProjectChats, &chats) {
		return
	}
	for key, list := range chats {
		id := remapKey(key, legacy)
		for i := range list {
			list[i].ProjectID = id
		}
		st.Chats[id] = list
	}
}

func (a *Adapter) loadExpanded(st *State, legacy map[string]string) {
	var expanded map[string]bool
	if !a.readSlot(localstore.KeyExpandedProjects, &expanded) {
		return
	}
	for key, value := range expanded {
		st.ExpandedProjects[remapKey(key, legacy)] = value
	}
}

func (a *Adapter) loadMessages(st *State, legacy map[string]string) {
	var messages []models.Message
	if !a.readSlot(localstore.KeyMessages, &messages) {
		return
	}
	for i := range messages {
		messages[i].ProjectID = remapKey(messages[i].ProjectID, legacy)
	}
	st.Messages = messages
}

// loadMetrics accepts the authoritative record array, falling back to the
// legacy nested map[project]map[key]value as an import format.
func (a *Adapter) loadMetrics(st *State, legacy map[string]string) {
	data := a.rawSlot(localstore.KeyProjectMetrics)
	if data == nil {
		return
	}

	var metrics []models.Metric
	if err := json.Unmarshal(data, &metrics); err == nil && validMetrics(metrics) {
		for i := range metrics {
			metrics[i].ProjectID = remapKey(metrics[i].ProjectID, legacy)
		}
		st.Metrics = metrics
		return
	}

	var nested map[string]map[string]string
	if err := json.Unmarshal(data, &nested); err != nil {
		a.dropCorrupt(localstore.KeyProjectMetrics, err)
		return
	}
	for projectKey, kvs := range nested {
		projectID := remapKey(projectKey, legacy)
		for key, value := range kvs {
			st.Metrics = append(st.Metrics, models.Metric{
				ID:        uuid.NewString(),
				ProjectID: projectID,
				Key:       key,
				Value:     value,
			})
		}
	}
}

func validMetrics(metrics []models.Metric) bool {
	for _, m := range metrics {
		if m.ID == "" {
			return false
		}
	}
	return true
}

func (a *Adapter) loadUserChats(st *State) error {
	var userChats []models.UserChat
	if a.readSlot(localstore.KeyUserChats, &userChats) {
		st.UserChats = userChats
		return nil
	}

	st.UserChats = models.SeedUserChats()
	data, err := json.Marshal(st.UserChats)
	if err != nil {
		return fmt.Errorf("failed to encode seed user chats: %w", err)
	}
	if err := a.kv.Put(localstore.KeyUserChats, data); err != nil {
		return fmt.Errorf("failed to seed user chats: %w", err)
	}
	return nil
}

func remapKey(key string, legacy map[string]string) string {
	if legacy == nil {
		return key
	}
	if id, ok := legacy[key]; ok {
		return id
	}
	return key
}
