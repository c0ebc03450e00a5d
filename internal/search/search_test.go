package search

import (
	"testing"

	"github.com/hcs-labs/hub/internal/localstore"
	"github.com/hcs-labs/hub/internal/state"
)

func buildState(t *testing.T) (*state.Store, map[string]string) {
	t.Helper()
	store, err := state.Open(localstore.NewMemoryStore())
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}

	ids := make(map[string]string)
	for _, name := range []string{"Qualität", "Prozesse"} {
		project, _, _ := store.CreateProject(name)
		ids[name] = project.ID
	}
	for i := 0; i < 2; i++ {
		store.CreateChat(ids["Qualität"])
	}
	chat, _, _ := store.CreateChat(ids["Prozesse"])
	store.RenameChat(ids["Prozesse"], chat.ID, "Audit Vorbereitung")

	// Seeded user chats include Max Mustermann.
	return store, ids
}

func TestFilterEmptyQueryIsIdentity(t *testing.T) {
	store, ids := buildState(t)
	snapshot := store.Snapshot()

	for _, query := range []string{"", "   "} {
		result := Filter(snapshot, query)

		for name, id := range ids {
			if len(result.FilteredChats[id]) != len(snapshot.Chats[id]) {
				t.Errorf("Empty query should return all chats of %q", name)
			}
		}
		if len(result.FilteredUserChats) != len(snapshot.UserChats) {
			t.Error("Empty query should return all user chats")
		}
		if len(result.Expand) != 0 {
			t.Error("Empty query should not force expansion")
		}
	}
}

func TestFilterProjectNameMatchesAllChats(t *testing.T) {
	store, ids := buildState(t)
	result := Filter(store.Snapshot(), "qualität")

	if len(result.FilteredChats[ids["Qualität"]]) != 2 {
		t.Error("Project name match should include all of its chats")
	}
	if !result.Expand[ids["Qualität"]] {
		t.Error("Matching project should be forced open")
	}
	if _, ok := result.FilteredChats[ids["Prozesse"]]; ok {
		t.Error("Non-matching project with no matching chats should be omitted")
	}
}

func TestFilterChatTitleMatch(t *testing.T) {
	store, ids := buildState(t)
	result := Filter(store.Snapshot(), "audit")

	chats := result.FilteredChats[ids["Prozesse"]]
	if len(chats) != 1 || chats[0].Title != "Audit Vorbereitung" {
		t.Errorf("Expected the matching chat only, got %+v", chats)
	}
	if !result.Expand[ids["Prozesse"]] {
		t.Error("Project with a matching chat should be forced open")
	}
	if _, ok := result.FilteredChats[ids["Qualität"]]; ok {
		t.Error("Project without matches should be omitted")
	}
}

func TestFilterUserChats(t *testing.T) {
	store, _ := buildState(t)
	snapshot := store.Snapshot()

	result := Filter(snapshot, "max")
	if len(result.FilteredUserChats) != 1 || result.FilteredUserChats[0].Username != "Max Mustermann" {
		t.Errorf("Expected Max Mustermann, got %+v", result.FilteredUserChats)
	}

	if result := Filter(snapshot, "zzz"); len(result.FilteredUserChats) != 0 {
		t.Errorf("Expected no matches for zzz, got %+v", result.FilteredUserChats)
	}
}

func TestFilterMonotoneUnderQueryExtension(t *testing.T) {
	store, _ := buildState(t)
	snapshot := store.Snapshot()

	short := Filter(snapshot, "au")
	long := Filter(snapshot, "audit")

	// Every chat matching the longer query must match its prefix too.
	for projectID, chats := range long.FilteredChats {
		shortChats := short.FilteredChats[projectID]
		for _, chat := range chats {
			found := false
			for _, c := range shortChats {
				if c.ID == chat.ID {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("Chat %q matches %q but not its prefix", chat.Title, "audit")
			}
		}
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	store, ids := buildState(t)
	result := Filter(store.Snapshot(), "chat")

	chats := result.FilteredChats[ids["Qualität"]]
	if len(chats) != 2 {
		t.Fatalf("Expected both chats, got %d", len(chats))
	}
	if chats[0].Title != "Chat 1" || chats[1].Title != "Chat 2" {
		t.Errorf("Insertion order not preserved: %q, %q", chats[0].Title, chats[1].Title)
	}
}

func TestFilterMatchesPreview(t *testing.T) {
	store, ids := buildState(t)
	snapshot := store.Snapshot()
	chat := snapshot.Chats[ids["Qualität"]][0]
	store.SetChatPreview(ids["Qualität"], chat.ID, "Besprechung zur Fehlerquote")

	result := Filter(store.Snapshot(), "fehlerquote")
	chats := result.FilteredChats[ids["Qualität"]]
	if len(chats) != 1 || chats[0].ID != chat.ID {
		t.Errorf("Preview match failed: %+v", chats)
	}
}
