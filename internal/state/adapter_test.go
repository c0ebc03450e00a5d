package state

import (
	"encoding/json"
	"testing"

	"github.com/hcs-labs/hub/internal/localstore"
	"github.com/hcs-labs/hub/internal/models"
)

func TestAdapterRoundTrip(t *testing.T) {
	kv := localstore.NewMemoryStore()

	store, err := Open(kv)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	project, _, _ := store.CreateProject("Alpha")
	store.CreateChat(project.ID)
	store.SetMetric(project.ID, "Fehlerquote", "0.8%", "green")
	store.AppendMessage(models.SenderUser, "hallo", project.ID)

	reloaded, err := Open(kv)
	if err != nil {
		t.Fatalf("Failed to reload store: %v", err)
	}
	snapshot := reloaded.Snapshot()

	if len(snapshot.Projects) != 1 || snapshot.Projects[0].Name != "Alpha" {
		t.Errorf("Projects did not round trip: %+v", snapshot.Projects)
	}
	if len(snapshot.Chats[project.ID]) != 1 || snapshot.Chats[project.ID][0].Title != "Chat 1" {
		t.Errorf("Chats did not round trip: %+v", snapshot.Chats)
	}
	if len(snapshot.MetricsFor(project.ID)) != 1 {
		t.Error("Metrics did not round trip")
	}
	if len(snapshot.MessagesFor(project.ID)) != 1 {
		t.Error("Messages did not round trip")
	}
	if !snapshot.ExpandedProjects[project.ID] {
		t.Error("Expansion flags did not round trip")
	}
}

func TestAdapterWritesEmptyCollections(t *testing.T) {
	kv := localstore.NewMemoryStore()

	store, err := Open(kv)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	project, _, _ := store.CreateProject("Alpha")
	if _, err := store.DeleteProject(project.ID); err != nil {
		t.Fatalf("DeleteProject failed: %v", err)
	}

	// Deleting the last project must be durable, not a skipped write.
	reloaded, err := Open(kv)
	if err != nil {
		t.Fatalf("Failed to reload store: %v", err)
	}
	if len(reloaded.Snapshot().Projects) != 0 {
		t.Error("Deleted project resurrected from a stale slot")
	}
}

func TestAdapterSeedsUserChats(t *testing.T) {
	kv := localstore.NewMemoryStore()

	store, err := Open(kv)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	if len(store.Snapshot().UserChats) != 3 {
		t.Fatalf("Expected seeded user chats, got %d", len(store.Snapshot().UserChats))
	}

	// The seed must be persisted immediately.
	data, ok, _ := kv.Get(localstore.KeyUserChats)
	if !ok {
		t.Fatal("Seed was not written to storage")
	}
	var persisted []models.UserChat
	if err := json.Unmarshal(data, &persisted); err != nil {
		t.Fatalf("Seed slot not valid JSON: %v", err)
	}
	if len(persisted) != 3 {
		t.Errorf("Expected 3 persisted seed chats, got %d", len(persisted))
	}
}

func TestAdapterCorruptSlot(t *testing.T) {
	kv := localstore.NewMemoryStore()
	kv.Put(localstore.KeyProjects, []byte("{not json"))

	store, err := Open(kv)
	if err != nil {
		t.Fatalf("Open should degrade, not fail: %v", err)
	}
	if len(store.Snapshot().Projects) != 0 {
		t.Error("Corrupt slot should fall back to the empty default")
	}

	// The corrupt key is removed so later reads cannot trip over it.
	if _, ok, _ := kv.Get(localstore.KeyProjects); ok {
		t.Error("Corrupt slot should have been deleted")
	}
}

func TestAdapterMigratesLegacyProjects(t *testing.T) {
	kv := localstore.NewMemoryStore()
	kv.Put(localstore.KeyProjects, []byte(`["Alpha","Beta"]`))
	kv.Put(localstore.KeyProjectChats, []byte(`{"Alpha":[{"id":"c1","title":"Chat 1","preview":"","date":"2024-01-02"}]}`))
	kv.Put(localstore.KeyExpandedProjects, []byte(`{"Alpha":true}`))
	kv.Put(localstore.KeyProjectMetrics, []byte(`{"Alpha":{"Fehlerquote":"0.8%"}}`))

	store, err := Open(kv)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	snapshot := store.Snapshot()

	if len(snapshot.Projects) != 2 {
		t.Fatalf("Expected 2 migrated projects, got %d", len(snapshot.Projects))
	}
	alpha := snapshot.ProjectByName("Alpha")
	if alpha == nil || alpha.ID == "" {
		t.Fatal("Migrated project should have a fresh id")
	}

	chats := snapshot.Chats[alpha.ID]
	if len(chats) != 1 || chats[0].Title != "Chat 1" || chats[0].ProjectID != alpha.ID {
		t.Errorf("Legacy chats not remapped onto the new id: %+v", chats)
	}
	if !snapshot.ExpandedProjects[alpha.ID] {
		t.Error("Legacy expansion flag not remapped")
	}

	metrics := snapshot.MetricsFor(alpha.ID)
	if len(metrics) != 1 || metrics[0].Key != "Fehlerquote" || metrics[0].Value != "0.8%" {
		t.Errorf("Legacy nested metrics not migrated: %+v", metrics)
	}
	if metrics[0].ID == "" {
		t.Error("Migrated metric should have an id")
	}
}

func TestAdapterAcceptsMetricRecords(t *testing.T) {
	kv := localstore.NewMemoryStore()
	kv.Put(localstore.KeyProjects, []byte(`[{"id":"p1","name":"Alpha","created_at":"2024-01-02T10:00:00Z"}]`))
	kv.Put(localstore.KeyProjectMetrics, []byte(`[{"id":"m1","project_id":"p1","key":"Audit","value":"bestanden","color":"green"}]`))

	store, err := Open(kv)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	metrics := store.Snapshot().MetricsFor("p1")
	if len(metrics) != 1 || metrics[0].Color != "green" {
		t.Errorf("Metric records not loaded: %+v", metrics)
	}
}
