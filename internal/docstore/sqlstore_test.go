package docstore

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"lingodrill/internal/database"
)

// newTestSQLStore spins up a SQLite-backed store in a temp directory
func newTestSQLStore(t *testing.T) *SQLStore {
	t.Helper()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "docstore_test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	store := NewSQLStore(db, "lingodrill-test")
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLStoreRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	store := newTestSQLStore(t)
	ctx := context.Background()

	if _, err := store.Get(ctx, "anon-1", "profile", "main"); err != ErrNotFound {
		t.Errorf("Get on missing document = %v, want ErrNotFound", err)
	}

	profile := testProfile{DisplayName: "Curious Otter", Email: "otter@example.com"}
	if err := store.Set(ctx, "anon-1", "profile", "main", profile); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	doc, err := store.Get(ctx, "anon-1", "profile", "main")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	var got testProfile
	if err := doc.Decode(&got); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got != profile {
		t.Errorf("Decoded profile = %+v, want %+v", got, profile)
	}

	// Overwrite through the dialect upsert path
	if err := store.Set(ctx, "anon-1", "profile", "main", testProfile{DisplayName: "Brave Badger"}); err != nil {
		t.Fatalf("Second Set failed: %v", err)
	}
	doc, err = store.Get(ctx, "anon-1", "profile", "main")
	if err != nil {
		t.Fatalf("Get after overwrite failed: %v", err)
	}
	got = testProfile{}
	if err := doc.Decode(&got); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got.DisplayName != "Brave Badger" {
		t.Errorf("DisplayName = %v, want Brave Badger", got.DisplayName)
	}
	if got.Email != "" {
		t.Errorf("Email = %v, want empty after full overwrite", got.Email)
	}
}

func TestSQLStoreMerge(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	store := newTestSQLStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "anon-1", "profile", "main", map[string]interface{}{
		"displayName": "Curious Otter",
		"email":       "otter@example.com",
	}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if err := store.Merge(ctx, "anon-1", "profile", "main", map[string]interface{}{
		"displayName": "Brave Badger",
	}); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	doc, err := store.Get(ctx, "anon-1", "profile", "main")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	var got map[string]interface{}
	if err := json.Unmarshal(doc.Body, &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if got["displayName"] != "Brave Badger" {
		t.Errorf("displayName = %v, want Brave Badger", got["displayName"])
	}
	if got["email"] != "otter@example.com" {
		t.Errorf("email = %v, want preserved value", got["email"])
	}

	// Merge into a collection that has no document yet
	if err := store.Merge(ctx, "anon-1", "progress", "main", map[string]interface{}{
		"lastCompletedLessonId": "lesson-03",
	}); err != nil {
		t.Fatalf("Merge into missing document failed: %v", err)
	}
	if _, err := store.Get(ctx, "anon-1", "progress", "main"); err != nil {
		t.Errorf("Get after creating merge failed: %v", err)
	}
}

func TestSQLStoreAddAndList(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	store := newTestSQLStore(t)
	ctx := context.Background()

	ids := make(map[string]bool)
	for i := 0; i < 3; i++ {
		id, err := store.Add(ctx, "anon-1", "dictationResults", map[string]interface{}{"attempt": i})
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if ids[id] {
			t.Fatalf("Add returned duplicate ID %s", id)
		}
		ids[id] = true
	}

	docs, err := store.List(ctx, "anon-1", "dictationResults", 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("List returned %d documents, want 3", len(docs))
	}
	for _, doc := range docs {
		if !ids[doc.ID] {
			t.Errorf("List returned unknown ID %s", doc.ID)
		}
	}

	limited, err := store.List(ctx, "anon-1", "dictationResults", 2)
	if err != nil {
		t.Fatalf("List with limit failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("List with limit returned %d documents, want 2", len(limited))
	}

	// Another identity sees nothing
	other, err := store.List(ctx, "anon-2", "dictationResults", 10)
	if err != nil {
		t.Fatalf("List for other identity failed: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("List for other identity returned %d documents, want 0", len(other))
	}
}

func TestSQLStoreWatch(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	store := newTestSQLStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "anon-1", "progress", "main", map[string]string{"lastCompletedLessonId": "lesson-01"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	sub, err := store.Watch(ctx, "anon-1", "progress", "main")
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer sub.Close()

	snapshot := recv(t, sub)
	var got map[string]string
	if err := json.Unmarshal(snapshot.Body, &got); err != nil {
		t.Fatalf("Unmarshal snapshot failed: %v", err)
	}
	if got["lastCompletedLessonId"] != "lesson-01" {
		t.Errorf("snapshot = %v, want lesson-01", got["lastCompletedLessonId"])
	}

	if err := store.Merge(ctx, "anon-1", "progress", "main", map[string]interface{}{
		"lastCompletedLessonId": "lesson-02",
	}); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	update := recv(t, sub)
	if err := json.Unmarshal(update.Body, &got); err != nil {
		t.Fatalf("Unmarshal update failed: %v", err)
	}
	if got["lastCompletedLessonId"] != "lesson-02" {
		t.Errorf("update = %v, want lesson-02", got["lastCompletedLessonId"])
	}
}
