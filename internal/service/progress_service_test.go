package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"lingodrill/internal/curriculum"
	"lingodrill/internal/docstore"
	"lingodrill/internal/models"
)

func TestSnapshotFreshLearner(t *testing.T) {
	svc := NewProgressService(docstore.NewMemoryStore(), nil)

	snap, err := svc.Snapshot(context.Background(), "anon-1")
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	if snap.NextIndex != 0 {
		t.Errorf("NextIndex = %d, want 0", snap.NextIndex)
	}
	if snap.AllComplete {
		t.Error("AllComplete = true for a fresh learner")
	}
	if len(snap.Lessons) != len(curriculum.Lessons()) {
		t.Errorf("snapshot has %d lessons, want %d", len(snap.Lessons), len(curriculum.Lessons()))
	}
	for i, done := range snap.Completed {
		if done {
			t.Errorf("Completed[%d] = true for a fresh learner", i)
		}
	}
}

func TestMarkLessonComplete(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := NewProgressService(store, nil)
	ctx := context.Background()

	first := curriculum.Lessons()[0]
	snap, err := svc.MarkLessonComplete(ctx, "anon-1", first.ID, "Jane Doe")
	if err != nil {
		t.Fatalf("MarkLessonComplete failed: %v", err)
	}

	if snap.NextIndex != 1 {
		t.Errorf("NextIndex = %d, want 1", snap.NextIndex)
	}
	if !snap.Completed[0] {
		t.Error("Completed[0] = false after completing the first lesson")
	}

	// The write must survive a fresh read
	doc, err := store.Get(ctx, "anon-1", models.CollectionProgress, models.DocMain)
	if err != nil {
		t.Fatalf("progress document not stored: %v", err)
	}
	var record models.ProgressRecord
	if err := doc.Decode(&record); err != nil {
		t.Fatalf("decoding progress record: %v", err)
	}
	if record.LastCompletedLessonID != first.ID {
		t.Errorf("stored lastCompletedLessonId = %q, want %q", record.LastCompletedLessonID, first.ID)
	}
	if record.DisplayName != "Jane Doe" {
		t.Errorf("stored displayName = %q, want Jane Doe", record.DisplayName)
	}
	if record.CompletedAt.IsZero() {
		t.Error("stored completedAt is zero")
	}
}

func TestMarkLessonCompleteUnknownLesson(t *testing.T) {
	svc := NewProgressService(docstore.NewMemoryStore(), nil)

	_, err := svc.MarkLessonComplete(context.Background(), "anon-1", "lesson-99", "")
	if !errors.Is(err, ErrUnknownLesson) {
		t.Errorf("MarkLessonComplete(unknown) error = %v, want ErrUnknownLesson", err)
	}
}

func TestMarkFinalLessonCompletesCourse(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := NewProgressService(store, nil)

	all := curriculum.Lessons()
	final := all[len(all)-1]

	snap, err := svc.MarkLessonComplete(context.Background(), "anon-1", final.ID, "")
	if err != nil {
		t.Fatalf("MarkLessonComplete failed: %v", err)
	}

	if snap.NextIndex != len(all) {
		t.Errorf("NextIndex = %d, want %d", snap.NextIndex, len(all))
	}
	if !snap.AllComplete {
		t.Error("AllComplete = false after the final lesson")
	}
	for i, done := range snap.Completed {
		if !done {
			t.Errorf("Completed[%d] = false after the final lesson", i)
		}
	}
}

func TestSnapshotUnknownStoredLessonFallsBack(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := NewProgressService(store, nil)
	ctx := context.Background()

	record := models.ProgressRecord{LastCompletedLessonID: "lesson-gone", CompletedAt: time.Now()}
	if err := store.Set(ctx, "anon-1", models.CollectionProgress, models.DocMain, record); err != nil {
		t.Fatalf("seeding progress: %v", err)
	}

	snap, err := svc.Snapshot(ctx, "anon-1")
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if snap.NextIndex != 0 {
		t.Errorf("NextIndex = %d, want 0 for an unknown stored lesson", snap.NextIndex)
	}
	if snap.AllComplete {
		t.Error("AllComplete = true for an unknown stored lesson")
	}
}

func TestProgressWatchDeliversCompletions(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := NewProgressService(store, nil)
	ctx := context.Background()

	sub, err := svc.Watch(ctx, "anon-1")
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer sub.Close()

	first := curriculum.Lessons()[0]
	if _, err := svc.MarkLessonComplete(ctx, "anon-1", first.ID, ""); err != nil {
		t.Fatalf("MarkLessonComplete failed: %v", err)
	}

	select {
	case doc := <-sub.Updates():
		snap, err := svc.SnapshotFromDocument("anon-1", &doc)
		if err != nil {
			t.Fatalf("SnapshotFromDocument failed: %v", err)
		}
		if snap.NextIndex != 1 {
			t.Errorf("watched NextIndex = %d, want 1", snap.NextIndex)
		}
	case <-time.After(time.Second):
		t.Fatal("no update delivered after lesson completion")
	}
}
