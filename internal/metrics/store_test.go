package metrics

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRecordConversationFromEmptyStore(t *testing.T) {
	t.Parallel()

	store := NewStore(NewMemoryPersistence())
	store.RecordConversation()

	if got := store.Read(); got.TotalConversations != 1 {
		t.Fatalf("totalConversations = %d, want 1", got.TotalConversations)
	}
}

func TestAccuracyScoreAveragesSamples(t *testing.T) {
	t.Parallel()

	store := NewStore(NewMemoryPersistence())
	if got := store.Read(); got.AIAccuracyScore != 0 {
		t.Fatalf("empty store accuracy = %d, want 0", got.AIAccuracyScore)
	}

	store.RecordAnalysisSample(80)
	store.RecordAnalysisSample(60)

	if got := store.Read(); got.AIAccuracyScore != 70 {
		t.Fatalf("accuracy = %d, want 70", got.AIAccuracyScore)
	}
}

func TestEachEventMutatesOneField(t *testing.T) {
	t.Parallel()

	store := NewStore(NewMemoryPersistence())
	store.RecordVideoProcessed()

	got := store.Read()
	if got.VideosProcessed != 1 {
		t.Fatalf("videosProcessed = %d, want 1", got.VideosProcessed)
	}
	if got.TotalConversations != 0 || got.AIAccuracyScore != 0 {
		t.Fatalf("unrelated fields mutated: %+v", got)
	}
}

func TestSubscribersEachNotifiedOnce(t *testing.T) {
	t.Parallel()

	store := NewStore(NewMemoryPersistence())

	var first, second int
	unsubscribeFirst := store.Subscribe(func(Dashboard) { first++ })
	store.Subscribe(func(Dashboard) { second++ })

	store.RecordConversation()
	if first != 1 || second != 1 {
		t.Fatalf("expected one notification each, got first=%d second=%d", first, second)
	}

	unsubscribeFirst()
	unsubscribeFirst() // idempotent

	store.RecordConversation()
	if first != 1 {
		t.Fatalf("unsubscribed handler still notified: %d", first)
	}
	if second != 2 {
		t.Fatalf("remaining handler missed an event: %d", second)
	}
}

func TestSubscriberSeesDerivedView(t *testing.T) {
	t.Parallel()

	store := NewStore(NewMemoryPersistence())

	var seen Dashboard
	store.Subscribe(func(d Dashboard) { seen = d })
	store.RecordAnalysisSample(90)

	if seen.AIAccuracyScore != 90 {
		t.Fatalf("subscriber saw %+v, want accuracy 90", seen)
	}
}

func TestFilePersistenceRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "metrics.json")
	store := NewStore(NewFilePersistence(path))

	store.RecordConversation()
	store.RecordVideoProcessed()
	store.RecordAnalysisSample(75)

	// A fresh store over the same file sees the persisted record.
	reopened := NewStore(NewFilePersistence(path))
	got := reopened.Read()
	if got.TotalConversations != 1 || got.VideosProcessed != 1 || got.AIAccuracyScore != 75 {
		t.Fatalf("reloaded view %+v", got)
	}
}

func TestFilePersistenceToleratesCorruptRecord(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "metrics.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewStore(NewFilePersistence(path))
	if got := store.Read(); got != (Dashboard{}) {
		t.Fatalf("corrupt record should read as zeros, got %+v", got)
	}

	// Recording over a corrupt record starts from zero rather than failing.
	store.RecordConversation()
	if got := store.Read(); got.TotalConversations != 1 {
		t.Fatalf("totalConversations = %d, want 1", got.TotalConversations)
	}
}
