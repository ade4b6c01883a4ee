package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/poruru/alicf/cli/internal/domain/deployment"
)

func TestFileStoreRecordsAndListsNewestFirst(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), ".deploy", "history.yaml"))
	ctx := context.Background()
	base := time.Date(2026, 1, 8, 12, 0, 0, 0, time.UTC)

	for i, fn := range []string{"hello", "report", "hello"} {
		entry := NewEntry(fn, base.Add(time.Duration(i)*time.Minute))
		entry.State = deployment.StateTriggered
		entry.Triggered = true
		entry.DeploymentID = fn + "-d"
		entry.FinishedAt = entry.StartedAt.Add(5 * time.Second)
		if err := store.Record(ctx, entry); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	all, err := store.List(ctx, "", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}
	if !all[0].StartedAt.Equal(base.Add(2*time.Minute)) || all[0].Function != "hello" {
		t.Fatalf("expected newest first, got %+v", all[0])
	}

	hello, err := store.List(ctx, "hello", 1)
	if err != nil {
		t.Fatalf("list hello: %v", err)
	}
	if len(hello) != 1 || hello[0].Function != "hello" || !hello[0].Triggered || hello[0].ID == "" {
		t.Fatalf("unexpected filtered entries: %+v", hello)
	}
}

func TestFileStoreListWithoutLedger(t *testing.T) {
	entries, err := NewFileStore(filepath.Join(t.TempDir(), "missing.yaml")).List(context.Background(), "", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %v", entries)
	}
}

func TestFileStoreCapsLedger(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "history.yaml"))
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < maxFileEntries+3; i++ {
		if err := store.Record(ctx, NewEntry("hello", base.Add(time.Duration(i)*time.Second))); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}
	current, err := store.load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(current.Entries) != maxFileEntries {
		t.Fatalf("expected %d entries, got %d", maxFileEntries, len(current.Entries))
	}
	if !current.Entries[0].StartedAt.Equal(base.Add(3 * time.Second)) {
		t.Fatalf("expected oldest entries dropped, first is %v", current.Entries[0].StartedAt)
	}
}

func TestFilePathUnderScratchDir(t *testing.T) {
	if got := FilePath("/work/cloudfunctions"); got != filepath.Join("/work/cloudfunctions", ".deploy", "history.yaml") {
		t.Fatalf("unexpected history path: %s", got)
	}
}
