package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-flap/internal/config"
	"github.com/vovakirdan/tui-flap/internal/replay"
	"github.com/vovakirdan/tui-flap/internal/sim"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// sampleRecording records a short run with a tap every tapEvery frames.
func sampleRecording(seed int64, tapEvery, frames int) replay.Recording {
	r := replay.NewRecorder(config.DefaultFlapConfig(), seed, "test")
	clock := sim.NewJitterClock(16*time.Millisecond, 5*time.Millisecond, seed)
	for i := 0; i < frames; i++ {
		if i%tapEvery == 0 {
			r.Tap()
		}
		r.Step(clock.Tick())
	}
	return r.Recording()
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndLoadReplay(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	rec := sampleRecording(42, 25, 800)
	id, err := store.SaveReplay(ctx, rec)
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}

	got, err := store.Replay(ctx, id)
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}

	if got.ID != id || got.Seed != 42 || got.Source != "test" {
		t.Errorf("header = id %d seed %d source %q", got.ID, got.Seed, got.Source)
	}
	if got.Outcome != rec.Outcome {
		t.Errorf("Outcome = %s, expected %s", got.Outcome, rec.Outcome)
	}
	if got.Config != rec.Config {
		t.Errorf("Config did not round trip:\n%+v\n%+v", got.Config, rec.Config)
	}
	if len(got.Frames) != len(rec.Frames) {
		t.Fatalf("loaded %d frames, expected %d", len(got.Frames), len(rec.Frames))
	}
	for i := range rec.Frames {
		if got.Frames[i] != rec.Frames[i] {
			t.Fatalf("frame %d = %+v, expected %+v", i, got.Frames[i], rec.Frames[i])
		}
	}

	// A loaded replay re-runs to the same outcome
	if err := replay.Verify(got); err != nil {
		t.Errorf("Verify() on loaded replay = %v", err)
	}
}

func TestStoreReplayNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Replay(context.Background(), 999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Replay(999) = %v, expected ErrNotFound", err)
	}
}

func TestStoreRecentReplays(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 5; i++ {
		id, err := store.SaveReplay(ctx, sampleRecording(int64(i), 10, 50))
		if err != nil {
			t.Fatalf("SaveReplay() failed: %v", err)
		}
		ids = append(ids, id)
	}

	// Request only the 3 newest
	list, err := store.RecentReplays(ctx, 3)
	if err != nil {
		t.Fatalf("RecentReplays() failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("Expected 3 replays with limit, got %d", len(list))
	}
	if list[0].ID != ids[4] || list[2].ID != ids[2] {
		t.Errorf("replays not newest first: %v", list)
	}
	if list[0].FrameCount != 50 || list[0].Seed != 4 {
		t.Errorf("summary = %+v, expected 50 frames and seed 4", list[0])
	}
}

func TestStoreDeleteReplay(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	keep, _ := store.SaveReplay(ctx, sampleRecording(1, 10, 30))
	drop, _ := store.SaveReplay(ctx, sampleRecording(2, 10, 30))

	if err := store.DeleteReplay(ctx, drop); err != nil {
		t.Fatalf("DeleteReplay() failed: %v", err)
	}
	if _, err := store.Replay(ctx, drop); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted replay still loads: %v", err)
	}
	if _, err := store.Replay(ctx, keep); err != nil {
		t.Errorf("other replay should not be affected: %v", err)
	}

	var frames int
	if err := store.db.QueryRow("SELECT COUNT(*) FROM replay_frames WHERE replay_id = ?", drop).Scan(&frames); err != nil {
		t.Fatal(err)
	}
	if frames != 0 {
		t.Errorf("%d frames left behind after delete", frames)
	}

	if err := store.DeleteReplay(ctx, drop); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete = %v, expected ErrNotFound", err)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	// Nested directories are created on open
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
