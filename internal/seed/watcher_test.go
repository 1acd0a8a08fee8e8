package seed

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func writeSeed(t *testing.T, path string, d Data) {
	t.Helper()
	if err := Save(path, d); err != nil {
		t.Fatalf("write seed: %v", err)
	}
}

func TestWatcherDeliversReload(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "seed.yaml")
	writeSeed(t, path, Default())

	w, err := Watch(path)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	updated := Default()
	updated.SearchHistory = []string{"吉他"}
	writeSeed(t, path, updated)

	select {
	case d, ok := <-w.Reloads:
		if !ok {
			t.Fatal("Reloads closed before delivering")
		}
		if len(d.SearchHistory) != 1 || d.SearchHistory[0] != "吉他" {
			t.Errorf("reloaded search history = %v", d.SearchHistory)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no reload delivered")
	}
}

func TestWatcherSkipsMalformedWrite(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "seed.yaml")
	writeSeed(t, path, Default())

	w, err := Watch(path)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	// A malformed write is logged and skipped, not delivered.
	if err := os.WriteFile(path, []byte("posts: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case d := <-w.Reloads:
		t.Fatalf("malformed seed delivered: %d posts", len(d.Posts))
	case <-time.After(600 * time.Millisecond):
	}

	// The next good write still comes through.
	updated := Default()
	updated.Schools = []string{"修复大学"}
	writeSeed(t, path, updated)

	select {
	case d := <-w.Reloads:
		if len(d.Schools) != 1 || d.Schools[0] != "修复大学" {
			t.Errorf("reloaded schools = %v", d.Schools)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("recovery reload not delivered")
	}
}

func TestWatcherClose(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "seed.yaml")
	writeSeed(t, path, Default())

	w, err := Watch(path)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if _, ok := <-w.Reloads; ok {
		t.Error("Reloads still open after Close")
	}
}
