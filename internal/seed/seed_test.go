package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"campuslink/internal/feed"
)

func TestDefault(t *testing.T) {
	d := Default()

	if d.User.ID != "me" || d.User.Name != "陈同学" {
		t.Errorf("seed user = %+v", d.User)
	}
	if len(d.Posts) != 7 {
		t.Fatalf("seed post count = %d, want 7", len(d.Posts))
	}
	if len(d.Threads) != 2 {
		t.Errorf("seed thread count = %d, want 2", len(d.Threads))
	}
	if len(d.Schools) == 0 || d.Schools[0] != "福建商学院" {
		t.Errorf("schools = %v", d.Schools)
	}
	if len(d.SearchHistory) != 4 {
		t.Errorf("search history = %v", d.SearchHistory)
	}

	// Ids must be unique; downstream lookups key on them.
	seen := map[string]bool{}
	for _, p := range d.Posts {
		if seen[p.ID] {
			t.Errorf("duplicate post id %s", p.ID)
		}
		seen[p.ID] = true
	}

	// Every market post carries a price.
	for _, p := range d.Posts {
		if p.Kind.IsMarket() && p.Price <= 0 {
			t.Errorf("market post %s has no price", p.ID)
		}
	}

	// The anonymous post must not leak a display name.
	for _, p := range d.Posts {
		if p.IsAnonymous && p.DisplayName() != "匿名同学" {
			t.Errorf("anonymous post %s shows %q", p.ID, p.DisplayName())
		}
	}
}

func TestDefault_FreshCopies(t *testing.T) {
	a := Default()
	a.Posts[0].Body = "mutated"
	a.Schools[0] = "mutated"

	b := Default()
	if b.Posts[0].Body == "mutated" || b.Schools[0] == "mutated" {
		t.Error("Default() shares state between calls")
	}
}

func TestLoadMissingFile(t *testing.T) {
	d, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}
	if diff := cmp.Diff(Default(), d); diff != "" {
		t.Errorf("missing file should yield defaults (-want +got):\n%s", diff)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("posts: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load on malformed file succeeded")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	want := Default()
	want.Posts = append([]feed.Post{{
		ID: "extra", Kind: feed.KindTrade, Category: "闲置",
		Body: "出自行车", Price: 120, Tags: []string{"出行"},
	}}, want.Posts...)

	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// YAML does not distinguish nil from empty slices.
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
