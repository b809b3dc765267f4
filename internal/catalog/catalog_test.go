package catalog

import (
	"strings"
	"testing"

	"github.com/verte-zerg/keydrill/internal/key"
	"github.com/verte-zerg/keydrill/internal/model"
)

func TestBuildSpansKindsAndTiers(t *testing.T) {
	items := Build()
	if len(items) != 112 {
		t.Fatalf("expected 112 items, got %d", len(items))
	}
	counts := CountByKind(items)
	want := map[Kind]int{SingleKey: 26, SpecialKey: 11, Combo: 37, Sequence: 38}
	for kind, n := range want {
		if counts[kind] != n {
			t.Fatalf("expected %d %s items, got %d", n, kind, counts[kind])
		}
	}
	tiers := map[model.Difficulty]bool{}
	for _, it := range items {
		tiers[it.MinDifficulty] = true
	}
	for _, d := range []model.Difficulty{model.Beginner, model.Intermediate, model.Advanced} {
		if !tiers[d] {
			t.Fatalf("expected items at tier %s", d)
		}
	}
}

func TestBuildIsDeterministicWithUniqueIDs(t *testing.T) {
	a := Build()
	b := Build()
	seen := map[string]struct{}{}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("item %d differs between builds: %+v vs %+v", i, a[i], b[i])
		}
		if _, dup := seen[a[i].ID()]; dup {
			t.Fatalf("duplicate item id %s", a[i].ID())
		}
		seen[a[i].ID()] = struct{}{}
	}
}

func TestTextItemsShareSource(t *testing.T) {
	for _, it := range Build() {
		switch it.Kind {
		case SingleKey, Sequence:
			if it.Sequence == "" || it.Code != key.CodeNone {
				t.Fatalf("text item %s has wrong fields: %+v", it.ID(), it)
			}
			if strings.ToUpper(it.Sequence) != it.Label {
				t.Fatalf("label %q does not match sequence %q", it.Label, it.Sequence)
			}
			if it.Kind == Sequence && (it.Length() < 2 || it.Length() > 6) {
				t.Fatalf("sequence %q has length %d", it.Sequence, it.Length())
			}
		case Combo, SpecialKey:
			if it.Sequence != "" || it.Code == key.CodeNone {
				t.Fatalf("key item %s has wrong fields: %+v", it.ID(), it)
			}
		}
	}
}

func TestExactlyOneCloseIntentCombo(t *testing.T) {
	found := 0
	for _, it := range Build() {
		if it.IsCloseIntent() {
			found++
			if it.Label != "Alt+F4" {
				t.Fatalf("unexpected close combo label %q", it.Label)
			}
		}
	}
	if found != 1 {
		t.Fatalf("expected one close-intent combo, got %d", found)
	}
}

func TestShiftDigitCombosUseSymbols(t *testing.T) {
	items := Build()
	idx := IndexOf(items, "combo:Shift+1")
	if idx < 0 {
		t.Fatalf("expected Shift+1 combo")
	}
	if items[idx].Code != key.Exclam || items[idx].Modifiers != key.ModShift {
		t.Fatalf("unexpected Shift+1 item: %+v", items[idx])
	}
}
