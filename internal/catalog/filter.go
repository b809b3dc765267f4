package catalog

import "github.com/verte-zerg/keydrill/internal/model"

// FilterFunc returns true when an item should be kept.
type FilterFunc func(Item) bool

// FilterFor returns the predicate for a difficulty. Custom uses the
// category toggles and ignores each item's minimum difficulty.
func FilterFor(difficulty model.Difficulty, custom model.Categories) FilterFunc {
	switch difficulty {
	case model.Beginner:
		return func(it Item) bool { return it.MinDifficulty == model.Beginner }
	case model.Intermediate:
		return func(it Item) bool {
			return it.MinDifficulty == model.Beginner || it.MinDifficulty == model.Intermediate
		}
	case model.Advanced:
		return func(Item) bool { return true }
	case model.Custom:
		return func(it Item) bool { return categoryEnabled(it.Kind, custom) }
	default:
		return func(Item) bool { return true }
	}
}

// Filter derives the working set from items. When nothing matches, the full
// item list is returned so there is always something to drill.
func Filter(items []Item, difficulty model.Difficulty, custom model.Categories) []Item {
	keep := FilterFor(difficulty, custom)
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	if len(out) == 0 {
		return append([]Item(nil), items...)
	}
	return out
}

// IndexOf returns the position of the item with id in items, or -1.
func IndexOf(items []Item, id string) int {
	for i, it := range items {
		if it.ID() == id {
			return i
		}
	}
	return -1
}

// CountByKind tallies items per kind.
func CountByKind(items []Item) map[Kind]int {
	counts := map[Kind]int{}
	for _, it := range items {
		counts[it.Kind]++
	}
	return counts
}

func categoryEnabled(kind Kind, custom model.Categories) bool {
	switch kind {
	case SingleKey:
		return custom.Single
	case SpecialKey:
		return custom.Special
	case Combo:
		return custom.Combo
	case Sequence:
		return custom.Sequence
	default:
		return false
	}
}
