// Package directory fetches item collections and derives filtered views of
// them. Filtering is pure and recomputed from the source list on every
// call; nothing is cached between updates.
package directory

import (
	"strings"

	"github.com/foundloss/foundloss/internal/model"
)

// CategoryAll disables the category constraint.
const CategoryAll = "all"

// Matches reports whether one item satisfies the free-text query and the
// category selector. The query matches case-insensitively against title,
// description and location; the category must be equal unless the selector
// is CategoryAll.
func Matches(item model.Item, query, category string) bool {
	if category != "" && category != CategoryAll && item.Category != category {
		return false
	}
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(item.Title), q) ||
		strings.Contains(strings.ToLower(item.Description), q) ||
		strings.Contains(strings.ToLower(item.Location), q)
}

// Filter returns the subsequence of items matching query and category, in
// input order. Filter(items, "", CategoryAll) returns a copy of items.
func Filter(items []model.Item, query, category string) []model.Item {
	out := make([]model.Item, 0, len(items))
	for _, item := range items {
		if Matches(item, query, category) {
			out = append(out, item)
		}
	}
	return out
}

// Tab selects a slice of the caller's own items on the my-items view.
type Tab string

const (
	TabAll      Tab = "all"
	TabFound    Tab = "found"
	TabLost     Tab = "lost"
	TabResolved Tab = "resolved"
)

// TabFilter narrows the my-items list by tab. Unknown tabs behave as TabAll.
func TabFilter(items []model.Item, tab Tab) []model.Item {
	out := make([]model.Item, 0, len(items))
	for _, item := range items {
		switch tab {
		case TabFound:
			if item.Type != model.TypeFound {
				continue
			}
		case TabLost:
			if item.Type != model.TypeLost {
				continue
			}
		case TabResolved:
			if item.Status != model.StatusResolved {
				continue
			}
		}
		out = append(out, item)
	}
	return out
}

// Stats are the dashboard counters.
type Stats struct {
	Total int
	Found int
	Lost  int
	Mine  int
}

// ComputeStats derives dashboard counters from a recent listing and the
// caller's own items.
func ComputeStats(recent, mine []model.Item) Stats {
	s := Stats{Total: len(recent), Mine: len(mine)}
	for _, item := range recent {
		switch item.Type {
		case model.TypeFound:
			s.Found++
		case model.TypeLost:
			s.Lost++
		}
	}
	return s
}
