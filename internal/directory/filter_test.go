package directory

import (
	"reflect"
	"testing"

	"github.com/foundloss/foundloss/internal/model"
)

func sample() []model.Item {
	return []model.Item{
		{ID: "1", Type: model.TypeFound, Title: "Black iPhone 13", Description: "blue case", Location: "Main Street", Category: "Electronics", Status: model.StatusActive},
		{ID: "2", Type: model.TypeLost, Title: "Gold watch", Description: "engraved", Location: "University library", Category: "Watches", Status: model.StatusActive},
		{ID: "3", Type: model.TypeFound, Title: "Keys on red lanyard", Description: "three keys", Location: "Bus stop", Category: "Keys", Status: model.StatusResolved},
	}
}

func TestFilterIdentity(t *testing.T) {
	t.Parallel()

	items := sample()
	got := Filter(items, "", CategoryAll)
	if !reflect.DeepEqual(got, items) {
		t.Fatalf("Filter(L, \"\", all) != L:\n%v", got)
	}
	// The result is a copy, not an alias of the source list.
	got[0].Title = "mutated"
	if items[0].Title == "mutated" {
		t.Fatal("Filter must not alias the input slice")
	}
}

func TestFilterIsSubsetAndSatisfiesPredicates(t *testing.T) {
	t.Parallel()

	items := sample()
	queries := []string{"", "iphone", "LIBRARY", "keys", "nope"}
	categories := []string{CategoryAll, "Electronics", "Keys", "Watches"}

	byID := map[string]model.Item{}
	for _, item := range items {
		byID[item.ID] = item
	}

	for _, q := range queries {
		for _, c := range categories {
			for _, got := range Filter(items, q, c) {
				if _, ok := byID[got.ID]; !ok {
					t.Fatalf("Filter(%q,%q) returned item outside source: %v", q, c, got)
				}
				if !Matches(got, q, c) {
					t.Fatalf("Filter(%q,%q) kept non-matching item %v", q, c, got)
				}
			}
		}
	}
}

func TestFilterTextMatchesAnyOfThreeFields(t *testing.T) {
	t.Parallel()

	items := sample()
	if got := Filter(items, "iphone", CategoryAll); len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("title match failed: %v", got)
	}
	if got := Filter(items, "engraved", CategoryAll); len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("description match failed: %v", got)
	}
	if got := Filter(items, "bus stop", CategoryAll); len(got) != 1 || got[0].ID != "3" {
		t.Fatalf("location match failed: %v", got)
	}
}

func TestFilterComposesQueryAndCategory(t *testing.T) {
	t.Parallel()

	got := Filter(sample(), "keys", "Electronics")
	if len(got) != 0 {
		t.Fatalf("query and category must both hold, got %v", got)
	}
	got = Filter(sample(), "keys", "Keys")
	if len(got) != 1 || got[0].ID != "3" {
		t.Fatalf("want item 3, got %v", got)
	}
}

func TestTabFilter(t *testing.T) {
	t.Parallel()

	items := sample()
	if got := TabFilter(items, TabAll); len(got) != 3 {
		t.Fatalf("all tab: %v", got)
	}
	if got := TabFilter(items, TabFound); len(got) != 2 {
		t.Fatalf("found tab: %v", got)
	}
	if got := TabFilter(items, TabLost); len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("lost tab: %v", got)
	}
	if got := TabFilter(items, TabResolved); len(got) != 1 || got[0].ID != "3" {
		t.Fatalf("resolved tab: %v", got)
	}
	if got := TabFilter(items, Tab("bogus")); len(got) != 3 {
		t.Fatalf("unknown tab should behave as all: %v", got)
	}
}

func TestComputeStats(t *testing.T) {
	t.Parallel()

	s := ComputeStats(sample(), sample()[:1])
	want := Stats{Total: 3, Found: 2, Lost: 1, Mine: 1}
	if s != want {
		t.Fatalf("ComputeStats = %+v, want %+v", s, want)
	}
}
