package utils

import (
	"reflect"
	"testing"
)

type row struct {
	Name   string
	Status string
	Amount float64
}

func sampleRows() []row {
	return []row{
		{Name: "Boda García", Status: "pending", Amount: 1500},
		{Name: "Sesión estudio", Status: "completed", Amount: 800},
		{Name: "Evento corporativo", Status: "pending", Amount: 3000},
		{Name: "", Status: "confirmed", Amount: 500},
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	in := sampleRows()
	snapshot := sampleRows()

	got := Filter(in, func(r row) bool { return r.Status == "pending" })
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}
	if !reflect.DeepEqual(in, snapshot) {
		t.Fatal("Filter mutated its input")
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	pred := func(r row) bool { return r.Status == "pending" }
	once := Filter(sampleRows(), pred)
	twice := Filter(once, pred)
	if !reflect.DeepEqual(once, twice) {
		t.Fatal("filtering an already-filtered slice changed it")
	}
}

func TestMatchText(t *testing.T) {
	if !MatchText("", "anything") {
		t.Fatal("empty term must match everything")
	}
	if !MatchText("GARCÍA", "Boda García", "other") {
		t.Fatal("match should be case-insensitive")
	}
	if MatchText("xyz", "Boda García") {
		t.Fatal("unexpected match")
	}
}

func TestMatchStatus(t *testing.T) {
	if !MatchStatus("", "pending") || !MatchStatus("all", "pending") {
		t.Fatal("empty/all must disable the filter")
	}
	if MatchStatus("completed", "pending") {
		t.Fatal("mismatched status matched")
	}
}

func TestSortByAbsentKeysLast(t *testing.T) {
	key := func(r row) (any, bool) { return r.Name, r.Name != "" }

	asc := SortBy(sampleRows(), SortAsc, key)
	if asc[len(asc)-1].Name != "" {
		t.Fatalf("ascending: empty name not last: %+v", asc)
	}
	if asc[0].Name != "Boda García" {
		t.Fatalf("ascending: got %q first", asc[0].Name)
	}

	desc := SortBy(sampleRows(), SortDesc, key)
	if desc[len(desc)-1].Name != "" {
		t.Fatalf("descending: empty name not last: %+v", desc)
	}
	if desc[0].Name != "Sesión estudio" {
		t.Fatalf("descending: got %q first", desc[0].Name)
	}
}

func TestSortByDoesNotMutateInput(t *testing.T) {
	in := sampleRows()
	snapshot := sampleRows()
	SortBy(in, SortAsc, func(r row) (any, bool) { return r.Amount, true })
	if !reflect.DeepEqual(in, snapshot) {
		t.Fatal("SortBy mutated its input")
	}
}

func TestPaginate(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	p := Paginate(items, 1, 10)
	if p.TotalPages != 3 || p.Total != 25 || len(p.Items) != 10 {
		t.Fatalf("page 1: %+v", p)
	}

	p = Paginate(items, 3, 10)
	if len(p.Items) != 5 || p.Items[0] != 20 {
		t.Fatalf("page 3: %+v", p)
	}

	p = Paginate(items, 4, 10)
	if len(p.Items) != 0 || p.Total != 25 || p.TotalPages != 3 {
		t.Fatalf("out-of-range page: %+v", p)
	}
}

func TestPaginateDefaultsBadArguments(t *testing.T) {
	items := []int{1, 2, 3}
	p := Paginate(items, 0, 0)
	if p.CurrentPage != 1 || p.PerPage != DefaultPageSize {
		t.Fatalf("got %+v", p)
	}
	if len(p.Items) != 3 {
		t.Fatalf("got %d items, want 3", len(p.Items))
	}
}
