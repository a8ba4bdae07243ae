// utils/listquery.go
package utils

import (
	"math"
	"sort"
	"strings"
	"time"
)

const DefaultPageSize = 10

type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// Page is one slice of a filtered result set. Pages are 1-based.
type Page[T any] struct {
	Items       []T `json:"items"`
	CurrentPage int `json:"currentPage"`
	PerPage     int `json:"perPage"`
	Total       int `json:"total"`
	TotalPages  int `json:"totalPages"`
}

// Filter returns the items matching pred without mutating the input slice.
func Filter[T any](items []T, pred func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if pred(it) {
			out = append(out, it)
		}
	}
	return out
}

// MatchText reports whether any field contains term, case-insensitively.
// An empty term matches everything.
func MatchText(term string, fields ...string) bool {
	if strings.TrimSpace(term) == "" {
		return true
	}
	needle := strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// MatchStatus compares one status value; "" or "all" disables the filter.
func MatchStatus(want, have string) bool {
	return want == "" || want == "all" || want == have
}

// SortBy orders a copy of items by the extracted key. Keys reported as
// absent sort last regardless of direction; strings compare
// case-insensitively. Supported key types: string, float64, int, time.Time.
func SortBy[T any](items []T, dir SortDir, key func(T) (any, bool)) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.Slice(out, func(i, j int) bool {
		a, aok := key(out[i])
		b, bok := key(out[j])
		if !aok || !bok {
			return aok && !bok
		}
		less, equal := compareKeys(a, b)
		if equal {
			return false
		}
		if dir == SortDesc {
			return !less
		}
		return less
	})
	return out
}

func compareKeys(a, b any) (less, equal bool) {
	switch av := a.(type) {
	case string:
		bv, _ := b.(string)
		al, bl := strings.ToLower(av), strings.ToLower(bv)
		return al < bl, al == bl
	case float64:
		bv, _ := b.(float64)
		return av < bv, av == bv
	case int:
		bv, _ := b.(int)
		return av < bv, av == bv
	case time.Time:
		bv, _ := b.(time.Time)
		return av.Before(bv), av.Equal(bv)
	}
	return false, true
}

// Paginate slices out the requested page. Out-of-range pages yield an empty
// item list with the counts intact.
func Paginate[T any](items []T, page, perPage int) Page[T] {
	if perPage < 1 {
		perPage = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	total := len(items)
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}
	return Page[T]{
		Items:       items[start:end],
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		TotalPages:  totalPages,
	}
}
