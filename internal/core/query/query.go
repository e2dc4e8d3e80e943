// Package query filters, orders and paginates in-memory record collections.
//
// A Schema declares, per record type, which fields can be filtered, searched
// and sorted, each bound to a typed accessor. Run always applies the stages in
// the same order (filter, sort, paginate) so Total describes the filtered set
// and page boundaries are stable relative to the ordering.
package query

import (
	"cmp"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/renewables/energy-dashboard/internal/core/domain"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Spec is a caller's filter/sort/page request. Zero Page and Limit mean
// "not supplied" and take the defaults.
type Spec struct {
	Filters   map[string]string
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// Result is one page of matches. Total counts every match, not just the page.
type Result[T any] struct {
	Items []T
	Total int
	Page  int
	Limit int
}

// TotalPages is ceil(Total/Limit).
func (r Result[T]) TotalPages() int {
	if r.Limit <= 0 {
		return 0
	}
	return (r.Total + r.Limit - 1) / r.Limit
}

// MatchKind selects how a filter value is compared to a field.
type MatchKind int

const (
	// Exact is case-insensitive equality.
	Exact MatchKind = iota
	// Contains is a case-insensitive substring match.
	Contains
)

// Filter binds a filter name to a text accessor.
type Filter[T any] struct {
	Kind  MatchKind
	Field func(T) string
}

// Comparator orders two records by a single key.
type Comparator[T any] func(a, b T) int

// Schema is the fixed set of query capabilities for one record type.
type Schema[T any] struct {
	Filters   map[string]Filter[T]
	Search    []func(T) string
	Sort      map[string]Comparator[T]
	CreatedAt func(T) time.Time
}

// Text compares a string field lexically.
func Text[T any](field func(T) string) Comparator[T] {
	return func(a, b T) int { return strings.Compare(field(a), field(b)) }
}

// Number compares a numeric field numerically.
func Number[T any, N cmp.Ordered](field func(T) N) Comparator[T] {
	return func(a, b T) int { return cmp.Compare(field(a), field(b)) }
}

// Time compares a timestamp field chronologically.
func Time[T any](field func(T) time.Time) Comparator[T] {
	return func(a, b T) int { return field(a).Compare(field(b)) }
}

// SortKeys returns the sortable field names in a stable order.
func (s Schema[T]) SortKeys() []string {
	keys := make([]string, 0, len(s.Sort))
	for k := range s.Sort {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Normalize validates spec against the schema and fills in defaults. Invalid
// values are reported, never clamped.
func (s Schema[T]) Normalize(spec Spec) (Spec, error) {
	for name := range spec.Filters {
		if _, ok := s.Filters[name]; !ok {
			return Spec{}, domain.QueryError(name, "is not a filterable field")
		}
	}

	if spec.SortBy != "" {
		if _, ok := s.Sort[spec.SortBy]; !ok {
			return Spec{}, domain.QueryError("sortBy", "must be one of: "+strings.Join(s.SortKeys(), ", "))
		}
	}

	switch strings.ToLower(spec.SortOrder) {
	case "", OrderAsc:
		spec.SortOrder = OrderAsc
	case OrderDesc:
		spec.SortOrder = OrderDesc
	default:
		return Spec{}, domain.QueryError("sortOrder", "must be asc or desc")
	}

	switch {
	case spec.Page == 0:
		spec.Page = DefaultPage
	case spec.Page < 1:
		return Spec{}, domain.QueryError("page", "must be >= 1")
	}

	switch {
	case spec.Limit == 0:
		spec.Limit = DefaultLimit
	case spec.Limit < 1 || spec.Limit > MaxLimit:
		return Spec{}, domain.QueryError("limit", "must be between 1 and 100")
	}

	return spec, nil
}

// Run filters, orders and paginates items. The input slice is not modified.
func Run[T any](items []T, spec Spec, schema Schema[T]) (Result[T], error) {
	spec, err := schema.Normalize(spec)
	if err != nil {
		return Result[T]{}, err
	}

	matched := schema.filter(items, spec)
	total := len(matched)

	schema.order(matched, spec)

	return Result[T]{
		Items: paginate(matched, spec.Page, spec.Limit),
		Total: total,
		Page:  spec.Page,
		Limit: spec.Limit,
	}, nil
}

func (s Schema[T]) filter(items []T, spec Spec) []T {
	type predicate func(T) bool
	var preds []predicate

	for name, value := range spec.Filters {
		if value == "" {
			continue
		}
		f := s.Filters[name]
		needle := strings.ToLower(value)
		switch f.Kind {
		case Exact:
			preds = append(preds, func(item T) bool { return strings.EqualFold(f.Field(item), value) })
		case Contains:
			preds = append(preds, func(item T) bool { return strings.Contains(strings.ToLower(f.Field(item)), needle) })
		}
	}

	if spec.Search != "" && len(s.Search) > 0 {
		needle := strings.ToLower(spec.Search)
		preds = append(preds, func(item T) bool {
			for _, field := range s.Search {
				if strings.Contains(strings.ToLower(field(item)), needle) {
					return true
				}
			}
			return false
		})
	}

	out := make([]T, 0, len(items))
next:
	for _, item := range items {
		for _, p := range preds {
			if !p(item) {
				continue next
			}
		}
		out = append(out, item)
	}
	return out
}

// order sorts in place. Sorting is stable and a descending order only flips
// the comparator, so equal keys keep their input order in both directions.
func (s Schema[T]) order(items []T, spec Spec) {
	if spec.SortBy == "" {
		if s.CreatedAt == nil {
			return
		}
		newest := Time(s.CreatedAt)
		slices.SortStableFunc(items, func(a, b T) int { return newest(b, a) })
		return
	}

	by := s.Sort[spec.SortBy]
	if spec.SortOrder == OrderDesc {
		slices.SortStableFunc(items, func(a, b T) int { return by(b, a) })
		return
	}
	slices.SortStableFunc(items, by)
}

func paginate[T any](items []T, page, limit int) []T {
	total := len(items)
	if page-1 > total/limit {
		return []T{}
	}
	offset := (page - 1) * limit
	if offset >= total {
		return []T{}
	}
	end := min(offset+limit, total)
	return items[offset:end]
}
