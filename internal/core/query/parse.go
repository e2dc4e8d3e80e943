package query

import (
	"net/url"
	"strconv"

	"github.com/renewables/energy-dashboard/internal/core/domain"
)

// ParseValues binds URL query parameters to a Spec. Any parameter that is
// neither a paging/sorting control nor a filter declared by schema is
// rejected, as are non-integer or non-positive page/limit values.
func ParseValues[T any](v url.Values, schema Schema[T]) (Spec, error) {
	var spec Spec

	for key := range v {
		value := v.Get(key)
		switch key {
		case "search":
			spec.Search = value
		case "sortBy":
			spec.SortBy = value
		case "sortOrder":
			spec.SortOrder = value
		case "page":
			n, err := parsePositive("page", value)
			if err != nil {
				return Spec{}, err
			}
			spec.Page = n
		case "limit":
			n, err := parsePositive("limit", value)
			if err != nil {
				return Spec{}, err
			}
			spec.Limit = n
		default:
			if _, ok := schema.Filters[key]; !ok {
				return Spec{}, domain.QueryError(key, "is not a recognised query parameter")
			}
			if spec.Filters == nil {
				spec.Filters = make(map[string]string)
			}
			spec.Filters[key] = value
		}
	}

	return schema.Normalize(spec)
}

// parsePositive treats an empty value as absent (0).
func parsePositive(field, raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.QueryError(field, "must be an integer")
	}
	if n < 1 {
		return 0, domain.QueryError(field, "must be >= 1")
	}
	return n, nil
}
