package releases

import (
	"strconv"
	"strings"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

type Limits struct {
	Default int
	Max     int
}

var DefaultLimits = Limits{Default: DefaultPageLimit, Max: MaxPageLimit}

// Requested pagination. Nil values were not supplied by the client.
type PageRequest struct {
	Start *int
	Limit *int
}

type Page[T any] struct {
	Total int `json:"total"`
	Count int `json:"count"`
	Start int `json:"start"`
	Limit int `json:"limit"`
	Data  []T `json:"data"`
}

// ParsePageParam parses a non-negative integer query parameter.
// An empty raw value means the parameter was not supplied.
func ParsePageParam(name string, raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &InvalidParameterError{Name: name, Value: raw, Reason: "numeric"}
	}
	if value < 0 {
		return nil, &InvalidParameterError{Name: name, Value: raw, Reason: "positive"}
	}
	return &value, nil
}

// Paginate slices items starting at req.Start, at most min(limit, limits.Max) long.
func Paginate[T any](items []T, req PageRequest, limits Limits) Page[T] {
	start := 0
	if req.Start != nil {
		start = *req.Start
	}
	limit := limits.Default
	if req.Limit != nil && *req.Limit > 0 {
		limit = *req.Limit
	}
	if limit > limits.Max {
		limit = limits.Max
	}

	from := start
	if from > len(items) {
		from = len(items)
	}
	to := from + limit
	if to > len(items) {
		to = len(items)
	}
	data := make([]T, to-from)
	copy(data, items[from:to])

	return Page[T]{
		Total: len(items),
		Count: len(data),
		Start: start,
		Limit: limit,
		Data:  data,
	}
}
