package pagination

import (
	"net/http"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 50
)

type Options struct {
	Page  int
	Limit int
}

func (o Options) Offset() int {
	return (o.Page - 1) * o.Limit
}

// FromRequest reads page/limit query parameters, applying defaults and
// capping limit at MaxLimit.
func FromRequest(r *http.Request) Options {
	opts := Options{Page: DefaultPage, Limit: DefaultLimit}

	if raw := r.URL.Query().Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page > 0 {
			opts.Page = page
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			opts.Limit = limit
		}
	}
	if opts.Limit > MaxLimit {
		opts.Limit = MaxLimit
	}

	return opts
}

// InfinityResponse is the cursorless page shape: callers keep fetching until
// hasNextPage is false.
type InfinityResponse[T any] struct {
	Data        []T  `json:"data"`
	HasNextPage bool `json:"hasNextPage"`
}

func NewInfinityResponse[T any](data []T, opts Options) InfinityResponse[T] {
	if data == nil {
		data = []T{}
	}
	return InfinityResponse[T]{
		Data:        data,
		HasNextPage: len(data) == opts.Limit,
	}
}
