package persistencex

import (
	"math"
)

type ListRequest struct {
	// The page to retrieve.
	// Default: 0
	Page int `json:"page,omitempty"`

	// The number of items per page.
	// Default: 20
	Limit int `json:"limit,omitempty"`
}

type ListResponse[T any] struct {
	Data []T      `json:"data"`
	Meta PageMeta `json:"meta"`
}

type PageMeta struct {
	Page     int   `json:"page"`
	Limit    int   `json:"limit"`
	Total    int64 `json:"total"`
	NumPages int   `json:"numPages"`
}

func NewPageMeta(page, limit int, total int64) PageMeta {
	numPages := 0
	if limit != 0 {
		numPages = int(math.Ceil(float64(total) / float64(limit)))
	}

	return PageMeta{
		Page:     page,
		Limit:    limit,
		Total:    total,
		NumPages: numPages,
	}
}
