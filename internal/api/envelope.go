// Package api defines the JSON wire contract between the server and its
// clients: the response envelope, the page object and request bodies.
package api

import "encoding/json"

// Prefix is the path prefix of every REST route.
const Prefix = "/api/v1"

// Response codes carried in Envelope.Code.
const (
	CodeOK           = "COMMON200"
	CodeCreated      = "COMMON201"
	CodeBadRequest   = "COMMON400"
	CodeUnauthorized = "AUTH401"
	CodeForbidden    = "AUTH403"
	CodeNotFound     = "COMMON404"
	CodeConflict     = "COMMON409"
	CodeRateLimited  = "COMMON429"
	CodeInternal     = "COMMON500"
)

// Envelope wraps every REST response.
type Envelope[T any] struct {
	IsSuccess bool   `json:"isSuccess"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	Data      T      `json:"data,omitempty"`
}

// RawEnvelope defers decoding of Data until the caller knows its type.
type RawEnvelope = Envelope[json.RawMessage]

// Default and maximum page sizes.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page is one zero-based page of a listing.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

// NewPage computes the totals and first/last flags of a page.
func NewPage[T any](content []T, page, size int, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	pages := 0
	if size > 0 {
		pages = int((total + int64(size) - 1) / int64(size))
	}
	return Page[T]{
		Content:       content,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    pages,
		First:         page == 0,
		Last:          page >= pages-1,
	}
}
