package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PaginationParams represents pagination parameters
type PaginationParams struct {
	Page     int
	PageSize int
	Offset   int
}

// GetPaginationParams extracts pagination parameters from request
func GetPaginationParams(c echo.Context) PaginationParams {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("limit"))

	return NewPaginationParams(page, pageSize)
}

func NewPaginationParams(page, pageSize int) PaginationParams {
	if page <= 0 {
		page = 1
	}

	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	return PaginationParams{
		Page:     page,
		PageSize: pageSize,
		Offset:   (page - 1) * pageSize,
	}
}

type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination is the block every list endpoint returns next to its data.
type Pagination struct {
	Page  int      `json:"page"`
	Limit int      `json:"limit"`
	Total int64    `json:"total"`
	Pages int      `json:"pages"`
	Next  *PageRef `json:"next,omitempty"`
	Prev  *PageRef `json:"prev,omitempty"`
}

func NewPagination(page, limit int, total int64) Pagination {
	p := NewPaginationParams(page, limit)

	pages := int(total / int64(p.PageSize))
	if total%int64(p.PageSize) > 0 {
		pages++
	}

	out := Pagination{
		Page:  p.Page,
		Limit: p.PageSize,
		Total: total,
		Pages: pages,
	}

	if int64(p.Page*p.PageSize) < total {
		out.Next = &PageRef{Page: p.Page + 1, Limit: p.PageSize}
	}
	if p.Offset > 0 {
		out.Prev = &PageRef{Page: p.Page - 1, Limit: p.PageSize}
	}

	return out
}

// SortSpec is a single-field sort resolved to a storage field name.
type SortSpec struct {
	Field string
	Desc  bool
}

// DefaultSort is newest first.
var DefaultSort = SortSpec{Field: "createdAt", Desc: true}

// ParseSort accepts "field:asc", "field:desc", "-field" or "field".
// allowed maps the public field name to the stored one; an empty raw value
// yields DefaultSort.
func ParseSort(raw string, allowed map[string]string) (SortSpec, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultSort, nil
	}

	field, desc := raw, false
	if strings.HasPrefix(field, "-") {
		field, desc = field[1:], true
	} else if i := strings.LastIndex(field, ":"); i >= 0 {
		dir := strings.ToLower(field[i+1:])
		field = field[:i]
		switch dir {
		case "asc", "1", "":
		case "desc", "-1":
			desc = true
		default:
			return SortSpec{}, fmt.Errorf("invalid sort direction %q", dir)
		}
	}

	stored, ok := allowed[field]
	if !ok {
		return SortSpec{}, fmt.Errorf("cannot sort by %q", field)
	}

	return SortSpec{Field: stored, Desc: desc}, nil
}

// TimestampSortFields is merged into every resource's sortable fields.
func TimestampSortFields(extra map[string]string) map[string]string {
	out := map[string]string{
		"created_at": "createdAt",
		"createdAt":  "createdAt",
		"updated_at": "updatedAt",
		"updatedAt":  "updatedAt",
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
