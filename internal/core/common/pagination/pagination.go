// Package pagination parses page requests from query strings and carries
// one page of results back up to the HTTP layer.
package pagination

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/kkpa/jbh/internal"
)

const (
	DefaultSize = 20
	MaxSize     = 2000
)

type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Order is one sort criterion. Column is already resolved against the
// entity's column table and is safe to put in an ORDER BY clause.
type Order struct {
	Property  string
	Column    string
	Direction Direction
}

func (o Order) Clause() string {
	return o.Column + " " + string(o.Direction)
}

type Pageable struct {
	Page int
	Size int
	Sort []Order
}

func (p Pageable) Offset() int {
	return p.Page * p.Size
}

// Unpaged is the first page with the default size and no sort.
func Unpaged() Pageable {
	return Pageable{Page: 0, Size: DefaultSize}
}

// Parse reads page, size and repeated sort=<property>[,asc|desc] parameters.
// columns maps the API property names accepted for sorting to column names;
// anything else is rejected.
func Parse(query url.Values, columns map[string]string) (Pageable, error) {
	p := Unpaged()

	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 0 {
			return Pageable{}, internal.NewValidationError(
				fmt.Sprintf("page must be a non-negative integer, got %q", raw), internal.ErrCodeInvalidPage)
		}
		p.Page = page
	}

	if raw := query.Get("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 {
			return Pageable{}, internal.NewValidationError(
				fmt.Sprintf("size must be a positive integer, got %q", raw), internal.ErrCodeInvalidPage)
		}
		if size > MaxSize {
			size = MaxSize
		}
		p.Size = size
	}

	if p.Page > math.MaxInt/p.Size {
		return Pageable{}, internal.NewValidationError(
			fmt.Sprintf("page %d is out of range for size %d", p.Page, p.Size), internal.ErrCodeInvalidPage)
	}

	for _, raw := range query["sort"] {
		orders, err := parseSort(raw, columns)
		if err != nil {
			return Pageable{}, err
		}
		p.Sort = append(p.Sort, orders...)
	}

	return p, nil
}

// parseSort handles "prop", "prop,desc" and "a,b,desc" where the trailing
// direction applies to every property listed before it.
func parseSort(raw string, columns map[string]string) ([]Order, error) {
	parts := strings.Split(raw, ",")
	direction := Asc
	if n := len(parts); n > 1 {
		switch strings.ToLower(strings.TrimSpace(parts[n-1])) {
		case "asc":
			parts = parts[:n-1]
		case "desc":
			direction = Desc
			parts = parts[:n-1]
		}
	}

	var orders []Order
	for _, prop := range parts {
		prop = strings.TrimSpace(prop)
		if prop == "" {
			continue
		}
		column, ok := columns[prop]
		if !ok {
			return nil, internal.NewValidationError(
				fmt.Sprintf("cannot sort by unknown property %q", prop), internal.ErrCodeInvalidSort)
		}
		orders = append(orders, Order{Property: prop, Column: column, Direction: direction})
	}
	return orders, nil
}

type Page[T any] struct {
	Content []T
	Number  int
	Size    int
	Total   int64
}

func NewPage[T any](content []T, pageable Pageable, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	return Page[T]{
		Content: content,
		Number:  pageable.Page,
		Size:    pageable.Size,
		Total:   total,
	}
}

func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 1
	}
	return int((p.Total + int64(p.Size) - 1) / int64(p.Size))
}

func (p Page[T]) HasNext() bool {
	return p.Number+1 < p.TotalPages()
}

func (p Page[T]) HasPrevious() bool {
	return p.Number > 0
}

// Map converts the page content, keeping the paging metadata.
func Map[T, R any](p Page[T], fn func(T) R) Page[R] {
	content := make([]R, len(p.Content))
	for i, item := range p.Content {
		content[i] = fn(item)
	}
	return Page[R]{
		Content: content,
		Number:  p.Number,
		Size:    p.Size,
		Total:   p.Total,
	}
}
