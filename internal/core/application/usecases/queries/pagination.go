// Package queries contains the read side: list and detail views served
// straight from SQL, without loading aggregates.
package queries

import (
	"errors"
	"fmt"

	"marketplace/internal/pkg/errs"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Pagination is a validated page request. Page numbers start at 1.
type Pagination struct {
	page int
	size int
}

// NewPagination validates page and size and reports every problem at once.
// A size of 0 means DefaultPageSize.
func NewPagination(page int, size int) (Pagination, error) {
	var problems []error
	if page < 1 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("page", fmt.Errorf("%d is less than 1", page)))
	}
	if size == 0 {
		size = DefaultPageSize
	}
	if size < 1 || size > MaxPageSize {
		problems = append(problems, errs.NewValueIsOutOfRangeError("size", size, 1, MaxPageSize))
	}
	if err := errors.Join(problems...); err != nil {
		return Pagination{}, err
	}
	return Pagination{page: page, size: size}, nil
}

func (p Pagination) Page() int {
	return p.page
}

func (p Pagination) Size() int {
	return p.size
}

func (p Pagination) Offset() int {
	return (p.page - 1) * p.size
}

func (p Pagination) String() string {
	return fmt.Sprintf("page %d of size %d", p.page, p.size)
}
