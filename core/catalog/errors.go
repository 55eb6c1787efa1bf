package catalog

import "errors"

var (
	// ErrNotFound is returned when no product has the requested id.
	ErrNotFound = errors.New("catalog: product not found")
	// ErrInvalidProduct wraps field validation failures.
	ErrInvalidProduct = errors.New("catalog: invalid product")
	// ErrInvalidFilter is returned for expressions that do not compile to a boolean.
	ErrInvalidFilter = errors.New("catalog: invalid filter expression")
	// ErrStorage wraps persistence failures.
	ErrStorage = errors.New("catalog: storage failure")
)
