package queries

import (
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/shared"
)

const (
	DefaultFrom = 0
	DefaultSize = 10
)

var ErrInvalidPage = errs.Validation("from must be non-negative and size must be positive")

// PageOf converts an offset/size pair into a row window. The page index is
// from/size rounded down, so from=5,size=3 starts at row 3, not row 5.
func PageOf(from, size int) (shared.Page, error) {
	if from < 0 || size <= 0 {
		return shared.Page{}, ErrInvalidPage
	}
	return shared.Page{Offset: (from / size) * size, Limit: size}, nil
}
