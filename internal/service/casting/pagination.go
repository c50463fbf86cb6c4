package casting

import (
	"fmt"
	"math"

	"casting/internal/domain"
)

// pageBounds converts a 1-based page number into offset/limit
func pageBounds(page, pageSize int) (offset, limit int, err error) {
	if page < 1 {
		return 0, 0, fmt.Errorf("%w: page must be at least 1", domain.ErrValidation)
	}
	// No table can hold enough rows to reach an offset past MaxInt
	if page-1 > math.MaxInt/pageSize {
		return 0, 0, fmt.Errorf("page %d: %w", page, domain.ErrNotFound)
	}
	return (page - 1) * pageSize, pageSize, nil
}

// checkPageInRange treats an empty page past the first as not found
func checkPageInRange(page, itemCount int) error {
	if itemCount == 0 && page > 1 {
		return fmt.Errorf("page %d: %w", page, domain.ErrNotFound)
	}
	return nil
}
