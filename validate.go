package invoice

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyDescription reports a line item with no description text.
	ErrEmptyDescription = errors.New("line item has empty description")
	// ErrNegativeQuantity reports a line item with a quantity below zero.
	ErrNegativeQuantity = errors.New("line item has negative quantity")
	// ErrNegativeRate reports a line item with a unit rate below zero.
	ErrNegativeRate = errors.New("line item has negative unit rate")
	// ErrNoIssueDate reports a document without an issue date.
	ErrNoIssueDate = errors.New("document has no issue date")
)

// Validate checks doc for values that would render a misleading invoice.
// It reports the first problem found; an empty item list is valid.
func (d Document) Validate() error {
	if d.Header.IssueDate.IsZero() {
		return ErrNoIssueDate
	}
	for i, it := range d.Items {
		if strings.TrimSpace(it.Description) == "" {
			return fmt.Errorf("item %d: %w", i+1, ErrEmptyDescription)
		}
		if it.Quantity.IsNegative() {
			return fmt.Errorf("item %d: %w", i+1, ErrNegativeQuantity)
		}
		if it.UnitRate.IsNegative() {
			return fmt.Errorf("item %d: %w", i+1, ErrNegativeRate)
		}
	}
	return nil
}
