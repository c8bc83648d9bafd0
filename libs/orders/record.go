// Package orders holds the order table pipeline: filter, sort, paginate and the selection
// bookkeeping that goes with it. Everything here is pure and runs over an immutable Catalog.
package orders

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	ErrUnknownStatus    = errors.New("unknown status")
	ErrUnknownProject   = errors.New("unknown project")
	ErrUnknownSortField = errors.New("unknown sort field")
	ErrUnknownDirection = errors.New("unknown sort direction")
	ErrUnknownOrder     = errors.New("unknown order")
	ErrInvalidFixture   = errors.New("invalid order fixture")
)

var orderIDPattern = regexp.MustCompile(`^#[A-Za-z0-9]+$`)

// User is the customer an order belongs to.
type User struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatar"`
}

// Status carries the status label plus the color tokens the UI paints it with.
type Status struct {
	Label         string `json:"label"`
	ColorToken    string `json:"color"`
	DotColorToken string `json:"dotColor"`
}

// OrderRecord is one row of the bundled order fixture. Records are never mutated.
type OrderRecord struct {
	ID      string `json:"id"`
	User    User   `json:"user"`
	Project string `json:"project"`
	Address string `json:"address"`
	Date    string `json:"date"`
	Status  Status `json:"status"`
}

func validateRecords(records []OrderRecord) error {
	seen := make(map[string]struct{}, len(records))
	for i, record := range records {
		if !orderIDPattern.MatchString(record.ID) {
			return fmt.Errorf("%w: record %d has malformed id %q", ErrInvalidFixture, i, record.ID)
		}
		if _, exists := seen[record.ID]; exists {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidFixture, record.ID)
		}
		seen[record.ID] = struct{}{}
	}
	return nil
}
