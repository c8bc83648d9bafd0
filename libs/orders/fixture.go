package orders

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/tailscale/hujson"
)

//go:embed fixtures/orders.jsonc
var bundledFixture []byte

var defaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	return LoadFixture(bundledFixture)
})

// Catalog is the immutable, ordered order fixture plus the filter options derived from it.
type Catalog struct {
	records  []OrderRecord
	byID     map[string]int
	statuses []string
	projects []string
}

// DefaultCatalog returns the catalog parsed from the bundled fixture.
func DefaultCatalog() (*Catalog, error) {
	return defaultCatalog()
}

// LoadFixture parses a JSONC array of order records.
func LoadFixture(data []byte) (*Catalog, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JSONC: %w", ErrInvalidFixture, err)
	}

	var records []OrderRecord
	if err := json.Unmarshal(standardized, &records); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %w", ErrInvalidFixture, err)
	}
	return NewCatalog(records)
}

// NewCatalog builds a catalog over records, keeping their order.
func NewCatalog(records []OrderRecord) (*Catalog, error) {
	if err := validateRecords(records); err != nil {
		return nil, err
	}

	c := &Catalog{
		records:  slices.Clone(records),
		byID:     make(map[string]int, len(records)),
		statuses: make([]string, 0),
		projects: make([]string, 0),
	}
	seenStatus := map[string]struct{}{}
	seenProject := map[string]struct{}{}
	for i, record := range c.records {
		c.byID[record.ID] = i
		if _, ok := seenStatus[record.Status.Label]; !ok {
			seenStatus[record.Status.Label] = struct{}{}
			c.statuses = append(c.statuses, record.Status.Label)
		}
		if _, ok := seenProject[record.Project]; !ok {
			seenProject[record.Project] = struct{}{}
			c.projects = append(c.projects, record.Project)
		}
	}
	return c, nil
}

// Records returns a copy of the fixture in its original order.
func (c *Catalog) Records() []OrderRecord {
	return slices.Clone(c.records)
}

func (c *Catalog) Len() int {
	return len(c.records)
}

// Statuses lists the distinct status labels in first-seen order.
func (c *Catalog) Statuses() []string {
	return slices.Clone(c.statuses)
}

// Projects lists the distinct projects in first-seen order.
func (c *Catalog) Projects() []string {
	return slices.Clone(c.projects)
}

func (c *Catalog) Lookup(id string) (OrderRecord, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return OrderRecord{}, false
	}
	return c.records[idx], true
}

// CheckStatus accepts "" (no filter) or a label present in the fixture.
func (c *Catalog) CheckStatus(status string) error {
	if status == "" || slices.Contains(c.statuses, status) {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownStatus, status)
}

// CheckProject accepts "" (no filter) or a project present in the fixture.
func (c *Catalog) CheckProject(project string) error {
	if project == "" || slices.Contains(c.projects, project) {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownProject, project)
}

func (c *Catalog) CheckOrder(id string) error {
	if _, ok := c.byID[id]; ok {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownOrder, id)
}
