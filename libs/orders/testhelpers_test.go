package orders

import (
	"testing"
	"time"
)

var testNow = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

func mustCatalog(t *testing.T) *Catalog {
	t.Helper()
	catalog, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("load bundled fixture: %v", err)
	}
	return catalog
}

func idsOf(records []OrderRecord) []string {
	ids := make([]string, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.ID)
	}
	return ids
}
