package orders

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestSortUnsetKeepsInputOrder(t *testing.T) {
	catalog := mustCatalog(t)
	records := catalog.Records()

	got := Sort(records, SortNone, Desc, testNow)
	if diff := cmp.Diff(idsOf(records), idsOf(got)); diff != "" {
		t.Fatalf("unsorted order changed (-want +got):\n%s", diff)
	}
}

func TestSortByDate(t *testing.T) {
	catalog := mustCatalog(t)

	ascending := []string{
		"#CM9805", "#CM9813", "#CM9821", "#CM9817", "#CM9810", // absolute dates, oldest first
		"#CM9814", "#CM9809", "#CM9823", "#CM9808", "#CM9820", "#CM9818", "#CM9812", "#CM9807",
		"#CM9804", "#CM9815", "#CM9822", "#CM9811", "#CM9806", "#CM9816", "#CM9803", "#CM9802",
		"#CM9801", "#CM9819",
	}
	got := Sort(catalog.Records(), SortByDate, Asc, testNow)
	if diff := cmp.Diff(ascending, idsOf(got)); diff != "" {
		t.Fatalf("ascending date order mismatch (-want +got):\n%s", diff)
	}

	// Ties keep fixture order in both directions.
	descending := []string{
		"#CM9801", "#CM9819", "#CM9802", "#CM9803", "#CM9816", "#CM9806", "#CM9811", "#CM9822",
		"#CM9804", "#CM9815", "#CM9807", "#CM9812", "#CM9818", "#CM9820", "#CM9808", "#CM9809",
		"#CM9823", "#CM9814", "#CM9810", "#CM9817", "#CM9821", "#CM9813", "#CM9805",
	}
	got = Sort(catalog.Records(), SortByDate, Desc, testNow)
	if diff := cmp.Diff(descending, idsOf(got)); diff != "" {
		t.Fatalf("descending date order mismatch (-want +got):\n%s", diff)
	}
}

func TestSortByTextColumnIsStable(t *testing.T) {
	catalog := mustCatalog(t)

	got := Sort(catalog.Records(), SortByUser, Asc, testNow)
	want := []string{
		"#CM9805", "#CM9811", "#CM9817", "#CM9823", // Andi Lane
		"#CM9803", "#CM9809", "#CM9815", "#CM9821", // Drew Cano
		"#CM9802", "#CM9808", "#CM9814", "#CM9820", // Kate Morrison
		"#CM9806", "#CM9812", "#CM9818", // Koray Okumus
		"#CM9801", "#CM9807", "#CM9813", "#CM9819", // Natali Craig
		"#CM9804", "#CM9810", "#CM9816", "#CM9822", // Orlando Diggs
	}
	if diff := cmp.Diff(want, idsOf(got)); diff != "" {
		t.Fatalf("user order mismatch (-want +got):\n%s", diff)
	}
}

func TestSortDescendingReversesDistinctKeys(t *testing.T) {
	catalog := mustCatalog(t)

	asc := idsOf(Sort(catalog.Records(), SortByID, Asc, testNow))
	desc := idsOf(Sort(catalog.Records(), SortByID, Desc, testNow))

	slices.Reverse(desc)
	if diff := cmp.Diff(asc, desc); diff != "" {
		t.Fatalf("id desc is not the reverse of asc (-asc +reversed desc):\n%s", diff)
	}
}

func TestSortOrdersByColumnValue(t *testing.T) {
	catalog := mustCatalog(t)
	collated := map[SortField]func(OrderRecord) string{
		SortByProject: func(r OrderRecord) string { return r.Project },
		SortByAddress: func(r OrderRecord) string { return r.Address },
		SortByStatus:  func(r OrderRecord) string { return r.Status.Label },
	}

	for field, key := range collated {
		t.Run(string(field), func(t *testing.T) {
			got := Sort(catalog.Records(), field, Asc, testNow)
			assert.Len(t, got, catalog.Len())
			for i := 1; i < len(got); i++ {
				if strings.ToLower(key(got[i-1])) > strings.ToLower(key(got[i])) {
					t.Fatalf("%s out of order at %d: %q before %q", field, i, key(got[i-1]), key(got[i]))
				}
			}
		})
	}
}

func TestSortCollatesCaseInsensitively(t *testing.T) {
	records := []OrderRecord{
		{ID: "#1", User: User{Name: "bob"}},
		{ID: "#2", User: User{Name: "Alice"}},
		{ID: "#3", User: User{Name: "Émile"}},
		{ID: "#4", User: User{Name: "Carol"}},
	}

	got := Sort(records, SortByUser, Asc, testNow)
	assert.Equal(t, []string{"#2", "#1", "#4", "#3"}, idsOf(got))
}

func TestSortDoesNotModifyInput(t *testing.T) {
	catalog := mustCatalog(t)
	records := catalog.Records()
	before := idsOf(records)

	_ = Sort(records, SortByUser, Desc, testNow)

	assert.Equal(t, before, idsOf(records))
}

func TestParseSortFieldAndDirection(t *testing.T) {
	field, err := ParseSortField(" Date ")
	assert.NoError(t, err)
	assert.Equal(t, SortByDate, field)

	field, err = ParseSortField("")
	assert.NoError(t, err)
	assert.Equal(t, SortNone, field)

	_, err = ParseSortField("price")
	if !errors.Is(err, ErrUnknownSortField) {
		t.Fatalf("expected ErrUnknownSortField, got %v", err)
	}

	direction, err := ParseDirection("")
	assert.NoError(t, err)
	assert.Equal(t, Asc, direction)

	direction, err = ParseDirection("DESC")
	assert.NoError(t, err)
	assert.Equal(t, Desc, direction)

	_, err = ParseDirection("sideways")
	assert.ErrorIs(t, err, ErrUnknownDirection)

	assert.Equal(t, Desc, Asc.Reverse())
	assert.Equal(t, Asc, Desc.Reverse())
}
