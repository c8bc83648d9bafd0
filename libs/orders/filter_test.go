package orders

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFilter(t *testing.T) {
	catalog := mustCatalog(t)

	tests := []struct {
		name     string
		criteria Criteria
		wantIDs  []string
		wantLen  int
	}{
		{name: "no criteria", criteria: Criteria{}, wantLen: 23},
		{name: "whitespace search is no search", criteria: Criteria{Search: "   "}, wantLen: 23},
		{
			name:     "status",
			criteria: Criteria{Status: "Rejected"},
			wantIDs:  []string{"#CM9805", "#CM9809", "#CM9816", "#CM9821"},
		},
		{name: "project", criteria: Criteria{Project: "Admin Dashboard"}, wantLen: 4},
		{name: "search across project names", criteria: Criteria{Search: "landing"}, wantLen: 9},
		{
			name:     "search is case insensitive and trimmed",
			criteria: Criteria{Search: "  LANE "},
			wantIDs: []string{
				"#CM9801", "#CM9805", "#CM9806", "#CM9810", "#CM9811", "#CM9815",
				"#CM9816", "#CM9817", "#CM9820", "#CM9821", "#CM9823",
			},
		},
		{name: "search by id", criteria: Criteria{Search: "#cm9804"}, wantIDs: []string{"#CM9804"}},
		{name: "search by status label", criteria: Criteria{Search: "progress"}, wantLen: 5},
		{
			name:     "all criteria combined",
			criteria: Criteria{Search: "lane", Status: "Rejected", Project: "Landing Page"},
			wantIDs:  []string{"#CM9816", "#CM9821"},
		},
		{name: "status is exact match", criteria: Criteria{Status: "rejected"}, wantIDs: []string{}},
		{name: "no hits", criteria: Criteria{Search: "zzz"}, wantIDs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(catalog.Records(), tt.criteria)
			if tt.wantIDs != nil {
				if diff := cmp.Diff(tt.wantIDs, idsOf(got)); diff != "" {
					t.Fatalf("filtered ids mismatch (-want +got):\n%s", diff)
				}
				return
			}
			if len(got) != tt.wantLen {
				t.Fatalf("expected %d records, got %d", tt.wantLen, len(got))
			}
		})
	}
}

func TestFilterIsConjunctionOfPredicates(t *testing.T) {
	catalog := mustCatalog(t)
	records := catalog.Records()

	for _, search := range []string{"", "lane", "drew", "#cm98"} {
		for _, status := range append([]string{""}, catalog.Statuses()...) {
			for _, project := range append([]string{""}, catalog.Projects()...) {
				criteria := Criteria{Search: search, Status: status, Project: project}
				got := Filter(records, criteria)

				var want []string
				for _, record := range records {
					if search != "" && !matchesSearch(record, strings.ToLower(search)) {
						continue
					}
					if status != "" && record.Status.Label != status {
						continue
					}
					if project != "" && record.Project != project {
						continue
					}
					want = append(want, record.ID)
				}
				if want == nil {
					want = []string{}
				}
				if diff := cmp.Diff(want, idsOf(got)); diff != "" {
					t.Fatalf("criteria %+v mismatch (-want +got):\n%s", criteria, diff)
				}
			}
		}
	}
}

func TestFilterDoesNotModifyInput(t *testing.T) {
	catalog := mustCatalog(t)
	records := catalog.Records()
	before := idsOf(records)

	_ = Filter(records, Criteria{Status: "Complete"})

	if diff := cmp.Diff(before, idsOf(records)); diff != "" {
		t.Fatalf("input modified (-before +after):\n%s", diff)
	}
}
