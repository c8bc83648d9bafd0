package orders

import "strings"

// Criteria are the filter inputs of the pipeline. Empty fields match everything.
type Criteria struct {
	Search  string
	Status  string
	Project string
}

// Filter returns the records passing every active criterion, in input order.
// The input slice is never modified.
func Filter(records []OrderRecord, criteria Criteria) []OrderRecord {
	needle := strings.ToLower(strings.TrimSpace(criteria.Search))

	filtered := make([]OrderRecord, 0, len(records))
	for _, record := range records {
		if needle != "" && !matchesSearch(record, needle) {
			continue
		}
		if criteria.Status != "" && record.Status.Label != criteria.Status {
			continue
		}
		if criteria.Project != "" && record.Project != criteria.Project {
			continue
		}
		filtered = append(filtered, record)
	}
	return filtered
}

func matchesSearch(record OrderRecord, needle string) bool {
	for _, field := range []string{
		record.ID,
		record.User.Name,
		record.Project,
		record.Address,
		record.Status.Label,
	} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
