package orders

import "time"

// ViewModel is everything the order table renders for one QueryState.
type ViewModel struct {
	Items       []OrderRecord
	TotalCount  int
	TotalPages  int
	CurrentPage int
	StartIndex  int
	EndIndex    int
	HasPrev     bool
	HasNext     bool
	SelectedIDs []string
	SelectAll   CheckboxState
	State       QueryState
	Statuses    []string
	Projects    []string
}

// Apply runs the filter and sort stages and returns the full ordered result.
func Apply(records []OrderRecord, state QueryState, now time.Time) []OrderRecord {
	filtered := Filter(records, state.Criteria())
	return Sort(filtered, state.SortField, state.SortDirection, now)
}

// DeriveView recomputes the visible page from the catalog and state. It has no side effects
// and may be called any number of times for the same inputs.
func DeriveView(catalog *Catalog, state QueryState, now time.Time) ViewModel {
	page := Paginate(Apply(catalog.records, state, now), state.CurrentPage, PageSize)

	return ViewModel{
		Items:       page.Items,
		TotalCount:  page.TotalCount,
		TotalPages:  page.TotalPages,
		CurrentPage: page.CurrentPage,
		StartIndex:  page.StartIndex,
		EndIndex:    page.EndIndex,
		HasPrev:     page.HasPrev(),
		HasNext:     page.HasNext(),
		SelectedIDs: state.Selected.IDs(),
		SelectAll:   state.Selected.HeaderState(len(page.Items)),
		State:       state,
		Statuses:    catalog.Statuses(),
		Projects:    catalog.Projects(),
	}
}

func (v ViewModel) Empty() bool {
	return v.TotalCount == 0
}

func (v ViewModel) IsSelected(id string) bool {
	return v.State.Selected.Contains(id)
}
