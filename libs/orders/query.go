package orders

// SeededSelection is the order id selected when a session starts.
const SeededSelection = "#CM9804"

// QueryState is the per-session input of the order table. Every setter reports whether the
// state actually changed; a change to any query input or to the page resets the page to 1
// (query inputs only) and clears the selection.
type QueryState struct {
	SearchTerm    string
	StatusFilter  string
	ProjectFilter string
	SortField     SortField
	SortDirection Direction
	CurrentPage   int
	Selected      Selection
}

func NewQueryState() QueryState {
	return QueryState{
		SortDirection: Asc,
		CurrentPage:   1,
		Selected:      NewSelection(SeededSelection),
	}
}

// Criteria returns the filter half of the state.
func (q QueryState) Criteria() Criteria {
	return Criteria{
		Search:  q.SearchTerm,
		Status:  q.StatusFilter,
		Project: q.ProjectFilter,
	}
}

func (q *QueryState) SetSearch(term string) bool {
	if q.SearchTerm == term {
		return false
	}
	q.SearchTerm = term
	q.restart()
	return true
}

func (q *QueryState) SetStatusFilter(status string) bool {
	if q.StatusFilter == status {
		return false
	}
	q.StatusFilter = status
	q.restart()
	return true
}

func (q *QueryState) SetProjectFilter(project string) bool {
	if q.ProjectFilter == project {
		return false
	}
	q.ProjectFilter = project
	q.restart()
	return true
}

// SetSort sets both the sort column and its direction.
func (q *QueryState) SetSort(field SortField, direction Direction) bool {
	if direction == "" {
		direction = Asc
	}
	if q.SortField == field && q.SortDirection == direction {
		return false
	}
	q.SortField = field
	q.SortDirection = direction
	q.restart()
	return true
}

// ChooseSort is a header click: re-choosing the active column flips the direction, a new
// column starts ascending.
func (q *QueryState) ChooseSort(field SortField) bool {
	if field != SortNone && q.SortField == field {
		return q.SetSort(field, q.SortDirection.Reverse())
	}
	return q.SetSort(field, Asc)
}

// ClearFilters drops the status and project filters and the sort. The search term stays.
func (q *QueryState) ClearFilters() bool {
	if q.StatusFilter == "" && q.ProjectFilter == "" && q.SortField == SortNone && q.SortDirection == Asc {
		return false
	}
	q.StatusFilter = ""
	q.ProjectFilter = ""
	q.SortField = SortNone
	q.SortDirection = Asc
	q.restart()
	return true
}

// GoToPage moves to page when it lies within 1..totalPages; anything else is ignored.
func (q *QueryState) GoToPage(page, totalPages int) bool {
	if page < 1 || page > totalPages || page == q.CurrentPage {
		return false
	}
	q.CurrentPage = page
	q.Selected.Clear()
	return true
}

func (q *QueryState) NextPage(totalPages int) bool {
	return q.GoToPage(q.CurrentPage+1, totalPages)
}

func (q *QueryState) PrevPage(totalPages int) bool {
	return q.GoToPage(q.CurrentPage-1, totalPages)
}

func (q *QueryState) Toggle(id string) {
	q.Selected.Toggle(id)
}

func (q *QueryState) SelectAll(pageItems []OrderRecord) {
	q.Selected.SelectAll(pageItems)
}

func (q *QueryState) DeselectAll() {
	q.Selected.Clear()
}

func (q *QueryState) restart() {
	q.CurrentPage = 1
	q.Selected.Clear()
}
