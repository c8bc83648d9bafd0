package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewQueryState(t *testing.T) {
	state := NewQueryState()

	assert.Equal(t, 1, state.CurrentPage)
	assert.Equal(t, Asc, state.SortDirection)
	assert.Equal(t, SortNone, state.SortField)
	assert.Equal(t, []string{SeededSelection}, state.Selected.IDs())
}

func TestQueryInputChangesResetPageAndSelection(t *testing.T) {
	changes := []struct {
		name   string
		change func(*QueryState) bool
	}{
		{name: "search", change: func(q *QueryState) bool { return q.SetSearch("lane") }},
		{name: "status", change: func(q *QueryState) bool { return q.SetStatusFilter("Complete") }},
		{name: "project", change: func(q *QueryState) bool { return q.SetProjectFilter("Landing Page") }},
		{name: "sort field", change: func(q *QueryState) bool { return q.SetSort(SortByDate, Asc) }},
		{name: "choose sort", change: func(q *QueryState) bool { return q.ChooseSort(SortByUser) }},
	}

	for _, tt := range changes {
		t.Run(tt.name, func(t *testing.T) {
			state := NewQueryState()
			state.CurrentPage = 3
			state.Toggle("#CM9801")

			assert.True(t, tt.change(&state))
			assert.Equal(t, 1, state.CurrentPage)
			assert.Equal(t, 0, state.Selected.Len())
		})
	}
}

func TestQuerySettingSameValueIsNoChange(t *testing.T) {
	state := NewQueryState()
	state.SearchTerm = "lane"
	state.CurrentPage = 2

	assert.False(t, state.SetSearch("lane"))
	assert.False(t, state.SetStatusFilter(""))
	assert.False(t, state.SetProjectFilter(""))
	assert.False(t, state.SetSort(SortNone, ""))
	assert.Equal(t, 2, state.CurrentPage)
	assert.True(t, state.Selected.Contains(SeededSelection))
}

func TestChooseSortTogglesDirection(t *testing.T) {
	state := NewQueryState()

	state.ChooseSort(SortByDate)
	assert.Equal(t, SortByDate, state.SortField)
	assert.Equal(t, Asc, state.SortDirection)

	state.ChooseSort(SortByDate)
	assert.Equal(t, Desc, state.SortDirection)

	state.ChooseSort(SortByDate)
	assert.Equal(t, Asc, state.SortDirection)

	state.ChooseSort(SortByDate)
	state.ChooseSort(SortByUser)
	assert.Equal(t, SortByUser, state.SortField)
	assert.Equal(t, Asc, state.SortDirection)
}

func TestClearFiltersKeepsSearch(t *testing.T) {
	state := NewQueryState()
	state.SetSearch("lane")
	state.SetStatusFilter("Rejected")
	state.SetProjectFilter("Landing Page")
	state.SetSort(SortByDate, Desc)

	assert.True(t, state.ClearFilters())
	assert.Equal(t, "lane", state.SearchTerm)
	assert.Empty(t, state.StatusFilter)
	assert.Empty(t, state.ProjectFilter)
	assert.Equal(t, SortNone, state.SortField)
	assert.Equal(t, Asc, state.SortDirection)

	assert.False(t, state.ClearFilters())
}

func TestGoToPage(t *testing.T) {
	state := NewQueryState()

	assert.False(t, state.GoToPage(0, 3))
	assert.False(t, state.GoToPage(4, 3))
	assert.False(t, state.GoToPage(1, 3))
	assert.False(t, state.PrevPage(3))
	assert.True(t, state.Selected.Contains(SeededSelection))

	assert.True(t, state.NextPage(3))
	assert.Equal(t, 2, state.CurrentPage)
	assert.Equal(t, 0, state.Selected.Len())

	state.Toggle("#CM9811")
	assert.True(t, state.GoToPage(3, 3))
	assert.Equal(t, 0, state.Selected.Len())
	assert.False(t, state.NextPage(3))
	assert.Equal(t, 3, state.CurrentPage)

	assert.True(t, state.PrevPage(3))
	assert.Equal(t, 2, state.CurrentPage)
}

func TestSelectionChangesKeepPage(t *testing.T) {
	state := NewQueryState()
	state.CurrentPage = 2

	state.SelectAll([]OrderRecord{{ID: "#CM9811"}, {ID: "#CM9812"}})
	assert.Equal(t, []string{"#CM9811", "#CM9812"}, state.Selected.IDs())

	state.Toggle("#CM9811")
	assert.Equal(t, []string{"#CM9812"}, state.Selected.IDs())

	state.DeselectAll()
	assert.Equal(t, 0, state.Selected.Len())
	assert.Equal(t, 2, state.CurrentPage)
}
