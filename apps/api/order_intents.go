package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/himeshnishant1/juspay-dashboard/libs/orders"
)

const (
	intentSearch       = "search"
	intentClearSearch  = "clear_search"
	intentStatus       = "status"
	intentProject      = "project"
	intentSort         = "sort"
	intentClearFilters = "clear_filters"
	intentPage         = "page"
	intentNextPage     = "next_page"
	intentPrevPage     = "prev_page"
	intentToggle       = "toggle"
	intentSelectAll    = "select_all"
	intentDeselectAll  = "deselect_all"
)

var errUnknownIntent = errors.New("unknown intent")

// orderIntent is one user action against the order table. Forms and JSON share the shape;
// which fields matter depends on Action.
type orderIntent struct {
	Action    string `json:"action" form:"action"`
	Value     string `json:"value" form:"value"`
	Direction string `json:"direction" form:"direction"`
	Page      int    `json:"page" form:"page"`
	ID        string `json:"id" form:"id"`
}

// applyOrderIntent mutates state. Navigation outside 1..totalPages is silently ignored; unknown
// filter values, sort fields and order ids are errors wrapping the orders sentinels.
func (a *App) applyOrderIntent(state *orders.QueryState, intent orderIntent, now time.Time) error {
	switch strings.ToLower(strings.TrimSpace(intent.Action)) {
	case intentSearch:
		state.SetSearch(intent.Value)
	case intentClearSearch:
		state.SetSearch("")
	case intentStatus:
		status := strings.TrimSpace(intent.Value)
		if err := a.catalog.CheckStatus(status); err != nil {
			return err
		}
		state.SetStatusFilter(status)
	case intentProject:
		project := strings.TrimSpace(intent.Value)
		if err := a.catalog.CheckProject(project); err != nil {
			return err
		}
		state.SetProjectFilter(project)
	case intentSort:
		field, err := orders.ParseSortField(intent.Value)
		if err != nil {
			return err
		}
		if strings.TrimSpace(intent.Direction) == "" {
			state.ChooseSort(field)
			return nil
		}
		direction, err := orders.ParseDirection(intent.Direction)
		if err != nil {
			return err
		}
		state.SetSort(field, direction)
	case intentClearFilters:
		state.ClearFilters()
	case intentPage:
		state.GoToPage(intent.Page, a.totalPages(*state, now))
	case intentNextPage:
		state.NextPage(a.totalPages(*state, now))
	case intentPrevPage:
		state.PrevPage(a.totalPages(*state, now))
	case intentToggle:
		id := strings.TrimSpace(intent.ID)
		if err := a.catalog.CheckOrder(id); err != nil {
			return err
		}
		state.Toggle(id)
	case intentSelectAll:
		view := orders.DeriveView(a.catalog, *state, now)
		state.SelectAll(view.Items)
	case intentDeselectAll:
		state.DeselectAll()
	default:
		return fmt.Errorf("%w: %q", errUnknownIntent, intent.Action)
	}
	return nil
}

func (a *App) totalPages(state orders.QueryState, now time.Time) int {
	return orders.DeriveView(a.catalog, state, now).TotalPages
}

// applySessionIntent runs the intent against the stored session atomically.
func (a *App) applySessionIntent(sessionID string, intent orderIntent) (dashboardSession, error) {
	now := a.now()
	return a.sessions.update(sessionID, now, func(s *dashboardSession) error {
		return a.applyOrderIntent(&s.Query, intent, now)
	})
}

func isIntentValidationError(err error) bool {
	for _, target := range []error{
		errUnknownIntent,
		orders.ErrUnknownStatus,
		orders.ErrUnknownProject,
		orders.ErrUnknownSortField,
		orders.ErrUnknownDirection,
		orders.ErrUnknownOrder,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
