package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/himeshnishant1/juspay-dashboard/libs/orders"
	"github.com/himeshnishant1/juspay-dashboard/libs/widgets"
)

type orderQueryResponse struct {
	Search        string `json:"search"`
	Status        string `json:"status"`
	Project       string `json:"project"`
	SortField     string `json:"sortField"`
	SortDirection string `json:"sortDirection"`
}

type orderPageResponse struct {
	Items       []orders.OrderRecord `json:"items"`
	TotalCount  int                  `json:"totalCount"`
	TotalPages  int                  `json:"totalPages"`
	CurrentPage int                  `json:"currentPage"`
	StartIndex  int                  `json:"startIndex"`
	EndIndex    int                  `json:"endIndex"`
	HasPrev     bool                 `json:"hasPrev"`
	HasNext     bool                 `json:"hasNext"`
	SelectedIDs []string             `json:"selectedIds"`
	SelectAll   orders.CheckboxState `json:"selectAll"`
	Query       orderQueryResponse   `json:"query"`
	Statuses    []string             `json:"statuses"`
	Projects    []string             `json:"projects"`
}

func newOrderPageResponse(view orders.ViewModel) orderPageResponse {
	items := view.Items
	if items == nil {
		items = []orders.OrderRecord{}
	}
	selected := view.SelectedIDs
	if selected == nil {
		selected = []string{}
	}
	return orderPageResponse{
		Items:       items,
		TotalCount:  view.TotalCount,
		TotalPages:  view.TotalPages,
		CurrentPage: view.CurrentPage,
		StartIndex:  view.StartIndex,
		EndIndex:    view.EndIndex,
		HasPrev:     view.HasPrev,
		HasNext:     view.HasNext,
		SelectedIDs: selected,
		SelectAll:   view.SelectAll,
		Query: orderQueryResponse{
			Search:        view.State.SearchTerm,
			Status:        view.State.StatusFilter,
			Project:       view.State.ProjectFilter,
			SortField:     string(view.State.SortField),
			SortDirection: string(view.State.SortDirection),
		},
		Statuses: view.Statuses,
		Projects: view.Projects,
	}
}

// queryStateFromParams builds a one-shot QueryState from URL parameters. The stateless endpoint
// starts from an empty selection rather than the seeded one.
func (a *App) queryStateFromParams(c *gin.Context) (orders.QueryState, error) {
	state := orders.NewQueryState()
	state.Selected = orders.NewSelection()
	state.SearchTerm = c.Query("search")

	status := strings.TrimSpace(c.Query("status"))
	if err := a.catalog.CheckStatus(status); err != nil {
		return orders.QueryState{}, err
	}
	state.StatusFilter = status

	project := strings.TrimSpace(c.Query("project"))
	if err := a.catalog.CheckProject(project); err != nil {
		return orders.QueryState{}, err
	}
	state.ProjectFilter = project

	field, err := orders.ParseSortField(c.Query("sort"))
	if err != nil {
		return orders.QueryState{}, err
	}
	direction, err := orders.ParseDirection(c.Query("dir"))
	if err != nil {
		return orders.QueryState{}, err
	}
	state.SortField = field
	state.SortDirection = direction

	if raw := strings.TrimSpace(c.Query("page")); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return orders.QueryState{}, errors.New("page must be a positive integer")
		}
		state.CurrentPage = page
	}
	return state, nil
}

func (a *App) apiOrdersHandler(c *gin.Context) {
	state, err := a.queryStateFromParams(c)
	if err != nil {
		writeAPIError(c, validationError(err))
		return
	}
	view := orders.DeriveView(a.catalog, state, a.now())
	c.JSON(http.StatusOK, newOrderPageResponse(view))
}

func (a *App) apiSessionOrdersHandler(c *gin.Context) {
	session, err := a.currentSession(c)
	if err != nil {
		writeAPIError(c, err)
		return
	}
	view := orders.DeriveView(a.catalog, session.Query, a.now())
	c.JSON(http.StatusOK, newOrderPageResponse(view))
}

func (a *App) apiSessionIntentHandler(c *gin.Context) {
	session, err := a.currentSession(c)
	if err != nil {
		writeAPIError(c, err)
		return
	}

	var intent orderIntent
	if err := c.ShouldBindJSON(&intent); err != nil {
		writeAPIError(c, &apiError{Status: http.StatusBadRequest, Code: "invalid_json", Message: "Request body must be JSON"})
		return
	}

	updated, err := a.applySessionIntent(session.ID, intent)
	if err != nil {
		if isIntentValidationError(err) {
			writeAPIError(c, validationError(err))
			return
		}
		if errors.Is(err, errSessionNotFound) {
			writeAPIError(c, &apiError{Status: http.StatusUnauthorized, Code: "session_expired", Message: "Dashboard session expired"})
			return
		}
		writeAPIError(c, err)
		return
	}

	a.log.Debug("order intent applied", "session_id", updated.ID, "action", intent.Action)
	view := orders.DeriveView(a.catalog, updated.Query, a.now())
	c.JSON(http.StatusOK, newOrderPageResponse(view))
}

type dashboardResponse struct {
	KPIs          []widgets.KPI             `json:"kpis"`
	Revenue       widgets.Revenue           `json:"revenue"`
	Projections   []widgets.ProjectionPoint `json:"projections"`
	Sales         []widgets.SalesShare      `json:"sales"`
	TopProducts   []widgets.Product         `json:"topProducts"`
	Locations     []widgets.LocationBar     `json:"locations"`
	Markers       []widgets.MapMarker       `json:"markers"`
	Notifications []widgets.FeedItem        `json:"notifications"`
	Activities    []widgets.FeedItem        `json:"activities"`
	Contacts      []widgets.Contact         `json:"contacts"`
	GeneratedAt   time.Time                 `json:"generatedAt"`
}

func (a *App) buildDashboardResponse(now time.Time) dashboardResponse {
	d := a.dashboard
	return dashboardResponse{
		KPIs:          d.KPIs,
		Revenue:       d.Revenue,
		Projections:   d.Projections,
		Sales:         d.SalesShares(),
		TopProducts:   d.TopProducts,
		Locations:     d.LocationBars(),
		Markers:       d.MapMarkers(),
		Notifications: d.NotificationFeed(now),
		Activities:    d.ActivityFeed(now),
		Contacts:      d.Contacts,
		GeneratedAt:   now,
	}
}

func (a *App) apiDashboardHandler(c *gin.Context) {
	c.JSON(http.StatusOK, a.buildDashboardResponse(a.now()))
}
