package main

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/himeshnishant1/juspay-dashboard/libs/orders"
)

func (a *App) registerPageRoutes(r *gin.Engine) {
	staticFS, err := pageStaticFileSystem(a.cfg.Env)
	if err != nil {
		panic(err)
	}
	r.StaticFS("/static", staticFS)

	r.POST("/language", a.languageSubmitHandler)

	pages := r.Group("")
	pages.Use(a.dashboardSession())
	{
		pages.GET(dashboardPath, a.dashboardPageHandler)
		pages.GET(orderListPath, a.orderListPageHandler)
		pages.POST("/orders/intents", a.orderIntentSubmitHandler)
		pages.GET("/orders/export.csv", a.exportDownloadHandler(exportFormatCSV))
		pages.GET("/orders/export.pdf", a.exportDownloadHandler(exportFormatPDF))
		pages.POST("/orders/export/email", a.exportEmailSubmitHandler)
		pages.POST("/theme/toggle", a.themeToggleSubmitHandler)
	}
}

func (a *App) dashboardPageHandler(c *gin.Context) {
	session, err := a.currentSession(c)
	if err != nil {
		writeAPIError(c, err)
		return
	}

	lang := a.languageFromRequest(c)
	dashboard := a.buildDashboardResponse(a.now())

	kpis := make([]kpiCardView, 0, len(dashboard.KPIs))
	for _, kpi := range dashboard.KPIs {
		kpis = append(kpis, kpiCardView{
			Title:  pageText(lang, "kpi_title_"+strings.ToLower(kpi.Title)),
			Value:  kpi.Value,
			Change: kpi.Change,
			Up:     kpi.Up(),
		})
	}

	data := dashboardViewData{
		pageBaseViewData: a.pageBaseData(c, session, "page_title_dashboard", "dashboard"),
		KPIs:             kpis,
		Revenue:          dashboard.Revenue,
		Projections:      dashboard.Projections,
		Sales:            dashboard.Sales,
		TopProducts:      dashboard.TopProducts,
		Locations:        dashboard.Locations,
		Markers:          dashboard.Markers,
		Notifications:    dashboard.Notifications,
		Activities:       dashboard.Activities,
		Contacts:         dashboard.Contacts,
	}
	a.renderPage(c, http.StatusOK, pageTemplateDashboard, data)
}

func (a *App) orderListPageHandler(c *gin.Context) {
	session, err := a.currentSession(c)
	if err != nil {
		writeAPIError(c, err)
		return
	}

	lang := a.languageFromRequest(c)
	base := a.pageBaseData(c, session, "page_title_orders", "orders")
	view := orders.DeriveView(a.catalog, session.Query, a.now())

	rows := make([]orderRowView, 0, len(view.Items))
	for _, record := range view.Items {
		rows = append(rows, newOrderRowView(record, view.IsSelected(record.ID)))
	}

	recent := []exportRowView{}
	records, err := a.exports.List(c.Request.Context(), exportListLimit)
	if err != nil {
		a.log.Error("list exports failed", "error", err)
		if base.ErrorMessage == "" {
			base.ErrorMessage = pageText(lang, "error_exports_load_failed")
		}
	}
	for _, record := range records {
		recent = append(recent, exportRowView{
			CreatedAt: record.CreatedAt.In(a.now().Location()).Format(exportsTimestampLayout),
			Format:    strings.ToUpper(record.Format),
			Scope:     record.Scope,
			RowCount:  record.RowCount,
			FileName:  record.FileName,
		})
	}

	rangeLabel := ""
	if len(view.Items) > 0 {
		rangeLabel = fmt.Sprintf(pageText(lang, "orders_range"), view.StartIndex+1, view.EndIndex, view.TotalCount)
	}

	data := orderListViewData{
		pageBaseViewData:  base,
		Rows:              rows,
		Columns:           buildSortColumns(lang, session.Query),
		Statuses:          view.Statuses,
		Projects:          view.Projects,
		SearchTerm:        session.Query.SearchTerm,
		StatusFilter:      session.Query.StatusFilter,
		ProjectFilter:     session.Query.ProjectFilter,
		SelectedCount:     len(view.SelectedIDs),
		SelectAllChecked:  view.SelectAll.Checked,
		SelectAllPartial:  view.SelectAll.Indeterminate,
		Empty:             len(view.Items) == 0,
		RangeLabel:        rangeLabel,
		Pagination:        buildPaginationView(view),
		RecentExports:     recent,
		ExportEmailTarget: a.cfg.ExportEmailTo,
	}
	a.renderPage(c, http.StatusOK, pageTemplateOrders, data)
}

// intentFromForm reads an orderIntent from a posted form. A malformed page number means page 1.
func intentFromForm(c *gin.Context) orderIntent {
	return orderIntent{
		Action:    c.PostForm("action"),
		Value:     c.PostForm("value"),
		Direction: c.PostForm("direction"),
		Page:      parsePageParam(c.PostForm("page")),
		ID:        c.PostForm("id"),
	}
}

func (a *App) orderIntentSubmitHandler(c *gin.Context) {
	lang := a.languageFromRequest(c)
	session, err := a.currentSession(c)
	if err != nil {
		writeAPIError(c, err)
		return
	}

	intent := intentFromForm(c)
	if _, err := a.applySessionIntent(session.ID, intent); err != nil {
		key := "error_intent_failed"
		if isIntentValidationError(err) {
			key = "error_intent_invalid"
		} else if !errors.Is(err, errSessionNotFound) {
			a.log.Error("apply order intent failed", "action", intent.Action, "error", err)
		}
		redirectWithMessage(c, orderListPath, "error", pageText(lang, key))
		return
	}

	c.Redirect(http.StatusSeeOther, orderListPath)
}

func (a *App) languageSubmitHandler(c *gin.Context) {
	language := normalizeLanguage(c.PostForm("language"))
	a.setLanguageCookie(c, language)
	next := sanitizePageRedirectTarget(c.PostForm("next"))
	c.Redirect(http.StatusSeeOther, next)
}

func buildSortColumns(lang string, state orders.QueryState) []sortColumnView {
	labels := map[orders.SortField]string{
		orders.SortByID:      "col_order_id",
		orders.SortByUser:    "col_user",
		orders.SortByProject: "col_project",
		orders.SortByAddress: "col_address",
		orders.SortByDate:    "col_date",
		orders.SortByStatus:  "col_status",
	}

	columns := make([]sortColumnView, 0, len(orders.SortFields))
	for _, field := range orders.SortFields {
		column := sortColumnView{
			Field:     string(field),
			Label:     pageText(lang, labels[field]),
			Indicator: sortIndicatorUnsorted,
			AriaSort:  "none",
		}
		if state.SortField == field {
			column.Active = true
			column.Indicator = sortIndicatorAscending
			column.AriaSort = "ascending"
			if state.SortDirection == orders.Desc {
				column.Indicator = sortIndicatorDescending
				column.AriaSort = "descending"
			}
		}
		columns = append(columns, column)
	}
	return columns
}

// statusClass turns a status label into a CSS class, e.g. "In Progress" -> "status-in-progress".
func statusClass(label string) string {
	slug := strings.Join(strings.Fields(strings.ToLower(label)), "-")
	if slug == "" {
		return ""
	}
	return statusClassPrefix + slug
}

func (a *App) renderPage(c *gin.Context, status int, contentTemplatePath string, data any) {
	templates, err := a.templates.templatesForRender(contentTemplatePath)
	if err != nil {
		c.String(http.StatusInternalServerError, "page template error: %v", err)
		return
	}

	c.Status(status)
	if executeErr := templates.ExecuteTemplate(c.Writer, "layout", data); executeErr != nil {
		a.log.Error("render page template failed", "error", executeErr)
		if !c.Writer.Written() {
			c.String(http.StatusInternalServerError, "render failure")
		}
	}
}

func (a *App) pageBaseData(c *gin.Context, session dashboardSession, titleKey, activeNav string) pageBaseViewData {
	lang := a.languageFromRequest(c)
	theme := normalizeTheme(session.Theme)

	return pageBaseViewData{
		Title:         pageText(lang, titleKey),
		Lang:          lang,
		Text:          pageTexts(lang),
		Theme:         theme,
		DarkMode:      theme == themeDark,
		CurrentPath:   sanitizePageRedirectTarget(c.Request.URL.Path),
		ActiveNav:     activeNav,
		ErrorMessage:  strings.TrimSpace(c.Query("error")),
		NoticeMessage: strings.TrimSpace(c.Query("notice")),
	}
}

func (a *App) setLanguageCookie(c *gin.Context, language string) {
	secure := strings.EqualFold(a.cfg.Env, "production")
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(languageCookieName, normalizeLanguage(language), int(languageCookieMaxAge.Seconds()), "/", "", secure, true)
}

func (a *App) languageFromRequest(c *gin.Context) string {
	cookieValue, err := c.Cookie(languageCookieName)
	if err != nil {
		return defaultLanguage
	}
	return normalizeLanguage(cookieValue)
}

func normalizeLanguage(language string) string {
	switch strings.ToLower(strings.TrimSpace(language)) {
	case "nl":
		return "nl"
	default:
		return defaultLanguage
	}
}

func pageTexts(lang string) map[string]string {
	if translations, ok := pageTranslations[normalizeLanguage(lang)]; ok {
		return translations
	}
	return pageTranslations[defaultLanguage]
}

func pageText(lang, key string) string {
	if value, ok := pageTexts(lang)[key]; ok {
		return value
	}
	if value, ok := pageTranslations[defaultLanguage][key]; ok {
		return value
	}
	return key
}

// sanitizePageRedirectTarget keeps redirects on the dashboard or order list pages.
func sanitizePageRedirectTarget(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return dashboardPath
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return dashboardPath
	}
	if parsed.IsAbs() || parsed.Host != "" || strings.HasPrefix(parsed.Path, "//") {
		return dashboardPath
	}
	if parsed.Path != dashboardPath && parsed.Path != orderListPath {
		return dashboardPath
	}

	target := parsed.Path
	if parsed.RawQuery != "" {
		target += "?" + parsed.RawQuery
	}
	return target
}

func redirectWithMessage(c *gin.Context, target, key, value string) {
	parsed, err := url.Parse(sanitizePageRedirectTarget(target))
	if err != nil {
		c.Redirect(http.StatusSeeOther, dashboardPath)
		return
	}
	query := parsed.Query()
	query.Del("error")
	query.Del("notice")
	query.Set(key, value)
	parsed.RawQuery = query.Encode()

	redirectURL := parsed.Path
	if parsed.RawQuery != "" {
		redirectURL += "?" + parsed.RawQuery
	}
	c.Redirect(http.StatusSeeOther, redirectURL)
}
