package main

import (
	"time"

	"github.com/himeshnishant1/juspay-dashboard/libs/orders"
	"github.com/himeshnishant1/juspay-dashboard/libs/widgets"
)

const (
	languageCookieName       = "orderdash_language"
	defaultLanguage          = "en"
	languageCookieMaxAge     = 180 * 24 * time.Hour
	pageTemplateLayoutPath   = "templates/layout.tmpl"
	pageTemplateDashboard    = "templates/dashboard.tmpl"
	pageTemplateOrders       = "templates/orders.tmpl"
	paginationWindow         = 5
	exportsTimestampLayout   = "2006-01-02 15:04"
	orderListPath            = "/orders"
	dashboardPath            = "/"
	sortIndicatorAscending   = "↑"
	sortIndicatorDescending  = "↓"
	sortIndicatorUnsorted    = "↕"
	statusClassPrefix        = "status-"
	defaultStatusDotCSSColor = "rgba(28, 28, 28, 0.4)"
)

var pageTranslations = map[string]map[string]string{
	"en": {
		"app_title":                 "ByeWind",
		"language_label":            "Language",
		"language_apply":            "Apply",
		"language_en":               "English",
		"language_nl":               "Nederlands",
		"nav_dashboard":             "Default",
		"nav_orders":                "Order List",
		"nav_dashboards":            "Dashboards",
		"nav_pages":                 "Pages",
		"theme_toggle_dark":         "Dark mode",
		"theme_toggle_light":        "Light mode",
		"page_title_dashboard":      "Dashboard",
		"page_title_orders":         "Order List",
		"kpi_title_customers":       "Customers",
		"kpi_title_orders":          "Orders",
		"kpi_title_revenue":         "Revenue",
		"kpi_title_growth":          "Growth",
		"widget_projections":        "Projections vs Actuals",
		"widget_revenue":            "Revenue",
		"widget_revenue_current":    "Current Week",
		"widget_revenue_previous":   "Previous Week",
		"widget_locations":          "Revenue by Location",
		"widget_top_products":       "Top Selling Products",
		"widget_total_sales":        "Total Sales",
		"widget_notifications":      "Notifications",
		"widget_activities":         "Activities",
		"widget_contacts":           "Contacts",
		"col_name":                  "Name",
		"col_price":                 "Price",
		"col_quantity":              "Quantity",
		"col_amount":                "Amount",
		"col_order_id":              "Order ID",
		"col_user":                  "User",
		"col_project":               "Project",
		"col_address":               "Address",
		"col_date":                  "Date",
		"col_status":                "Status",
		"search_placeholder":        "Search",
		"search_apply":              "Search",
		"search_clear":              "Clear search",
		"filter_status":             "Status",
		"filter_project":            "Project",
		"filter_all_statuses":       "All statuses",
		"filter_all_projects":       "All projects",
		"filter_apply":              "Apply",
		"filter_clear":              "Clear filters",
		"select_all":                "Select all",
		"deselect_all":              "Deselect all",
		"select_row":                "Select",
		"selected_count":            "selected",
		"orders_empty":              "No orders match the current filters.",
		"orders_range":              "Showing %d-%d of %d",
		"pagination_prev":           "Previous",
		"pagination_next":           "Next",
		"export_csv":                "Export CSV",
		"export_pdf":                "Export PDF",
		"export_email":              "E-mail CSV",
		"exports_recent":            "Recent exports",
		"exports_col_created":       "Created",
		"exports_col_format":        "Format",
		"exports_col_scope":         "Scope",
		"exports_col_rows":          "Rows",
		"exports_empty":             "No exports yet.",
		"error_intent_invalid":      "That filter or order is not available.",
		"error_intent_failed":       "Updating the order list failed.",
		"error_theme_failed":        "Switching the theme failed.",
		"error_export_failed":       "Generating the export failed.",
		"error_export_email_failed": "Sending the export e-mail failed.",
		"error_exports_load_failed": "Loading recent exports failed.",
		"notice_export_emailed":     "Export with %d orders sent to %s.",
	},
	"nl": {
		"app_title":                 "ByeWind",
		"language_label":            "Taal",
		"language_apply":            "Wijzigen",
		"language_en":               "English",
		"language_nl":               "Nederlands",
		"nav_dashboard":             "Standaard",
		"nav_orders":                "Bestellingen",
		"nav_dashboards":            "Dashboards",
		"nav_pages":                 "Pagina's",
		"theme_toggle_dark":         "Donkere modus",
		"theme_toggle_light":        "Lichte modus",
		"page_title_dashboard":      "Dashboard",
		"page_title_orders":         "Bestellingen",
		"kpi_title_customers":       "Klanten",
		"kpi_title_orders":          "Bestellingen",
		"kpi_title_revenue":         "Omzet",
		"kpi_title_growth":          "Groei",
		"widget_projections":        "Prognoses vs werkelijk",
		"widget_revenue":            "Omzet",
		"widget_revenue_current":    "Deze week",
		"widget_revenue_previous":   "Vorige week",
		"widget_locations":          "Omzet per locatie",
		"widget_top_products":       "Best verkochte producten",
		"widget_total_sales":        "Totale verkoop",
		"widget_notifications":      "Meldingen",
		"widget_activities":         "Activiteiten",
		"widget_contacts":           "Contacten",
		"col_name":                  "Naam",
		"col_price":                 "Prijs",
		"col_quantity":              "Aantal",
		"col_amount":                "Bedrag",
		"col_order_id":              "Bestel-ID",
		"col_user":                  "Gebruiker",
		"col_project":               "Project",
		"col_address":               "Adres",
		"col_date":                  "Datum",
		"col_status":                "Status",
		"search_placeholder":        "Zoeken",
		"search_apply":              "Zoeken",
		"search_clear":              "Zoekopdracht wissen",
		"filter_status":             "Status",
		"filter_project":            "Project",
		"filter_all_statuses":       "Alle statussen",
		"filter_all_projects":       "Alle projecten",
		"filter_apply":              "Toepassen",
		"filter_clear":              "Filters wissen",
		"select_all":                "Alles selecteren",
		"deselect_all":              "Selectie opheffen",
		"select_row":                "Selecteer",
		"selected_count":            "geselecteerd",
		"orders_empty":              "Geen bestellingen voor deze filters.",
		"orders_range":              "%d-%d van %d",
		"pagination_prev":           "Vorige",
		"pagination_next":           "Volgende",
		"export_csv":                "Exporteer CSV",
		"export_pdf":                "Exporteer PDF",
		"export_email":              "CSV e-mailen",
		"exports_recent":            "Recente exports",
		"exports_col_created":       "Aangemaakt",
		"exports_col_format":        "Formaat",
		"exports_col_scope":         "Bereik",
		"exports_col_rows":          "Rijen",
		"exports_empty":             "Nog geen exports.",
		"error_intent_invalid":      "Dat filter of die bestelling bestaat niet.",
		"error_intent_failed":       "Bijwerken van de bestellijst is mislukt.",
		"error_theme_failed":        "Wisselen van thema is mislukt.",
		"error_export_failed":       "Export genereren is mislukt.",
		"error_export_email_failed": "Export e-mailen is mislukt.",
		"error_exports_load_failed": "Recente exports laden is mislukt.",
		"notice_export_emailed":     "Export met %d bestellingen verstuurd naar %s.",
	},
}

type pageBaseViewData struct {
	Title         string
	Lang          string
	Text          map[string]string
	Theme         string
	DarkMode      bool
	CurrentPath   string
	ActiveNav     string
	ErrorMessage  string
	NoticeMessage string
}

type kpiCardView struct {
	Title  string
	Value  string
	Change string
	Up     bool
}

type dashboardViewData struct {
	pageBaseViewData
	KPIs          []kpiCardView
	Revenue       widgets.Revenue
	Projections   []widgets.ProjectionPoint
	Sales         []widgets.SalesShare
	TopProducts   []widgets.Product
	Locations     []widgets.LocationBar
	Markers       []widgets.MapMarker
	Notifications []widgets.FeedItem
	Activities    []widgets.FeedItem
	Contacts      []widgets.Contact
}

type orderRowView struct {
	ID           string
	UserName     string
	AvatarURL    string
	Project      string
	Address      string
	Date         string
	StatusLabel  string
	StatusClass  string
	StatusColor  string
	StatusDot    string
	Selected     bool
}

type sortColumnView struct {
	Field     string
	Label     string
	Active    bool
	Indicator string
	AriaSort  string
}

type paginationPageView struct {
	Number  int
	Current bool
}

type paginationViewData struct {
	CurrentPage int
	TotalPages  int
	TotalCount  int
	StartIndex  int
	EndIndex    int
	NextPage    int
	PrevPage    int
	HasNext     bool
	HasPrev     bool
	Pages       []paginationPageView
}

type exportRowView struct {
	CreatedAt string
	Format    string
	Scope     string
	RowCount  int
	FileName  string
}

type orderListViewData struct {
	pageBaseViewData
	Rows              []orderRowView
	Columns           []sortColumnView
	Statuses          []string
	Projects          []string
	SearchTerm        string
	StatusFilter      string
	ProjectFilter     string
	SelectedCount     int
	SelectAllChecked  bool
	SelectAllPartial  bool
	Empty             bool
	RangeLabel        string
	Pagination        paginationViewData
	RecentExports     []exportRowView
	ExportEmailTarget string
}

func newOrderRowView(record orders.OrderRecord, selected bool) orderRowView {
	dot := record.Status.DotColorToken
	if dot == "" {
		dot = defaultStatusDotCSSColor
	}
	return orderRowView{
		ID:          record.ID,
		UserName:    record.User.Name,
		AvatarURL:   record.User.AvatarURL,
		Project:     record.Project,
		Address:     record.Address,
		Date:        record.Date,
		StatusLabel: record.Status.Label,
		StatusClass: statusClass(record.Status.Label),
		StatusColor: record.Status.ColorToken,
		StatusDot:   dot,
		Selected:    selected,
	}
}
