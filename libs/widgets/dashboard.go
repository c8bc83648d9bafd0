// Package widgets loads the dashboard widget fixture and derives the numbers its charts,
// bars and map markers are drawn from.
package widgets

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/tailscale/hujson"
)

var ErrInvalidDashboard = errors.New("invalid dashboard fixture")

//go:embed fixtures/dashboard.jsonc
var bundledDashboard []byte

var defaultDashboard = sync.OnceValues(func() (*Dashboard, error) {
	return LoadDashboard(bundledDashboard)
})

type KPI struct {
	Title  string `json:"title"`
	Value  string `json:"value"`
	Change string `json:"change"`
	Trend  string `json:"trend"`
}

func (k KPI) Up() bool {
	return k.Trend == "up"
}

type RevenuePoint struct {
	Month    string  `json:"month"`
	Current  float64 `json:"current"`
	Previous float64 `json:"previous"`
}

type Revenue struct {
	CurrentWeek  string         `json:"currentWeek"`
	PreviousWeek string         `json:"previousWeek"`
	Series       []RevenuePoint `json:"series"`
}

type ProjectionPoint struct {
	Month       string  `json:"month"`
	Actuals     float64 `json:"actuals"`
	Projections float64 `json:"projections"`
}

type SalesChannel struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

type Product struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
	Amount   string `json:"amount"`
}

// Location is revenue per city, written in thousands ("72K").
type Location struct {
	City    string `json:"city"`
	Revenue string `json:"revenue"`
}

type Notification struct {
	Title string `json:"title"`
	Kind  string `json:"kind"`
	Time  string `json:"time"`
}

type Activity struct {
	Title     string `json:"title"`
	AvatarURL string `json:"avatar"`
	Time      string `json:"time"`
}

type Contact struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatar"`
}

// Dashboard is the parsed widget fixture.
type Dashboard struct {
	KPIs          []KPI             `json:"kpis"`
	Revenue       Revenue           `json:"revenue"`
	Projections   []ProjectionPoint `json:"projections"`
	Sales         []SalesChannel    `json:"sales"`
	TopProducts   []Product         `json:"topProducts"`
	Locations     []Location        `json:"locations"`
	Notifications []Notification    `json:"notifications"`
	Activities    []Activity        `json:"activities"`
	Contacts      []Contact         `json:"contacts"`
}

func DefaultDashboard() (*Dashboard, error) {
	return defaultDashboard()
}

// LoadDashboard parses a JSONC widget fixture and checks the values that later get parsed.
func LoadDashboard(data []byte) (*Dashboard, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JSONC: %w", ErrInvalidDashboard, err)
	}

	var dashboard Dashboard
	if err := json.Unmarshal(standardized, &dashboard); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %w", ErrInvalidDashboard, err)
	}
	for _, location := range dashboard.Locations {
		if _, err := parseThousands(location.Revenue); err != nil {
			return nil, fmt.Errorf("%w: location %q: %w", ErrInvalidDashboard, location.City, err)
		}
	}
	for _, channel := range dashboard.Sales {
		if channel.Value < 0 {
			return nil, fmt.Errorf("%w: sales channel %q has negative value", ErrInvalidDashboard, channel.Name)
		}
	}
	return &dashboard, nil
}
