package widgets

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/himeshnishant1/juspay-dashboard/libs/orders"
)

const minMarkerSize = 8.0
const maxMarkerSize = 20.0

// Coordinates is a latitude/longitude pair in degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

var cityCoordinates = map[string]Coordinates{
	"New York":      {Lat: 40.7128, Lng: -74.0060},
	"San Francisco": {Lat: 37.7749, Lng: -122.4194},
	"Sydney":        {Lat: -33.8688, Lng: 151.2093},
	"Singapore":     {Lat: 1.3521, Lng: 103.8198},
	"London":        {Lat: 51.5074, Lng: -0.1278},
	"Tokyo":         {Lat: 35.6762, Lng: 139.6503},
	"Dubai":         {Lat: 25.2048, Lng: 55.2708},
}

func CityCoordinates(city string) (Coordinates, bool) {
	coords, ok := cityCoordinates[city]
	return coords, ok
}

type SalesShare struct {
	SalesChannel
	Percent float64 `json:"percent"`
}

// SalesShares returns each channel's share of total sales, rounded to one decimal.
func (d *Dashboard) SalesShares() []SalesShare {
	total := 0.0
	for _, channel := range d.Sales {
		total += channel.Value
	}

	shares := make([]SalesShare, 0, len(d.Sales))
	for _, channel := range d.Sales {
		share := SalesShare{SalesChannel: channel}
		if total > 0 {
			share.Percent = roundTo(channel.Value/total*100, 1)
		}
		shares = append(shares, share)
	}
	return shares
}

type LocationBar struct {
	Location
	Thousands int     `json:"thousands"`
	Width     float64 `json:"width"`
}

// LocationBars sizes each city's bar relative to the best earning city (100%).
func (d *Dashboard) LocationBars() []LocationBar {
	maxRevenue := d.maxLocationRevenue()

	bars := make([]LocationBar, 0, len(d.Locations))
	for _, location := range d.Locations {
		n, _ := parseThousands(location.Revenue)
		bar := LocationBar{Location: location, Thousands: n}
		if maxRevenue > 0 {
			bar.Width = roundTo(float64(n)/float64(maxRevenue)*100, 2)
		}
		bars = append(bars, bar)
	}
	return bars
}

type MapMarker struct {
	City    string      `json:"city"`
	Revenue string      `json:"revenue"`
	Coords  Coordinates `json:"coords"`
	Size    float64     `json:"size"`
}

// MapMarkers places one marker per city with known coordinates. Size scales with revenue
// between minMarkerSize and maxMarkerSize.
func (d *Dashboard) MapMarkers() []MapMarker {
	maxRevenue := d.maxLocationRevenue()

	markers := make([]MapMarker, 0, len(d.Locations))
	for _, location := range d.Locations {
		coords, ok := cityCoordinates[location.City]
		if !ok {
			continue
		}
		n, _ := parseThousands(location.Revenue)
		size := minMarkerSize
		if maxRevenue > 0 {
			size = math.Max(minMarkerSize, float64(n)/float64(maxRevenue)*maxMarkerSize)
		}
		markers = append(markers, MapMarker{
			City:    location.City,
			Revenue: location.Revenue,
			Coords:  coords,
			Size:    roundTo(size, 2),
		})
	}
	return markers
}

// FeedItem is a notification or activity with its time resolved against now.
type FeedItem struct {
	Title     string `json:"title"`
	Kind      string `json:"kind,omitempty"`
	AvatarURL string `json:"avatar,omitempty"`
	Time      string `json:"time"`
	Timestamp int64  `json:"timestamp"`
}

// NotificationFeed keeps fixture order; Timestamp is 0 for phrases the date parser does not know.
func (d *Dashboard) NotificationFeed(now time.Time) []FeedItem {
	items := make([]FeedItem, 0, len(d.Notifications))
	for _, n := range d.Notifications {
		items = append(items, FeedItem{
			Title:     n.Title,
			Kind:      n.Kind,
			Time:      n.Time,
			Timestamp: orders.ParseApproxDate(n.Time, now),
		})
	}
	return items
}

func (d *Dashboard) ActivityFeed(now time.Time) []FeedItem {
	items := make([]FeedItem, 0, len(d.Activities))
	for _, a := range d.Activities {
		items = append(items, FeedItem{
			Title:     a.Title,
			AvatarURL: a.AvatarURL,
			Time:      a.Time,
			Timestamp: orders.ParseApproxDate(a.Time, now),
		})
	}
	return items
}

func (d *Dashboard) maxLocationRevenue() int {
	maxRevenue := 0
	for _, location := range d.Locations {
		if n, err := parseThousands(location.Revenue); err == nil && n > maxRevenue {
			maxRevenue = n
		}
	}
	return maxRevenue
}

// parseThousands reads "72K" as 72.
func parseThousands(raw string) (int, error) {
	digits := strings.TrimSuffix(strings.ToUpper(strings.TrimSpace(raw)), "K")
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("revenue %q is not <N>K", raw)
	}
	if n < 0 {
		return 0, fmt.Errorf("revenue %q is negative", raw)
	}
	return n, nil
}

func roundTo(value float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(value*scale) / scale
}
