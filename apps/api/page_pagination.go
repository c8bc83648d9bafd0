package main

import (
	"strconv"
	"strings"

	"github.com/himeshnishant1/juspay-dashboard/libs/orders"
)

const defaultPage = 1

// parsePageParam reads a 1-based page number, treating anything unusable as page 1.
func parsePageParam(rawPage string) int {
	page, err := strconv.Atoi(strings.TrimSpace(rawPage))
	if err != nil || page < defaultPage {
		return defaultPage
	}
	return page
}

// buildPaginationView lists at most paginationWindow page numbers centered on the current page.
func buildPaginationView(view orders.ViewModel) paginationViewData {
	data := paginationViewData{
		CurrentPage: view.CurrentPage,
		TotalPages:  view.TotalPages,
		TotalCount:  view.TotalCount,
		StartIndex:  view.StartIndex,
		EndIndex:    view.EndIndex,
		NextPage:    view.CurrentPage + 1,
		PrevPage:    view.CurrentPage - 1,
		HasNext:     view.HasNext,
		HasPrev:     view.HasPrev,
		Pages:       []paginationPageView{},
	}
	if view.TotalPages == 0 {
		return data
	}

	first := view.CurrentPage - paginationWindow/2
	if first < defaultPage {
		first = defaultPage
	}
	last := first + paginationWindow - 1
	if last > view.TotalPages {
		last = view.TotalPages
		first = max(defaultPage, last-paginationWindow+1)
	}

	for number := first; number <= last; number++ {
		data.Pages = append(data.Pages, paginationPageView{
			Number:  number,
			Current: number == view.CurrentPage,
		})
	}
	return data
}
