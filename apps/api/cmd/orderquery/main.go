package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/himeshnishant1/juspay-dashboard/libs/orders"
)

type queryOptions struct {
	search    string
	status    string
	project   string
	sort      string
	direction string
	page      int
	asJSON    bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, time.Now()))
}

func run(args []string, out, errOut io.Writer, now time.Time) int {
	opts, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(out, usage())
			return 0
		}
		fmt.Fprintln(errOut, "error:", err)
		fmt.Fprintln(errOut, usage())
		return 2
	}

	catalog, err := orders.DefaultCatalog()
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}

	state, err := buildState(catalog, opts)
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 2
	}

	view := orders.DeriveView(catalog, state, now)
	if opts.asJSON {
		err = writeJSON(out, view)
	} else {
		err = writeTable(out, view)
	}
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}
	return 0
}

func parseFlags(args []string) (queryOptions, error) {
	flagSet := flag.NewFlagSet("orderquery", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	var opts queryOptions
	flagSet.StringVar(&opts.search, "search", "", "Case-insensitive search over every column")
	flagSet.StringVar(&opts.status, "status", "", "Only orders with this status label")
	flagSet.StringVar(&opts.project, "project", "", "Only orders for this project")
	flagSet.StringVar(&opts.sort, "sort", "", "Sort column: id, user, project, address, date or status")
	flagSet.StringVar(&opts.direction, "dir", "asc", "Sort direction: asc or desc")
	flagSet.IntVar(&opts.page, "page", 1, "Page number (10 orders per page)")
	flagSet.BoolVar(&opts.asJSON, "json", false, "Print the page as JSON")

	if err := flagSet.Parse(args); err != nil {
		return queryOptions{}, err
	}
	if flagSet.NArg() > 0 {
		return queryOptions{}, fmt.Errorf("unexpected arguments: %s", strings.Join(flagSet.Args(), " "))
	}
	return opts, nil
}

func buildState(catalog *orders.Catalog, opts queryOptions) (orders.QueryState, error) {
	if err := catalog.CheckStatus(opts.status); err != nil {
		return orders.QueryState{}, err
	}
	if err := catalog.CheckProject(opts.project); err != nil {
		return orders.QueryState{}, err
	}
	field, err := orders.ParseSortField(opts.sort)
	if err != nil {
		return orders.QueryState{}, err
	}
	direction, err := orders.ParseDirection(opts.direction)
	if err != nil {
		return orders.QueryState{}, err
	}
	if opts.page < 1 {
		return orders.QueryState{}, fmt.Errorf("--page must be at least 1")
	}

	state := orders.NewQueryState()
	state.Selected = orders.NewSelection()
	state.SearchTerm = opts.search
	state.StatusFilter = opts.status
	state.ProjectFilter = opts.project
	state.SortField = field
	state.SortDirection = direction
	state.CurrentPage = opts.page
	return state, nil
}

type pageOutput struct {
	Items       []orders.OrderRecord `json:"items"`
	TotalCount  int                  `json:"totalCount"`
	TotalPages  int                  `json:"totalPages"`
	CurrentPage int                  `json:"currentPage"`
	StartIndex  int                  `json:"startIndex"`
	EndIndex    int                  `json:"endIndex"`
}

func writeJSON(out io.Writer, view orders.ViewModel) error {
	items := view.Items
	if items == nil {
		items = []orders.OrderRecord{}
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(pageOutput{
		Items:       items,
		TotalCount:  view.TotalCount,
		TotalPages:  view.TotalPages,
		CurrentPage: view.CurrentPage,
		StartIndex:  view.StartIndex,
		EndIndex:    view.EndIndex,
	})
}

func writeTable(out io.Writer, view orders.ViewModel) error {
	if len(view.Items) == 0 {
		_, err := fmt.Fprintf(out, "no orders (page %d of %d, %d matching)\n", view.CurrentPage, view.TotalPages, view.TotalCount)
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER ID\tUSER\tPROJECT\tADDRESS\tDATE\tSTATUS")
	for _, record := range view.Items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			record.ID, record.User.Name, record.Project, record.Address, record.Date, record.Status.Label)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "\n%d-%d of %d (page %d of %d)\n",
		view.StartIndex+1, view.EndIndex, view.TotalCount, view.CurrentPage, view.TotalPages)
	return err
}

func usage() string {
	return `Usage: orderquery [--search TEXT] [--status LABEL] [--project NAME]
                  [--sort FIELD] [--dir asc|desc] [--page N] [--json]`
}
