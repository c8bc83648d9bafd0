package orders

// PageSize is the fixed number of rows per order table page.
const PageSize = 10

// Page is one window of a filtered and sorted order list.
type Page struct {
	Items       []OrderRecord
	TotalCount  int
	TotalPages  int
	CurrentPage int
	// StartIndex is inclusive and EndIndex exclusive, both 0-based over the full list.
	StartIndex int
	EndIndex   int
}

// Paginate slices records for page (1-based). A page past the end yields no items with both
// indexes at the end of the list; callers are expected to keep navigation within 1..TotalPages.
func Paginate(records []OrderRecord, page, pageSize int) Page {
	if pageSize < 1 {
		pageSize = PageSize
	}
	if page < 1 {
		page = 1
	}

	total := len(records)
	totalPages := 0
	if total > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	// Compare before multiplying so huge page numbers cannot wrap start negative.
	start := total
	if page-1 <= total/pageSize {
		start = min((page-1)*pageSize, total)
	}
	end := min(start+pageSize, total)

	items := []OrderRecord{}
	if start < end {
		items = append(items, records[start:end]...)
	}

	return Page{
		Items:       items,
		TotalCount:  total,
		TotalPages:  totalPages,
		CurrentPage: page,
		StartIndex:  start,
		EndIndex:    end,
	}
}

func (p Page) HasPrev() bool {
	return p.CurrentPage > 1
}

func (p Page) HasNext() bool {
	return p.CurrentPage < p.TotalPages
}

func (p Page) IDs() []string {
	ids := make([]string, 0, len(p.Items))
	for _, item := range p.Items {
		ids = append(ids, item.ID)
	}
	return ids
}
