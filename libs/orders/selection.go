package orders

import "slices"

// Selection is an insertion-ordered set of order ids.
type Selection struct {
	ids []string
}

func NewSelection(ids ...string) Selection {
	var s Selection
	for _, id := range ids {
		if !s.Contains(id) {
			s.ids = append(s.ids, id)
		}
	}
	return s
}

func (s Selection) Contains(id string) bool {
	return slices.Contains(s.ids, id)
}

func (s Selection) Len() int {
	return len(s.ids)
}

func (s Selection) IDs() []string {
	return slices.Clone(s.ids)
}

// Toggle adds id when absent and removes it when present. It never writes into a backing
// array shared with a copied Selection.
func (s *Selection) Toggle(id string) {
	if idx := slices.Index(s.ids, id); idx >= 0 {
		s.ids = append(slices.Clone(s.ids[:idx]), s.ids[idx+1:]...)
		return
	}
	s.ids = append(slices.Clip(s.ids), id)
}

// SelectAll replaces the selection with the ids of items.
func (s *Selection) SelectAll(items []OrderRecord) {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if !slices.Contains(ids, item.ID) {
			ids = append(ids, item.ID)
		}
	}
	s.ids = ids
}

func (s *Selection) Clear() {
	s.ids = nil
}

// CheckboxState is the tri-state of a "select all" header checkbox.
type CheckboxState struct {
	Checked       bool `json:"checked"`
	Indeterminate bool `json:"indeterminate"`
}

// HeaderState compares the selection size to the number of rows on the visible page.
func (s Selection) HeaderState(pageItemCount int) CheckboxState {
	n := s.Len()
	return CheckboxState{
		Checked:       n > 0 && n == pageItemCount,
		Indeterminate: n > 0 && n < pageItemCount,
	}
}
