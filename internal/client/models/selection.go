package models

// Selection is the set of asset ids picked for upload.
// The zero value is empty and ready to use.
type Selection struct {
	ids map[string]struct{}
}

// Toggle adds id when absent and removes it when present.
// It reports whether id is selected afterwards.
func (s *Selection) Toggle(id string) bool {
	if s.ids == nil {
		s.ids = make(map[string]struct{})
	}
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

func (s *Selection) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *Selection) Len() int {
	return len(s.ids)
}

func (s *Selection) Clear() {
	s.ids = nil
}

// Filter returns the refs that are selected, keeping the order of refs.
func (s *Selection) Filter(refs []AssetRef) []AssetRef {
	var out []AssetRef
	for _, r := range refs {
		if s.Contains(r.ID) {
			out = append(out, r)
		}
	}
	return out
}

// IDs returns a copy of the selected ids in no particular order.
func (s *Selection) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	return out
}
