package graph

import "sort"

// IDSet is an unordered set of module ids.
type IDSet map[ID]struct{}

func NewIDSet(ids ...ID) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s IDSet) Add(id ID) {
	s[id] = struct{}{}
}

func (s IDSet) Has(id ID) bool {
	_, ok := s[id]
	return ok
}

// Union adds every member of other and reports how many were new.
func (s IDSet) Union(other IDSet) int {
	added := 0
	for id := range other {
		if _, ok := s[id]; !ok {
			s[id] = struct{}{}
			added++
		}
	}
	return added
}

func (s IDSet) Intersect(other IDSet) IDSet {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	out := NewIDSet()
	for id := range small {
		if large.Has(id) {
			out.Add(id)
		}
	}
	return out
}

func (s IDSet) Clone() IDSet {
	out := make(IDSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// Sorted returns the ids in ascending order.
func (s IDSet) Sorted() []ID {
	ids := make([]ID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
