package domain

import "sort"

// IDSet is a set of program identifiers.
type IDSet map[string]struct{}

// NewIDSet builds a set from ids.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts id into s.
func (s IDSet) Add(id string) {
	s[id] = struct{}{}
}

// Has reports whether id is in s.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Union returns a new set holding the members of s and o.
func (s IDSet) Union(o IDSet) IDSet {
	u := make(IDSet, len(s)+len(o))
	for id := range s {
		u[id] = struct{}{}
	}
	for id := range o {
		u[id] = struct{}{}
	}
	return u
}

// Sorted returns the members of s in ascending order.
func (s IDSet) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Partition splits the union of local and remote ids into three disjoint
// sets.
type Partition struct {
	Insert IDSet // remote only
	Update IDSet // present on both sides
	Delete IDSet // local only
}

// Diff partitions local and remote ids in O(|local| + |remote|).
func Diff(local, remote IDSet) Partition {
	p := Partition{
		Insert: make(IDSet),
		Update: make(IDSet),
		Delete: make(IDSet),
	}
	for id := range remote {
		if local.Has(id) {
			p.Update.Add(id)
		} else {
			p.Insert.Add(id)
		}
	}
	for id := range local {
		if !remote.Has(id) {
			p.Delete.Add(id)
		}
	}
	return p
}
