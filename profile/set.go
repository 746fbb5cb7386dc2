package profile

import (
	"iter"
	"slices"
)

// Set is an ordered, duplicate-free collection of checkpoint ids.
// The zero value is an empty set.
type Set []uint32

// SetOf returns the set containing the given ids.
func SetOf(ids ...uint32) Set {
	if len(ids) == 0 {
		return nil
	}

	s := slices.Clone(ids)
	slices.Sort(s)

	return slices.Compact(s)
}

// Len returns the number of ids in s.
func (s Set) Len() int { return len(s) }

// Contains reports whether id is a member of s.
func (s Set) Contains(id uint32) bool {
	_, ok := slices.BinarySearch(s, id)

	return ok
}

// Insert adds ids to s, keeping it ordered.
func (s *Set) Insert(ids ...uint32) {
	for _, id := range ids {
		i, ok := slices.BinarySearch(*s, id)
		if !ok {
			*s = slices.Insert(*s, i, id)
		}
	}
}

// Union returns a new set containing the members of s and o.
func (s Set) Union(o Set) Set {
	if len(s)+len(o) == 0 {
		return nil
	}

	u := make(Set, 0, len(s)+len(o))

	i, j := 0, 0
	for i < len(s) && j < len(o) {
		switch {
		case s[i] < o[j]:
			u = append(u, s[i])
			i++
		case s[i] > o[j]:
			u = append(u, o[j])
			j++
		default:
			u = append(u, s[i])
			i++
			j++
		}
	}

	u = append(u, s[i:]...)

	return append(u, o[j:]...)
}

// Equal reports whether s and o have the same members.
func (s Set) Equal(o Set) bool { return slices.Equal(s, o) }

// All returns an iterator over the ids of s in ascending order.
func (s Set) All() iter.Seq[uint32] { return slices.Values(s) }

// Clone returns a copy of s that does not share storage with it.
func (s Set) Clone() Set { return slices.Clone(s) }
