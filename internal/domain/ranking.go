package domain

import "sort"

// Ranking counts something per contributor handle.
type Ranking map[string]int

// RankEntry is one row of an ordered Ranking.
type RankEntry struct {
	Handle string
	Count  int
}

// Add credits n to handle.
func (r Ranking) Add(handle string, n int) {
	r[handle] += n
}

// Merge adds every entry of other into r.
func (r Ranking) Merge(other Ranking) {
	for handle, n := range other {
		r[handle] += n
	}
}

// Top returns at most n entries, highest count first, ties broken by handle.
// A non-positive n returns every entry.
func (r Ranking) Top(n int) []RankEntry {
	entries := make([]RankEntry, 0, len(r))
	for handle, count := range r {
		entries = append(entries, RankEntry{Handle: handle, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Handle < entries[j].Handle
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// Clone returns an independent copy.
func (r Ranking) Clone() Ranking {
	c := make(Ranking, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}
